package model

// Region identifies a Korean power-market region. The tariff tables use the
// six macro regions; the scoring tables additionally know a handful of
// metropolitan areas and two alias spellings.
type Region string

const (
	RegionCapital     Region = "수도권"
	RegionChungcheong Region = "충청권"
	RegionYeongnam    Region = "영남권"
	RegionHonam       Region = "호남권"
	RegionGangwon     Region = "강원권"
	RegionJeju        Region = "제주권"

	// Regions only referenced by the scoring tables.
	RegionSejong     Region = "세종"
	RegionGwangju    Region = "광주"
	RegionDaejeon    Region = "대전"
	RegionDaegu      Region = "대구"
	RegionIncheon    Region = "인천"
	RegionBusan      Region = "부산"
	RegionUlsan      Region = "울산"
	RegionGyeongsang Region = "경상권"
	RegionJeolla     Region = "전라권"
)

// TariffRegions lists the regions carrying dedicated tariff multipliers.
// Any other region falls back to a neutral factor of 1.0.
func TariffRegions() []Region {
	return []Region{
		RegionCapital, RegionChungcheong, RegionYeongnam,
		RegionHonam, RegionGangwon, RegionJeju,
	}
}
