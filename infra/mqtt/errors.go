package mqtt

import "errors"

var errPublishFailed = errors.New("publish failed")
