package domain

import "errors"

// ErrUpgradeRequired signals that a premium-only operation was refused
var ErrUpgradeRequired = errors.New("premium entitlement required")
