package service

import "time"

// Clock is the time source for "now" and "today". Implementations return UTC.
type Clock interface {
	Now() time.Time
}
