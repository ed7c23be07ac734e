package clock

import (
	"time"

	"go.uber.org/fx"
)

// DateLayout is the fixed-width calendar date used for release dates.
const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Today formats the clock's current calendar date in its own location.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

var Module = fx.Module("clock",
	fx.Provide(func() Clock { return SystemClock{} }),
)
