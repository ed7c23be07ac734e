package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClockToday(t *testing.T) {
	c := NewFakeClock(time.Date(2024, 3, 31, 23, 30, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-31", Today(c))

	c.Advance(time.Hour)
	assert.Equal(t, "2024-04-01", Today(c))

	c.Set(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-01-02", Today(c))
}
