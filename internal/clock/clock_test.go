package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	start := time.Date(2026, 4, 30, 23, 0, 0, 0, time.UTC)
	c := NewFixed(start)
	assert.Equal(t, start, c.Now())

	c.Advance(2 * time.Hour)
	assert.Equal(t, time.May, c.Now().Month())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestRealIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Real().Now().Location())
}
