package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestISOWeekday(t *testing.T) {
	// 2024-01-01 was a Monday, 2024-01-07 a Sunday.
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, ISOWeekday(monday))
	assert.Equal(t, 2, ISOWeekday(monday.AddDate(0, 0, 1)))
	assert.Equal(t, 6, ISOWeekday(monday.AddDate(0, 0, 5)))
	assert.Equal(t, 7, ISOWeekday(sunday))
}

func TestISOWeekdayName(t *testing.T) {
	assert.Equal(t, "Monday", ISOWeekdayName(1))
	assert.Equal(t, "Sunday", ISOWeekdayName(7))
	assert.Equal(t, "", ISOWeekdayName(0))
	assert.Equal(t, "", ISOWeekdayName(8))
}
