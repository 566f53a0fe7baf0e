package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", d.String())

	_, err = ParseDate("28/02/2025")
	assert.Error(t, err)

	_, err = ParseDate("2025-02-30")
	assert.Error(t, err)
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2025, 1, 31)

	assert.Equal(t, "2025-02-01", d.AddDays(1).String())
	assert.Equal(t, "2025-01-30", d.AddDays(-1).String())

	// time.AddDate normalization: Jan 31 + 1 month overflows into March.
	assert.Equal(t, "2025-03-03", d.AddMonths(1).String())
	assert.Equal(t, "2025-02-28", NewDate(2025, 1, 28).AddMonths(1).String())
}

func TestDateComparisons(t *testing.T) {
	a := NewDate(2025, 1, 1)
	b := NewDate(2025, 1, 31)

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.False(t, a.After(a))
}

func TestDaysUntil(t *testing.T) {
	start := NewDate(2025, 1, 1)
	end := NewDate(2025, 1, 31)

	assert.Equal(t, 30, start.DaysUntil(end))
	assert.Equal(t, -30, end.DaysUntil(start))
	assert.Equal(t, 0, start.DaysUntil(start))

	// Leap February.
	assert.Equal(t, 28, NewDate(2024, 2, 1).DaysUntil(NewDate(2024, 2, 29)))
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, 6, 5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-05"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d.Time))

	var inStruct struct {
		Day Date `json:"day"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"day":"2024-02-29"}`), &inStruct))
	assert.Equal(t, "2024-02-29", inStruct.Day.String())

	assert.Error(t, json.Unmarshal([]byte(`{"day":"bogus"}`), &inStruct))
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name        string
		year        int
		month       time.Month
		first, last string
	}{
		{"january", 2025, time.January, "2025-01-01", "2025-01-31"},
		{"february", 2025, time.February, "2025-02-01", "2025-02-28"},
		{"leap february", 2024, time.February, "2024-02-01", "2024-02-29"},
		{"december", 2025, time.December, "2025-12-01", "2025-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := MonthRange(tt.year, tt.month)
			assert.Equal(t, tt.first, first.String())
			assert.Equal(t, tt.last, last.String())
		})
	}
}

func TestDateOf(t *testing.T) {
	stamp := time.Date(2025, 7, 4, 23, 59, 58, 0, time.UTC)
	assert.Equal(t, "2025-07-04", DateOf(stamp).String())
}
