package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCompactDate(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)

	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{name: "zero time", input: time.Time{}, expected: ""},
		{name: "UTC date", input: time.Date(1980, 2, 29, 0, 0, 0, 0, time.UTC), expected: "19800229"},
		{name: "local midnight stays on its day", input: time.Date(1975, 1, 1, 0, 30, 0, 0, berlin), expected: "19750101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCompactDate(tt.input))
		})
	}
}
