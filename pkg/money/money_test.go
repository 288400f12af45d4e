package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"0":         "0.00",
		"350":       "350.00",
		"2500":      "2,500.00",
		"1234567.5": "1,234,567.50",
		"12.345":    "12.35",
		"99.995":    "100.00",
		"-1500.25":  "-1,500.25",
		"-0.5":      "-0.50",
	}
	for in, want := range cases {
		assert.Equal(t, want, Format(decimal.RequireFromString(in)), in)
	}
}

func TestWithPrefix(t *testing.T) {
	assert.Equal(t, "Rs. 7,500.00", WithPrefix(decimal.NewFromInt(7500)))
}
