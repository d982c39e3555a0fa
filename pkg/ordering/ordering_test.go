package ordering

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"numeric less", "1.0", "2.0", -1},
		{"numeric greater", "10.0", "2.0", 1},
		{"numeric equal", "2.0", "2", 0},
		{"negative", "-1.5", "0.0", -1},
		{"whitespace tolerated", " 3.0 ", "3.0", 0},
		{"unparseable falls back to lexical", "abc", "abd", -1},
		{"mixed falls back to lexical", "1.0", "abc", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestCompareNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		Compare("", "")
		Compare("NaN", "1.0")
		Compare("1..2", "--")
	})
}

func TestNext(t *testing.T) {
	assert.Equal(t, "1.0", Next(nil))
	assert.Equal(t, "1.0", Next([]string{}))
	assert.Equal(t, "4.0", Next([]string{"1.0", "3.0", "2.0"}))
	assert.Equal(t, "3.5", Next([]string{"2.5", "1.0"}))

	// Bad keys are skipped when finding the max.
	assert.Equal(t, "3.0", Next([]string{"2.0", "garbage"}))
	assert.Equal(t, "1.0", Next([]string{"garbage"}))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2.0", Format(decimal.NewFromInt(2)))
	assert.Equal(t, "2.5", Format(decimal.RequireFromString("2.5")))
}

func TestParseBadInputIsZero(t *testing.T) {
	assert.True(t, Parse("not-a-number").IsZero())
}
