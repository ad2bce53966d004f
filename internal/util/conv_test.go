package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{0.934999, 0.93},
		{0.936, 0.94},
		{0.5, 0.5},
		{0.0, 0.0},
		{1.0, 1.0},
		{2.718, 2.72},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Round2(tt.in), "input %v", tt.in)
	}
}

func TestMustParseInt(t *testing.T) {
	assert.Equal(t, 42, MustParseInt("42"))
	assert.Equal(t, 0, MustParseInt("not a number"))
	assert.Equal(t, 0, MustParseInt(""))
	assert.Equal(t, -7, MustParseInt("-7"))
}
