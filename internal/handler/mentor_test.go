package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMentorName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Jane Doe", want: "jane doe"},
		{in: "  Jane Doe  ", want: "jane doe"},
		{in: "JANE", want: "jane"},
		{in: "jane", want: "jane"},
		{in: "", want: ""},
		{in: "   ", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeMentorName(tt.in), "input %q", tt.in)
	}
}
