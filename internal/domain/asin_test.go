package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsASIN(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"standard asin", "B01ABCDEF0", true},
		{"lowercase asin", "b01abcdef0", true},
		{"surrounding whitespace", "  B01ABCDEF0  ", true},
		{"too short", "B01ABCDE", false},
		{"too long", "B01ABCDEF01", false},
		{"wrong prefix", "A01ABCDEF0", false},
		{"plain keyword", "wireless earbuds", false},
		{"keyword starting with b0", "b0ttle opener", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsASIN(tt.value))
		})
	}
}
