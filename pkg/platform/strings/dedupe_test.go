package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimLower(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "trims lowercases and dedupes",
			input: []string{"  Bryanston ", "sandton", "bryanston", ""},
			want:  []string{"bryanston", "sandton"},
		},
		{
			name:  "all blank",
			input: []string{"", "   "},
			want:  []string{},
		},
		{
			name:  "nil passes through",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrimLower(tt.input))
		})
	}
}

func TestSortedKey(t *testing.T) {
	assert.Equal(t, SortedKey([]string{"b", "a"}), SortedKey([]string{"a", "b"}))
	assert.Equal(t, "a,b", SortedKey([]string{"b", "a"}))
	assert.Equal(t, "", SortedKey(nil))
}
