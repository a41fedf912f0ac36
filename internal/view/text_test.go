package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		maxLines int
		want     []string
	}{
		{name: "fits", text: "Saved", width: 10, want: []string{"Saved"}},
		{name: "empty", text: "", width: 10, want: []string{""}},
		{name: "word wrap", text: "the quick brown fox", width: 10, want: []string{"the quick", "brown fox"}},
		{name: "long word split", text: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "newlines kept", text: "a\nb", width: 10, want: []string{"a", "b"}},
		{name: "capped with ellipsis", text: "one two three four", width: 9, maxLines: 1, want: []string{"one two …"}},
		{name: "capped tight", text: "abcd efgh", width: 4, maxLines: 1, want: []string{"abc…"}},
		{name: "zero width", text: "abc", width: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapLines(tt.text, tt.width, tt.maxLines))
		})
	}
}

func TestCutLines(t *testing.T) {
	assert.Equal(t, []string{"abc", "de"}, CutLines("abcdef\nde", 3))
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 5, TextWidth("ab\nabcde\nc"))
	assert.Equal(t, 0, TextWidth(""))
}
