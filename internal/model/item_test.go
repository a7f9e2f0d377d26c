package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "plain", input: "Buy milk", want: "Buy milk", wantOK: true},
		{name: "trimmed", input: "  Walk dog \n", want: "Walk dog", wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "whitespace only", input: " \t ", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, ok := NewItem(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.Equal(t, Item{}, it)
				return
			}
			assert.Equal(t, tt.want, it.Text)
			assert.NotEmpty(t, it.ID)
		})
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestMatches(t *testing.T) {
	it := Item{ID: "x", Text: "Walk Dog"}

	assert.True(t, it.Matches(""))
	assert.True(t, it.Matches("walk"))
	assert.True(t, it.Matches("DOG"))
	assert.True(t, it.Matches("k d"))
	assert.False(t, it.Matches("cat"))
}
