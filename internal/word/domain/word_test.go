package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var sampleWords = []Entry{
	{Term: "犬", Meaning: "dog"},
	{Term: "猫", Meaning: "cat"},
	{Term: "いぬ", Meaning: "dog, hound"},
	{Term: "猫舌", Meaning: "sensitive to hot food"},
	{Term: "犬", Meaning: "dog"},
}

func TestSearchWords(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []Entry
	}{
		{name: "empty query matches nothing", query: "", want: nil},
		{name: "term substring", query: "猫", want: []Entry{sampleWords[1], sampleWords[3]}},
		{name: "meaning substring keeps duplicates", query: "dog", want: []Entry{sampleWords[0], sampleWords[2], sampleWords[4]}},
		{name: "case sensitive", query: "Dog", want: nil},
		{name: "regex metacharacters are literal", query: "d.g", want: nil},
		{name: "comma in meaning", query: ", h", want: []Entry{sampleWords[2]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchWords(sampleWords, tt.query)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SearchWords(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	favs, added := AddFavorite(nil, Entry{Term: "犬", Meaning: "dog"})
	assert.True(t, added)
	assert.Len(t, favs, 1)

	again, added := AddFavorite(favs, Entry{Term: "犬", Meaning: "dog"})
	assert.False(t, added)
	assert.Equal(t, favs, again)

	// same term, different meaning is a distinct favorite
	other, added := AddFavorite(favs, Entry{Term: "犬", Meaning: "hound"})
	assert.True(t, added)
	assert.Len(t, other, 2)
	assert.Len(t, favs, 1, "input slice must not be modified")
}

func TestRemoveFavorites(t *testing.T) {
	favs := []Entry{
		{Term: "犬", Meaning: "dog"},
		{Term: "猫", Meaning: "cat"},
		{Term: "鳥", Meaning: "bird"},
	}

	next, removed := RemoveFavorites(favs, []string{"猫 : cat", "missing : label"})
	assert.Equal(t, 1, removed)
	assert.Equal(t, []Entry{favs[0], favs[2]}, next)

	next, removed = RemoveFavorites(favs, nil)
	assert.Equal(t, 0, removed)
	assert.Equal(t, favs, next)
}

func TestRemoveFavoritesSharedLabel(t *testing.T) {
	// "a : b : c" is the label of both entries below
	favs := []Entry{
		{Term: "a : b", Meaning: "c"},
		{Term: "a", Meaning: "b : c"},
		{Term: "x", Meaning: "y"},
	}
	next, removed := RemoveFavorites(favs, []string{"a : b : c"})
	assert.Equal(t, 2, removed)
	assert.Equal(t, []Entry{{Term: "x", Meaning: "y"}}, next)
}

func TestEntryLabel(t *testing.T) {
	assert.Equal(t, "犬 : dog", Entry{Term: "犬", Meaning: "dog"}.Label())
}

func TestNewEntryFoldsCRLF(t *testing.T) {
	got := NewEntry("a\r\nb", "x\r\ny\rz")
	if diff := cmp.Diff(Entry{Term: "a\nb", Meaning: "x\ny\rz"}, got); diff != "" {
		t.Errorf("NewEntry() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatErrorMatching(t *testing.T) {
	err := fmt.Errorf("load words: %w", &FormatError{Path: "N3.csv", Line: 3, Err: errors.New("wrong number of fields")})

	assert.True(t, errors.Is(err, ErrFormat))

	var fe *FormatError
	if assert.True(t, errors.As(err, &fe)) {
		assert.Equal(t, 3, fe.Line)
	}
	assert.Contains(t, err.Error(), "N3.csv: line 3")
}
