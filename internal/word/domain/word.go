package domain

import (
	"context"
	"strings"
)

// CSV header names of the word and favorites tables
const (
	TermColumn    = "히라가나"
	MeaningColumn = "뜻"
)

// LabelSeparator joins term and meaning in a composite label
const LabelSeparator = " : "

// Entry is a single vocabulary row. Words and favorites share this shape.
type Entry struct {
	Term    string `json:"term"`
	Meaning string `json:"meaning"`
}

// NewEntry builds an entry with CRLF line breaks folded to LF, the form the
// CSV reader hands back for multi-line fields.
func NewEntry(term, meaning string) Entry {
	return Entry{
		Term:    strings.ReplaceAll(term, "\r\n", "\n"),
		Meaning: strings.ReplaceAll(meaning, "\r\n", "\n"),
	}
}

// Label returns the composite "term : meaning" selection key
func (e Entry) Label() string {
	return e.Term + LabelSeparator + e.Meaning
}

// WordRepository defines the contract for the read-only word table
type WordRepository interface {
	FindAll(ctx context.Context) ([]Entry, error)
	Invalidate()
}

// FavoriteRepository defines the contract for the persisted favorites table
type FavoriteRepository interface {
	// FindAll never surfaces a parse failure; an unreadable table is empty.
	FindAll(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
	// Update serializes a read-modify-write. fn returns the next snapshot and
	// whether it differs; changed snapshots are saved before Update returns.
	Update(ctx context.Context, fn func(current []Entry) ([]Entry, bool)) ([]Entry, error)
}

// SearchWords returns every entry whose term or meaning contains query as a
// literal substring. An empty query matches nothing.
func SearchWords(words []Entry, query string) []Entry {
	if query == "" {
		return nil
	}
	var out []Entry
	for _, w := range words {
		if strings.Contains(w.Term, query) || strings.Contains(w.Meaning, query) {
			out = append(out, w)
		}
	}
	return out
}

// AddFavorite appends candidate unless an equal entry is already present.
// The returned bool reports whether the slice changed.
func AddFavorite(favorites []Entry, candidate Entry) ([]Entry, bool) {
	for _, f := range favorites {
		if f == candidate {
			return favorites, false
		}
	}
	next := make([]Entry, 0, len(favorites)+1)
	next = append(next, favorites...)
	return append(next, candidate), true
}

// RemoveFavorites drops every entry whose label is in labels, including all
// entries that happen to share a selected label. It returns the remaining
// entries and how many were removed.
func RemoveFavorites(favorites []Entry, labels []string) ([]Entry, int) {
	selected := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		selected[l] = struct{}{}
	}
	next := make([]Entry, 0, len(favorites))
	for _, f := range favorites {
		if _, ok := selected[f.Label()]; ok {
			continue
		}
		next = append(next, f)
	}
	return next, len(favorites) - len(next)
}
