package model

import (
	"strings"

	"github.com/google/uuid"
)

// Item is a single list entry. ID is identity only; position in the list
// carries the ordering.
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// NewItem trims text and returns an Item with a fresh ID.
// ok is false when nothing is left after trimming.
func NewItem(text string) (it Item, ok bool) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return Item{}, false
	}
	return Item{ID: NewID(), Text: clean}, true
}

// NewID returns a time-ordered UUIDv7 (millisecond clock + random bits).
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Matches reports whether the item's text contains filter, ignoring case.
func (it Item) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(it.Text), strings.ToLower(filter))
}
