// Package store holds the ordered item list and the active filter.
//
// Every mutation writes the full list to the key-value store before it
// returns. Edge cases (blank text, unknown id, moving past either end) are
// no-ops and return nil; the only errors a mutation returns come from the
// key-value store itself. A Store is not safe for concurrent use.
package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Makepad-fr/shortlist/internal/kv"
	"github.com/Makepad-fr/shortlist/internal/model"
)

// Direction is the index delta applied by Move.
type Direction int

const (
	Up   Direction = -1
	Down Direction = +1
)

// ParseDirection accepts "up"/"down" (any case) and "-1"/"+1".
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "-1":
		return Up, true
	case "down", "+1", "1":
		return Down, true
	}
	return 0, false
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return strconv.Itoa(int(d))
}

type Store struct {
	kv     kv.Store
	items  []model.Item
	filter string
	logger *zap.Logger
}

type Option func(*Store)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New restores the list saved in backend. Anything that cannot be read back
// as a list gives an empty list.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{kv: backend, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	s.items = s.load()
	return s
}

func (s *Store) load() []model.Item {
	raw, ok, err := s.kv.Get(kv.KeyItems)
	if err != nil {
		s.logger.Debug("list unreadable, starting empty", zap.Error(err))
		return []model.Item{}
	}
	if !ok || raw == "" {
		return []model.Item{}
	}
	items, err := Decode(raw)
	if err != nil {
		s.logger.Debug("list malformed, starting empty", zap.Error(err))
		return []model.Item{}
	}
	return items
}

// Encode serializes items as the JSON array stored under kv.KeyItems.
func Encode(items []model.Item) (string, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

// Decode parses a stored list. Entries with blank text or a repeated id
// are dropped.
func Decode(raw string) ([]model.Item, error) {
	var in []model.Item
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	out := make([]model.Item, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, it := range in {
		it.Text = strings.TrimSpace(it.Text)
		if it.Text == "" || it.ID == "" {
			continue
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out, nil
}

func (s *Store) save() error {
	raw, err := Encode(s.items)
	if err != nil {
		return err
	}
	if err := s.kv.Set(kv.KeyItems, raw); err != nil {
		s.logger.Warn("failed to persist list", zap.Int("items", len(s.items)), zap.Error(err))
		return fmt.Errorf("save list: %w", err)
	}
	return nil
}

// Add puts a new item with the trimmed text at the front of the list.
// Blank text is ignored.
func (s *Store) Add(text string) error {
	it, ok := model.NewItem(text)
	if !ok {
		return nil
	}
	s.items = append([]model.Item{it}, s.items...)
	s.logger.Debug("added item", zap.String("id", it.ID))
	return s.save()
}

// Delete removes the item with id. Unknown ids are ignored.
func (s *Store) Delete(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.logger.Debug("deleted item", zap.String("id", id))
	return s.save()
}

// Move shifts the item one position in dir. Unknown ids and moves past
// either end of the list are ignored.
func (s *Store) Move(id string, dir Direction) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	target := idx + int(dir)
	if target < 0 || target >= len(s.items) {
		return nil
	}

	next := make([]model.Item, 0, len(s.items))
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	picked := s.items[idx]
	next = append(next[:target], append([]model.Item{picked}, next[target:]...)...)
	s.items = next

	s.logger.Debug("moved item", zap.String("id", id), zap.Stringer("dir", dir))
	return s.save()
}

// ClearAll empties the list. Asking the user first is up to the caller.
func (s *Store) ClearAll() error {
	s.items = []model.Item{}
	s.logger.Debug("cleared list")
	return s.save()
}

// SetFilter replaces the filter text. It is never persisted.
func (s *Store) SetFilter(text string) {
	s.filter = text
}

func (s *Store) Filter() string { return s.filter }

// VisibleItems returns, in list order, the items whose text contains the
// filter ignoring case.
func (s *Store) VisibleItems() []model.Item {
	out := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		if it.Matches(s.filter) {
			out = append(out, it)
		}
	}
	return out
}

// Items returns a copy of the whole list.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

func (s *Store) Find(id string) (model.Item, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Item{}, false
	}
	return s.items[idx], true
}

// Resolve maps a user reference to an item: a 1-based position in the full
// list, or an id.
func (s *Store) Resolve(ref string) (model.Item, bool) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.items) {
			return model.Item{}, false
		}
		return s.items[n-1], true
	}
	return s.Find(ref)
}

func (s *Store) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
