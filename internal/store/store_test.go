package store

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Makepad-fr/shortlist/internal/kv"
	"github.com/Makepad-fr/shortlist/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// failingKV accepts reads and rejects every write.
type failingKV struct{ kv.Memory }

func (f *failingKV) Set(string, string) error { return errors.New("disk full") }

func texts(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out
}

func seeded(t *testing.T, texts ...string) (*Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory(nil)
	s := New(mem)
	// Add prepends, so insert in reverse to get texts in the given order.
	for i := len(texts) - 1; i >= 0; i-- {
		require.NoError(t, s.Add(texts[i]))
	}
	return s, mem
}

func idOf(t *testing.T, s *Store, text string) string {
	t.Helper()
	for _, it := range s.Items() {
		if it.Text == text {
			return it.ID
		}
	}
	t.Fatalf("no item with text %q", text)
	return ""
}

func persisted(t *testing.T, mem *kv.Memory) []model.Item {
	t.Helper()
	raw, ok, err := mem.Get(kv.KeyItems)
	require.NoError(t, err)
	require.True(t, ok, "list was never persisted")
	items, err := Decode(raw)
	require.NoError(t, err)
	return items
}

func TestNewStartsEmpty(t *testing.T) {
	s := New(kv.NewMemory(nil))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.VisibleItems())
	assert.Equal(t, "", s.Filter())
}

func TestAdd(t *testing.T) {
	s, mem := seeded(t, "b", "c")

	require.NoError(t, s.Add("  a  "))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Text)
	assert.Equal(t, []string{"a", "b", "c"}, texts(items))
	assert.Empty(t, cmp.Diff(items, persisted(t, mem)))
}

func TestAddBlankIsNoop(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		s, mem := seeded(t, "keep")
		before, _, _ := mem.Get(kv.KeyItems)

		require.NoError(t, s.Add(in))

		assert.Equal(t, 1, s.Len())
		after, _, _ := mem.Get(kv.KeyItems)
		assert.Equal(t, before, after)
	}
}

func TestAddGeneratesUniqueIDs(t *testing.T) {
	s := New(kv.NewMemory(nil))
	for i := 0; i < 200; i++ {
		require.NoError(t, s.Add("same"))
	}
	seen := map[string]bool{}
	for _, it := range s.Items() {
		require.False(t, seen[it.ID])
		seen[it.ID] = true
	}
}

func TestDelete(t *testing.T) {
	s, mem := seeded(t, "a", "b", "c")

	require.NoError(t, s.Delete(idOf(t, s, "b")))

	assert.Equal(t, []string{"a", "c"}, texts(s.Items()))
	assert.Equal(t, []string{"a", "c"}, texts(persisted(t, mem)))
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	s, _ := seeded(t, "a", "b")
	before := s.Items()

	require.NoError(t, s.Delete("nope"))

	assert.Empty(t, cmp.Diff(before, s.Items()))
}

func TestDeleteDoesNotAliasItems(t *testing.T) {
	s, _ := seeded(t, "a", "b", "c")
	snapshot := s.Items()

	require.NoError(t, s.Delete(idOf(t, s, "a")))

	assert.Equal(t, []string{"a", "b", "c"}, texts(snapshot))
}

func TestMove(t *testing.T) {
	tests := []struct {
		name string
		item string
		dir  Direction
		want []string
	}{
		{name: "up from middle", item: "b", dir: Up, want: []string{"b", "a", "c", "d"}},
		{name: "down from middle", item: "b", dir: Down, want: []string{"a", "c", "b", "d"}},
		{name: "up from last", item: "d", dir: Up, want: []string{"a", "b", "d", "c"}},
		{name: "down from first", item: "a", dir: Down, want: []string{"b", "a", "c", "d"}},
		{name: "up from first", item: "a", dir: Up, want: []string{"a", "b", "c", "d"}},
		{name: "down from last", item: "d", dir: Down, want: []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem := seeded(t, "a", "b", "c", "d")
			ids := s.Items()

			require.NoError(t, s.Move(idOf(t, s, tt.item), tt.dir))

			assert.Equal(t, tt.want, texts(s.Items()))
			assert.Equal(t, tt.want, texts(persisted(t, mem)))
			assert.ElementsMatch(t, ids, s.Items(), "ids must survive a move")
		})
	}
}

func TestMoveUnknownIsNoop(t *testing.T) {
	s, _ := seeded(t, "a", "b")

	require.NoError(t, s.Move("missing", Up))
	require.NoError(t, s.Move("missing", Down))

	assert.Equal(t, []string{"a", "b"}, texts(s.Items()))
}

func TestMoveSingleItem(t *testing.T) {
	s, _ := seeded(t, "only")
	id := idOf(t, s, "only")

	require.NoError(t, s.Move(id, Up))
	require.NoError(t, s.Move(id, Down))

	assert.Equal(t, []string{"only"}, texts(s.Items()))
}

func TestVisibleItems(t *testing.T) {
	s, _ := seeded(t, "Walk dog", "Buy milk", "walkie talkie", "Milkshake")

	tests := []struct {
		filter string
		want   []string
	}{
		{filter: "", want: []string{"Walk dog", "Buy milk", "walkie talkie", "Milkshake"}},
		{filter: "walk", want: []string{"Walk dog", "walkie talkie"}},
		{filter: "MILK", want: []string{"Buy milk", "Milkshake"}},
		{filter: "y m", want: []string{"Buy milk"}},
		{filter: "zebra", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			s.SetFilter(tt.filter)
			assert.Equal(t, tt.want, texts(s.VisibleItems()))
			assert.Equal(t, tt.filter, s.Filter())
		})
	}
}

func TestFilterIsNotPersisted(t *testing.T) {
	s, mem := seeded(t, "a")
	s.SetFilter("zzz")

	reloaded := New(mem)

	assert.Equal(t, "", reloaded.Filter())
	assert.Len(t, reloaded.VisibleItems(), 1)
}

func TestClearAll(t *testing.T) {
	s, mem := seeded(t, "a", "b")

	require.NoError(t, s.ClearAll())

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, persisted(t, mem))
	raw, _, _ := mem.Get(kv.KeyItems)
	assert.Equal(t, "[]", raw)
}

func TestRestoreRoundTrip(t *testing.T) {
	s, mem := seeded(t, "a", "b", "c")
	want := s.Items()

	reloaded := New(mem)

	if diff := cmp.Diff(want, reloaded.Items()); diff != "" {
		t.Errorf("restored list mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := []model.Item{
		{ID: "1", Text: "Buy milk"},
		{ID: "2", Text: `quote " and ünïcode`},
	}
	raw, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(raw)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(in, out))

	raw, err = Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestRestoreFailSoft(t *testing.T) {
	tests := []struct {
		name string
		seed map[string]string
	}{
		{name: "missing key", seed: nil},
		{name: "empty value", seed: map[string]string{kv.KeyItems: ""}},
		{name: "garbage", seed: map[string]string{kv.KeyItems: "{oops"}},
		{name: "object", seed: map[string]string{kv.KeyItems: `{"id":"a"}`}},
		{name: "null", seed: map[string]string{kv.KeyItems: "null"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(kv.NewMemory(tt.seed))
			assert.Equal(t, 0, s.Len())
			assert.NotNil(t, s.Items())

			require.NoError(t, s.Add("works"))
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestRestoreDropsInvalidEntries(t *testing.T) {
	raw := `[{"id":"a","text":"first"},{"id":"b","text":"   "},{"id":"a","text":"dup"},{"id":"","text":"no id"},{"id":"c","text":" third "}]`
	s := New(kv.NewMemory(map[string]string{kv.KeyItems: raw}))

	assert.Equal(t, []model.Item{{ID: "a", Text: "first"}, {ID: "c", Text: "third"}}, s.Items())
}

func TestPersistFailureIsReturned(t *testing.T) {
	s := New(&failingKV{})

	err := s.Add("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, s.Len(), "in-memory state keeps the mutation")

	// No-ops never reach the backend.
	assert.NoError(t, s.Add("  "))
	assert.NoError(t, s.Delete("missing"))
	assert.NoError(t, s.Move(s.Items()[0].ID, Up))
}

func TestResolve(t *testing.T) {
	s, _ := seeded(t, "a", "b")
	idB := idOf(t, s, "b")

	it, ok := s.Resolve("2")
	require.True(t, ok)
	assert.Equal(t, "b", it.Text)

	it, ok = s.Resolve(idB)
	require.True(t, ok)
	assert.Equal(t, "b", it.Text)

	for _, ref := range []string{"0", "3", "-1", "nope"} {
		_, ok := s.Resolve(ref)
		assert.False(t, ok, ref)
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"up": Up, "UP": Up, "-1": Up, "down": Down, "+1": Down, "1": Down} {
		got, ok := ParseDirection(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseDirection("sideways")
	assert.False(t, ok)
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "down", Down.String())
}

// Walks through the documented example session end to end.
func TestScenario(t *testing.T) {
	mem := kv.NewMemory(nil)
	s := New(mem)

	require.NoError(t, s.Add("Buy milk"))
	assert.Equal(t, []string{"Buy milk"}, texts(s.Items()))

	require.NoError(t, s.Add("Walk dog"))
	assert.Equal(t, []string{"Walk dog", "Buy milk"}, texts(s.Items()))

	require.NoError(t, s.Move(idOf(t, s, "Buy milk"), Up))
	assert.Equal(t, []string{"Buy milk", "Walk dog"}, texts(s.Items()))

	s.SetFilter("walk")
	assert.Equal(t, []string{"Walk dog"}, texts(s.VisibleItems()))

	require.NoError(t, s.ClearAll())
	assert.Empty(t, s.Items())
	assert.Empty(t, persisted(t, mem))
}
