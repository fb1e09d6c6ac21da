package pmap

import (
	"testing"

	"github.com/sarat-asymmetrica/pds/version"
)

func stringHash() Hash[string] {
	return XXHashString()
}

func TestEmptyMap(t *testing.T) {
	ctx := version.New()
	m := New[string, int](ctx, stringHash())
	if !m.IsEmpty() || m.Len() != 0 {
		t.Fatalf("New: len = %d, want 0", m.Len())
	}
	if m.Contains("missing") {
		t.Fatal("New: empty map should not contain anything")
	}
}

func TestSetAndGetPersistence(t *testing.T) {
	ctx := version.New()
	m0 := New[string, int](ctx, stringHash())
	m1 := m0.Set("a", 1)
	m2 := m1.Set("b", 2)

	if m0.Len() != 0 {
		t.Fatalf("m0 mutated: len = %d, want 0", m0.Len())
	}
	if m1.Len() != 1 || m1.Get("a") != 1 {
		t.Fatalf("m1 mutated by m2's Set: len = %d, a = %d", m1.Len(), m1.Get("a"))
	}
	if m2.Get("a") != 1 || m2.Get("b") != 2 {
		t.Fatalf("m2.a = %d, m2.b = %d", m2.Get("a"), m2.Get("b"))
	}
}

func TestSetOverwritesExistingKey(t *testing.T) {
	ctx := version.New()
	m := New[string, int](ctx, stringHash())
	m = m.Set("k", 1)
	m2 := m.Set("k", 2)
	if m2.Len() != 1 {
		t.Fatalf("overwriting a key should not change Len: got %d", m2.Len())
	}
	if m.Get("k") != 1 {
		t.Fatalf("original map mutated by overwrite: got %d, want 1", m.Get("k"))
	}
	if m2.Get("k") != 2 {
		t.Fatalf("m2.Get(k) = %d, want 2", m2.Get("k"))
	}
}

func TestAtMissingKeyReturnsError(t *testing.T) {
	ctx := version.New()
	m := New[string, int](ctx, stringHash())
	if _, err := m.At("nope"); err == nil {
		t.Fatal("At on a missing key should return an error")
	}
}

func TestGetMissingKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Get on a missing key should panic")
		}
	}()
	ctx := version.New()
	New[string, int](ctx, stringHash()).Get("nope")
}

func TestEraseRemovesKey(t *testing.T) {
	ctx := version.New()
	m := New[string, int](ctx, stringHash())
	m = m.Set("a", 1).Set("b", 2)

	m2, err := m.Erase("a")
	if err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if m2.Contains("a") {
		t.Fatal("m2 should no longer contain erased key")
	}
	if !m.Contains("a") {
		t.Fatal("original map mutated by Erase")
	}
	if m2.Len() != 1 {
		t.Fatalf("m2.Len() = %d, want 1", m2.Len())
	}
}

func TestEraseMissingKeyErrors(t *testing.T) {
	ctx := version.New()
	m := New[string, int](ctx, stringHash())
	if _, err := m.Erase("nope"); err == nil {
		t.Fatal("Erase on a missing key should return an error")
	}
}

func TestRehashPreservesAllEntries(t *testing.T) {
	ctx := version.New()
	m := NewSized[string, int](ctx, stringHash(), 4)

	const n = 500
	for i := 0; i < n; i++ {
		key := keyFor(i)
		m = m.Set(key, i)
	}
	if m.Len() != n {
		t.Fatalf("after %d inserts, Len() = %d", n, m.Len())
	}
	for i := 0; i < n; i++ {
		key := keyFor(i)
		if got := m.Get(key); got != i {
			t.Fatalf("Get(%s) = %d, want %d", key, got, i)
		}
	}
}

func keyFor(i int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	b := []byte{alphabet[i%26], alphabet[(i/26)%26], alphabet[(i/676)%26]}
	return string(b) + "-" + string(rune('0'+i%10))
}

func TestFNVHashDrivesSetGetAndRehash(t *testing.T) {
	ctx := version.New()
	toBytes := func(k string) []byte { return []byte(k) }
	m := NewSized[string, int](ctx, FNVHash[string](toBytes), 4)

	const n = 200
	for i := 0; i < n; i++ {
		m = m.Set(keyFor(i), i)
	}
	if m.Len() != n {
		t.Fatalf("Len() = %d, want %d", m.Len(), n)
	}
	for i := 0; i < n; i++ {
		if got := m.Get(keyFor(i)); got != i {
			t.Fatalf("Get(%s) = %d, want %d", keyFor(i), got, i)
		}
	}

	overwritten := m.Set(keyFor(0), -1)
	if overwritten.Get(keyFor(0)) != -1 || overwritten.Len() != n {
		t.Fatalf("overwrite via FNVHash: Get=%d Len=%d", overwritten.Get(keyFor(0)), overwritten.Len())
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	ctx := version.New()
	m0 := New[string, int](ctx, stringHash())
	m1 := m0.Set("a", 1)
	m2 := m1.Set("b", 2)

	u := m2.Undo()
	if u.Len() != 1 || !u.Contains("a") || u.Contains("b") {
		t.Fatalf("Undo(m2): len=%d has-a=%v has-b=%v", u.Len(), u.Contains("a"), u.Contains("b"))
	}
	r := u.Redo()
	if r.Len() != 2 || !r.Contains("b") {
		t.Fatalf("Redo(Undo(m2)): len=%d has-b=%v", r.Len(), r.Contains("b"))
	}
}

func TestClearThenUndoRestores(t *testing.T) {
	ctx := version.New()
	m := New[string, int](ctx, stringHash())
	m = m.Set("a", 1).Set("b", 2)
	cleared := m.Clear()
	if !cleared.IsEmpty() {
		t.Fatal("Clear should produce an empty map")
	}
	restored := cleared.Undo()
	if restored.Len() != 2 || !restored.Contains("a") || !restored.Contains("b") {
		t.Fatalf("Undo(Clear(m)) should restore m's content, got len %d", restored.Len())
	}
}

func TestFromPairsMatchesSetSequence(t *testing.T) {
	ctx := version.New()
	pairs := []Pair[string, int]{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}}
	a := FromPairs(ctx, stringHash(), pairs, 16)
	b := New[string, int](ctx, stringHash()).Set("a", 1).Set("b", 2).Set("c", 3)

	if !a.Equal(b, func(x, y int) bool { return x == y }) {
		t.Fatalf("FromPairs result should equal the same pairs built via Set: a.Len()=%d b.Len()=%d", a.Len(), b.Len())
	}
}

func TestFindLocatesExistingKey(t *testing.T) {
	ctx := version.New()
	m := New[string, int](ctx, stringHash())
	m = m.Set("a", 1).Set("b", 2)

	it := m.Find("b")
	if !it.Valid() {
		t.Fatal("Find on an existing key should return a valid iterator")
	}
	if p := it.Pair(); p.Key != "b" || p.Value != 2 {
		t.Fatalf("Find(b).Pair() = %+v, want {b 2}", p)
	}
}

func TestFindMissingKeyReturnsEnd(t *testing.T) {
	ctx := version.New()
	m := New[string, int](ctx, stringHash())
	m = m.Set("a", 1)

	it := m.Find("nope")
	if it.Valid() {
		t.Fatal("Find on a missing key should return an invalid (End) iterator")
	}
	if !it.Equal(End(m)) {
		t.Fatal("Find on a missing key should equal End(m)")
	}
}

func TestEndIsStableAcrossMisses(t *testing.T) {
	ctx := version.New()
	m := New[string, int](ctx, stringHash())
	m = m.Set("a", 1).Set("b", 2).Set("c", 3)

	// Two different missing keys still land on the same single End
	// cursor for this map shape, since Iterator equality per spec.md
	// §4.7 compares only the outer (bucket) position.
	if !m.Find("missing-one").Equal(m.Find("missing-two")) {
		t.Fatal("End cursor should be the same for any miss against the same map shape")
	}
	if !m.Find("missing-one").Equal(End(m)) {
		t.Fatal("Find miss should equal End(m)")
	}
}

func TestIteratorVisitsEveryPair(t *testing.T) {
	ctx := version.New()
	m := New[string, int](ctx, stringHash())
	want := map[string]int{"a": 1, "b": 2, "c": 3}
	for k, v := range want {
		m = m.Set(k, v)
	}

	got := map[string]int{}
	for it := Begin(m); it.Valid(); it = it.Next() {
		p := it.Pair()
		got[p.Key] = p.Value
	}
	if len(got) != len(want) {
		t.Fatalf("iterator visited %d pairs, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("iterator pair %s = %d, want %d", k, got[k], v)
		}
	}
}
