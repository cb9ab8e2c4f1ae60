package value

import "sync/atomic"

// orderedMap is the shared core behind all six map kinds: O(1) average
// lookup/insert/delete backed by a Go map, plus an append-only order log
// used to answer Snapshot in insertion order. Tombstones from deletes
// accumulate in the order log and are filtered lazily at snapshot time;
// the log is compacted once it grows far past the live key count so a
// churn-heavy map doesn't leak memory indefinitely.
type orderedMap[K comparable, V any] struct {
	refs  int32
	data  map[K]V
	order []K
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{refs: 1, data: make(map[K]V)}
}

func (m *orderedMap[K, V]) Retain() { atomic.AddInt32(&m.refs, 1) }

func (m *orderedMap[K, V]) Release() {
	if atomic.AddInt32(&m.refs, -1) == 0 {
		m.data = nil
		m.order = nil
	}
}

func (m *orderedMap[K, V]) Len() int { return len(m.data) }

func (m *orderedMap[K, V]) Lookup(k K) V { return m.data[k] }

func (m *orderedMap[K, V]) Contains(k K) bool {
	_, ok := m.data[k]
	return ok
}

func (m *orderedMap[K, V]) Store(k K, v V) {
	if _, ok := m.data[k]; !ok {
		m.order = append(m.order, k)
	}
	m.data[k] = v
}

func (m *orderedMap[K, V]) Delete(k K) {
	delete(m.data, k)
}

func (m *orderedMap[K, V]) Clear() {
	m.data = make(map[K]V)
	m.order = m.order[:0]
}

// Snapshot returns the live keys in insertion order, frozen at this
// instant; later Store/Delete calls never affect the returned slice.
func (m *orderedMap[K, V]) Snapshot() []K {
	out := make([]K, 0, len(m.data))
	// A key deleted and stored again appears more than once in the order
	// log; only its last entry marks its current insertion position.
	last := make(map[K]int, len(m.data))
	for i, k := range m.order {
		last[k] = i
	}
	for i, k := range m.order {
		if _, ok := m.data[k]; ok && last[k] == i {
			out = append(out, k)
		}
	}
	if len(m.order) > 2*len(out)+8 {
		m.order = append([]K(nil), out...)
	}
	return out
}

// IntIter and StrIter are the two iterator banks: a snapshot of a map's
// keys taken at creation time, exhausted by HasNext/Next.
type IntIter struct {
	keys []int64
	pos  int
}

func NewIntIter(keys []int64) IntIter { return IntIter{keys: keys} }
func (it *IntIter) HasNext() bool     { return it.pos < len(it.keys) }
func (it *IntIter) Next() int64 {
	k := it.keys[it.pos]
	it.pos++
	return k
}

type StrIter struct {
	keys []string
	pos  int
}

func NewStrIter(keys []string) StrIter { return StrIter{keys: keys} }
func (it *StrIter) HasNext() bool      { return it.pos < len(it.keys) }
func (it *StrIter) Next() string {
	k := it.keys[it.pos]
	it.pos++
	return k
}

// ---------------------------------------------------------------------
// The six concrete map kinds. Int/Float-valued maps need no refcounting
// on their values; Str-valued maps must Retain on insert and Release on
// overwrite/delete/clear, per the Str sharing contract.
// ---------------------------------------------------------------------

type IntIntMap struct{ h *orderedMap[int64, int64] }

func NewIntIntMap() IntIntMap                  { return IntIntMap{h: newOrderedMap[int64, int64]()} }
func (m IntIntMap) Retain() IntIntMap          { m.h.Retain(); return m }
func (m IntIntMap) Release()                   { m.h.Release() }
func (m IntIntMap) Len() int                    { return m.h.Len() }
func (m IntIntMap) Lookup(k int64) int64        { return m.h.Lookup(k) }
func (m IntIntMap) Contains(k int64) bool       { return m.h.Contains(k) }
func (m IntIntMap) Store(k, v int64)            { m.h.Store(k, v) }
func (m IntIntMap) Delete(k int64)              { m.h.Delete(k) }
func (m IntIntMap) Clear()                      { m.h.Clear() }
func (m IntIntMap) Iter() IntIter               { return NewIntIter(m.h.Snapshot()) }

type IntFloatMap struct{ h *orderedMap[int64, float64] }

func NewIntFloatMap() IntFloatMap            { return IntFloatMap{h: newOrderedMap[int64, float64]()} }
func (m IntFloatMap) Retain() IntFloatMap    { m.h.Retain(); return m }
func (m IntFloatMap) Release()               { m.h.Release() }
func (m IntFloatMap) Len() int               { return m.h.Len() }
func (m IntFloatMap) Lookup(k int64) float64 { return m.h.Lookup(k) }
func (m IntFloatMap) Contains(k int64) bool  { return m.h.Contains(k) }
func (m IntFloatMap) Store(k int64, v float64) { m.h.Store(k, v) }
func (m IntFloatMap) Delete(k int64)          { m.h.Delete(k) }
func (m IntFloatMap) Clear()                  { m.h.Clear() }
func (m IntFloatMap) Iter() IntIter            { return NewIntIter(m.h.Snapshot()) }

type IntStrMap struct{ h *orderedMap[int64, Str] }

func NewIntStrMap() IntStrMap         { return IntStrMap{h: newOrderedMap[int64, Str]()} }
func (m IntStrMap) Retain() IntStrMap { m.h.Retain(); return m }
func (m IntStrMap) Release()          { m.h.Release() }
func (m IntStrMap) Len() int          { return m.h.Len() }
func (m IntStrMap) Lookup(k int64) Str { return m.h.Lookup(k) }
func (m IntStrMap) Contains(k int64) bool { return m.h.Contains(k) }
func (m IntStrMap) Store(k int64, v Str) {
	if old, ok := m.h.data[k]; ok {
		old.Release()
	}
	m.h.Store(k, v.Retain())
}
func (m IntStrMap) Delete(k int64) {
	if old, ok := m.h.data[k]; ok {
		old.Release()
	}
	m.h.Delete(k)
}
func (m IntStrMap) Clear() {
	for _, old := range m.h.data {
		old.Release()
	}
	m.h.Clear()
}
func (m IntStrMap) Iter() IntIter { return NewIntIter(m.h.Snapshot()) }

type StrIntMap struct{ h *orderedMap[string, int64] }

func NewStrIntMap() StrIntMap          { return StrIntMap{h: newOrderedMap[string, int64]()} }
func (m StrIntMap) Retain() StrIntMap  { m.h.Retain(); return m }
func (m StrIntMap) Release()           { m.h.Release() }
func (m StrIntMap) Len() int           { return m.h.Len() }
func (m StrIntMap) Lookup(k Str) int64 { return m.h.Lookup(k.String()) }
func (m StrIntMap) Contains(k Str) bool { return m.h.Contains(k.String()) }
func (m StrIntMap) Store(k Str, v int64) { m.h.Store(k.String(), v) }
func (m StrIntMap) Delete(k Str)        { m.h.Delete(k.String()) }
func (m StrIntMap) Clear()              { m.h.Clear() }
func (m StrIntMap) Iter() StrIter       { return NewStrIter(m.h.Snapshot()) }

type StrFloatMap struct{ h *orderedMap[string, float64] }

func NewStrFloatMap() StrFloatMap           { return StrFloatMap{h: newOrderedMap[string, float64]()} }
func (m StrFloatMap) Retain() StrFloatMap   { m.h.Retain(); return m }
func (m StrFloatMap) Release()              { m.h.Release() }
func (m StrFloatMap) Len() int              { return m.h.Len() }
func (m StrFloatMap) Lookup(k Str) float64  { return m.h.Lookup(k.String()) }
func (m StrFloatMap) Contains(k Str) bool   { return m.h.Contains(k.String()) }
func (m StrFloatMap) Store(k Str, v float64) { m.h.Store(k.String(), v) }
func (m StrFloatMap) Delete(k Str)          { m.h.Delete(k.String()) }
func (m StrFloatMap) Clear()                { m.h.Clear() }
func (m StrFloatMap) Iter() StrIter         { return NewStrIter(m.h.Snapshot()) }

type StrStrMap struct{ h *orderedMap[string, Str] }

func NewStrStrMap() StrStrMap         { return StrStrMap{h: newOrderedMap[string, Str]()} }
func (m StrStrMap) Retain() StrStrMap { m.h.Retain(); return m }
func (m StrStrMap) Release()          { m.h.Release() }
func (m StrStrMap) Len() int          { return m.h.Len() }
func (m StrStrMap) Lookup(k Str) Str  { return m.h.Lookup(k.String()) }
func (m StrStrMap) Contains(k Str) bool { return m.h.Contains(k.String()) }
func (m StrStrMap) Store(k, v Str) {
	key := k.String()
	if old, ok := m.h.data[key]; ok {
		old.Release()
	}
	m.h.Store(key, v.Retain())
}
func (m StrStrMap) Delete(k Str) {
	key := k.String()
	if old, ok := m.h.data[key]; ok {
		old.Release()
	}
	m.h.Delete(key)
}
func (m StrStrMap) Clear() {
	for _, old := range m.h.data {
		old.Release()
	}
	m.h.Clear()
}
func (m StrStrMap) Iter() StrIter { return NewStrIter(m.h.Snapshot()) }
