package assoclist

// Entry is a view into a single key of a List
// which is either occupied or vacant.
//
// An Entry is invalidated by any mutation of its list
// that isn't performed through the Entry itself.
type Entry[K, V any] struct {
	list  *List[K, V]
	index int
	key   K
}

// Entry returns the entry for key.
func (l *List[K, V]) Entry(key K) Entry[K, V] {
	return Entry[K, V]{list: l, index: l.locate(key), key: key}
}

// Key returns the key the entry was created for.
func (e Entry[K, V]) Key() K { return e.key }

// Occupied returns true if a value is associated with the key.
func (e Entry[K, V]) Occupied() bool { return e.index >= 0 }

// Get returns the value of an occupied entry.
func (e Entry[K, V]) Get() (value V, ok bool) {
	if e.index < 0 {
		return value, false
	}
	return e.list.d[e.index].Value, true
}

// GetPtr returns a pointer to the value of an occupied entry
// or nil if the entry is vacant.
func (e Entry[K, V]) GetPtr() *V {
	if e.index < 0 {
		return nil
	}
	return &e.list.d[e.index].Value
}

// Insert replaces the value of an occupied entry returning the previous one,
// or appends the key with value to the list if the entry is vacant.
// A vacant entry must not be used after Insert.
func (e Entry[K, V]) Insert(value V) (prev V, replaced bool) {
	if e.index < 0 {
		e.list.push(e.key, value)
		return prev, false
	}
	prev, e.list.d[e.index].Value = e.list.d[e.index].Value, value
	return prev, true
}

// Remove removes an occupied entry from the list preserving
// the order of the remaining pairs and returns its value.
// The entry must not be used after Remove.
func (e Entry[K, V]) Remove() (value V, ok bool) {
	if e.index < 0 {
		return value, false
	}
	return e.list.removeAt(e.index).Value, true
}

// OrInsert inserts value if the entry is vacant
// and returns a pointer to the value of the entry.
func (e Entry[K, V]) OrInsert(value V) *V {
	if e.index < 0 {
		e.list.push(e.key, value)
		return &e.list.d[len(e.list.d)-1].Value
	}
	return &e.list.d[e.index].Value
}

// OrInsertWith is like OrInsert but only calls fn
// to produce the value if the entry is vacant.
func (e Entry[K, V]) OrInsertWith(fn func() V) *V {
	if e.index < 0 {
		return e.OrInsert(fn())
	}
	return &e.list.d[e.index].Value
}

// AndModify calls fn with a pointer to the value
// if the entry is occupied and returns the entry.
func (e Entry[K, V]) AndModify(fn func(*V)) Entry[K, V] {
	if e.index >= 0 {
		fn(&e.list.d[e.index].Value)
	}
	return e
}
