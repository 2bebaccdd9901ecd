// package gomap provides a container.Mapper implementation
// backed by Go's native map for reference in tests and benchmarks.
package gomap

type Gomap[K comparable, V any] struct {
	m map[K]V
}

func New[K comparable, V any](capacity int) *Gomap[K, V] {
	return &Gomap[K, V]{
		m: make(map[K]V, capacity),
	}
}

func (m *Gomap[K, V]) Insert(key K, value V) (prev V, replaced bool) {
	prev, replaced = m.m[key]
	m.m[key] = value
	return prev, replaced
}

func (m *Gomap[K, V]) Remove(key K) (v V, ok bool) {
	if v, ok = m.m[key]; ok {
		delete(m.m, key)
	}
	return v, ok
}

func (m *Gomap[K, V]) Get(key K) (v V, ok bool) {
	v, ok = m.m[key]
	return v, ok
}

func (m *Gomap[K, V]) ContainsKey(key K) bool {
	_, ok := m.m[key]
	return ok
}

func (m *Gomap[K, V]) Clear() {
	clear(m.m)
}

func (m *Gomap[K, V]) Len() int {
	return len(m.m)
}

func (m *Gomap[K, V]) Visit(fn func(K, V) bool) {
	for k, v := range m.m {
		if !fn(k, v) {
			break
		}
	}
}
