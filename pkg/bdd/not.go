package bdd

// Not returns ¬f (spec.md §4.4.1). f is borrowed; the result is owned by
// the caller.
func (m *Manager) Not(f Edge) (Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyNot(f)
}

func (m *Manager) applyNot(f Edge) (Edge, error) {
	if f.n.term {
		if f.n.val {
			return m.cloneLocked(Edge{m.fNode}), nil
		}
		return m.cloneLocked(Edge{m.tNode}), nil
	}

	key := key1(opNot, f)
	if m.cache != nil {
		if hit, ok := m.cache.Get(key); ok {
			return m.cloneLocked(hit), nil
		}
	}

	t, err := m.applyNot(f.Then())
	if err != nil {
		return Edge{}, err
	}
	e, err := m.applyNot(f.Else())
	if err != nil {
		m.releaseLocked(t)
		return Edge{}, err
	}
	res, err := m.reduce(f.n.level, t, e, opNot)
	if err != nil {
		return Edge{}, err
	}
	if m.cache != nil {
		m.cache.Add(key, res)
	}
	return res, nil
}
