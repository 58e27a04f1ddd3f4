package bdd

// Restrict returns f|vars, the cofactor of f under the cube vars
// (spec.md §4.4.4). A cube is encoded as a chain of inner nodes, one per
// constrained variable, ordered by level: a positive literal at level L
// is a node whose else-child is ⊥ and whose then-child continues the
// chain; a negative literal is the mirror image (then-child is ⊥).
func (m *Manager) Restrict(f, vars Edge) (Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyRestrict(f, vars)
}

func (m *Manager) applyRestrict(f, vars Edge) (Edge, error) {
	for !vars.n.term && !f.n.term && vars.n.level < f.n.level {
		vars = m.advanceCube(vars)
	}

	if f.n.term || vars.n.term {
		return m.cloneLocked(f), nil
	}

	if vars.n.level > f.n.level {
		key := key2(opRestrict, f, vars)
		if m.cache != nil {
			if hit, ok := m.cache.Get(key); ok {
				return m.cloneLocked(hit), nil
			}
		}
		t, err := m.applyRestrict(f.Then(), vars)
		if err != nil {
			return Edge{}, err
		}
		e, err := m.applyRestrict(f.Else(), vars)
		if err != nil {
			m.releaseLocked(t)
			return Edge{}, err
		}
		res, err := m.reduce(f.n.level, t, e, opRestrict)
		if err != nil {
			return Edge{}, err
		}
		if m.cache != nil {
			m.cache.Add(key, res)
		}
		return res, nil
	}

	// vars.n.level == f.n.level: direct cofactor selection, no new node
	// can result, so no cache entry is needed (spec.md §4.4.4).
	positive := vars.n.els.n.term && !vars.n.els.n.val
	next := m.advanceCube(vars)
	if positive {
		return m.applyRestrict(f.Then(), next)
	}
	return m.applyRestrict(f.Else(), next)
}

// advanceCube returns the borrowed continuation of the cube chain past
// its current literal: the non-⊥ child.
func (m *Manager) advanceCube(vars Edge) Edge {
	if vars.n.els.n.term && !vars.n.els.n.val {
		return vars.Then()
	}
	return vars.Else()
}
