package bdd

// Ite returns if f { g } else { h } (spec.md §4.4.3). All three operands
// are borrowed.
func (m *Manager) Ite(f, g, h Edge) (Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyIte(f, g, h)
}

func (m *Manager) applyIte(f, g, h Edge) (Edge, error) {
	if g.n == h.n {
		return m.cloneLocked(g), nil
	}
	if f.n == g.n {
		return m.applyBin(opOr, f, h)
	}
	if f.n == h.n {
		return m.applyBin(opAnd, f, g)
	}
	if f.n.term {
		if f.n.val {
			return m.cloneLocked(g), nil
		}
		return m.cloneLocked(h), nil
	}

	gTerm, hTerm := g.n.term, h.n.term
	switch {
	case gTerm && !hTerm:
		if g.n.val {
			return m.applyBin(opOr, f, h)
		}
		return m.applyBin(opImpStrict, f, h)
	case !gTerm && hTerm:
		if h.n.val {
			return m.applyBin(opImp, f, g)
		}
		return m.applyBin(opAnd, f, g)
	case gTerm && hTerm:
		// g != h was handled above, so they are distinct terminals.
		if !g.n.val {
			return m.applyNot(f)
		}
		return m.cloneLocked(f)
	}

	key := key3(opIte, f, g, h)
	if m.cache != nil {
		if hit, ok := m.cache.Get(key); ok {
			return m.cloneLocked(hit), nil
		}
	}

	level := f.n.level
	if g.n.level < level {
		level = g.n.level
	}
	if h.n.level < level {
		level = h.n.level
	}

	f0, f1 := f, f
	if f.n.level == level {
		f0, f1 = f.Else(), f.Then()
	}
	g0, g1 := g, g
	if g.n.level == level {
		g0, g1 = g.Else(), g.Then()
	}
	h0, h1 := h, h
	if h.n.level == level {
		h0, h1 = h.Else(), h.Then()
	}

	t, err := m.applyIte(f1, g1, h1)
	if err != nil {
		return Edge{}, err
	}
	e, err := m.applyIte(f0, g0, h0)
	if err != nil {
		m.releaseLocked(t)
		return Edge{}, err
	}
	res, err := m.reduce(level, t, e, opIte)
	if err != nil {
		return Edge{}, err
	}
	if m.cache != nil {
		m.cache.Add(key, res)
	}
	return res, nil
}
