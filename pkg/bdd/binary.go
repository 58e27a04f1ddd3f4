package bdd

// And returns f ∧ g (spec.md §4.4.2).
func (m *Manager) And(f, g Edge) (Edge, error) { return m.binOp(opAnd, f, g) }

// Or returns f ∨ g.
func (m *Manager) Or(f, g Edge) (Edge, error) { return m.binOp(opOr, f, g) }

// Nand returns ¬(f ∧ g).
func (m *Manager) Nand(f, g Edge) (Edge, error) { return m.binOp(opNand, f, g) }

// Nor returns ¬(f ∨ g).
func (m *Manager) Nor(f, g Edge) (Edge, error) { return m.binOp(opNor, f, g) }

// Xor returns f ⊕ g.
func (m *Manager) Xor(f, g Edge) (Edge, error) { return m.binOp(opXor, f, g) }

// Equiv returns ¬(f ⊕ g).
func (m *Manager) Equiv(f, g Edge) (Edge, error) { return m.binOp(opEquiv, f, g) }

// Imp returns f → g, i.e. ¬f ∨ g.
func (m *Manager) Imp(f, g Edge) (Edge, error) { return m.binOp(opImp, f, g) }

// ImpStrict returns ¬f ∧ g (the "f < g" relation, named for its use as
// ite's g=⊥ case, spec.md §4.4.3).
func (m *Manager) ImpStrict(f, g Edge) (Edge, error) { return m.binOp(opImpStrict, f, g) }

func (m *Manager) binOp(op Op, f, g Edge) (Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyBin(op, f, g)
}

// commutative reports whether op's operands may be freely reordered —
// the normalization step that improves cache hit rate (spec.md §4.4,
// step 2). Imp and ImpStrict are directional and excluded.
func commutative(op Op) bool {
	switch op {
	case opAnd, opOr, opNand, opNor, opXor, opEquiv:
		return true
	default:
		return false
	}
}

// binTerminal implements each operator's terminal short-circuit table
// (spec.md §4.4.2). It returns handled=false when neither operand is
// terminal and ordinary recursion must proceed.
func (m *Manager) binTerminal(op Op, f, g Edge) (result Edge, handled bool, err error) {
	fTerm, gTerm := f.n.term, g.n.term
	if !fTerm && !gTerm {
		return Edge{}, false, nil
	}

	switch op {
	case opAnd:
		if fTerm && !f.n.val || gTerm && !g.n.val {
			return m.cloneLocked(Edge{m.fNode}), true, nil
		}
		if fTerm && f.n.val {
			return m.cloneLocked(g), true, nil
		}
		return m.cloneLocked(f), true, nil

	case opOr:
		if fTerm && f.n.val || gTerm && g.n.val {
			return m.cloneLocked(Edge{m.tNode}), true, nil
		}
		if fTerm && !f.n.val {
			return m.cloneLocked(g), true, nil
		}
		return m.cloneLocked(f), true, nil

	case opNand:
		if fTerm && !f.n.val || gTerm && !g.n.val {
			return m.cloneLocked(Edge{m.tNode}), true, nil
		}
		if fTerm && f.n.val {
			r, err := m.applyNot(g)
			return r, true, err
		}
		r, err := m.applyNot(f)
		return r, true, err

	case opNor:
		if fTerm && f.n.val || gTerm && g.n.val {
			return m.cloneLocked(Edge{m.fNode}), true, nil
		}
		if fTerm && !f.n.val {
			r, err := m.applyNot(g)
			return r, true, err
		}
		r, err := m.applyNot(f)
		return r, true, err

	case opXor:
		if fTerm && !f.n.val {
			return m.cloneLocked(g), true, nil
		}
		if fTerm && f.n.val {
			r, err := m.applyNot(g)
			return r, true, err
		}
		if gTerm && !g.n.val {
			return m.cloneLocked(f), true, nil
		}
		r, err := m.applyNot(f)
		return r, true, err

	case opEquiv:
		if fTerm && f.n.val {
			return m.cloneLocked(g), true, nil
		}
		if fTerm && !f.n.val {
			r, err := m.applyNot(g)
			return r, true, err
		}
		if gTerm && g.n.val {
			return m.cloneLocked(f), true, nil
		}
		r, err := m.applyNot(f)
		return r, true, err

	case opImp:
		if fTerm && !f.n.val {
			return m.cloneLocked(Edge{m.tNode}), true, nil
		}
		if gTerm && g.n.val {
			return m.cloneLocked(Edge{m.tNode}), true, nil
		}
		if fTerm && f.n.val {
			return m.cloneLocked(g), true, nil
		}
		r, err := m.applyNot(f)
		return r, true, err

	case opImpStrict:
		if fTerm && !f.n.val {
			return m.cloneLocked(g), true, nil
		}
		if gTerm && !g.n.val {
			return m.cloneLocked(Edge{m.fNode}), true, nil
		}
		if fTerm && f.n.val {
			return m.cloneLocked(Edge{m.fNode}), true, nil
		}
		r, err := m.applyNot(f)
		return r, true, err

	default:
		panic("bdd: binTerminal: not a binary operator")
	}
}

func (m *Manager) applyBin(op Op, f, g Edge) (Edge, error) {
	if res, handled, err := m.binTerminal(op, f, g); handled {
		return res, err
	}

	normF, normG := f, g
	if commutative(op) && f.n.id > g.n.id {
		normF, normG = g, f
	}

	key := key2(op, normF, normG)
	if m.cache != nil {
		if hit, ok := m.cache.Get(key); ok {
			return m.cloneLocked(hit), nil
		}
	}

	level := f.n.level
	if g.n.level < level {
		level = g.n.level
	}

	f0, f1 := f, f
	if f.n.level == level {
		f0, f1 = f.Else(), f.Then()
	}
	g0, g1 := g, g
	if g.n.level == level {
		g0, g1 = g.Else(), g.Then()
	}

	t, err := m.applyBin(op, f1, g1)
	if err != nil {
		return Edge{}, err
	}
	e, err := m.applyBin(op, f0, g0)
	if err != nil {
		m.releaseLocked(t)
		return Edge{}, err
	}
	res, err := m.reduce(level, t, e, op)
	if err != nil {
		return Edge{}, err
	}
	if m.cache != nil {
		m.cache.Add(key, res)
	}
	return res, nil
}
