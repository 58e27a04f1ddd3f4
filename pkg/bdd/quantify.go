package bdd

// Forall returns ∀vars. f (spec.md §4.4.5), combining cofactors with And.
func (m *Manager) Forall(f, vars Edge) (Edge, error) { return m.quant(opForall, f, vars) }

// Exist returns ∃vars. f, combining cofactors with Or.
func (m *Manager) Exist(f, vars Edge) (Edge, error) { return m.quant(opExist, f, vars) }

// Unique returns ∃!vars. f, combining cofactors with Xor.
func (m *Manager) Unique(f, vars Edge) (Edge, error) { return m.quant(opUnique, f, vars) }

func (m *Manager) quant(op Op, f, vars Edge) (Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyQuant(op, f, vars)
}

// underlyingOp returns the binary combinator used to merge a quantified
// node's two sub-results.
func underlyingOp(op Op) Op {
	switch op {
	case opForall:
		return opAnd
	case opExist:
		return opOr
	case opUnique:
		return opXor
	default:
		panic("bdd: underlyingOp: not a quantifier")
	}
}

func (m *Manager) applyQuant(op Op, f, vars Edge) (Edge, error) {
	if f.n.term {
		if op != opUnique {
			return m.cloneLocked(f), nil
		}
		// ∃! over a terminal: a non-empty variable set quantifies a
		// constant against itself (f ⊕ f = ⊥); an empty set leaves it
		// unchanged (spec.md §4.4.5, step 1). This departs from a
		// generic terminal short-circuit that would return clone(f)
		// unconditionally — Unique is the one quantifier where a
		// terminal operand is not automatically final.
		if vars.n.term {
			return m.cloneLocked(f), nil
		}
		return m.cloneLocked(Edge{m.fNode}), nil
	}

	if op != opUnique {
		for !vars.n.term && vars.n.level < f.n.level {
			vars = m.advanceCube(vars)
		}
	} else if !vars.n.term && vars.n.level < f.n.level {
		// A variable above f's top level does not occur in f, so
		// quantifying it uniquely is f ⊕ f = ⊥ (spec.md §4.4.5, step 2).
		return m.cloneLocked(Edge{m.fNode}), nil
	}

	if vars.n.term {
		return m.cloneLocked(f), nil
	}

	key := key2(op, f, vars)
	if m.cache != nil {
		if hit, ok := m.cache.Get(key); ok {
			return m.cloneLocked(hit), nil
		}
	}

	quantifyHere := vars.n.level == f.n.level
	nextVars := vars
	if quantifyHere {
		nextVars = m.advanceCube(vars)
	}

	t, err := m.applyQuant(op, f.Then(), nextVars)
	if err != nil {
		return Edge{}, err
	}
	e, err := m.applyQuant(op, f.Else(), nextVars)
	if err != nil {
		m.releaseLocked(t)
		return Edge{}, err
	}

	var res Edge
	if quantifyHere {
		res, err = m.applyBin(underlyingOp(op), t, e)
		m.releaseLocked(t)
		m.releaseLocked(e)
	} else {
		res, err = m.reduce(f.n.level, t, e, op)
	}
	if err != nil {
		return Edge{}, err
	}
	if m.cache != nil {
		m.cache.Add(key, res)
	}
	return res, nil
}
