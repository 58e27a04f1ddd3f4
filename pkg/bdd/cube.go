package bdd

// Tribool is a variable's value within a partial assignment: True,
// False, or DontCare when the assignment does not constrain it.
type Tribool int8

const (
	DontCare Tribool = iota
	False
	True
)

// ChoiceFunc lets a caller steer PickCube's branch selection at nodes
// where both children are satisfiable, f is borrowed for the duration
// of the call. Returning true selects the then-branch.
type ChoiceFunc func(f Edge) bool

// PickCube returns a partial assignment satisfying f, or nil if f = ⊥
// (spec.md §4.4.8). If f = ⊤ the returned cube leaves every variable as
// DontCare.
//
// order controls how the result is laid out. An empty order returns the
// cube indexed by Level directly (natural order), length NumLevels().
// A non-empty order must name every level exactly once — its length
// must equal NumLevels() — and the result is permuted so that
// result[i] holds the value of level order[i]; any other length is a
// caller bug and panics (spec.md §7).
func (m *Manager) PickCube(f Edge, order []Level, choice ChoiceFunc) []Tribool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(order) != 0 && len(order) != len(m.levels) {
		panic("bdd: PickCube: order must be empty or have length NumLevels()")
	}

	var natural []Tribool
	if f.n.term {
		if !f.n.val {
			return nil
		}
		natural = make([]Tribool, len(m.levels))
	} else {
		natural = make([]Tribool, len(m.levels))
		m.pickCube(f, natural, choice)
	}

	if len(order) == 0 {
		return natural
	}
	out := make([]Tribool, len(order))
	for i, lvl := range order {
		out[i] = natural[lvl]
	}
	return out
}

func (m *Manager) pickCube(f Edge, cube []Tribool, choice ChoiceFunc) {
	if f.n.term {
		return
	}
	then, els := f.Then(), f.Else()

	var goHi bool
	switch {
	case then.n.term && !then.n.val:
		goHi = false
	case els.n.term && !els.n.val:
		goHi = true
	default:
		goHi = choice(f)
	}

	if goHi {
		cube[f.n.level] = True
	} else {
		cube[f.n.level] = False
	}

	if goHi {
		m.pickCube(then, cube, choice)
	} else {
		m.pickCube(els, cube, choice)
	}
}
