package bdd

// Eval walks f under a total assignment of every level to a boolean,
// returning the reached terminal's value (spec.md §4.4.9). assignment
// must have an entry for every level f's path can reach; a missing entry
// is treated as false.
func (m *Manager) Eval(f Edge, assignment map[Level]bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := f
	for !n.n.term {
		if assignment[n.n.level] {
			n = n.Then()
		} else {
			n = n.Else()
		}
	}
	return n.n.val
}
