package bdd

// SetVarName attaches a display name to level, used only by callers for
// pretty-printing cubes, traces, or diagnostics. Names are cosmetic:
// they never participate in canonicalization, cache keys, or any
// equality check, and two managers built from the same NewVar sequence
// but different names still produce identical diagrams.
func (m *Manager) SetVarName(level Level, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if int(level) >= len(m.levels) {
		panic("bdd: SetVarName: level out of range")
	}
	m.levels[level].name = name
}

// VarName returns the display name previously set for level via
// SetVarName, or "" if none was set.
func (m *Manager) VarName(level Level) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if int(level) >= len(m.levels) {
		panic("bdd: VarName: level out of range")
	}
	return m.levels[level].name
}
