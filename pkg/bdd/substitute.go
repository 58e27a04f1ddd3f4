package bdd

// Substitution is a prepared variable-to-function replacement map,
// consumed by Manager.Substitute (spec.md §4.4.6). It is built once via
// NewSubstitution and may be reused across multiple Substitute calls.
type Substitution struct {
	id           uint64
	replacements []Edge // dense, index by Level; owned by the Substitution
}

// NewSubstitution builds a dense replacement table from the given
// mapping of variable level to replacement edge. Levels not present in
// repl, up to the highest level mentioned, are filled with the manager's
// canonical variable edge for that level so that substitution can
// descend through an untouched variable and re-introduce it intact.
// repl is borrowed; NewSubstitution clones every edge it keeps.
//
// Each Substitution carries a unique numeric id used in the apply
// cache's key so that two substitutions targeting the same edge with
// different σ never collide (spec.md §4.4.6).
func (m *Manager) NewSubstitution(repl map[Level]Edge) *Substitution {
	m.mu.Lock()
	defer m.mu.Unlock()

	var maxLevel Level
	for l := range repl {
		if l > maxLevel {
			maxLevel = l
		}
	}
	n := int(maxLevel) + 1
	if len(repl) == 0 {
		n = 0
	}

	table := m.substPool.Get()
	for l := 0; l < n; l++ {
		if e, ok := repl[Level(l)]; ok {
			table = append(table, m.cloneLocked(e))
		} else {
			table = append(table, m.cloneLocked(m.varEdge(Level(l))))
		}
	}

	m.nextSubstID++
	return &Substitution{id: m.nextSubstID, replacements: table}
}

// Release drops the Substitution's owned replacement edges. Call this
// once the Substitution is no longer needed.
func (s *Substitution) Release(m *Manager) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range s.replacements {
		m.releaseLocked(e)
	}
	m.substPool.Put(s.replacements)
	s.replacements = nil
}

// Substitute returns f[σ], replacing each variable in σ's domain with
// its mapped function (spec.md §4.4.6). f is borrowed.
func (m *Manager) Substitute(f Edge, sigma *Substitution) (Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applySubst(f, sigma)
}

func (m *Manager) applySubst(f Edge, sigma *Substitution) (Edge, error) {
	if f.n.term || int(f.n.level) >= len(sigma.replacements) {
		return m.cloneLocked(f), nil
	}

	key := keySalt(opSubstitute, f, sigma.id)
	if m.cache != nil {
		if hit, ok := m.cache.Get(key); ok {
			return m.cloneLocked(hit), nil
		}
	}

	t, err := m.applySubst(f.Then(), sigma)
	if err != nil {
		return Edge{}, err
	}
	e, err := m.applySubst(f.Else(), sigma)
	if err != nil {
		m.releaseLocked(t)
		return Edge{}, err
	}

	replacement := sigma.replacements[f.n.level]
	res, err := m.applyIte(replacement, t, e)
	m.releaseLocked(t)
	m.releaseLocked(e)
	if err != nil {
		return Edge{}, err
	}
	if m.cache != nil {
		m.cache.Add(key, res)
	}
	return res, nil
}
