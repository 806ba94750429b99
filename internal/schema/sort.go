package schema

import "log"

// SortByDependency orders tables so every foreign key target comes before
// the tables referencing it, which makes an emitted CREATE script runnable
// top to bottom (and a DROP script runnable bottom to top). References to
// tables outside the given set are ignored. Circular references are broken
// by forcing through the blocked table with the fewest unresolved
// references, table name as the tie breaker, so the result is
// deterministic.
func SortByDependency(tables []*Table) []*Table {
	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		known[t.Name] = true
	}

	deps := make(map[string][]string, len(tables))
	for _, t := range tables {
		for _, ref := range t.ForeignKeys() {
			if ref.Table != t.Name && known[ref.Table] {
				deps[t.Name] = append(deps[t.Name], ref.Table)
			}
		}
	}

	sorted := make([]*Table, 0, len(tables))
	done := make(map[string]bool, len(tables))

	for len(sorted) < len(tables) {
		progressed := false
		for _, t := range tables {
			if done[t.Name] {
				continue
			}
			ready := true
			for _, d := range deps[t.Name] {
				if !done[d] {
					ready = false
					break
				}
			}
			if ready {
				sorted = append(sorted, t)
				done[t.Name] = true
				progressed = true
			}
		}
		if progressed {
			continue
		}

		var pick *Table
		best := -1
		for _, t := range tables {
			if done[t.Name] {
				continue
			}
			unresolved := 0
			for _, d := range deps[t.Name] {
				if !done[d] {
					unresolved++
				}
			}
			if pick == nil || unresolved < best || (unresolved == best && t.Name < pick.Name) {
				pick, best = t, unresolved
			}
		}
		log.Printf("[WARN] circular foreign keys: forcing %s (unresolved references: %d)", pick.Name, best)
		sorted = append(sorted, pick)
		done[pick.Name] = true
	}
	return sorted
}
