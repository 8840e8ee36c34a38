package canvas

import "sort"

// Selection maintains the set of currently selected object ids. It is pure
// session state and never part of the persisted floor plan.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Select replaces the selection with ids, or unions them into the existing
// set when add is true. Duplicate ids collapse; the selection is a set.
func (s *Selection) Select(ids []string, add bool) {
	if !add {
		s.ids = make(map[string]struct{}, len(ids))
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		s.ids[id] = struct{}{}
	}
}

// DeselectAll clears the selection.
func (s *Selection) DeselectAll() {
	s.ids = make(map[string]struct{})
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected objects.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids sorted for deterministic iteration.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Restore replaces the selection from a history snapshot.
func (s *Selection) Restore(ids []string) {
	s.Select(ids, false)
}
