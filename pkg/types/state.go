package types

import "encoding/json"

// State is the root aggregate: an ordered list of categories. Slice order is
// display order.
//
// State keeps an index from category ID to position so lookups by ID do not
// scan the list and a category ID can be present at most once. Values built
// with NewState, or derived from one through the With and Update helpers,
// carry the index; a State literal falls back to a linear scan.
type State struct {
	Categories []Category `json:"categories"`

	index map[string]int
}

// NewState returns a State holding the given categories in order. When two
// categories share an ID only the first is kept.
func NewState(categories ...Category) State {
	s := State{Categories: make([]Category, 0, len(categories))}
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		s.Categories = append(s.Categories, c)
	}
	s.index = buildIndex(s.Categories)
	return s
}

func buildIndex(categories []Category) map[string]int {
	if len(categories) == 0 {
		return nil
	}
	idx := make(map[string]int, len(categories))
	for i, c := range categories {
		idx[c.ID] = i
	}
	return idx
}

// Len returns the number of categories.
func (s State) Len() int {
	return len(s.Categories)
}

// TaskCount returns the number of tasks across all categories.
func (s State) TaskCount() int {
	n := 0
	for _, c := range s.Categories {
		n += len(c.Tasks)
	}
	return n
}

// Category returns the category with the given ID.
func (s State) Category(id string) (Category, bool) {
	if i := s.pos(id); i >= 0 {
		return s.Categories[i], true
	}
	return Category{}, false
}

// CategoryAt returns the category at the zero-based position pos.
func (s State) CategoryAt(pos int) (Category, bool) {
	if pos < 0 || pos >= len(s.Categories) {
		return Category{}, false
	}
	return s.Categories[pos], true
}

// WithCategory returns a new State with c appended after the existing
// categories. If a category with c.ID already exists, s is returned
// unchanged and the second result is false.
func (s State) WithCategory(c Category) (State, bool) {
	if s.pos(c.ID) >= 0 {
		return s, false
	}
	categories := make([]Category, len(s.Categories), len(s.Categories)+1)
	copy(categories, s.Categories)
	categories = append(categories, c)

	var index map[string]int
	if s.index == nil && len(s.Categories) > 0 {
		index = buildIndex(categories)
	} else {
		index = make(map[string]int, len(categories))
		for id, i := range s.index {
			index[id] = i
		}
		index[c.ID] = len(categories) - 1
	}
	return State{Categories: categories, index: index}, true
}

// UpdateCategory applies fn to the category with the given ID and returns a
// new State holding the result at the same position. Other categories are
// shared with s. If no category matches, or fn reports no change, s is
// returned unchanged and the second result is false.
//
// fn must not change the category ID.
func (s State) UpdateCategory(id string, fn func(Category) (Category, bool)) (State, bool) {
	i := s.pos(id)
	if i < 0 {
		return s, false
	}
	updated, changed := fn(s.Categories[i])
	if !changed {
		return s, false
	}
	categories := make([]Category, len(s.Categories))
	copy(categories, s.Categories)
	categories[i] = updated

	index := s.index
	if index == nil {
		index = buildIndex(categories)
	}
	return State{Categories: categories, index: index}, true
}

func (s State) pos(id string) int {
	if s.index != nil {
		if i, ok := s.index[id]; ok {
			return i
		}
		return -1
	}
	for i, c := range s.Categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// UnmarshalJSON decodes a State and rebuilds its category index.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw struct {
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewState(raw.Categories...)
	return nil
}
