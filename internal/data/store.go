package data

import (
	"errors"
	"fmt"
)

/*

A Store is the in-memory, ordered list of Templates.

Every Template carries an ID handed out when it enters the Store. IDs follow the Template
through reorders and are never reused within a Store's lifetime, so callers holding an ID
can act on "that template" no matter where it has moved to. IDs are not persisted: Load
renumbers from array position.

*/

// ID identifies a Template within one session
type ID uint

type Template struct {
	ID   ID
	Text string
}

var ErrNotPermutation = errors.New("new order is not a permutation of the current templates")

type Store struct {
	templates []Template
	nextID    ID
}

// NewStore creates a Store holding items, in order
func NewStore(items []string) *Store {
	s := &Store{}
	s.Load(items)
	return s
}

// Load replaces the contents of the Store. Items get IDs 0..len-1 in order.
func (s *Store) Load(items []string) {
	s.templates = make([]Template, len(items))
	for i, text := range items {
		s.templates[i] = Template{ID: ID(i), Text: text}
	}
	s.nextID = ID(len(items))
}

// Append adds a Template with a fresh ID to the end of the list
func (s *Store) Append(text string) Template {
	t := Template{ID: s.nextID, Text: text}
	s.templates = append(s.templates, t)
	s.nextID++
	return t
}

// UpdateText replaces the text of the Template with the given ID. Its position does not change.
// Returns false if there is no such Template.
func (s *Store) UpdateText(id ID, text string) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.templates[i].Text = text
	return true
}

// Remove deletes the Template with the given ID, keeping the order of the others.
// Returns false if there is no such Template.
func (s *Store) Remove(id ID) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.templates = append(s.templates[:i], s.templates[i+1:]...)
	return true
}

// Reorder rearranges the Store to match order, which must list every current ID exactly once
func (s *Store) Reorder(order []ID) error {
	if len(order) != len(s.templates) {
		return fmt.Errorf("%w: got %d ids, have %d templates", ErrNotPermutation, len(order), len(s.templates))
	}
	byID := make(map[ID]Template, len(s.templates))
	for _, t := range s.templates {
		byID[t.ID] = t
	}
	reordered := make([]Template, 0, len(order))
	for _, id := range order {
		t, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: unknown or repeated id %d", ErrNotPermutation, id)
		}
		delete(byID, id)
		reordered = append(reordered, t)
	}
	s.templates = reordered
	return nil
}

// Move places the Template with the given ID at index to (clamped to the list bounds).
// Returns false if there is no such Template or it is already there.
func (s *Store) Move(id ID, to int) bool {
	from := s.Index(id)
	if from < 0 {
		return false
	}
	to = max(0, min(to, len(s.templates)-1))
	if from == to {
		return false
	}

	order := make([]ID, 0, len(s.templates))
	for _, t := range s.templates {
		if t.ID != id {
			order = append(order, t.ID)
		}
	}
	order = append(order[:to], append([]ID{id}, order[to:]...)...)

	// order is built from the current IDs, so this cannot fail
	_ = s.Reorder(order)
	return true
}

// Index returns the current position of the Template with the given ID, or -1
func (s *Store) Index(id ID) int {
	for i, t := range s.templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Get(id ID) (Template, bool) {
	i := s.Index(id)
	if i < 0 {
		return Template{}, false
	}
	return s.templates[i], true
}

func (s *Store) Len() int { return len(s.templates) }

// Templates returns a copy of the list, in display order
func (s *Store) Templates() []Template {
	out := make([]Template, len(s.templates))
	copy(out, s.templates)
	return out
}

// Texts returns the template texts in display order, which is what gets persisted
func (s *Store) Texts() []string {
	out := make([]string, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.Text
	}
	return out
}
