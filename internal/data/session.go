package data

import "golang.org/x/text/unicode/norm"

/*

A Session is the Store the UI works with, wired to a Gateway.

Every mutating call writes the whole list through to the Gateway before returning, except
UpdateText: text edits arrive while the user is still typing, so they are only written by
an explicit Commit. A failed write never rolls back the in-memory change; the Store stays
authoritative and the error is handed back (and kept in LastError) for the UI to show.

A Session is not safe for concurrent use. The UI calls it from its event loop only.

*/

type Session struct {
	store     *Store
	gateway   Gateway
	normalize bool
	lastErr   error
}

type SessionOption func(*Session)

// WithNormalization stores all template text in Unicode NFC form
func WithNormalization(on bool) SessionOption {
	return func(s *Session) { s.normalize = on }
}

// OpenSession loads whatever g has and starts a Session on it
func OpenSession(g Gateway, opts ...SessionOption) *Session {
	s := &Session{gateway: g}
	for _, opt := range opts {
		opt(s)
	}
	s.store = NewStore(g.Load())
	return s
}

func (s *Session) Templates() []Template      { return s.store.Templates() }
func (s *Session) Get(id ID) (Template, bool) { return s.store.Get(id) }
func (s *Session) Index(id ID) int            { return s.store.Index(id) }
func (s *Session) Len() int                   { return s.store.Len() }

// Location is the data directory, or "" when templates cannot be saved
func (s *Session) Location() string { return s.gateway.Location() }

// LastError is the error from the most recent save, nil once a save succeeds
func (s *Session) LastError() error { return s.lastErr }

// Append adds text as a new Template at the end and saves
func (s *Session) Append(text string) (Template, error) {
	t := s.store.Append(s.clean(text))
	return t, s.Commit()
}

// UpdateText changes the text of a Template in memory only. Call Commit when the edit is done.
func (s *Session) UpdateText(id ID, text string) bool {
	return s.store.UpdateText(id, s.clean(text))
}

// Remove deletes the Template with the given ID and saves. Unknown IDs are ignored.
func (s *Session) Remove(id ID) error {
	if !s.store.Remove(id) {
		return nil
	}
	return s.Commit()
}

// Reorder applies a new order (a permutation of the current IDs) and saves once
func (s *Session) Reorder(order []ID) error {
	before := s.store.Templates()
	if err := s.store.Reorder(order); err != nil {
		return err
	}
	if sameOrder(before, order) {
		return nil
	}
	return s.Commit()
}

// Move places one Template at a new index and saves. Unknown IDs are ignored.
func (s *Session) Move(id ID, to int) error {
	if !s.store.Move(id, to) {
		return nil
	}
	return s.Commit()
}

// Commit writes the current list to the Gateway
func (s *Session) Commit() error {
	s.lastErr = s.gateway.Save(s.store.Texts())
	return s.lastErr
}

func (s *Session) clean(text string) string {
	if s.normalize {
		return norm.NFC.String(text)
	}
	return text
}

func sameOrder(templates []Template, order []ID) bool {
	for i, t := range templates {
		if order[i] != t.ID {
			return false
		}
	}
	return true
}
