package data

import "errors"

/*

A Gateway is where a Session keeps its templates between runs.

Load never fails: an unreadable, missing, or malformed backing store loads as an empty list,
because losing the save file must not stop anyone from using the program. Save replaces
whatever was stored before with items, in order.

*/

type Gateway interface {
	Load() []string

	Save(items []string) error

	// Location is the directory data is saved to, for display. Empty if there is none.
	Location() string
}

// ErrUnavailable is returned by Save when no data directory could be determined
var ErrUnavailable = errors.New("no data directory available, changes are kept in memory only")
