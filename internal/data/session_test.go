package data

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memGateway records every save
type memGateway struct {
	items   []string
	saves   [][]string
	failing error
}

func (m *memGateway) Load() []string { return append([]string{}, m.items...) }

func (m *memGateway) Save(items []string) error {
	if m.failing != nil {
		return m.failing
	}
	m.items = append([]string{}, items...)
	m.saves = append(m.saves, m.items)
	return nil
}

func (m *memGateway) Location() string { return "/mem" }

func TestSessionWriteThrough(t *testing.T) {
	dir := t.TempDir()

	s := OpenSession(NewJSONFile(dir))
	assert.Equal(t, 0, s.Len())

	for i, text := range []string{"first", "second", "hello"} {
		tmpl, err := s.Append(text)
		require.NoError(t, err)
		assert.Equal(t, ID(i), tmpl.ID)
	}

	fresh := OpenSession(NewJSONFile(dir))
	require.Equal(t, 3, fresh.Len())
	assert.Equal(t, "hello", fresh.Templates()[2].Text)
	assert.Equal(t, dir, fresh.Location())
}

func TestSessionIdentityOverPosition(t *testing.T) {
	g := &memGateway{items: []string{"A", "B", "C"}}
	s := OpenSession(g)

	require.NoError(t, s.Reorder([]ID{2, 0, 1}))
	require.NoError(t, s.Remove(1))

	assert.Equal(t, []string{"C", "A"}, g.items)
	assert.Len(t, g.saves, 2)
}

func TestSessionUpdateTextWaitsForCommit(t *testing.T) {
	g := &memGateway{items: []string{"A", "B"}}
	s := OpenSession(g)

	assert.True(t, s.UpdateText(1, "B"))
	assert.True(t, s.UpdateText(1, "Be"))
	assert.True(t, s.UpdateText(1, "Bee"))
	assert.Empty(t, g.saves)

	require.NoError(t, s.Commit())
	assert.Equal(t, [][]string{{"A", "Bee"}}, g.saves)
}

func TestSessionNoOps(t *testing.T) {
	g := &memGateway{items: []string{"A", "B"}}
	s := OpenSession(g)
	before := s.Templates()

	assert.NoError(t, s.Remove(999))
	assert.False(t, s.UpdateText(999, "x"))
	assert.NoError(t, s.Move(999, 0))
	assert.NoError(t, s.Move(0, 0))
	assert.NoError(t, s.Reorder([]ID{0, 1}))

	assert.Equal(t, before, s.Templates())
	assert.Empty(t, g.saves)
}

func TestSessionReorder(t *testing.T) {
	g := &memGateway{items: []string{"A", "B", "C"}}
	s := OpenSession(g)

	err := s.Reorder([]ID{0, 1})
	require.ErrorIs(t, err, ErrNotPermutation)
	assert.Empty(t, g.saves)

	require.NoError(t, s.Reorder([]ID{2, 1, 0}))
	assert.Equal(t, [][]string{{"C", "B", "A"}}, g.saves)

	require.NoError(t, s.Move(0, 0))
	assert.Equal(t, []string{"A", "C", "B"}, g.items)
	assert.Len(t, g.saves, 2)
}

func TestSessionSaveFailure(t *testing.T) {
	diskFull := errors.New("no space left on device")
	g := &memGateway{items: []string{"A"}, failing: diskFull}
	s := OpenSession(g)

	tmpl, err := s.Append("B")
	require.ErrorIs(t, err, diskFull)
	assert.Equal(t, ID(1), tmpl.ID)
	assert.ErrorIs(t, s.LastError(), diskFull)

	// in-memory state is kept
	assert.Equal(t, 2, s.Len())
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "B", got.Text)

	g.failing = nil
	require.NoError(t, s.Remove(0))
	assert.NoError(t, s.LastError())
	assert.Equal(t, []string{"B"}, g.items)
}

func TestSessionUnavailable(t *testing.T) {
	s := OpenSession(NewJSONFile(""))
	assert.Empty(t, s.Location())

	_, err := s.Append("kept in memory")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Index(0))
}

func TestSessionNormalization(t *testing.T) {
	decomposed := "e\u0301"
	composed := "\u00e9"

	t.Run("off by default", func(t *testing.T) {
		g := &memGateway{}
		s := OpenSession(g)
		_, err := s.Append(decomposed)
		require.NoError(t, err)
		assert.Equal(t, []string{decomposed}, g.items)
	})

	t.Run("stores NFC", func(t *testing.T) {
		g := &memGateway{}
		s := OpenSession(g, WithNormalization(true))
		tmpl, err := s.Append(decomposed)
		require.NoError(t, err)
		assert.Equal(t, composed, tmpl.Text)

		s.UpdateText(tmpl.ID, "caf"+decomposed)
		require.NoError(t, s.Commit())
		assert.Equal(t, []string{"caf" + composed}, g.items)
	})
}

func TestSessionSQLStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), AppDirName)
	g := NewSQLStore(dir)
	t.Cleanup(func() { g.Close() })

	s := OpenSession(g)
	_, err := s.Append("one")
	require.NoError(t, err)
	_, err = s.Append("two")
	require.NoError(t, err)
	require.NoError(t, s.Move(1, 0))

	other := NewSQLStore(dir)
	t.Cleanup(func() { other.Close() })
	assert.Equal(t, []string{"two", "one"}, other.Load())
}
