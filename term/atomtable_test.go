package term

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomTableSafeModeRejectsUnknown(t *testing.T) {
	tbl := NewAtomTable("ok", "error")

	resolved, err := tbl.Resolve("ok", true)
	require.NoError(t, err)
	assert.Equal(t, Atom("ok"), resolved)

	_, err = tbl.Resolve("unknown_atom", true)
	require.Error(t, err)

	var uae *UnknownAtomError
	require.ErrorAs(t, err, &uae)
	assert.Equal(t, Atom("unknown_atom"), uae.Name)
}

func TestAtomTableUnsafeModeInterns(t *testing.T) {
	tbl := NewAtomTable()
	assert.False(t, tbl.Known("fresh"))

	resolved, err := tbl.Resolve("fresh", false)
	require.NoError(t, err)
	assert.Equal(t, Atom("fresh"), resolved)
	assert.True(t, tbl.Known("fresh"))
	assert.Equal(t, uint64(1), tbl.Interned())

	// Interning the same name again must not double-count.
	_, err = tbl.Resolve("fresh", false)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tbl.Interned())
}

func TestAtomTableConcurrentReaders(t *testing.T) {
	tbl := NewAtomTable("a", "b", "c")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, tbl.Known("a"))
			_, _ = tbl.Resolve("b", true)
		}()
	}
	wg.Wait()
}
