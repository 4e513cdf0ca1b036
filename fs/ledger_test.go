package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/adconv"
	"github.com/fwojciec/adconv/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Text Ledger
// Converted page names are appended one per line and survive reopening.

func TestLedger_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ adconv.Ledger = &fs.Ledger{}
}

func TestLedger(t *testing.T) {
	t.Parallel()

	t.Run("missing file is an empty ledger", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "parsed.log")

		l, err := fs.OpenLedger(path)

		require.NoError(t, err)
		assert.Equal(t, 0, l.Len())
		assert.False(t, l.Contains("1_a.html"))
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err), "ledger file should not be created until the first record")
	})

	t.Run("loads existing entries ignoring blank lines", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "parsed.log")
		require.NoError(t, os.WriteFile(path, []byte("1_a.html\n\n  2_b.html  \n"), 0644))

		l, err := fs.OpenLedger(path)

		require.NoError(t, err)
		assert.Equal(t, 2, l.Len())
		assert.True(t, l.Contains("1_a.html"))
		assert.True(t, l.Contains("2_b.html"))
	})

	t.Run("appends one name per line", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "backend", "parsed.log")
		l, err := fs.OpenLedger(path)
		require.NoError(t, err)

		require.NoError(t, l.Record(context.Background(), "1_a.html"))
		require.NoError(t, l.Record(context.Background(), "2_b.html"))
		require.NoError(t, l.Record(context.Background(), "1_a.html"))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "1_a.html\n2_b.html\n", string(content))
		assert.True(t, l.Contains("2_b.html"))
	})

	t.Run("entries survive reopening", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "parsed.log")
		l, err := fs.OpenLedger(path)
		require.NoError(t, err)
		require.NoError(t, l.Record(context.Background(), "7_x.html"))

		reopened, err := fs.OpenLedger(path)

		require.NoError(t, err)
		assert.True(t, reopened.Contains("7_x.html"))
	})

	t.Run("append failure is a persist error", func(t *testing.T) {
		t.Parallel()

		// The ledger path is a directory, so it cannot be opened for append.
		path := t.TempDir()
		l, err := fs.OpenLedger(filepath.Join(path, "missing.log"))
		require.NoError(t, err)
		require.NoError(t, os.Mkdir(filepath.Join(path, "missing.log"), 0755))

		err = l.Record(context.Background(), "1_a.html")

		require.Error(t, err)
		assert.Equal(t, adconv.EPERSIST, adconv.ErrorCode(err))
		assert.False(t, l.Contains("1_a.html"))
	})
}
