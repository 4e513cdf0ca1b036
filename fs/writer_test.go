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

func ptr(s string) *string { return &s }

func TestWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ adconv.RecordWriter = &fs.Writer{}
}

func TestWriter_CreateRecord(t *testing.T) {
	t.Parallel()

	t.Run("writes indented JSON next to the page name", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)

		rec := &adconv.Record{
			Key:      "1",
			Filename: "1_stan.html",
			Title:    ptr("Stan & <vrt>"),
			Location: &adconv.GeoLocation{Lat: 45.5, Lng: 15.25},
		}
		rec.Attributes.Set("Površina", adconv.TextValue("55 m²"))

		err := w.CreateRecord(context.Background(), rec)

		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(baseDir, "1_stan.json"))
		require.NoError(t, err)

		want := `{
  "id": "1",
  "filename": "1_stan.html",
  "url": null,
  "title": "Stan & <vrt>",
  "price": null,
  "description": null,
  "location": {
    "lat": 45.5,
    "lng": 15.25,
    "approximate": false
  },
  "images": [],
  "agency": null,
  "listing": {
    "published": null,
    "expires_in": null,
    "views": null
  },
  "attributes": {
    "Površina": "55 m²"
  }
}
`
		assert.Equal(t, want, string(content))
	})

	t.Run("creates the output directory", func(t *testing.T) {
		t.Parallel()

		baseDir := filepath.Join(t.TempDir(), "backend", "json")
		w := fs.NewWriter(baseDir)

		err := w.CreateRecord(context.Background(), &adconv.Record{Key: "2", Filename: "2.html"})

		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(baseDir, "2.json"))
		require.NoError(t, err)
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)

		require.NoError(t, w.CreateRecord(context.Background(), &adconv.Record{Key: "3", Filename: "3_a.html"}))
		require.NoError(t, w.CreateRecord(context.Background(), &adconv.Record{Key: "3", Filename: "3_a.html"}))

		entries, err := os.ReadDir(baseDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "3_a.json", entries[0].Name())
	})

	t.Run("validates record", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		err := w.CreateRecord(context.Background(), &adconv.Record{Filename: "x.html"})

		require.Error(t, err)
		assert.Equal(t, adconv.EINVALID, adconv.ErrorCode(err))
	})

	t.Run("reports persist error when the directory cannot be created", func(t *testing.T) {
		t.Parallel()

		// A regular file where the output directory should be.
		blocker := filepath.Join(t.TempDir(), "json")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
		w := fs.NewWriter(blocker)

		err := w.CreateRecord(context.Background(), &adconv.Record{Key: "4", Filename: "4.html"})

		require.Error(t, err)
		assert.Equal(t, adconv.EPERSIST, adconv.ErrorCode(err))
	})
}

func TestEncodeRecord_RoundTrip(t *testing.T) {
	t.Parallel()

	rec := &adconv.Record{
		Key:      "5",
		Filename: "5_kuca.html",
		Title:    ptr("Kuća, 120 m2"),
		Images:   []string{"https://img.example.com/a.jpg", "https://img.example.com/a.jpg"},
		Agency:   &adconv.Agency{Name: ptr("Dom"), PhoneAvailable: true},
	}
	rec.Attributes.Set("Grijanje", adconv.ListValue([]string{"Plin", "Kamin"}))
	rec.Attributes.Set("Lokacija", adconv.TextValue("Split"))

	first, err := fs.EncodeRecord(rec)
	require.NoError(t, err)
	decoded, err := adconv.DecodeRecord(first)
	require.NoError(t, err)
	second, err := fs.EncodeRecord(decoded)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, []string{"Grijanje", "Lokacija"}, decoded.Attributes.Names())
}

func TestEncodeRecord_LineSeparatorsAreLiteral(t *testing.T) {
	t.Parallel()

	rec := &adconv.Record{
		Key:         "6",
		Filename:    "6_stan.html",
		Title:       ptr("a\u2028b\u2029c"),
		Description: ptr(`path C:\u2028dir`),
	}

	data, err := fs.EncodeRecord(rec)

	require.NoError(t, err)
	assert.Contains(t, string(data), "\"title\": \"a\u2028b\u2029c\"")
	assert.Contains(t, string(data), `"description": "path C:\\u2028dir"`)

	decoded, err := adconv.DecodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, "a\u2028b\u2029c", *decoded.Title)
	assert.Equal(t, `path C:\u2028dir`, *decoded.Description)
}
