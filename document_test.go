package adconv_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/adconv"
	"github.com/stretchr/testify/assert"
)

func TestKeyFromFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{name: "prefix before underscore", filename: "4512345_stan-zagreb.html", want: "4512345"},
		{name: "first underscore wins", filename: "42_a_b_c.html", want: "42"},
		{name: "no underscore", filename: "4512345.html", want: "4512345"},
		{name: "strips directory", filename: "backend/website/77_kuca.html", want: "77"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, adconv.KeyFromFilename(tt.filename))
		})
	}
}

func TestRecordName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "4512345_stan.json", adconv.RecordName("4512345_stan.html"))
}

func TestIsDocumentName(t *testing.T) {
	t.Parallel()

	assert.True(t, adconv.IsDocumentName("1_a.html"))
	assert.False(t, adconv.IsDocumentName("1_a.htm"))
	assert.False(t, adconv.IsDocumentName("notes.txt"))
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	t.Run("flattens line breaks", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a b c d", adconv.Snippet("a\nb\r\nc\rd", 100))
	})

	t.Run("truncates by characters not bytes", func(t *testing.T) {
		t.Parallel()

		got := adconv.Snippet(strings.Repeat("č", 1500), adconv.SnippetLength)

		assert.Equal(t, adconv.SnippetLength, len([]rune(got)))
	})
}

func TestSourceDocument_Checksum(t *testing.T) {
	t.Parallel()

	a := adconv.NewSourceDocument("1_a.html", "<html></html>")
	b := adconv.NewSourceDocument("2_b.html", "<html></html>")
	c := adconv.NewSourceDocument("1_a.html", "<html><body></body></html>")

	assert.Len(t, a.Checksum(), 16)
	assert.Equal(t, a.Checksum(), b.Checksum())
	assert.NotEqual(t, a.Checksum(), c.Checksum())
}
