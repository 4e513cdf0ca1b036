package adconv_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/adconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rec     adconv.Record
		wantErr bool
	}{
		{name: "complete", rec: adconv.Record{Key: "1", Filename: "1_a.html"}},
		{name: "missing key", rec: adconv.Record{Filename: "1_a.html"}, wantErr: true},
		{name: "missing filename", rec: adconv.Record{Key: "1"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.rec.Validate()

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, adconv.EINVALID, adconv.ErrorCode(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRecord_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("empty record keeps every key", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(adconv.Record{Key: "7", Filename: "7.html"})

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"id": "7",
			"filename": "7.html",
			"url": null,
			"title": null,
			"price": null,
			"description": null,
			"location": null,
			"images": [],
			"agency": null,
			"listing": {"published": null, "expires_in": null, "views": null},
			"attributes": {}
		}`, string(data))
	})

	t.Run("decodes what it encodes", func(t *testing.T) {
		t.Parallel()

		title := "Stan, 55 m2"
		rec := adconv.Record{
			Key:      "4512345",
			Filename: "4512345_stan.html",
			Title:    &title,
			Location: &adconv.GeoLocation{Lat: 45.815, Lng: 15.9819, Approximate: true},
			Images:   []string{"https://img.example.com/1.jpg"},
		}
		rec.Attributes.Set("Grijanje", adconv.ListValue([]string{"Plin"}))

		data, err := json.Marshal(rec)
		require.NoError(t, err)
		got, err := adconv.DecodeRecord(data)

		require.NoError(t, err)
		assert.Equal(t, rec.Key, got.Key)
		assert.Equal(t, title, *got.Title)
		assert.Equal(t, rec.Location, got.Location)
		assert.Equal(t, rec.Images, got.Images)
		v, ok := got.Attributes.Get("Grijanje")
		require.True(t, ok)
		assert.Equal(t, []string{"Plin"}, v.Items)
	})
}

func TestDecodeRecord_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := adconv.DecodeRecord([]byte(`{"id":`))

	assert.Error(t, err)
}
