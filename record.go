package adconv

import (
	"context"
	"encoding/json"
)

// Record is the structured form of one listing page.
type Record struct {
	Key      string `json:"id"`
	Filename string `json:"filename"`

	// Core fields. Nil when the page lacks the markup.
	URL         *string      `json:"url"`
	Title       *string      `json:"title"`
	Price       *string      `json:"price"`
	Description *string      `json:"description"`
	Location    *GeoLocation `json:"location"`

	// Images holds large image URLs in document order.
	Images []string `json:"images"`

	Agency *Agency `json:"agency"`

	Listing ListingDates `json:"listing"`

	// Attributes holds label/value pairs discovered on the page.
	Attributes Attributes `json:"attributes"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Key == "" {
		return Errorf(EINVALID, "record key required")
	}
	if r.Filename == "" {
		return Errorf(EINVALID, "record filename required")
	}
	return nil
}

// MarshalJSON encodes the record with images always present as an array.
func (r Record) MarshalJSON() ([]byte, error) {
	type record Record
	if r.Images == nil {
		r.Images = []string{}
	}
	return marshalNoEscape(record(r))
}

// GeoLocation is the map pin embedded in the page scripts.
type GeoLocation struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Approximate bool    `json:"approximate"`
}

// Agency holds the advertiser block of the page. Each field is optional.
type Agency struct {
	Name           *string `json:"name"`
	URL            *string `json:"url"`
	Email          *string `json:"email"`
	Address        *string `json:"address"`
	PhoneAvailable bool    `json:"phone_available"`
}

// ListingDates holds the listing lifecycle details shown on the page.
type ListingDates struct {
	Published *string `json:"published"`
	ExpiresIn *string `json:"expires_in"`
	Views     *string `json:"views"`
}

// Extractor turns a saved page into a record.
type Extractor interface {
	// Extract builds a record from doc. Fields whose markup is missing are
	// left empty. Returns an *ExtractionFailure with code EEXTRACT if the
	// page cannot be parsed at all.
	Extract(doc *SourceDocument) (*Record, error)
}

// RecordWriter persists records.
type RecordWriter interface {
	// CreateRecord durably writes rec as a complete unit.
	// Returns EPERSIST if the write fails.
	CreateRecord(ctx context.Context, rec *Record) error
}

// Ledger is the durable set of page names already converted.
type Ledger interface {
	// Contains reports whether filename was converted by an earlier run.
	Contains(filename string) bool

	// Record appends filename to the ledger.
	// Returns EPERSIST if the append fails.
	Record(ctx context.Context, filename string) error
}

// DecodeRecord parses a record previously written as JSON.
func DecodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
