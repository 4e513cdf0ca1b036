// Package goquery implements listing extraction with goquery selectors.
package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/adconv"
	"golang.org/x/net/html"
)

// Ensure Extractor implements adconv.Extractor at compile time.
var _ adconv.Extractor = (*Extractor)(nil)

// Selectors for the classified-detail page layout.
const (
	selCanonical = `link[rel="canonical"]`
	selTitle     = "title"
	selPrice     = "dl.ClassifiedDetailSummary-priceRow dd.ClassifiedDetailSummary-priceDomestic"

	selBasicList = "div.ClassifiedDetailBasicDetails dl.ClassifiedDetailBasicDetails-list"
	selBasicText = "span.ClassifiedDetailBasicDetails-textWrapContainer"

	selDescription = "div.ClassifiedDetailDescription-text"

	selGroup      = "section.ClassifiedDetailPropertyGroups-group"
	selGroupTitle = "h3.ClassifiedDetailPropertyGroups-groupTitle"
	selGroupItem  = "li.ClassifiedDetailPropertyGroups-groupListItem"

	selOwner        = "div.ClassifiedDetailOwnerDetails"
	selOwnerName    = "h2.ClassifiedDetailOwnerDetails-title a"
	selOwnerWeb     = `a[href^="http"]`
	selOwnerEmail   = `a[href^="mailto"]`
	selOwnerAddress = `li.ClassifiedDetailOwnerDetails-contactEntry i[aria-label="Adresa"]`
	selCallSeller   = ".UserPhoneNumber-callSeller"

	selSystemList = "dl.ClassifiedDetailSystemDetails-list"

	selMediaImage   = `li[data-media-type="image"]`
	selGalleryImage = "img.pswp__img"
)

const (
	addressPrefix    = "Adresa:"
	largeImageAttr   = "data-large-image-url"
	largeImageMarker = "image-xlsize"
)

// Labels of the system details list that are kept.
const (
	labelPublished = "Oglas objavljen"
	labelExpiresIn = "Do isteka još"
	labelViews     = "Oglas prikazan"
)

// geoPattern matches the map pin object embedded in page scripts, with
// quoted or bare keys.
var geoPattern = regexp.MustCompile(
	`"?\blat"?\s*:\s*"?(-?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?)"?\s*,\s*` +
		`"?lng"?\s*:\s*"?(-?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?)"?\s*,\s*` +
		`"?approximate"?\s*:\s*(true|false)`)

// Extractor extracts listing records from classified-detail pages.
type Extractor struct {
	mode adconv.ImageMode
}

// NewExtractor creates a new Extractor reading images with the given mode.
func NewExtractor(mode adconv.ImageMode) *Extractor {
	return &Extractor{mode: mode}
}

// Mode returns the image mode of the extractor.
func (e *Extractor) Mode() adconv.ImageMode {
	return e.mode
}

// Extract builds a record from a saved page. Every field rule runs on its
// own and a missing selector only leaves its field empty.
func (e *Extractor) Extract(src *adconv.SourceDocument) (*adconv.Record, error) {
	doc, err := parse(src.HTML)
	if err != nil {
		return nil, adconv.NewExtractionFailure(src, err)
	}

	rec := &adconv.Record{
		Key:         src.Key,
		Filename:    src.Filename,
		URL:         canonicalURL(doc),
		Title:       optional(collapse(doc.Find(selTitle).First().Text())),
		Price:       optional(collapse(doc.Find(selPrice).First().Text())),
		Description: description(doc),
		Location:    geoLocation(doc),
		Agency:      agency(doc),
		Images:      images(doc, e.mode),
		Listing:     listingDates(doc),
	}
	basicDetails(doc, &rec.Attributes)
	propertyGroups(doc, &rec.Attributes)

	return rec, nil
}

// parse returns a document or an EEXTRACT error when the input holds no
// usable markup.
func parse(raw string) (*goquery.Document, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, adconv.Errorf(adconv.EEXTRACT, "empty document")
	}
	if !utf8.ValidString(raw) {
		return nil, adconv.Errorf(adconv.EEXTRACT, "document is not valid UTF-8")
	}

	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, adconv.Errorf(adconv.EEXTRACT, "failed to parse HTML: %v", err)
	}

	doc := goquery.NewDocumentFromNode(root)
	if doc.Find("head *, body *").Length() == 0 {
		return nil, adconv.Errorf(adconv.EEXTRACT, "document has no markup")
	}
	return doc, nil
}

func canonicalURL(doc *goquery.Document) *string {
	var href string
	doc.Find(selCanonical).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href = strings.TrimSpace(sel.AttrOr("href", ""))
		return href == ""
	})
	return optional(href)
}

func description(doc *goquery.Document) *string {
	return optional(joinedText(doc.Find(selDescription).First()))
}

// geoLocation returns the first map pin found in document order.
func geoLocation(doc *goquery.Document) *adconv.GeoLocation {
	var loc *adconv.GeoLocation
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		m := geoPattern.FindStringSubmatch(sel.Text())
		if m == nil {
			return true
		}
		// Only the first pin counts, even when its numbers are out of range.
		lat, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return false
		}
		lng, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return false
		}
		loc = &adconv.GeoLocation{Lat: lat, Lng: lng, Approximate: m[3] == "true"}
		return false
	})
	return loc
}

// basicDetails stores the basic details list. Labels and values are
// paired by position; when the counts differ the extra trailing elements
// are dropped.
func basicDetails(doc *goquery.Document, attrs *adconv.Attributes) {
	list := doc.Find(selBasicList).First()
	zip(list.Find("dt"), list.Find("dd"), func(dt, dd *goquery.Selection) {
		label := collapse(dt.Find(selBasicText).First().Text())
		value := joinedText(dd.Find(selBasicText).First())
		if label == "" || value == "" {
			return
		}
		attrs.Set(label, adconv.TextValue(value))
	})
}

// propertyGroups stores each titled feature group as a list. Groups
// without items are left out.
func propertyGroups(doc *goquery.Document, attrs *adconv.Attributes) {
	doc.Find(selGroup).Each(func(_ int, section *goquery.Selection) {
		title := section.Find(selGroupTitle).First()
		if title.Length() == 0 {
			return
		}
		name := collapse(title.Text())
		if name == "" {
			return
		}

		var items []string
		section.Find(selGroupItem).Each(func(_ int, li *goquery.Selection) {
			if text := collapse(li.Text()); text != "" {
				items = append(items, text)
			}
		})
		if len(items) > 0 {
			attrs.Set(name, adconv.ListValue(items))
		}
	})
}

func agency(doc *goquery.Document) *adconv.Agency {
	owner := doc.Find(selOwner).First()
	if owner.Length() == 0 {
		return nil
	}

	a := &adconv.Agency{
		Name:           optional(collapse(owner.Find(selOwnerName).First().Text())),
		URL:            optional(strings.TrimSpace(owner.Find(selOwnerWeb).First().AttrOr("href", ""))),
		Email:          optional(collapse(owner.Find(selOwnerEmail).First().Text())),
		PhoneAvailable: owner.Find(selCallSeller).Length() > 0,
	}

	if icon := owner.Find(selOwnerAddress).First(); icon.Length() > 0 {
		text := collapse(icon.Parent().Text())
		a.Address = optional(strings.TrimSpace(strings.TrimPrefix(text, addressPrefix)))
	}

	return a
}

// listingDates keeps the recognised labels of the system details list and
// ignores the rest.
func listingDates(doc *goquery.Document) adconv.ListingDates {
	var dates adconv.ListingDates
	list := doc.Find(selSystemList).First()
	zip(list.Find("dt"), list.Find("dd"), func(dt, dd *goquery.Selection) {
		label := strings.TrimSpace(strings.TrimSuffix(collapse(dt.Text()), ":"))
		value := optional(collapse(dd.Text()))
		switch label {
		case labelPublished:
			dates.Published = value
		case labelExpiresIn:
			dates.ExpiresIn = value
		case labelViews:
			dates.Views = value
		}
	})
	return dates
}

// images collects large image URLs in document order using the markup of
// the selected mode. Repeated URLs are kept.
func images(doc *goquery.Document, mode adconv.ImageMode) []string {
	urls := []string{}
	switch mode {
	case adconv.ImageModeMediaAttribute:
		doc.Find(selMediaImage).Each(func(_ int, sel *goquery.Selection) {
			if u := strings.TrimSpace(sel.AttrOr(largeImageAttr, "")); u != "" {
				urls = append(urls, u)
			}
		})
	case adconv.ImageModeGallerySrcFilter:
		doc.Find(selGalleryImage).Each(func(_ int, sel *goquery.Selection) {
			if u := strings.TrimSpace(sel.AttrOr("src", "")); strings.Contains(u, largeImageMarker) {
				urls = append(urls, u)
			}
		})
	}
	return urls
}
