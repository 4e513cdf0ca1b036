package adconv

import "fmt"

// ImageMode selects which gallery markup the extractor reads images from.
// Page variants use incompatible markup and the mode is never detected.
type ImageMode string

// ImageMode constants.
const (
	// ImageModeMediaAttribute reads data-large-image-url from media list items.
	ImageModeMediaAttribute ImageMode = "media-attribute"

	// ImageModeGallerySrcFilter reads gallery img src values holding the
	// large-size marker.
	ImageModeGallerySrcFilter ImageMode = "gallery-src-filter"
)

// ImageModes lists the supported image modes.
var ImageModes = []ImageMode{ImageModeMediaAttribute, ImageModeGallerySrcFilter}

// Validate returns EINVALID for an unknown mode.
func (m ImageMode) Validate() error {
	switch m {
	case ImageModeMediaAttribute, ImageModeGallerySrcFilter:
		return nil
	}
	return Errorf(EINVALID, "unknown image mode %q", string(m))
}

// FailurePolicy decides what the batch does after a page fails to parse.
type FailurePolicy string

// FailurePolicy constants.
const (
	// PolicyContinue logs the failure and moves on to the next page.
	PolicyContinue FailurePolicy = "continue"

	// PolicyFailFast stops the batch at the first failing page.
	PolicyFailFast FailurePolicy = "fail-fast"
)

// Validate returns EINVALID for an unknown policy.
func (p FailurePolicy) Validate() error {
	switch p {
	case PolicyContinue, PolicyFailFast:
		return nil
	}
	return Errorf(EINVALID, "unknown failure policy %q", string(p))
}

// ExitStatus is the process exit code of a batch run.
type ExitStatus int

// ExitStatus constants. Lower non-zero values are more specific.
const (
	StatusOK     ExitStatus = 0
	StatusConfig ExitStatus = 1
	StatusParse  ExitStatus = 3
	StatusFatal  ExitStatus = 4
)

// StatusFor maps an error to the exit status it causes.
func StatusFor(err error) ExitStatus {
	if err == nil {
		return StatusOK
	}
	switch ErrorCode(err) {
	case ECONFIG:
		return StatusConfig
	case EEXTRACT:
		return StatusParse
	}
	return StatusFatal
}

// Merge combines two statuses keeping the most specific failure.
func (s ExitStatus) Merge(other ExitStatus) ExitStatus {
	if s == StatusOK {
		return other
	}
	if other == StatusOK || s < other {
		return s
	}
	return other
}

func (s ExitStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusConfig:
		return "config_error"
	case StatusParse:
		return "parse_error"
	case StatusFatal:
		return "fatal_error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}
