package atlas

import "fmt"

// HTTPError reports a non-success response from the Atlas API
// A single failed page aborts the entire listing, so this surfaces all the
// way to the caller of the scanner
type HTTPError struct {
	StatusCode int    // HTTP status code of the failed request
	Status     string // Status line as reported by the server
	URL        string // Page URL that was being fetched
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("atlas: unexpected response %q from %s", e.Status, e.URL)
}

// MissingFieldError reports a raw record lacking a field that normalization
// treats as required (currently only the name/slug of a tag entry)
type MissingFieldError struct {
	Field string // Name of the missing field
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("atlas: tag entry missing required field %q", e.Field)
}
