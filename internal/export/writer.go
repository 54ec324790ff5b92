package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/balakrishnanc/ripe-utils/internal/atlas"
)

// Column and tag separators of the probe list format.
const (
	colSep = ","
	tagSep = "+"
)

// Header is the fixed comment line preceding all data rows
// The header and the 16-column row layout below are a compatibility
// contract with downstream consumers of the output file; do not change
// either without versioning the format
const Header = "#<id>,<asn_v4>,<address_v4>,<pfx_v4>" +
	",<asn_v6>,<address_v6>,<pfx_v6>" +
	",<country>,<lat>,<lng>" +
	",<anchor?>,<public?>,<last_connect>" +
	",<status>,<status_ts>,<tags>"

// Writer serializes normalized probes to a delimited text stream
// It never opens or closes the underlying writer; the caller owns the file
// handle and its lifecycle
type Writer struct {
	w    io.Writer
	rows int
}

// NewWriter creates a writer on top of an already-open output stream.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader writes the fixed header comment line
// Called exactly once, before any rows, even for an empty catalog
func (w *Writer) WriteHeader() error {
	_, err := io.WriteString(w.w, Header+"\n")
	return err
}

// WriteProbe writes one probe as a single data row.
func (w *Writer) WriteProbe(p atlas.Probe) error {
	if _, err := io.WriteString(w.w, FormatProbe(p)+"\n"); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Rows returns the number of data rows written so far.
func (w *Writer) Rows() int { return w.rows }

// FormatProbe renders one probe as a comma-separated row of 16 fields
// Boolean flags serialize as 1/0, the status name and the joined tag slugs
// are upper-cased, and coordinates keep an explicit decimal point
func FormatProbe(p atlas.Probe) string {
	slugs := make([]string, len(p.Tags))
	for i, tag := range p.Tags {
		slugs[i] = tag.Slug
	}

	fields := []string{
		p.ID,
		p.AsnV4,
		p.AddressV4,
		p.PrefixV4,
		p.AsnV6,
		p.AddressV6,
		p.PrefixV6,
		p.CountryCode,
		formatCoord(p.Geometry.Coordinates.Lat()),
		formatCoord(p.Geometry.Coordinates.Lng()),
		flag(p.IsAnchor),
		flag(p.IsPublic),
		p.LastConnected,
		strings.ToUpper(p.Status.Name),
		p.StatusSince,
		strings.ToUpper(strings.Join(slugs, tagSep)),
	}
	return strings.Join(fields, colSep)
}

// formatCoord renders a coordinate in its shortest decimal form, keeping a
// trailing .0 on integral values so the sentinel prints as -1111.0
func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// flag renders a boolean probe attribute as 1 or 0.
func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
