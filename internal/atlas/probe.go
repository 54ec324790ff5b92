package atlas

import (
	"encoding/json"
	"fmt"
)

// RawRecord is one probe entry exactly as decoded from the API response
// Decode with json.Decoder.UseNumber so numeric fields keep their source
// literal when rendered back to text
type RawRecord map[string]any

// Probe is one network measurement node from the Atlas catalog
//
// Every scalar field defaults to the empty string and is overwritten only
// when the raw record supplies the matching key; partial data is better
// than a failed row. Status, Geometry and Tags are always present, falling
// back to all-default placeholders when the record omits them.
type Probe struct {
	ID             string
	AsnV4          string
	AddressV4      string
	PrefixV4       string
	AsnV6          string
	AddressV6      string
	PrefixV6       string
	CountryCode    string
	Description    string
	Type           string
	FirstConnected string
	LastConnected  string
	StatusSince    string
	IsAnchor       bool
	IsPublic       bool
	Status         Status
	Geometry       Geometry
	Tags           []Tag
}

// Status is the connectivity state of a probe
// All fields default to empty strings when the record has no status object
type Status struct {
	Since string
	ID    string
	Name  string
}

// Geometry is the spatial location wrapper around a probe's coordinates
type Geometry struct {
	Type        string
	Coordinates Point
}

// Point is a longitude/latitude pair
// The source format orders coordinates [longitude, latitude], so X is the
// longitude and Y the latitude; Lat/Lng are accessor conveniences over
// that ordering, not a transformation
type Point struct {
	X float64
	Y float64
}

// Lat returns the latitude (the Y coordinate).
func (p Point) Lat() float64 { return p.Y }

// Lng returns the longitude (the X coordinate).
func (p Point) Lng() float64 { return p.X }

// UnknownLocation is the sentinel coordinate denoting "location unknown"
// Substituted whenever a record carries no usable coordinate pair
var UnknownLocation = Point{X: -1111.0, Y: -1111.0}

// Tag is a label attached to a probe
// Both fields are required; a tag entry without them fails normalization
type Tag struct {
	Name string
	Slug string
}

// NewProbe normalizes one raw nested record into a flat Probe
//
// Recognized keys overwrite the empty-string defaults by direct key match;
// unknown keys are ignored, missing recognized keys keep their default and
// JSON null values count as missing. The only fatal condition is a tag
// entry lacking name or slug, which returns a MissingFieldError
func NewProbe(raw RawRecord) (Probe, error) {
	probe := Probe{
		Geometry: Geometry{Coordinates: UnknownLocation},
		Tags:     []Tag{},
	}

	for key, value := range raw {
		switch key {
		case "id":
			probe.ID = stringify(value)
		case "asn_v4":
			probe.AsnV4 = stringify(value)
		case "address_v4":
			probe.AddressV4 = stringify(value)
		case "prefix_v4":
			probe.PrefixV4 = stringify(value)
		case "asn_v6":
			probe.AsnV6 = stringify(value)
		case "address_v6":
			probe.AddressV6 = stringify(value)
		case "prefix_v6":
			probe.PrefixV6 = stringify(value)
		case "country_code":
			probe.CountryCode = stringify(value)
		case "description":
			probe.Description = stringify(value)
		case "type":
			probe.Type = stringify(value)
		case "first_connected":
			probe.FirstConnected = stringify(value)
		case "last_connected":
			probe.LastConnected = stringify(value)
		case "status_since":
			probe.StatusSince = stringify(value)
		case "is_anchor":
			probe.IsAnchor = asBool(value)
		case "is_public":
			probe.IsPublic = asBool(value)
		}
	}

	// Optional sub-objects: recovered locally with default-filled
	// placeholders so the row is still produced
	if sub, ok := raw["status"].(map[string]any); ok && len(sub) > 0 {
		probe.Status = newStatus(sub)
	}

	if sub, ok := raw["geometry"].(map[string]any); ok && len(sub) > 0 {
		geometry, err := newGeometry(sub)
		if err != nil {
			return Probe{}, err
		}
		probe.Geometry = geometry
	}

	// Tags are required structural data: a malformed entry aborts the record
	if entries, ok := raw["tags"].([]any); ok {
		tags, err := newTags(entries)
		if err != nil {
			return Probe{}, err
		}
		probe.Tags = tags
	}

	return probe, nil
}

// newStatus builds a Status the same way the Probe is built:
// default-fill, then overwrite whatever the record supplies
func newStatus(raw map[string]any) Status {
	var status Status
	for key, value := range raw {
		switch key {
		case "since":
			status.Since = stringify(value)
		case "id":
			status.ID = stringify(value)
		case "name":
			status.Name = stringify(value)
		}
	}
	return status
}

// newGeometry extracts the coordinate pair from a geometry sub-object
// An absent or empty pair falls back to the UnknownLocation sentinel; a
// non-empty pair must hold exactly [longitude, latitude]
func newGeometry(raw map[string]any) (Geometry, error) {
	geometry := Geometry{Coordinates: UnknownLocation}
	if value, ok := raw["type"]; ok {
		geometry.Type = stringify(value)
	}

	coords, ok := raw["coordinates"].([]any)
	if !ok || len(coords) == 0 {
		return geometry, nil
	}
	if len(coords) != 2 {
		return Geometry{}, fmt.Errorf("atlas: expected [longitude, latitude] coordinates, got %d values", len(coords))
	}

	lng, err := asFloat(coords[0])
	if err != nil {
		return Geometry{}, fmt.Errorf("atlas: bad longitude: %w", err)
	}
	lat, err := asFloat(coords[1])
	if err != nil {
		return Geometry{}, fmt.Errorf("atlas: bad latitude: %w", err)
	}

	geometry.Coordinates = Point{X: lng, Y: lat}
	return geometry, nil
}

// newTags converts the raw tag sequence, preserving source order
// Unlike the lenient scalar handling, a tag entry without name or slug is
// fatal for the whole record
func newTags(entries []any) ([]Tag, error) {
	tags := make([]Tag, 0, len(entries))
	for _, entry := range entries {
		sub, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("atlas: tag entry is not an object")
		}

		name, ok := sub["name"]
		if !ok {
			return nil, &MissingFieldError{Field: "name"}
		}
		slug, ok := sub["slug"]
		if !ok {
			return nil, &MissingFieldError{Field: "slug"}
		}

		tags = append(tags, Tag{Name: stringify(name), Slug: stringify(slug)})
	}
	return tags, nil
}

// stringify renders a raw scalar value for the flat entity
// json.Number keeps its source literal, so integers round-trip unchanged
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// asBool reads a boolean probe attribute, keeping the false default for
// anything that is not a JSON boolean
func asBool(value any) bool {
	b, ok := value.(bool)
	return ok && b
}

// asFloat reads a numeric coordinate value
func asFloat(value any) (float64, error) {
	switch v := value.(type) {
	case json.Number:
		return v.Float64()
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("value %v is not numeric", value)
	}
}
