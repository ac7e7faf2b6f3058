// Package schema is the static registry of per-entity schema descriptors.
//
// The same descriptor serves two purposes: it is advertised to clients
// inside mutating hypermedia controls, and it validates the JSON bodies of
// the corresponding POST/PUT requests. Descriptors are pure values; the
// registry has no state beyond pre-compiled patterns.
package schema

import (
	"bytes"
	"encoding/json"
	"regexp"
)

// Patterns enforced on string-typed properties.
const (
	WnidPattern = "^n[0-9]{8}$"
	URLPattern  = "^https?://"
	DatePattern = "^(199[1-9]|2[0-9]{3})-(0*([1-9]|1[0-2]))-(0*([1-9]|[12][0-9]|3[01]))$"
)

// Property describes one field of a request body.
type Property struct {
	Name        string `json:"-"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Pattern     string `json:"pattern,omitempty"`

	re *regexp.Regexp
}

// Descriptor describes the required and optional fields of a request body.
// Properties keep their declared order; MarshalJSON preserves it on the wire
// so clients can prompt for fields in a stable, meaningful sequence.
type Descriptor struct {
	Type       string
	Required   []string
	Properties []Property
}

// MarshalJSON renders the descriptor as a JSON-Schema-like object with the
// properties emitted in declared order.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	typ, err := json.Marshal(d.Type)
	if err != nil {
		return nil, err
	}
	buf.Write(typ)
	buf.WriteString(`,"required":`)
	req, err := json.Marshal(d.Required)
	if err != nil {
		return nil, err
	}
	buf.Write(req)
	buf.WriteString(`,"properties":{`)
	for i, prop := range d.Properties {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		body, err := json.Marshal(prop)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

var (
	wnidProp = Property{
		Name:        "wnid",
		Description: "The WordNet ID of the synset denoted by the letter n (only nouns) followed by 8 digits",
		Type:        "string",
		Pattern:     WnidPattern,
		re:          regexp.MustCompile(WnidPattern),
	}
	wordsProp = Property{
		Name:        "words",
		Description: "The words of the synset denoting its rough synonyms",
		Type:        "string",
	}
	glossProp = Property{
		Name:        "gloss",
		Description: "The gloss or brief definition of the synset",
		Type:        "string",
	}
	imidProp = Property{
		Name:        "imid",
		Description: "The numerical ID of the image",
		Type:        "integer",
	}
	urlProp = Property{
		Name:        "url",
		Description: "The URL of the image with its scheme being HTTP or HTTPS only",
		Type:        "string",
		Pattern:     URLPattern,
		re:          regexp.MustCompile(URLPattern),
	}
	dateProp = Property{
		Name:        "date",
		Description: "The last seen date of the image through the URL in ISO 8601 format",
		Type:        "string",
		Pattern:     DatePattern,
		re:          regexp.MustCompile(DatePattern),
	}
)

// Synset returns the full synset descriptor (wnid, words and gloss required).
func Synset() *Descriptor {
	return &Descriptor{
		Type:       "object",
		Required:   []string{"wnid", "words", "gloss"},
		Properties: []Property{wnidProp, wordsProp, glossProp},
	}
}

// SynsetRef returns the identifier-only synset descriptor used when
// referencing an existing synset, e.g. as a hyponym to add.
func SynsetRef() *Descriptor {
	return &Descriptor{
		Type:       "object",
		Required:   []string{"wnid"},
		Properties: []Property{wnidProp},
	}
}

// Image returns the image descriptor (imid and url required, date optional).
func Image() *Descriptor {
	return &Descriptor{
		Type:       "object",
		Required:   []string{"imid", "url"},
		Properties: []Property{imidProp, urlProp, dateProp},
	}
}
