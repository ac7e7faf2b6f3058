// Package hypermedia implements the Mason document envelope used by every
// API response.
//
// A document is a JSON object carrying the entity's own properties at the
// top level plus reserved substructures: "@namespaces" maps short names to
// URLs resolving extended relation types, "@controls" maps relation names to
// control descriptors, and collections additionally carry an "items"
// sequence of sub-documents. A control describes one valid transition from
// the document: its HTTP method, target href and, for mutating controls,
// the schema of the expected request body.
//
// Properties serialize ahead of the reserved substructures, in declaration
// order. Controls serialize by relation name.
package hypermedia

import (
	"bytes"
	"encoding/json"

	"evalgo.org/wnbrowser/internal/schema"
)

// MediaType is the content type of every document response.
const MediaType = "application/vnd.mason+json"

// Reserved document keys.
const (
	KeyNamespaces = "@namespaces"
	KeyControls   = "@controls"
	KeyItems      = "items"
	KeyError      = "@error"
)

// Control is a hypermedia affordance: method + href + optional schema.
// A zero Method means GET and is omitted from the serialized form.
type Control struct {
	Method   string             `json:"method,omitempty"`
	Href     string             `json:"href"`
	Title    string             `json:"title,omitempty"`
	Encoding string             `json:"encoding,omitempty"`
	Schema   *schema.Descriptor `json:"schema,omitempty"`
}

// Property is one named scalar value of the entity the document describes.
type Property struct {
	Name  string
	Value any
}

// Document is a Mason response body under construction.
type Document struct {
	properties []Property
	namespaces map[string]string
	controls   map[string]Control
	items      []Document
	hasItems   bool
	err        *errorBody
}

type errorBody struct {
	Message  string   `json:"@message"`
	Messages []string `json:"@messages"`
}

// NewDocument creates a document holding the given properties, an empty
// namespaces map and an empty controls map.
func NewDocument(props ...Property) Document {
	return Document{
		properties: props,
		namespaces: map[string]string{},
		controls:   map[string]Control{},
	}
}

// AddNamespace registers a short name for resolving extended relation types.
func (d Document) AddNamespace(name, uri string) {
	d.namespaces[name] = uri
}

// AddControl inserts or overwrites the control under the given relation.
// Controls carrying a schema are forced to JSON encoding.
func (d Document) AddControl(relation string, ctrl Control) {
	if ctrl.Schema != nil {
		ctrl.Encoding = "json"
	}
	d.controls[relation] = ctrl
}

// Control returns the control registered under the given relation.
func (d Document) Control(relation string) (Control, bool) {
	ctrl, ok := d.controls[relation]
	return ctrl, ok
}

// InitItems marks the document as a collection so an empty page still
// renders an items array.
func (d *Document) InitItems() {
	d.hasItems = true
}

// AppendItem adds a sub-document to the collection's items sequence.
func (d *Document) AppendItem(item Document) {
	d.items = append(d.items, item)
	d.hasItems = true
}

// NewError builds the error envelope returned on every 4xx response:
//
//	{"@error": {"@message": title, "@messages": [...]}}
func NewError(title string, messages ...string) Document {
	return Document{
		err: &errorBody{Message: title, Messages: messages},
	}
}

// MarshalJSON renders the document: properties in declaration order, then
// the reserved substructures.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	write := func(name string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(val)
		return nil
	}

	for _, p := range d.properties {
		if err := write(p.Name, p.Value); err != nil {
			return nil, err
		}
	}
	if d.namespaces != nil {
		namespaces := make(map[string]map[string]string, len(d.namespaces))
		for name, uri := range d.namespaces {
			namespaces[name] = map[string]string{"name": uri}
		}
		if err := write(KeyNamespaces, namespaces); err != nil {
			return nil, err
		}
	}
	if d.controls != nil {
		if err := write(KeyControls, d.controls); err != nil {
			return nil, err
		}
	}
	if d.hasItems {
		items := d.items
		if items == nil {
			items = []Document{}
		}
		if err := write(KeyItems, items); err != nil {
			return nil, err
		}
	}
	if d.err != nil {
		if err := write(KeyError, d.err); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
