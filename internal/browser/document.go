// Package browser implements a generic console client for the hypermedia
// API. It knows nothing about synsets or images: every move is taken from
// the controls of the document the server last returned, so the server can
// reshape the application without the client changing.
package browser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Property is one non-reserved key of a document, in arrival order. The
// menu numbering depends on that order, so documents cannot be decoded into
// plain maps.
type Property struct {
	Name  string
	Value any
}

// Control is a hypermedia control with the relation it was filed under. An
// empty Method means plain GET navigation.
type Control struct {
	Relation string
	Method   string
	Href     string
	Title    string
	Encoding string
	Schema   *Schema
}

// Schema describes the body a control expects.
type Schema struct {
	Type       string
	Required   []string
	Properties []SchemaProperty
}

// SchemaProperty is one field of a schema, in declared order.
type SchemaProperty struct {
	Name        string
	Description string
	Type        string
	Pattern     string
}

// IsRequired reports whether the named field must be filled in.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Error is the Mason error envelope of a failed request.
type Error struct {
	Message  string
	Messages []string
}

// Document is a decoded Mason document.
type Document struct {
	Properties []Property
	Namespaces map[string]string
	Controls   []Control
	Items      []Document
	HasItems   bool
	Error      *Error
}

// Control returns the control filed under the given relation.
func (d *Document) Control(relation string) (*Control, bool) {
	for i := range d.Controls {
		if d.Controls[i].Relation == relation {
			return &d.Controls[i], true
		}
	}
	return nil, false
}

// ParseDocument decodes a Mason document, preserving the order of
// properties, controls and schema fields as the server sent them.
func ParseDocument(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	return parseDocument(dec)
}

// parseDocument consumes an object whose opening brace has been read.
func parseDocument(dec *json.Decoder) (*Document, error) {
	doc := &Document{}

	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}

		switch key {
		case "@namespaces":
			if err := parseNamespaces(dec, doc); err != nil {
				return nil, err
			}
		case "@controls":
			if err := parseControls(dec, doc); err != nil {
				return nil, err
			}
		case "items":
			if err := parseItems(dec, doc); err != nil {
				return nil, err
			}
		case "@error":
			if err := parseError(dec, doc); err != nil {
				return nil, err
			}
		default:
			var value any
			if err := dec.Decode(&value); err != nil {
				return nil, err
			}
			doc.Properties = append(doc.Properties, Property{Name: key, Value: value})
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseNamespaces(dec *json.Decoder, doc *Document) error {
	var raw map[string]struct {
		Name string `json:"name"`
	}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	doc.Namespaces = make(map[string]string, len(raw))
	for prefix, ns := range raw {
		doc.Namespaces[prefix] = ns.Name
	}
	return nil
}

func parseControls(dec *json.Decoder, doc *Document) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		relation, err := stringToken(dec)
		if err != nil {
			return err
		}
		ctrl, err := parseControl(dec)
		if err != nil {
			return err
		}
		ctrl.Relation = relation
		doc.Controls = append(doc.Controls, *ctrl)
	}
	return expectDelim(dec, '}')
}

func parseControl(dec *json.Decoder) (*Control, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	ctrl := &Control{}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "method":
			if ctrl.Method, err = stringToken(dec); err != nil {
				return nil, err
			}
		case "href":
			if ctrl.Href, err = stringToken(dec); err != nil {
				return nil, err
			}
		case "title":
			if ctrl.Title, err = stringToken(dec); err != nil {
				return nil, err
			}
		case "encoding":
			if ctrl.Encoding, err = stringToken(dec); err != nil {
				return nil, err
			}
		case "schema":
			if ctrl.Schema, err = parseSchema(dec); err != nil {
				return nil, err
			}
		default:
			var skip any
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
		}
	}

	return ctrl, expectDelim(dec, '}')
}

func parseSchema(dec *json.Decoder) (*Schema, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	schema := &Schema{}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "type":
			if schema.Type, err = stringToken(dec); err != nil {
				return nil, err
			}
		case "required":
			if err := dec.Decode(&schema.Required); err != nil {
				return nil, err
			}
		case "properties":
			if err := parseSchemaProperties(dec, schema); err != nil {
				return nil, err
			}
		default:
			var skip any
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
		}
	}

	return schema, expectDelim(dec, '}')
}

func parseSchemaProperties(dec *json.Decoder, schema *Schema) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return err
		}
		var field struct {
			Description string `json:"description"`
			Type        string `json:"type"`
			Pattern     string `json:"pattern"`
		}
		if err := dec.Decode(&field); err != nil {
			return err
		}
		schema.Properties = append(schema.Properties, SchemaProperty{
			Name:        name,
			Description: field.Description,
			Type:        field.Type,
			Pattern:     field.Pattern,
		})
	}
	return expectDelim(dec, '}')
}

func parseItems(dec *json.Decoder, doc *Document) error {
	if err := expectDelim(dec, '['); err != nil {
		return err
	}
	doc.HasItems = true
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return err
		}
		item, err := parseDocument(dec)
		if err != nil {
			return err
		}
		doc.Items = append(doc.Items, *item)
	}
	return expectDelim(dec, ']')
}

func parseError(dec *json.Decoder, doc *Document) error {
	var raw struct {
		Message  string   `json:"@message"`
		Messages []string `json:"@messages"`
	}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	doc.Error = &Error{Message: raw.Message, Messages: raw.Messages}
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %v", tok)
	}
	return s, nil
}

// formatProperties renders the non-reserved properties of a document on a
// single line, in arrival order.
func formatProperties(props []Property) string {
	parts := make([]string, 0, len(props))
	for _, p := range props {
		parts = append(parts, fmt.Sprintf("%s: %v", p.Name, p.Value))
	}
	return strings.Join(parts, ", ")
}
