package schema

import (
	"fmt"
	"math"
)

// Validate checks a decoded JSON object against the descriptor and returns
// one human-readable message per violation. An empty slice means the body is
// valid. Checks run in order: required presence, then type, then pattern.
func (d *Descriptor) Validate(body map[string]any) []string {
	var messages []string

	for _, name := range d.Required {
		if _, ok := body[name]; !ok {
			messages = append(messages, fmt.Sprintf("'%s' is a required property", name))
		}
	}

	for _, prop := range d.Properties {
		value, ok := body[prop.Name]
		if !ok {
			continue
		}
		switch prop.Type {
		case "string":
			s, ok := value.(string)
			if !ok {
				messages = append(messages, fmt.Sprintf("'%s' must be a string", prop.Name))
				continue
			}
			if prop.re != nil && !prop.re.MatchString(s) {
				messages = append(messages, fmt.Sprintf("'%s' does not match pattern '%s'", prop.Name, prop.Pattern))
			}
		case "integer":
			// encoding/json decodes numbers as float64; accept only
			// integral values.
			f, ok := value.(float64)
			if !ok || f != math.Trunc(f) {
				messages = append(messages, fmt.Sprintf("'%s' must be an integer", prop.Name))
			}
		}
	}

	return messages
}
