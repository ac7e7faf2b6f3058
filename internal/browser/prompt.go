package browser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// banner prints text centered in a rule of the given fill character.
func (b *Browser) banner(fill rune, text string) {
	if text != "" {
		text = " " + text + " "
	}
	pad := bannerWidth - len(text)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	right := pad - left
	fmt.Fprintf(b.out, "%s%s%s\n",
		strings.Repeat(string(fill), left), text, strings.Repeat(string(fill), right))
}

const bannerWidth = 80

// readLine reads one line of user input, trimmed of the trailing newline.
func (b *Browser) readLine() (string, error) {
	line, err := b.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptChoice shows the document as a numbered menu and reads a pick.
// Items come first, then the document's own controls; picking an item means
// following its self control. Out-of-range or non-numeric input re-prompts.
func (b *Browser) promptChoice(doc *Document) (*Control, error) {
	itemChoices := 0
	if !doc.HasItems {
		b.banner('-', "Item")
		if props := formatProperties(doc.Properties); props != "" {
			fmt.Fprintln(b.out, props)
		}
	} else {
		b.banner('-', "Collection")
		for _, item := range doc.Items {
			itemChoices++
			fmt.Fprintf(b.out, "%d %s\n", itemChoices, formatProperties(item.Properties))
		}
	}

	choices := itemChoices
	b.banner('-', "Actions")
	for _, ctrl := range doc.Controls {
		choices++
		fmt.Fprintf(b.out, "%d %s\n", choices, ctrl.Relation)
	}

	kind := "an action"
	if itemChoices > 0 {
		kind = "an item or an action"
	}

	pick := 0
	for pick < 1 || pick > choices {
		b.banner('-', "Prompt")
		fmt.Fprintf(b.out, "Pick %s (number): ", kind)
		line, err := b.readLine()
		if err != nil {
			return nil, err
		}
		pick, err = strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			pick = 0
		}
	}

	if pick > itemChoices {
		return &doc.Controls[pick-itemChoices-1], nil
	}
	ctrl, ok := doc.Items[pick-1].Control("self")
	if !ok {
		return nil, fmt.Errorf("item %d has no self control", pick)
	}
	return ctrl, nil
}

// promptSchema walks the schema's fields in order and collects a request
// body. Invalid input for a field repeats that field: a required field must
// be filled, an emptied optional field is left out, integer fields must
// parse, patterned fields must match.
func (b *Browser) promptSchema(schema *Schema) (map[string]any, error) {
	data := make(map[string]any)

	for i := 0; i < len(schema.Properties); {
		prop := schema.Properties[i]

		necessity := "optional"
		if schema.IsRequired(prop.Name) {
			necessity = "required"
		}

		b.banner('-', "Prompt")
		fmt.Fprintf(b.out, "%s (%s): ", prop.Description, necessity)
		line, err := b.readLine()
		if err != nil {
			return nil, err
		}

		if line == "" {
			if necessity == "required" {
				continue
			}
			i++
			continue
		}

		if strings.EqualFold(prop.Type, "integer") {
			n, err := strconv.Atoi(line)
			if err != nil {
				continue
			}
			data[prop.Name] = n
			i++
			continue
		}

		if prop.Pattern != "" {
			matched, err := matchPattern(prop.Pattern, line)
			if err != nil || !matched {
				continue
			}
		}
		data[prop.Name] = line
		i++
	}

	return data, nil
}

// matchPattern tests input against a schema pattern anchored at the start.
func matchPattern(pattern, input string) (bool, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return false, err
	}
	return re.MatchString(input), nil
}

// printOutcome reports a mutating request's result, listing the server's
// error messages on failure.
func (b *Browser) printOutcome(resp *Response) {
	if resp.OK() {
		b.banner('*', "Ok response")
		return
	}
	b.banner('*', "Error response")
	if resp.Document != nil && resp.Document.Error != nil {
		fmt.Fprintln(b.out, strings.Join(resp.Document.Error.Messages, " "))
	}
}
