package section

import (
	"fmt"
	"strings"
	"time"

	"github.com/driftwood-studio/marquee/internal/errors"
)

// guardType checks the _type discriminant against the expected variant tag.
func guardType(raw RawRecord, want Type) error {
	got, _ := raw["_type"].(string)
	if Type(got) != want {
		return errors.NewInvalidSectionDataError(string(want),
			fmt.Sprintf("_type is %q", got))
	}
	return nil
}

// guardArray checks that a required collection field is present and is an
// array. It returns the elements on success.
func guardArray(raw RawRecord, key string, variant Type) ([]interface{}, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, errors.NewInvalidSectionDataError(string(variant),
			fmt.Sprintf("missing required array field %q", key))
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, errors.NewInvalidSectionDataError(string(variant),
			fmt.Sprintf("field %q is not an array", key))
	}
	return arr, nil
}

// stringField returns the string value for key, normalizing absent, null and
// empty-string to "".
func stringField(raw RawRecord, key string) string {
	s, _ := raw[key].(string)
	return s
}

// boolField returns the first present boolean among keys. The content schema
// has carried two names for the border flag over time.
func boolField(raw RawRecord, keys ...string) bool {
	for _, key := range keys {
		if b, ok := raw[key].(bool); ok {
			return b
		}
	}
	return false
}

// intField returns the integer value for key, accepting the float64 that
// JSON decoding produces.
func intField(raw RawRecord, key string) int {
	switch v := raw[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// mapField returns the map value for key, or nil when absent.
func mapField(raw RawRecord, key string) RawRecord {
	if m, ok := raw[key].(map[string]interface{}); ok {
		return RawRecord(m)
	}
	return nil
}

// arrayField returns the array value for key, or nil when absent or of the
// wrong kind. Used for optional collections; required collections go through
// guardArray.
func arrayField(raw RawRecord, key string) []interface{} {
	arr, _ := raw[key].([]interface{})
	return arr
}

// resolveTitle applies the display-title override: a non-empty displayTitle
// wins over title.
func resolveTitle(raw RawRecord) string {
	if dt := stringField(raw, "displayTitle"); dt != "" {
		return dt
	}
	return stringField(raw, "title")
}

// resolveDescription normalizes the description field, which the schema
// stores either as a plain string or as an array of rich text blocks. Block
// arrays are flattened to the concatenated text of their spans.
func resolveDescription(raw RawRecord) string {
	switch v := raw["description"].(type) {
	case string:
		return v
	case []interface{}:
		return flattenBlocks(v)
	}
	return ""
}

// flattenBlocks extracts plain text from rich text block arrays. Blocks are
// joined by newline, spans by nothing, matching how the store serializes
// paragraph content.
func flattenBlocks(blocks []interface{}) string {
	var parts []string
	for _, b := range blocks {
		block, ok := b.(map[string]interface{})
		if !ok {
			continue
		}
		children, _ := block["children"].([]interface{})
		var sb strings.Builder
		for _, c := range children {
			child, ok := c.(map[string]interface{})
			if !ok {
				continue
			}
			if text, ok := child["text"].(string); ok {
				sb.WriteString(text)
			}
		}
		if sb.Len() > 0 {
			parts = append(parts, sb.String())
		}
	}
	return strings.Join(parts, "\n")
}

// baseFrom builds the common section fields from a raw record. Background
// tokens outside the palette normalize to absent rather than failing the
// whole section.
func baseFrom(raw RawRecord, t Type) Base {
	bg := Background(stringField(raw, "background"))
	if !ValidBackground(bg) {
		bg = ""
	}
	return Base{
		Key:         stringField(raw, "_key"),
		ID:          stringField(raw, "_id"),
		Type:        t,
		Title:       resolveTitle(raw),
		Background:  bg,
		Border:      boolField(raw, "showBorder", "border"),
		Description: resolveDescription(raw),
	}
}

// dateLayouts are the accepted stored-date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseDate parses a stored date string. A malformed string yields the zero
// time rather than an error; downstream treats zero as "not set". That keeps
// the historical behavior of passing bad strings through date construction
// instead of rejecting the section.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
