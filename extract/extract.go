package extract

import (
	"encoding/json"
	"strings"

	"travelguide/models"
)

// ParseError means no usable JSON object could be pulled out of a completion
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Reason
}

// FirstJSONObject returns the first structurally valid JSON object embedded
// in text. It scans with a string-and-escape-aware depth counter rather than
// a greedy regex, so braces in surrounding prose or inside string values do
// not break extraction. Candidates that balance but fail json.Valid are
// skipped in favor of later ones.
func FirstJSONObject(text string) (string, error) {
	searchFrom := 0
	for {
		offset := strings.IndexByte(text[searchFrom:], '{')
		if offset < 0 {
			if searchFrom == 0 {
				return "", &ParseError{Reason: "no JSON object found in response"}
			}
			return "", &ParseError{Reason: "no valid JSON object found in response"}
		}
		start := searchFrom + offset

		if region, ok := balancedRegion(text, start); ok && json.Valid([]byte(region)) {
			return region, nil
		}
		searchFrom = start + 1
	}
}

// balancedRegion scans from an opening brace to its matching close,
// tracking string literals and escapes.
func balancedRegion(text string, start int) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// Extract pulls the first balanced JSON object out of a completion and
// decodes it as place content. The generator contract (3 items per category,
// exactly one lie) is deliberately not enforced here; only the minimal shape
// is checked and empty categories are dropped so the rest renders best-effort.
func Extract(text string) (*models.PlaceContent, error) {
	region, err := FirstJSONObject(text)
	if err != nil {
		return nil, err
	}

	var content models.PlaceContent
	if err := json.Unmarshal([]byte(region), &content); err != nil {
		return nil, &ParseError{Reason: "response JSON does not match the guide shape: " + err.Error()}
	}

	content.Name = strings.TrimSpace(content.Name)
	if content.Name == "" {
		return nil, &ParseError{Reason: "guide is missing a place name"}
	}

	kept := content.Categories[:0]
	for _, category := range content.Categories {
		items := category.Items[:0]
		for _, item := range category.Items {
			if strings.TrimSpace(item.Text) != "" {
				items = append(items, item)
			}
		}
		category.Items = items
		if len(category.Items) > 0 {
			kept = append(kept, category)
		}
	}
	content.Categories = kept
	if len(content.Categories) == 0 {
		return nil, &ParseError{Reason: "guide has no categories with items"}
	}

	return &content, nil
}
