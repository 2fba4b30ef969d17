package extract

import (
	"html"
	"regexp"
	"strings"

	"travelguide/models"
)

// maxLinkContext caps how many breadcrumb levels a place link carries
const maxLinkContext = 3

var (
	boldPattern    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	strongPattern  = regexp.MustCompile(`(?is)<strong>(.*?)</strong>`)
	contextPattern = regexp.MustCompile(`\s*\([^()]*\)\s*$`)
	// Capitalized phrases are treated as candidate place names
	placeNamePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+(?:of\s+|de\s+)?[A-Z][a-z]+)*\b`)
)

// Words that look like place names to the capitalized-phrase matcher but are not
var placeNameStopwords = map[string]bool{
	"The": true, "A": true, "An": true, "In": true, "On": true, "At": true,
	"For": true, "To": true, "From": true, "This": true, "That": true,
	"These": true, "Those": true, "It": true, "Its": true, "They": true,
}

// LinkifyItems rewrites emphasis markup (**bold** and <strong> variants) in
// every item into place-reference links. Link targets carry up to three
// levels of breadcrumb context appended parenthetically, so exploring
// "Mona Lisa" from the Louvre page becomes "Mona Lisa (The Louvre, Paris)".
func LinkifyItems(content *models.PlaceContent, breadcrumb []string) {
	context := breadcrumbContext(breadcrumb)
	for ci := range content.Categories {
		items := content.Categories[ci].Items
		for ii := range items {
			items[ii].Text = linkify(items[ii].Text, context)
		}
	}
}

func linkify(text, context string) string {
	replace := func(name string) string {
		name = strings.TrimSpace(name)
		if name == "" {
			return name
		}
		target := name
		if context != "" {
			target = name + " (" + context + ")"
		}
		return `<a href="#" class="place-link" data-place="` + html.EscapeString(target) + `">` + html.EscapeString(name) + `</a>`
	}

	text = boldPattern.ReplaceAllStringFunc(text, func(m string) string {
		return replace(boldPattern.FindStringSubmatch(m)[1])
	})
	text = strongPattern.ReplaceAllStringFunc(text, func(m string) string {
		return replace(strongPattern.FindStringSubmatch(m)[1])
	})
	return text
}

// breadcrumbContext renders the trail newest-first, capped at maxLinkContext
func breadcrumbContext(breadcrumb []string) string {
	if len(breadcrumb) == 0 {
		return ""
	}
	levels := make([]string, 0, maxLinkContext)
	for i := len(breadcrumb) - 1; i >= 0 && len(levels) < maxLinkContext; i-- {
		levels = append(levels, breadcrumb[i])
	}
	return strings.Join(levels, ", ")
}

// StripContext removes the parenthetical breadcrumb context a place link
// carries before the name is stored in navigation history.
func StripContext(place string) string {
	return strings.TrimSpace(contextPattern.ReplaceAllString(place, ""))
}

// MentionedPlaces collects candidate place names from guide text: capitalized
// phrases, minus stopwords, minus the place itself, de-duplicated in order of
// first mention and capped at limit. Emphasis markers are stripped first so
// they do not split phrases.
func MentionedPlaces(content *models.PlaceContent, limit int) []string {
	seen := map[string]bool{strings.ToLower(content.Name): true}
	var out []string

	for _, category := range content.Categories {
		for _, item := range category.Items {
			text := strings.ReplaceAll(item.Text, "**", "")
			for _, match := range placeNamePattern.FindAllString(text, -1) {
				if placeNameStopwords[match] || seen[strings.ToLower(match)] {
					continue
				}
				seen[strings.ToLower(match)] = true
				out = append(out, match)
				if len(out) >= limit {
					return out
				}
			}
		}
	}
	return out
}
