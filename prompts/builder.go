package prompts

import (
	"fmt"
	"strings"

	"travelguide/models"
)

// BuildGuidePrompt constructs the natural-language instruction asking the
// generator for a complete two-truths-and-a-lie guide in a strict JSON shape.
// Pure string building; no validation or retries happen at this layer.
func BuildGuidePrompt(place string, persona models.Persona, locType models.LocationType, categories []string) string {
	var b strings.Builder

	b.WriteString("You are a travel guide writer. ")
	b.WriteString(persona.Prompt)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Create a travel guide for %q.\n\n", place)
	b.WriteString("For each of the following categories, provide exactly 3 items - TWO TRUTHS and ONE LIE (the lie should be plausible but false). Mix them randomly - don't always put the lie in the same position.\n\n")
	fmt.Fprintf(&b, "Categories: %s\n\n", strings.Join(categories, ", "))
	b.WriteString("Format your response as JSON with this structure:\n")
	fmt.Fprintf(&b, `{
  "name": %q,
  "type": %q,
  "coordinates": {"lat": approximate_latitude, "lon": approximate_longitude},
  "categories": [
    {
      "name": "Category Name",
      "items": [
        {
          "text": "Item description (2-3 sentences). Emphasize at least two specific place names with **double asterisks** - these become clickable links.",
          "isLie": false
        },
        {
          "text": "Another item description with **emphasized places**.",
          "isLie": false
        },
        {
          "text": "A third item (this one is false).",
          "isLie": true
        }
      ]
    }
  ]
}`, place, locType)
	b.WriteString("\n\nMake the content engaging and informative. Emphasize specific place names, street names, and nearby locations with **double asterisks** when relevant. Make each lie plausible but definitely false. Respond with the JSON object only.")

	return b.String()
}

// BuildPersonaPrompt asks the generator to turn a free-form description into
// a reusable custom guide voice, including a small bank of feedback lines
// used when guesses are revealed.
func BuildPersonaPrompt(description string) string {
	var b strings.Builder

	b.WriteString("You are designing a travel guide narrator persona based on this description:\n\n")
	fmt.Fprintf(&b, "%q\n\n", description)
	b.WriteString(`Respond with one JSON object only, matching this structure:
{
  "name": "Display name for the persona",
  "prompt": "Write in the style of... (2-3 sentences of concrete style instructions a writer could follow)",
  "icon": "a single emoji that fits the persona",
  "feedback": [
    "four short in-character reactions to a correct guess or a wrong guess",
    "each one a single sentence",
    "varied in tone",
    "no numbering"
  ]
}`)

	return b.String()
}
