package prompts

import "travelguide/models"

// DefaultPersonaKey is used whenever no persona is selected or the selected
// key no longer resolves.
const DefaultPersonaKey = "standard"

var builtinPersonas = []models.Persona{
	{
		Key:    "standard",
		Name:   "Standard Travel Guide",
		Icon:   "🧭",
		Prompt: "Write in a clear, informative travel guide style.",
		Feedback: []string{
			"Nice catch!",
			"Good eye for detail.",
			"Not quite, but a reasonable guess.",
			"Every traveler gets turned around sometimes.",
		},
	},
	{
		Key:    "burton",
		Name:   "Richard Francis Burton",
		Icon:   "🎩",
		Prompt: "Write in the style of Victorian explorer Richard Francis Burton - erudite, adventurous, with detailed observations of customs, languages, and cultural practices. Use elaborate Victorian prose with scholarly references.",
		Feedback: []string{
			"A most discerning deduction, worthy of the Royal Geographical Society.",
			"Alas, even the seasoned explorer is occasionally deceived.",
			"Capital! Your instincts serve you as well as any native guide.",
		},
	},
	{
		Key:    "bird",
		Name:   "Isabella Bird",
		Icon:   "🪶",
		Prompt: "Write in the style of Isabella Bird - vivid, detailed, personal observations with a focus on daily life, natural beauty, and the human experience. Use engaging first-person narrative with rich sensory details.",
		Feedback: []string{
			"How perceptive of you, fellow traveler.",
			"I confess the truth surprised me too when I first learned it.",
			"A keen observation, as any good journal-keeper would make.",
		},
	},
	{
		Key:    "battuta",
		Name:   "Ibn Battuta",
		Icon:   "🕌",
		Prompt: "Write in the style of Ibn Battuta - focus on Islamic culture, trade routes, scholarly encounters, and the hospitality of rulers. Include observations about religious practices and social customs with reverence and wonder.",
		Feedback: []string{
			"Wisdom guides your judgment, as the scholars of Fez would say.",
			"Even in thirty years of travel, I was sometimes misled.",
			"You have the discernment of a seasoned merchant of the caravan routes.",
		},
	},
	{
		Key:    "west",
		Name:   "Dorothy West",
		Icon:   "🖋️",
		Prompt: "Write in the style of Dorothy West - elegant, perceptive prose focusing on social dynamics, class, culture, and the subtle nuances of place. Use sophisticated, literary language with keen social observation.",
		Feedback: []string{
			"You read between the lines beautifully.",
			"The truth, as ever, hides in plain sight.",
			"A graceful miss; appearances deceive the best of us.",
		},
	},
	{
		Key:    "thompson",
		Name:   "Hunter S. Thompson",
		Icon:   "🦇",
		Prompt: "Write in the style of Hunter S. Thompson - gonzo journalism with wild imagery, sharp cultural criticism, dark humor, and surreal observations. Use punchy, irreverent prose with vivid metaphors.",
		Feedback: []string{
			"You saw through it. Trust no brochure.",
			"Wrong, but so is most of what they print anyway.",
			"Sharp instincts. The desert teaches you that or it eats you.",
		},
	},
}

// BuiltinPersonas returns the static persona list in display order
func BuiltinPersonas() []models.Persona {
	out := make([]models.Persona, len(builtinPersonas))
	copy(out, builtinPersonas)
	return out
}

// ResolvePersona looks up a persona by key, checking custom personas first,
// then built-ins, and finally falling back to the standard guide voice.
func ResolvePersona(key string, custom map[string]models.Persona) models.Persona {
	if persona, ok := custom[key]; ok {
		return persona
	}
	for _, persona := range builtinPersonas {
		if persona.Key == key {
			return persona
		}
	}
	return builtinPersonas[0]
}
