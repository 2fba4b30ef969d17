package models

// Persona is a named writing-style instruction set applied when building the
// generation prompt. Built-ins are static; custom personas are generated once
// through the completion client and persisted per player.
type Persona struct {
	Key      string   `json:"key" bson:"key"`
	Name     string   `json:"name" bson:"name"`
	Prompt   string   `json:"prompt" bson:"prompt"`
	Icon     string   `json:"icon,omitempty" bson:"icon,omitempty"`
	Feedback []string `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Custom   bool     `json:"custom,omitempty" bson:"custom,omitempty"`
}
