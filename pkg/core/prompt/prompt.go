// Package prompt is the centralized prompt library for LLM interactions.
// Prompts live in JSON files under resources/prompts and are loaded at
// runtime, so analysts can tune the credit-narrative wording without a
// rebuild.
package prompt

import (
	"bytes"
	"fmt"
	"text/template"
)

// PromptTemplate is one reusable prompt with metadata.
type PromptTemplate struct {
	ID             string           `json:"id"`                   // e.g. "credit.narrative"
	Name           string           `json:"name"`                 // human-readable name
	Category       string           `json:"category"`             // credit, extraction, ...
	Description    string           `json:"description"`          // purpose
	SystemPrompt   string           `json:"system_prompt"`        // system prompt content
	UserPromptTmpl string           `json:"user_prompt_template"` // Go template for the user prompt
	Variables      []PromptVariable `json:"variables"`            // variables used in the template
	Version        string           `json:"version"`              // for change tracking
}

// PromptVariable documents one template variable.
type PromptVariable struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     string `json:"default"`
}

// Render executes the user prompt template with the supplied variables.
func (pt *PromptTemplate) Render(vars map[string]interface{}) (string, error) {
	tmpl, err := template.New(pt.ID).Parse(pt.UserPromptTmpl)
	if err != nil {
		return "", fmt.Errorf("prompt %s: bad template: %w", pt.ID, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("prompt %s: render failed: %w", pt.ID, err)
	}
	return buf.String(), nil
}
