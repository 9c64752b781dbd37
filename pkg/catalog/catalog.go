// Package catalog declares the fixed set of co-browsing actions the assistant
// may invoke. The catalog is defined once at startup and shared verbatim
// between the completion request and the client-side dispatcher; both sides
// must agree on the exact names and argument schemas.
package catalog

import (
	"fmt"
	"strings"
)

// Tool names. The assistant selects at most one per turn.
const (
	ToolScroll           = "scroll"
	ToolNavigateTo       = "navigateTo"
	ToolHighlightElement = "highlightElement"
	ToolClickElement     = "clickElement"
	ToolInputText        = "inputText"
)

// SectionIDs are the navigable page sections, in display order.
// navigateTo accepts them with or without the leading '#'.
var SectionIDs = []string{"#home", "#about", "#skills", "#experience", "#projects", "#contact"}

// Definition describes one tool: its name, what it does, and a JSON-schema
// object enumerating its parameters. The shape is compatible with the OpenAI
// function-calling schema.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Tools returns the full catalog. The returned slice is freshly allocated so
// callers cannot mutate the canonical definitions.
func Tools() []Definition {
	return []Definition{
		{
			Name:        ToolScroll,
			Description: "Scroll the page up or down",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"direction": map[string]any{"type": "string", "enum": []string{"up", "down"}},
				},
				"required": []string{"direction"},
			},
		},
		{
			Name:        ToolNavigateTo,
			Description: "Scroll to a specific section",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"sectionId": map[string]any{"type": "string", "description": "The ID of the section (e.g., #projects)"},
				},
				"required": []string{"sectionId"},
			},
		},
		{
			Name:        ToolHighlightElement,
			Description: "Highlight a specific element on the page",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"selector": map[string]any{"type": "string", "description": "CSS selector of the element to highlight"},
				},
				"required": []string{"selector"},
			},
		},
		{
			Name:        ToolClickElement,
			Description: "Click a specific element on the page",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"selector": map[string]any{"type": "string", "description": "CSS selector of the element to click"},
				},
				"required": []string{"selector"},
			},
		},
		{
			Name:        ToolInputText,
			Description: "Input text into a form field",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"selector": map[string]any{"type": "string", "description": "CSS selector of the input element"},
					"text":     map[string]any{"type": "string", "description": "The text to input"},
				},
				"required": []string{"selector", "text"},
			},
		},
	}
}

// Contains reports whether name is part of the catalog.
func Contains(name string) bool {
	switch name {
	case ToolScroll, ToolNavigateTo, ToolHighlightElement, ToolClickElement, ToolInputText:
		return true
	}
	return false
}

// FallbackText synthesizes the conversational reply shown to the user when the
// model returned a tool call without accompanying text. The result is always
// non-empty; unrecognized names get a stable generic sentence.
func FallbackText(name string, args map[string]any) string {
	switch name {
	case ToolScroll:
		direction, _ := args["direction"].(string)
		if direction == "" {
			direction = "down"
		}
		return fmt.Sprintf("Scrolling %s for you!", direction)
	case ToolNavigateTo:
		section, _ := args["sectionId"].(string)
		section = strings.TrimPrefix(section, "#")
		if section == "" {
			section = "that"
		}
		return fmt.Sprintf("Sure! Taking you to the %s section.", section)
	case ToolHighlightElement:
		return "Let me highlight that for you!"
	case ToolClickElement:
		return "Clicking that element for you!"
	case ToolInputText:
		return "Filling in the text for you!"
	default:
		return "On it! Performing the action now."
	}
}
