package ports

import "context"

// ToolRunner defines how co-browsing side effects are executed against a live
// page. The dispatcher decodes tool calls and drives this interface; hosts
// plug in a browser-backed implementation (or a fake in tests).
type ToolRunner interface {
	// Scroll moves the viewport vertically. direction is "up" or "down";
	// amount is the scroll magnitude in pixels.
	Scroll(ctx context.Context, direction string, amount float64) error

	// NavigateTo scrolls the section with the given id (leading '#' already
	// stripped) into view, aligned to the top. Missing sections are a no-op.
	NavigateTo(ctx context.Context, sectionID string) error

	// HighlightElement scrolls the element into center view and applies a
	// transient highlight that clears itself after a few seconds.
	HighlightElement(ctx context.Context, selector string) error

	// ClickElement activates the element and briefly highlights it.
	ClickElement(ctx context.Context, selector string) error

	// InputText sets the value of the matched form field.
	InputText(ctx context.Context, selector, text string) error
}
