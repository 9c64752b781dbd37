package dispatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio/pkg/catalog"
	"github.com/foliolabs/folio/pkg/dispatch"
	"github.com/foliolabs/folio/pkg/domain"
)

// recordingRunner captures the action the dispatcher selected.
type recordingRunner struct {
	action    string
	direction string
	amount    float64
	sectionID string
	selector  string
	text      string
}

func (r *recordingRunner) Scroll(ctx context.Context, direction string, amount float64) error {
	r.action, r.direction, r.amount = "scroll", direction, amount
	return nil
}

func (r *recordingRunner) NavigateTo(ctx context.Context, sectionID string) error {
	r.action, r.sectionID = "navigateTo", sectionID
	return nil
}

func (r *recordingRunner) HighlightElement(ctx context.Context, selector string) error {
	r.action, r.selector = "highlightElement", selector
	return nil
}

func (r *recordingRunner) ClickElement(ctx context.Context, selector string) error {
	r.action, r.selector = "clickElement", selector
	return nil
}

func (r *recordingRunner) InputText(ctx context.Context, selector, text string) error {
	r.action, r.selector, r.text = "inputText", selector, text
	return nil
}

func TestDispatch_Scroll(t *testing.T) {
	runner := &recordingRunner{}
	d := dispatch.New(runner)

	err := d.Dispatch(context.Background(), domain.ToolCall{
		Name: catalog.ToolScroll,
		Args: map[string]any{"direction": "up", "amount": float64(250)},
	})
	require.NoError(t, err)
	assert.Equal(t, "scroll", runner.action)
	assert.Equal(t, "up", runner.direction)
	assert.Equal(t, float64(250), runner.amount)
}

func TestDispatch_ScrollDefaultAmount(t *testing.T) {
	runner := &recordingRunner{}
	d := dispatch.New(runner)

	err := d.Dispatch(context.Background(), domain.ToolCall{
		Name: catalog.ToolScroll,
		Args: map[string]any{"direction": "down"},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(dispatch.DefaultScrollAmount), runner.amount)
}

func TestDispatch_NavigateStripsHash(t *testing.T) {
	runner := &recordingRunner{}
	d := dispatch.New(runner)

	err := d.Dispatch(context.Background(), domain.ToolCall{
		Name: catalog.ToolNavigateTo,
		Args: map[string]any{"sectionId": "#projects"},
	})
	require.NoError(t, err)
	assert.Equal(t, "navigateTo", runner.action)
	assert.Equal(t, "projects", runner.sectionID)
}

func TestDispatch_SelectorTools(t *testing.T) {
	runner := &recordingRunner{}
	d := dispatch.New(runner)

	require.NoError(t, d.Dispatch(context.Background(), domain.ToolCall{
		Name: catalog.ToolHighlightElement,
		Args: map[string]any{"selector": ".project-card"},
	}))
	assert.Equal(t, "highlightElement", runner.action)
	assert.Equal(t, ".project-card", runner.selector)

	require.NoError(t, d.Dispatch(context.Background(), domain.ToolCall{
		Name: catalog.ToolClickElement,
		Args: map[string]any{"selector": "#contact-btn"},
	}))
	assert.Equal(t, "clickElement", runner.action)

	require.NoError(t, d.Dispatch(context.Background(), domain.ToolCall{
		Name: catalog.ToolInputText,
		Args: map[string]any{"selector": "input[name=email]", "text": "hi@example.com"},
	}))
	assert.Equal(t, "inputText", runner.action)
	assert.Equal(t, "hi@example.com", runner.text)
}

func TestDispatch_UnknownToolIgnored(t *testing.T) {
	runner := &recordingRunner{}
	d := dispatch.New(runner)

	err := d.Dispatch(context.Background(), domain.ToolCall{Name: "teleport", Args: map[string]any{}})
	require.NoError(t, err, "unknown tools are logged, never fatal")
	assert.Empty(t, runner.action, "no runner action for unknown tools")
}

func TestDispatch_BadArgumentTypes(t *testing.T) {
	runner := &recordingRunner{}
	d := dispatch.New(runner)

	err := d.Dispatch(context.Background(), domain.ToolCall{
		Name: catalog.ToolScroll,
		Args: map[string]any{"amount": "a lot"},
	})
	assert.Error(t, err)
	assert.Empty(t, runner.action)
}
