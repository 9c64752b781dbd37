package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio/pkg/adapters/memory"
	"github.com/foliolabs/folio/pkg/catalog"
	"github.com/foliolabs/folio/pkg/chat"
	"github.com/foliolabs/folio/pkg/domain"
	"github.com/foliolabs/folio/pkg/ports"
)

// fakeCompleter returns a scripted completion and records the last request.
type fakeCompleter struct {
	completion ports.Completion
	err        error
	lastReq    ports.CompletionRequest
}

func (f *fakeCompleter) Complete(ctx context.Context, req ports.CompletionRequest) (ports.Completion, error) {
	f.lastReq = req
	if f.err != nil {
		return ports.Completion{}, f.err
	}
	return f.completion, nil
}

func newTurnRequest(session string) domain.ChatRequest {
	return domain.ChatRequest{
		Message:   "show me your projects",
		Context:   "Home About Skills Experience Projects Contact",
		SessionID: session,
	}
}

func TestProcessTurn_AppendsBothTurns(t *testing.T) {
	store := memory.NewStore()
	completer := &fakeCompleter{completion: ports.Completion{Text: "Here they are!"}}
	p := chat.NewProcessor(store, completer)

	resp, err := p.ProcessTurn(context.Background(), newTurnRequest("s1"))
	require.NoError(t, err)
	assert.Equal(t, "Here they are!", resp.Response)
	assert.Nil(t, resp.ToolCall)

	msgs, err := store.Recent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
	assert.Equal(t, "show me your projects", msgs[0].Content)
	assert.Equal(t, domain.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Here they are!", msgs[1].Content)
}

func TestProcessTurn_HistoryGrowsTwoPerCycle(t *testing.T) {
	store := memory.NewStore()
	completer := &fakeCompleter{completion: ports.Completion{Text: "ok"}}
	p := chat.NewProcessor(store, completer)

	for n := 1; n <= 15; n++ {
		_, err := p.ProcessTurn(context.Background(), newTurnRequest("s1"))
		require.NoError(t, err)

		msgs, err := store.Recent(context.Background(), "s1")
		require.NoError(t, err)

		want := 2 * n
		if want > ports.HistoryLimit {
			want = ports.HistoryLimit
		}
		require.Len(t, msgs, want, "after %d turns", n)
		for i := 1; i < len(msgs); i++ {
			assert.Greater(t, msgs[i].ID, msgs[i-1].ID, "history must stay chronological")
		}
	}
}

func TestProcessTurn_HistoryIncludesCurrentMessage(t *testing.T) {
	store := memory.NewStore()
	completer := &fakeCompleter{completion: ports.Completion{Text: "ok"}}
	p := chat.NewProcessor(store, completer)

	_, err := p.ProcessTurn(context.Background(), newTurnRequest("s1"))
	require.NoError(t, err)

	require.Len(t, completer.lastReq.History, 1)
	assert.Equal(t, "show me your projects", completer.lastReq.History[0].Content)
	assert.Len(t, completer.lastReq.Tools, 5, "the full catalog is sent every turn")
}

func TestProcessTurn_ValidationErrors(t *testing.T) {
	p := chat.NewProcessor(memory.NewStore(), &fakeCompleter{})

	cases := []domain.ChatRequest{
		{},
		{Message: "hi", Context: "page"},
		{Message: "hi", SessionID: "s"},
		{Context: "page", SessionID: "s"},
	}
	for _, req := range cases {
		_, err := p.ProcessTurn(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	}
}

func TestProcessTurn_NotConfigured(t *testing.T) {
	p := chat.NewProcessor(memory.NewStore(), nil)
	assert.False(t, p.Ready())

	_, err := p.ProcessTurn(context.Background(), newTurnRequest("s1"))
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestProcessTurn_UpstreamFailureKeepsUserTurn(t *testing.T) {
	store := memory.NewStore()
	completer := &fakeCompleter{err: errors.New("boom")}
	p := chat.NewProcessor(store, completer)

	_, err := p.ProcessTurn(context.Background(), newTurnRequest("s1"))
	require.Error(t, err)

	msgs, err := store.Recent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, msgs, 1, "only the user turn is recorded on upstream failure")
	assert.Equal(t, domain.RoleUser, msgs[0].Role)
}

func TestProcessTurn_FallbackTextForSilentToolCall(t *testing.T) {
	cases := []struct {
		name string
		args map[string]any
		want string
	}{
		{catalog.ToolScroll, map[string]any{"direction": "up"}, "Scrolling up for you!"},
		{catalog.ToolScroll, map[string]any{}, "Scrolling down for you!"},
		{catalog.ToolNavigateTo, map[string]any{"sectionId": "#projects"}, "Sure! Taking you to the projects section."},
		{catalog.ToolNavigateTo, map[string]any{}, "Sure! Taking you to the that section."},
		{catalog.ToolHighlightElement, map[string]any{"selector": "#p1"}, "Let me highlight that for you!"},
		{catalog.ToolClickElement, map[string]any{"selector": "a"}, "Clicking that element for you!"},
		{catalog.ToolInputText, map[string]any{"selector": "input", "text": "hi"}, "Filling in the text for you!"},
		{"teleport", map[string]any{}, "On it! Performing the action now."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewStore()
			completer := &fakeCompleter{completion: ports.Completion{
				ToolCall: &domain.ToolCall{Name: tc.name, Args: tc.args},
			}}
			p := chat.NewProcessor(store, completer)

			resp, err := p.ProcessTurn(context.Background(), newTurnRequest("s1"))
			require.NoError(t, err)
			require.NotNil(t, resp.ToolCall)
			assert.Equal(t, tc.name, resp.ToolCall.Name)
			assert.Equal(t, tc.want, resp.Response)

			// The synthesized text is also what lands in history.
			msgs, err := store.Recent(context.Background(), "s1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, msgs[1].Content)
		})
	}
}

func TestProcessTurn_ModelTextWinsOverFallback(t *testing.T) {
	store := memory.NewStore()
	completer := &fakeCompleter{completion: ports.Completion{
		Text:     "Taking you there now.",
		ToolCall: &domain.ToolCall{Name: catalog.ToolNavigateTo, Args: map[string]any{"sectionId": "#about"}},
	}}
	p := chat.NewProcessor(store, completer)

	resp, err := p.ProcessTurn(context.Background(), newTurnRequest("s1"))
	require.NoError(t, err)
	assert.Equal(t, "Taking you there now.", resp.Response)
}

func TestSystemPrompt_TruncatesContext(t *testing.T) {
	long := strings.Repeat("x", chat.ContextLimit+500)

	truncated := chat.TruncateContext(long)
	assert.Len(t, []rune(truncated), chat.ContextLimit)

	prompt := chat.SystemPrompt(long)
	assert.Contains(t, prompt, truncated)
	assert.NotContains(t, prompt, long)
	assert.Contains(t, prompt, "#home, #about, #skills, #experience, #projects, #contact")
}

func TestSystemPrompt_ShortContextUnchanged(t *testing.T) {
	prompt := chat.SystemPrompt("café ☕")
	assert.Contains(t, prompt, "café ☕")
}
