// Package browser executes co-browsing actions against a live page over the
// Chrome DevTools Protocol. It implements ports.ToolRunner for hosts that
// drive a real browser next to the chat session.
package browser

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/foliolabs/folio/internal/logging"
	"github.com/foliolabs/folio/pkg/ports"
)

// Ensure Runner implements the ToolRunner port.
var _ ports.ToolRunner = (*Runner)(nil)

const (
	highlightDuration  = 4 * time.Second
	clickFlashDuration = time.Second

	// elementWait bounds how long selector resolution may block; rod waits
	// for elements to appear by default.
	elementWait = 2 * time.Second
)

// highlightStyle is injected once per page so the transient highlight class
// has a visual effect.
const highlightStyle = `() => {
	if (document.getElementById('folio-highlight-style')) return;
	const style = document.createElement('style');
	style.id = 'folio-highlight-style';
	style.textContent = '.ai-highlight { outline: 3px solid #818cf8; outline-offset: 4px; border-radius: 4px; transition: outline 0.2s; }';
	document.head.appendChild(style);
}`

// Runner implements ports.ToolRunner on a rod page.
type Runner struct {
	browser *rod.Browser
	page    *rod.Page
	logger  *slog.Logger
}

// Option configures the Runner.
type Option func(*Runner)

// WithLogger configures a logger for action outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// Open connects to a browser and opens the portfolio page. controlURL selects
// an already-running browser (remote debugging endpoint); when empty, rod
// launches a local one.
func Open(ctx context.Context, controlURL, url string, opts ...Option) (*Runner, error) {
	b := rod.New().Context(ctx)
	if controlURL != "" {
		b = b.ControlURL(controlURL)
	}
	if err := b.Connect(); err != nil {
		return nil, err
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		_ = b.Close()
		return nil, err
	}

	r := NewRunner(page, opts...)
	r.browser = b
	return r, nil
}

// NewRunner wraps an existing page.
func NewRunner(page *rod.Page, opts ...Option) *Runner {
	r := &Runner{
		page:   page,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if _, err := page.Eval(highlightStyle); err != nil {
		r.logger.Warn("Highlight style injection failed", "err", err)
	}
	return r
}

// Close shuts down the browser if this Runner opened it.
func (r *Runner) Close() error {
	if r.browser == nil {
		return nil
	}
	return r.browser.Close()
}

// PageText extracts the visible text content of the page, the co-browsing
// context sent with every chat turn.
func (r *Runner) PageText(ctx context.Context) (string, error) {
	res, err := r.page.Context(ctx).Eval(`() => {
		const clone = document.body.cloneNode(true);
		clone.querySelectorAll('script, style, noscript, [aria-hidden="true"]').forEach(el => el.remove());
		return (clone.textContent || '').replace(/\s+/g, ' ').trim();
	}`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// Scroll moves the viewport by amount pixels, up or down, smoothly.
func (r *Runner) Scroll(ctx context.Context, direction string, amount float64) error {
	offset := amount
	if direction == "up" {
		offset = -amount
	}
	_, err := r.page.Context(ctx).Eval(
		`(offset) => window.scrollBy({ top: offset, behavior: 'smooth' })`, offset)
	return err
}

// NavigateTo scrolls the section with the given id into view, aligned to the
// top. A missing section is a silent no-op.
func (r *Runner) NavigateTo(ctx context.Context, sectionID string) error {
	res, err := r.page.Context(ctx).Eval(`(id) => {
		const el = document.getElementById(id);
		if (!el) return false;
		el.scrollIntoView({ behavior: 'smooth', block: 'start' });
		return true;
	}`, sectionID)
	if err != nil {
		return err
	}
	if !res.Value.Bool() {
		r.logger.Debug("Section not found", "section", sectionID)
	}
	return nil
}

// HighlightElement scrolls the element into center view and applies the
// transient highlight class, removed again after highlightDuration. The
// selector resolves as an element id first, then as a generic query; invalid
// selectors are logged, never raised.
func (r *Runner) HighlightElement(ctx context.Context, selector string) error {
	res, err := r.page.Context(ctx).Eval(`(selector, ms) => {
		let el = null;
		try {
			el = document.getElementById(selector) || document.querySelector(selector);
		} catch (e) {
			return 'invalid';
		}
		if (!el) return 'missing';
		el.scrollIntoView({ behavior: 'smooth', block: 'center' });
		el.classList.add('ai-highlight');
		setTimeout(() => el.classList.remove('ai-highlight'), ms);
		return 'ok';
	}`, selector, highlightDuration.Milliseconds())
	if err != nil {
		return err
	}
	if outcome := res.Value.Str(); outcome != "ok" {
		r.logger.Warn("Highlight skipped", "selector", selector, "reason", outcome)
	}
	return nil
}

// ClickElement activates the element and flashes the highlight class for
// clickFlashDuration. A missing element is logged and ignored.
func (r *Runner) ClickElement(ctx context.Context, selector string) error {
	el, err := r.page.Context(ctx).Timeout(elementWait).Element(selector)
	if err != nil {
		r.logger.Warn("Element not found for click", "selector", selector, "err", err)
		return nil
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}

	_, err = r.page.Context(ctx).Eval(`(selector, ms) => {
		const el = document.querySelector(selector);
		if (!el) return;
		el.classList.add('ai-highlight');
		setTimeout(() => el.classList.remove('ai-highlight'), ms);
	}`, selector, clickFlashDuration.Milliseconds())
	return err
}

// InputText types text into the matched form field.
func (r *Runner) InputText(ctx context.Context, selector, text string) error {
	el, err := r.page.Context(ctx).Timeout(elementWait).Element(selector)
	if err != nil {
		r.logger.Warn("Element not found for input", "selector", selector, "err", err)
		return nil
	}
	return el.Input(text)
}
