// Package share builds share links for events and asteroids and hands them
// to a native share capability or the clipboard.
package share

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"spacescope/internal/domain"

	"go.uber.org/zap"
)

// AckWindow is how long the "copied" acknowledgement stays raised
const AckWindow = 2 * time.Second

// ErrCopyFailed wraps clipboard write failures
var ErrCopyFailed = errors.New("share: copy to clipboard failed")

// Intent is what gets shared
type Intent struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Sharer is a native share capability
type Sharer interface {
	Share(ctx context.Context, in Intent) error
}

// Clipboard is a clipboard write capability
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Method records how an intent was delivered
type Method string

const (
	MethodNative    Method = "native"
	MethodClipboard Method = "clipboard"
)

// Outcome is the result of a share
type Outcome struct {
	Intent     Intent `json:"intent"`
	Method     Method `json:"method"`
	Copied     bool   `json:"copied"`
	CopyFailed bool   `json:"copy_failed"`
}

// Resolver shares entities. A nil Sharer means no native capability.
type Resolver struct {
	origin    string
	sharer    Sharer
	clipboard Clipboard
	logger    *zap.Logger
	ackWindow time.Duration

	mu     sync.Mutex
	copied bool
	timer  *time.Timer
}

// NewResolver creates a resolver building links under origin
func NewResolver(origin string, sharer Sharer, clipboard Clipboard, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		origin:    strings.TrimRight(origin, "/"),
		sharer:    sharer,
		clipboard: clipboard,
		logger:    logger,
		ackWindow: AckWindow,
	}
}

// IntentFor builds the share intent for e
func (r *Resolver) IntentFor(e domain.Entity) Intent {
	return Intent{
		URL:   fmt.Sprintf("%s/#/events?event=%s", r.origin, url.QueryEscape(domain.ResolveID(e))),
		Title: "SpaceScope: " + e.DisplayName(),
		Text:  "Tracking " + e.DisplayName() + " near Earth!",
	}
}

// Share delivers e through the native capability when present, ignoring
// its errors (the user may cancel). Otherwise it copies the link and raises
// the copied acknowledgement. A clipboard failure is reported in the
// outcome and as an error wrapping ErrCopyFailed.
func (r *Resolver) Share(ctx context.Context, e domain.Entity) (Outcome, error) {
	in := r.IntentFor(e)

	if r.sharer != nil {
		if err := r.sharer.Share(ctx, in); err != nil {
			r.logger.Debug("native share dismissed", zap.Error(err))
		}
		return Outcome{Intent: in, Method: MethodNative}, nil
	}

	if r.clipboard == nil {
		return Outcome{Intent: in, Method: MethodClipboard, CopyFailed: true}, fmt.Errorf("%w: no clipboard", ErrCopyFailed)
	}
	if err := r.clipboard.WriteText(ctx, in.URL); err != nil {
		r.logger.Warn("clipboard write failed", zap.Error(err))
		return Outcome{Intent: in, Method: MethodClipboard, CopyFailed: true}, fmt.Errorf("%w: %v", ErrCopyFailed, err)
	}

	r.acknowledge()
	return Outcome{Intent: in, Method: MethodClipboard, Copied: true}, nil
}

func (r *Resolver) acknowledge() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.copied = true
	r.timer = time.AfterFunc(r.ackWindow, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.copied = false
	})
}

// Copied reports whether the copied acknowledgement is raised
func (r *Resolver) Copied() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copied
}

// Close stops the acknowledgement timer
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.copied = false
}

// MemoryClipboard keeps the last copied text. The HTTP layer uses it to
// return the link to the browser, which owns the real clipboard.
type MemoryClipboard struct {
	mu   sync.Mutex
	last string
}

// WriteText stores text
func (c *MemoryClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = text
	return nil
}

// Last returns the most recently copied text
func (c *MemoryClipboard) Last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
