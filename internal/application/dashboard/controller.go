// Package dashboard holds the dashboard state machine: it turns the user's
// selection into a ranking request, keeps the current result set and exports it.
//
// Rendering is delegated to a View so the same controller drives a terminal or
// any other front end.
package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shoprank/backend/internal/domain/listing"
)

// DefaultLoadErrorMessage is shown when a failed response carries no message
const DefaultLoadErrorMessage = "데이터 로드 실패"

// View is the rendering target of a Controller
type View interface {
	ShowLoading()
	Render(items []listing.Listing)
	ShowResults(title string, count int)
	// ShowError reports a failed load; the view offers a manual retry.
	ShowError(message string)
	// PromptDownload hands an export to the user and reports whether it was saved.
	PromptDownload(data []byte, filename string) error
	Alert(message string)
}

// LoadError is a failed load as shown to the user
type LoadError struct {
	Message string
	Err     error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	return e.Message
}

// Unwrap returns the underlying fetch error, if any
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Controller owns the selection and the current listing collection
type Controller struct {
	fetcher Fetcher
	view    View
	logger  *zap.Logger
	now     func() time.Time

	mu        sync.Mutex
	selection Selection
	items     []listing.Listing
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the controller logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithClock sets the clock used for export file names
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithSelection sets the initial selection
func WithSelection(s Selection) Option {
	return func(c *Controller) {
		c.selection = s
	}
}

// NewController creates a controller with the default selection and no items
func NewController(fetcher Fetcher, view View, opts ...Option) *Controller {
	c := &Controller{
		fetcher:   fetcher,
		view:      view,
		logger:    zap.NewNop(),
		now:       time.Now,
		selection: DefaultSelection(),
		items:     []listing.Listing{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Selection returns the current selection
func (c *Controller) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// Items returns a copy of the current collection
func (c *Controller) Items() []listing.Listing {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]listing.Listing, len(c.items))
	copy(out, c.items)
	return out
}

// Load fetches listings for the current selection and replaces the collection.
// Overlapping loads are neither deduplicated nor cancelled: whichever response
// resolves last owns the collection.
func (c *Controller) Load(ctx context.Context) error {
	selection := c.Selection()
	path := BuildURL(selection)
	c.view.ShowLoading()

	payload, err := c.fetcher.Fetch(ctx, path)
	if err != nil {
		return c.fail(path, &LoadError{Message: err.Error(), Err: err})
	}
	if !payload.Success {
		msg := payload.Message
		if msg == "" {
			msg = DefaultLoadErrorMessage
		}
		return c.fail(path, &LoadError{Message: msg})
	}

	items := payload.Items
	if items == nil {
		items = []listing.Listing{}
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	c.logger.Debug("Listings loaded",
		zap.String("path", path),
		zap.Int("count", len(items)),
		zap.Bool("sample", payload.Note != ""),
	)
	c.Render()
	c.view.ShowResults(selection.PlatformCode().ResultsTitle(), len(items))
	return nil
}

func (c *Controller) fail(path string, loadErr *LoadError) error {
	c.logger.Warn("Listing load failed", zap.String("path", path), zap.Error(loadErr))
	c.view.ShowError(loadErr.Message)
	return loadErr
}

// Retry reloads the current selection after a failure
func (c *Controller) Retry(ctx context.Context) error {
	return c.Load(ctx)
}

// Render pushes the current collection to the view
func (c *Controller) Render() {
	c.view.Render(c.Items())
}

// SetPlatform changes the platform and reloads
func (c *Controller) SetPlatform(ctx context.Context, platform string) error {
	return c.update(ctx, func(s *Selection) { s.Platform = platform })
}

// SetCategory changes the category and reloads
func (c *Controller) SetCategory(ctx context.Context, category string) error {
	return c.update(ctx, func(s *Selection) { s.Category = category })
}

// SetSort changes the sort order and reloads
func (c *Controller) SetSort(ctx context.Context, sort string) error {
	return c.update(ctx, func(s *Selection) { s.Sort = sort })
}

// SetQuery changes the search text and reloads
func (c *Controller) SetQuery(ctx context.Context, query string) error {
	return c.update(ctx, func(s *Selection) { s.Query = query })
}

func (c *Controller) update(ctx context.Context, apply func(*Selection)) error {
	c.mu.Lock()
	apply(&c.selection)
	c.mu.Unlock()
	return c.Load(ctx)
}
