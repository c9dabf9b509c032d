// Package session drives the DevCard of the signed-in user through its fetch lifecycle.
//
// A Controller owns all dashboard state for one mount: the current session, the
// loaded view model or classified error, and the local UI state (layout orientation
// and copy confirmation). Loads are keyed on session identity: a new identity
// starts a load, and so does the same identity arriving again after a failure.
// Orientation toggles and repeated sessions of a loaded card never refetch.
// Results arriving for a superseded session, or after Close, are dropped.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/github-devcard/internal/domain"
	"github.com/naka-gawa/github-devcard/internal/embed"
	"github.com/naka-gawa/github-devcard/internal/usecase"
)

const fallbackHandle = "your-github"

// Loader builds the view model for a session. *usecase.Loader satisfies it.
type Loader interface {
	Load(ctx context.Context, s domain.Session) (*domain.ViewModel, error)
}

// Observer is notified with a fresh State after every change.
// Notifications are delivered synchronously and in order; an observer must not
// call back into the Controller from StateChanged.
type Observer interface {
	StateChanged(State)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(State)

func (f ObserverFunc) StateChanged(s State) { f(s) }

// Options configures a Controller.
type Options struct {
	// BaseURL is the public origin used in embed snippets and download links.
	BaseURL string
	// CopyReset is how long the copy confirmation stays set.
	CopyReset time.Duration
}

// Controller is the per-dashboard state machine over Idle, Loading, Success and Error.
type Controller struct {
	loader Loader
	opts   Options
	logger logrus.FieldLogger

	mu          sync.Mutex
	session     *domain.Session
	status      Status
	viewModel   *domain.ViewModel
	err         *domain.FetchError
	orientation embed.Orientation
	copied      bool
	copyTimer   *time.Timer
	copyGen     uint64
	generation  uint64
	cancel      context.CancelFunc
	closed      bool
	observers   map[int]Observer
	nextID      int

	// notifyMu keeps notifications in mutation order.
	notifyMu sync.Mutex
	wg       sync.WaitGroup
}

// New creates an idle Controller with the vertical layout selected.
func New(loader Loader, opts Options, logger logrus.FieldLogger) *Controller {
	return &Controller{
		loader:      loader,
		opts:        opts,
		logger:      logger,
		status:      StatusIdle,
		orientation: embed.Vertical,
		observers:   make(map[int]Observer),
	}
}

// Subscribe registers o and returns a function that removes it.
func (c *Controller) Subscribe(o Observer) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.observers[id] = o
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetSession hands the controller the current identity. A nil session signs out.
// A session with a new UserID starts a load. The same UserID reloads only after a
// failed load (re-authentication); otherwise it just refreshes the display fields.
func (c *Controller) SetSession(s *domain.Session) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	if s == nil {
		if c.session == nil {
			c.mu.Unlock()
			return
		}
		c.stopLoadLocked()
		c.session = nil
		c.status = StatusIdle
		c.viewModel = nil
		c.err = nil
		c.publishLocked()
		return
	}

	next := *s
	sameIdentity := c.session != nil && c.session.UserID == next.UserID
	c.session = &next
	switch {
	case !sameIdentity || c.status == StatusIdle:
		c.viewModel = nil
		c.startLoadLocked()
	case c.status == StatusError:
		// The same user signing in again after a failure.
		c.startLoadLocked()
	}
	c.publishLocked()
}

// Retry reloads the current session after an explicit user request.
// It does nothing while a load is running or when no session is set.
func (c *Controller) Retry() {
	c.mu.Lock()
	if c.closed || c.session == nil || c.status == StatusLoading {
		c.mu.Unlock()
		return
	}
	c.startLoadLocked()
	c.publishLocked()
}

// SetOrientation switches the card layout. It never refetches.
func (c *Controller) SetOrientation(o embed.Orientation) {
	c.mu.Lock()
	if c.closed || c.orientation == o {
		c.mu.Unlock()
		return
	}
	c.orientation = o
	c.publishLocked()
}

// MarkCopied records that the embed snippet was copied. The confirmation
// clears itself after Options.CopyReset.
func (c *Controller) MarkCopied() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.copied = true
	c.copyGen++
	gen := c.copyGen
	if c.copyTimer != nil {
		c.copyTimer.Stop()
	}
	c.copyTimer = time.AfterFunc(c.opts.CopyReset, func() { c.clearCopied(gen) })
	c.publishLocked()
}

func (c *Controller) clearCopied(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.copyGen {
		c.mu.Unlock()
		return
	}
	c.copied = false
	c.copyTimer = nil
	c.publishLocked()
}

// Close tears the controller down. In-flight loads are canceled and their
// results discarded; Close returns once they have finished.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopLoadLocked()
	if c.copyTimer != nil {
		c.copyTimer.Stop()
		c.copyTimer = nil
	}
	c.observers = nil
	c.mu.Unlock()

	c.wg.Wait()
}

// stopLoadLocked invalidates any in-flight load.
func (c *Controller) stopLoadLocked() {
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) startLoadLocked() {
	c.stopLoadLocked()
	gen := c.generation
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.status = StatusLoading
	c.err = nil

	logger := c.logger.WithFields(logrus.Fields{
		"fetch_id": uuid.NewString(),
		"user_id":  c.session.UserID,
	})
	logger.Info("Loading DevCard")

	c.wg.Add(1)
	go c.load(ctx, gen, *c.session, logger)
}

func (c *Controller) load(ctx context.Context, gen uint64, s domain.Session, logger logrus.FieldLogger) {
	defer c.wg.Done()
	start := time.Now()

	vm, err := c.loader.Load(ctx, s)

	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		logger.Debug("Discarding result of a superseded load")
		return
	}
	c.cancel()
	c.cancel = nil

	if err != nil {
		var fe *domain.FetchError
		if !errors.As(err, &fe) {
			fe = domain.NewFetchError(domain.ClassifyError(err), err)
		}
		logger.WithError(err).WithField("kind", fe.Kind.String()).Warn("DevCard load failed")
		c.status = StatusError
		c.viewModel = nil
		c.err = fe
	} else {
		logger.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("DevCard loaded")
		c.status = StatusSuccess
		c.viewModel = vm
		c.err = nil
	}
	c.publishLocked()
}

// publishLocked snapshots the state, releases c.mu and notifies observers.
func (c *Controller) publishLocked() {
	st := c.snapshotLocked()
	observers := make([]Observer, 0, len(c.observers))
	for _, o := range c.observers {
		observers = append(observers, o)
	}
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	for _, o := range observers {
		o.StateChanged(st)
	}
}

func (c *Controller) snapshotLocked() State {
	st := State{
		Status:      c.status,
		ViewModel:   c.viewModel,
		Orientation: c.orientation,
		Copied:      c.copied,
	}
	if c.session != nil {
		s := *c.session
		st.Session = &s
	}

	handle := fallbackHandle
	switch {
	case c.viewModel != nil && c.viewModel.Profile.Login != "":
		handle = c.viewModel.Profile.Login
	case c.session != nil && c.session.Handle != "":
		handle = c.session.Handle
	}

	if c.viewModel != nil {
		st.Card = *c.viewModel
		st.DownloadURL = embed.DownloadURL(c.opts.BaseURL, handle, c.orientation)
	} else {
		st.Card = usecase.FallbackViewModel(c.session)
	}
	st.EmbedCode = embed.Snippet(c.opts.BaseURL, handle, c.orientation)

	if c.err != nil {
		st.Error = c.err.Message()
		kind := c.err.Kind
		st.ErrorKind = &kind
	}
	return st
}
