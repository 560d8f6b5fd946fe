package form

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nijaru/yt-blog/backend"
	"github.com/nijaru/yt-blog/errors"
	"github.com/nijaru/yt-blog/models"
	"github.com/nijaru/yt-blog/validation"
	"github.com/sirupsen/logrus"
)

// Controller owns one form's state. All changes go through Reduce, and
// observers see every resulting state in dispatch order.
type Controller struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex
	state     State
	observers []func(State)

	processor backend.Processor
	logger    *logrus.Entry
	newToken  func() string
}

type Option func(*Controller)

func WithLogger(logger *logrus.Entry) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func NewController(processor backend.Processor, opts ...Option) *Controller {
	c := &Controller{
		state:     initialState(),
		processor: processor,
		logger:    logrus.NewEntry(logrus.StandardLogger()),
		newToken:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnChange registers fn to receive each new state. fn may call State but
// must not call Submit, SetURL or SetOptions.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

func (c *Controller) SetURL(rawURL string) {
	c.dispatch(Event{Kind: EventURLChanged, URL: rawURL})
}

func (c *Controller) SetOptions(opts models.FormOptions) error {
	if err := validation.ValidateOptions(opts); err != nil {
		return err
	}
	c.dispatch(Event{Kind: EventOptionsChanged, Options: opts})
	return nil
}

// Submit runs one request/response cycle for rawURL and opts and returns the
// state once it resolves. Failures end up in State.Error; a later Submit
// supersedes an earlier one that is still in flight.
func (c *Controller) Submit(ctx context.Context, rawURL string, opts models.FormOptions) State {
	token := c.newToken()
	c.dispatch(Event{Kind: EventSubmitted, URL: rawURL, Options: opts, Token: token})

	logger := c.logger.WithField("submission", token)

	if err := validation.ValidateOptions(opts); err != nil {
		logger.WithError(err).Warn("Rejected form options")
		return c.fail(token, err)
	}

	videoID, err := validation.ExtractVideoID(rawURL)
	if err != nil {
		logger.WithField("url", rawURL).Warn("Could not extract video id")
		return c.fail(token, err)
	}

	logger = logger.WithField("video_id", videoID)
	logger.Info("Submitting video")

	resp, err := c.processor.ProcessVideo(ctx, videoID, opts)
	if err != nil {
		logger.WithError(err).Error("Video processing failed")
		return c.fail(token, err)
	}
	if resp == nil || resp.BlogPost == nil {
		return c.fail(token, errors.Network("form.Submit", nil, "Invalid response from server"))
	}

	c.dispatch(Event{Kind: EventSucceeded, Token: token, Result: *resp.BlogPost})
	logger.Info("Blog post ready")
	return c.State()
}

func (c *Controller) fail(token string, err error) State {
	c.dispatch(Event{Kind: EventFailed, Token: token, Err: err})
	return c.State()
}

// dispatch applies ev and notifies observers. notifyMu orders whole
// dispatches; mu is held only around the reduce, so observers may read State.
func (c *Controller) dispatch(ev Event) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	next := Reduce(c.state, ev)
	c.state = next
	observers := c.observers
	c.mu.Unlock()

	c.logger.WithFields(logrus.Fields{
		"event":   ev.Kind.String(),
		"loading": next.Loading,
	}).Debug("Form state changed")

	for _, fn := range observers {
		fn(next)
	}
}
