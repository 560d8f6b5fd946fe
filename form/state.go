package form

import (
	"github.com/nijaru/yt-blog/errors"
	"github.com/nijaru/yt-blog/models"
)

// State is everything the form shows. Result and Error are never both set,
// and Loading is true only while a backend call is in flight.
type State struct {
	URL     string
	Options models.FormOptions
	Loading bool
	Error   string
	Result  string

	// token identifies the submission whose resolution the state accepts.
	token string
	cause error
}

// Cause is the error behind State.Error, or nil.
func (s State) Cause() error {
	return s.cause
}

func initialState() State {
	return State{Options: models.DefaultFormOptions()}
}

type EventKind int

const (
	EventURLChanged EventKind = iota
	EventOptionsChanged
	EventSubmitted
	EventSucceeded
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventURLChanged:
		return "url_changed"
	case EventOptionsChanged:
		return "options_changed"
	case EventSubmitted:
		return "submitted"
	case EventSucceeded:
		return "succeeded"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind    EventKind
	URL     string
	Options models.FormOptions
	Token   string
	Result  string
	Err     error
}

// Reduce returns the state that follows s after ev. Resolutions carrying a
// token other than the current one are ignored.
func Reduce(s State, ev Event) State {
	switch ev.Kind {
	case EventURLChanged:
		s.URL = ev.URL
	case EventOptionsChanged:
		s.Options = ev.Options
	case EventSubmitted:
		s.URL = ev.URL
		s.Options = ev.Options
		s.Loading = true
		s.Error = ""
		s.Result = ""
		s.cause = nil
		s.token = ev.Token
	case EventSucceeded:
		if ev.Token != s.token {
			return s
		}
		s.Loading = false
		s.Error = ""
		s.cause = nil
		s.Result = ev.Result
	case EventFailed:
		if ev.Token != s.token {
			return s
		}
		s.Loading = false
		s.Result = ""
		s.cause = ev.Err
		s.Error = errors.UserMessage(ev.Err)
		if s.Error == "" {
			s.Error = errors.MsgGeneric
		}
	}
	return s
}
