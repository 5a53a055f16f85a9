// Package contactform runs the contact form submission: validate the draft,
// post it to the relay once, then clear or keep the draft depending on the answer.
package contactform

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"portfolio-web/internal/domain"
	"portfolio-web/internal/uistate"
)

const (
	DefaultRequestTimeout  = 10 * time.Second
	DefaultSuccessCooldown = 3 * time.Second
)

type State int

const (
	Idle State = iota
	Validating
	Submitting
	Succeeded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	}
	return "unknown"
}

type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeInvalid
	OutcomeFailed
	// OutcomeIgnored means a submission was already running or cooling down.
	OutcomeIgnored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFailed:
		return "failed"
	case OutcomeIgnored:
		return "ignored"
	}
	return "unknown"
}

type Reason string

const (
	ReasonNone       Reason = ""
	ReasonValidation Reason = "validation"
	ReasonNetwork    Reason = "network"
	ReasonProvider   Reason = "provider"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

type Toast struct {
	Kind    ToastKind
	Message string
}

// Notifier shows transient notifications.
type Notifier interface {
	Notify(Toast)
}

type NotifierFunc func(Toast)

func (f NotifierFunc) Notify(t Toast) { f(t) }

// Result describes what one Submit call did.
type Result struct {
	Outcome     Outcome
	Reason      Reason
	Receipt     *Receipt
	FieldErrors map[string]string
	Err         error
}

type Option func(*Form)

func WithRequestTimeout(d time.Duration) Option {
	return func(f *Form) { f.timeout = d }
}

func WithSuccessCooldown(d time.Duration) Option {
	return func(f *Form) { f.cooldown = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Form) { f.log = l }
}

// Form is one contact form instance. At most one request is in flight per Form.
type Form struct {
	store    *uistate.Store
	sender   Sender
	notifier Notifier
	messages domain.ContactMessages
	timeout  time.Duration
	cooldown time.Duration
	log      *slog.Logger

	mu     sync.Mutex
	state  State
	timer  *time.Timer
	closed bool
}

func NewForm(store *uistate.Store, sender Sender, notifier Notifier, messages domain.ContactMessages, opts ...Option) *Form {
	f := &Form{
		store:    store,
		sender:   sender,
		notifier: notifier,
		messages: messages,
		timeout:  DefaultRequestTimeout,
		cooldown: DefaultSuccessCooldown,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ButtonLabel is the localized label of the submit control in the current state.
func (f *Form) ButtonLabel() string {
	switch f.State() {
	case Submitting:
		return f.messages.SendingButton
	case Succeeded:
		return f.messages.SentButton
	}
	return f.messages.SendButton
}

// Submit validates the stored draft and relays it.
func (f *Form) Submit(ctx context.Context) Result {
	f.mu.Lock()
	if f.closed || f.state != Idle {
		f.mu.Unlock()
		return Result{Outcome: OutcomeIgnored}
	}
	f.state = Validating

	payload := payloadFrom(f.store.Draft())
	if errs := Validate(payload, f.messages.Validation); len(errs) > 0 {
		f.state = Idle
		f.mu.Unlock()
		return Result{Outcome: OutcomeInvalid, Reason: ReasonValidation, FieldErrors: errs}
	}

	f.state = Submitting
	f.store.SetSubmitting(true)
	f.mu.Unlock()

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	receipt, err := f.sender.Send(reqCtx, payload)
	cancel()

	if err != nil {
		f.mu.Lock()
		f.store.SetSubmitting(false)
		f.state = Idle
		f.mu.Unlock()

		reason := ReasonNetwork
		var se *StatusError
		if errors.As(err, &se) {
			reason = ReasonProvider
		}
		f.log.Warn("contact submission failed", "reason", reason, "error", err)
		f.notify(Toast{Kind: ToastError, Message: f.messages.ToastError})
		return Result{Outcome: OutcomeFailed, Reason: reason, Err: err}
	}

	f.mu.Lock()
	f.store.SetSubmitting(false)
	resetErr := f.store.ResetDraft()
	f.state = Succeeded
	if !f.closed {
		f.timer = time.AfterFunc(f.cooldown, f.endCooldown)
	}
	f.mu.Unlock()

	if resetErr != nil {
		f.log.Warn("could not persist cleared draft", "error", resetErr)
	}
	f.notify(Toast{Kind: ToastSuccess, Message: f.messages.ToastSuccess})
	return Result{Outcome: OutcomeSucceeded, Receipt: receipt, Err: resetErr}
}

// Close stops the cooldown timer. Later submissions are ignored.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *Form) endCooldown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Succeeded {
		f.state = Idle
	}
	f.timer = nil
}

func (f *Form) notify(t Toast) {
	if f.notifier != nil {
		f.notifier.Notify(t)
	}
}
