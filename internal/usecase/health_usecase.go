package usecase

import (
	"context"
	"time"
)

// Pinger is any dependency that can report liveness, such as a redis client wrapper.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	emailProvider string
	emailReady    bool
	deps          map[string]Pinger
}

// NewHealthUsecase reports the email provider and the state of optional backends.
func NewHealthUsecase(emailProvider string, emailReady bool, deps map[string]Pinger) HealthUsecase {
	return &healthUsecase{emailProvider: emailProvider, emailReady: emailReady, deps: deps}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
		"email":  "unconfigured",
	}
	if u.emailReady {
		status["email"] = u.emailProvider
	}

	for name, dep := range u.deps {
		if dep == nil {
			continue
		}
		pctx, cancel := context.WithTimeout(ctx, time.Second)
		if err := dep.Ping(pctx); err != nil {
			status[name] = "down"
		} else {
			status[name] = "up"
		}
		cancel()
	}
	return status
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }
