package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
	"github.com/Ehphp/RequestEstimator-sub000/internal/repository"
)

// UseCaseEvent is the outcome of one service call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	Fields    map[string]any
}

// Success reports whether the use case returned no error.
func (e UseCaseEvent) Success() bool { return e.Err == nil }

// Rejected reports whether the use case failed on caller input (a coded
// error or a missing record) rather than on the store.
func (e UseCaseEvent) Rejected() bool {
	return e.Err != nil && (ErrorCode(e.Err) != "" || errors.Is(e.Err, repository.ErrNotFound))
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type multiObserver []UseCaseObserver

func (m multiObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		obs.ObserveUseCase(ctx, event)
	}
}

// ErrorCode extracts the machine-readable code of an app-layer error, or ""
// for any other error.
func ErrorCode(err error) string {
	var (
		estErr  *app.EstimateError
		hierErr *app.HierarchyError
		dashErr *app.DashboardError
	)
	switch {
	case errors.As(err, &estErr):
		return string(estErr.Code)
	case errors.As(err, &hierErr):
		return string(hierErr.Code)
	case errors.As(err, &dashErr):
		return string(dashErr.Code)
	}
	return ""
}

type slogObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes use-case events as text lines to w.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// NewSlogUseCaseObserver reports use-case events through logger. Rejected
// calls log at warn level, store failures at error level.
func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &slogObserver{logger: logger}
}

func (o *slogObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []slog.Attr{
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success()),
	}

	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}

	level := slog.LevelInfo
	if event.Err != nil {
		level = slog.LevelError
		if event.Rejected() {
			level = slog.LevelWarn
		}
		if code := ErrorCode(event.Err); code != "" {
			attrs = append(attrs, slog.String("error_code", code))
		}
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "service_use_case", attrs...)
}

// useCaseObserverOrNoop folds the non-nil observers into one.
func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var live multiObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	}
	return live
}

// trackUseCase starts timing a use case. Call the returned func with the
// use case's final error, usually from a defer over a named return.
func trackUseCase(ctx context.Context, obs UseCaseObserver, name string, fields map[string]any) func(err error) {
	startedAt := time.Now().UTC()
	return func(err error) {
		obs.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Err:       err,
			Fields:    fields,
		})
	}
}
