package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/careerco/companion/internal/store"
)

// LoggingProvider is a decorator that records every text-provider call in
// the gateway event log.
type LoggingProvider struct {
	inner  Provider
	events store.EventRepo
	log    *slog.Logger
}

var _ Provider = (*LoggingProvider)(nil)

// WithLogging wraps a Provider with event logging. A nil events repo
// disables persistence but keeps the slog warnings.
func WithLogging(p Provider, events store.EventRepo, log *slog.Logger) Provider {
	return &LoggingProvider{inner: p, events: events, log: log}
}

func (l *LoggingProvider) Name() string {
	return l.inner.Name()
}

func (l *LoggingProvider) GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error) {
	start := time.Now()
	resp, err := l.inner.GenerateText(ctx, req)

	data := store.GatewayEventData{
		Purpose:    PurposeFrom(ctx),
		Provider:   l.inner.Name(),
		Model:      "",
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
		InputChars: len(req.System) + len(req.Prompt),
	}
	if resp != nil {
		data.Model = resp.Model
		data.OutputChars = len(resp.Text)
	}
	if err != nil {
		data.Error = err.Error()
	}
	l.record(ctx, data)

	return resp, err
}

func (l *LoggingProvider) NewChat(ctx context.Context, cfg ChatConfig) (Chat, error) {
	chat, err := l.inner.NewChat(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &loggingChat{inner: chat, provider: l}, nil
}

type loggingChat struct {
	inner    Chat
	provider *LoggingProvider
}

func (c *loggingChat) Send(ctx context.Context, text string) (*ChatReply, error) {
	start := time.Now()
	reply, err := c.inner.Send(ctx, text)

	data := store.GatewayEventData{
		Purpose:    PurposeFrom(ctx),
		Provider:   c.provider.inner.Name(),
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
		InputChars: len(text),
	}
	if reply != nil {
		data.OutputChars = len(reply.Text)
	}
	if err != nil {
		data.Error = err.Error()
	}
	c.provider.record(ctx, data)

	return reply, err
}

// record appends the event; logging failures never fail the request.
func (l *LoggingProvider) record(ctx context.Context, data store.GatewayEventData) {
	if l.events == nil {
		return
	}
	if err := l.events.Append(context.WithoutCancel(ctx), data); err != nil {
		l.log.Warn("failed to log gateway event", "err", err)
	}
}
