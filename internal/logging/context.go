package logging

import (
	"context"
	"log/slog"
	"slices"
)

// TestKey is the attribute naming the test a record belongs to.
const TestKey = "test"

type testNameKey struct{}

// WithTest marks ctx as running on behalf of the named test. Records logged
// with ctx through a ContextHandler carry test=<name>.
func WithTest(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, testNameKey{}, name)
}

func TestName(ctx context.Context) string {
	name, _ := ctx.Value(testNameKey{}).(string)
	return name
}

// ContextHandler adds the test name found in the record's context, unless
// the logger was already bound to one with With.
type ContextHandler struct {
	next   slog.Handler
	tagged bool
}

func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if !h.tagged && ctx != nil {
		if name := TestName(ctx); name != "" {
			record = record.Clone()
			record.AddAttrs(slog.String(TestKey, name))
		}
	}

	return h.next.Handle(ctx, record)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	tagged := h.tagged || slices.ContainsFunc(attrs, func(a slog.Attr) bool {
		return a.Key == TestKey
	})

	return &ContextHandler{next: h.next.WithAttrs(attrs), tagged: tagged}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name), tagged: h.tagged}
}
