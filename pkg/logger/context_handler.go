package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a record's context, for
// example the id of the decode request that logged it.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler adds extracted attributes to every record before passing it
// to next.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewContextHandler wraps next so each record gains the attributes its
// context yields. Wrapping a handler built here again extends its extractor
// list instead of nesting, so a decoder logger derived from a CLI logger
// runs every extractor once. Nil extractors are ignored.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	var merged []ContextExtractor
	if inner, ok := next.(*contextHandler); ok {
		next = inner.next
		merged = append(merged, inner.extractors...)
	}
	for _, ex := range extractors {
		if ex != nil {
			merged = append(merged, ex)
		}
	}
	return &contextHandler{next: next, extractors: merged}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle evaluates the extractors per record. An attribute the caller passed
// explicitly wins over an extracted one with the same key, and the first
// extractor to produce a key wins over later ones.
func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if ctx == nil || len(h.extractors) == 0 {
		return h.next.Handle(ctx, rec)
	}

	seen := make(map[string]struct{}, rec.NumAttrs()+len(h.extractors))
	rec.Attrs(func(a slog.Attr) bool {
		seen[a.Key] = struct{}{}
		return true
	})
	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok {
			continue
		}
		if _, dup := seen[attr.Key]; dup {
			continue
		}
		seen[attr.Key] = struct{}{}
		rec.AddAttrs(attr)
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
