package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the decode request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Algorithm records the JWS algorithm under the key "alg".
func Algorithm(alg string) slog.Attr {
	return slog.String("alg", alg)
}

// Outcome records a verification outcome under the key "verified".
func Outcome(ok bool) slog.Attr {
	return slog.Bool("verified", ok)
}

// Ticks records an elapsed number of scheduler ticks under the key "ticks".
func Ticks(n uint64) slog.Attr {
	return slog.Uint64("ticks", n)
}

// State records a lifecycle state name under the key "state".
func State(name string) slog.Attr {
	return slog.String("state", name)
}

// Duration records a wall-clock duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
