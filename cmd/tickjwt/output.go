package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dmitrymomot/tickjwt/pkg/jsonvalue"
	"github.com/dmitrymomot/tickjwt/pkg/jwt"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

type resultJSON struct {
	Token     string          `json:"token,omitempty"`
	Verified  bool            `json:"verified"`
	Header    jsonvalue.Value `json:"header"`
	Payload   jsonvalue.Value `json:"payload"`
	Signature int             `json:"signatureBytes"`
	Error     string          `json:"error,omitempty"`
}

// printResultsJSON writes results as JSON. tokens, when non-nil, are echoed
// alongside their results.
func printResultsJSON(w io.Writer, tokens []string, results []jwt.Result) error {
	out := make([]resultJSON, len(results))
	for i, res := range results {
		out[i] = resultJSON{
			Verified:  res.Success,
			Header:    res.Header,
			Payload:   res.Payload,
			Signature: len(res.Signature),
		}
		if tokens != nil {
			out[i].Token = tokens[i]
		}
		if res.Err != nil {
			out[i].Error = res.Err.Error()
		}
	}
	if len(out) == 1 {
		return writeJSON(w, out[0])
	}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("JSON encoding error: %w", err)
	}
	return nil
}

func printResults(w io.Writer, tokens []string, results []jwt.Result) {
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		headerColor.Fprintf(w, "Token %d/%d\n", i+1, len(results))
		headerColor.Fprintln(w, strings.Repeat("─", 50))
		if tokens != nil {
			dimColor.Fprintln(w, tokens[i])
		}

		printSection(w, "Header")
		printValue(w, res.Header)
		printSection(w, "Payload")
		printValue(w, res.Payload)

		printSection(w, "Signature")
		if len(res.Signature) > 0 {
			labelColor.Fprint(w, "  length: ")
			fmt.Fprintf(w, "%d bytes\n", len(res.Signature))
		}
		switch {
		case res.Success:
			successColor.Fprintln(w, "  ✓ verified (RS256)")
		case errors.Is(res.Err, jwt.ErrSignatureMismatch):
			errorColor.Fprintln(w, "  ✗ signature does not match")
		default:
			errorColor.Fprintf(w, "  ✗ %v\n", res.Err)
		}
	}
}

func printSection(w io.Writer, title string) {
	fmt.Fprintln(w)
	labelColor.Fprintln(w, title)
}

func printValue(w io.Writer, v jsonvalue.Value) {
	if v.Kind() == jsonvalue.Invalid {
		dimColor.Fprintln(w, "  (not decoded)")
		return
	}
	if !v.IsObject() {
		fmt.Fprintf(w, "  %s\n", v.String())
		return
	}
	for _, key := range v.Keys() {
		labelColor.Fprintf(w, "  %s: ", key)
		fmt.Fprintln(w, v.Get(key).String())
	}
}
