// Package feedfetcher downloads and parses RSS/Atom feeds for the FeedSource
// entries in the registry, producing normalized FeedEntry values.
package feedfetcher

import "fmt"

// Outcome classifies the result of a single Fetch call. A non-Ok outcome
// yields zero entries but is never fatal to the caller: the pipeline
// degrades gracefully per feed.
type Outcome string

const (
	OutcomeOk                  Outcome = "ok"
	OutcomeNetworkError        Outcome = "network_error"
	OutcomeHTTPError           Outcome = "http_error"
	OutcomeParseError          Outcome = "parse_error"
	OutcomeTimeout             Outcome = "timeout"
	OutcomeCharsetUnresolvable Outcome = "charset_unresolvable"
)

// Result is the full return value of Fetch: the outcome tag plus any
// extra detail needed for logging (HTTP status on OutcomeHTTPError).
type Result struct {
	Outcome    Outcome
	HTTPStatus int
	Err        error
}

func (r Result) String() string {
	if r.Outcome == OutcomeHTTPError {
		return fmt.Sprintf("%s(%d)", r.Outcome, r.HTTPStatus)
	}
	return string(r.Outcome)
}

func ok() Result                    { return Result{Outcome: OutcomeOk} }
func networkError(err error) Result { return Result{Outcome: OutcomeNetworkError, Err: err} }
func httpError(status int) Result   { return Result{Outcome: OutcomeHTTPError, HTTPStatus: status} }
func parseError(err error) Result   { return Result{Outcome: OutcomeParseError, Err: err} }
func timeout(err error) Result      { return Result{Outcome: OutcomeTimeout, Err: err} }
func charsetUnresolvable() Result   { return Result{Outcome: OutcomeCharsetUnresolvable} }
