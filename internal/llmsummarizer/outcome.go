package llmsummarizer

import "fmt"

// ErrorKind classifies why Summarize could not produce a SummarizedArticle.
type ErrorKind string

const (
	ErrorLLMUnavailable ErrorKind = "llm_unavailable"
	ErrorRateLimited    ErrorKind = "rate_limited"
	ErrorTimeout        ErrorKind = "timeout"
	ErrorSummaryInvalid ErrorKind = "summary_invalid"
	ErrorInputTooLarge  ErrorKind = "input_too_large"
)

// SummarizeError is returned (never panics) when Summarize fails.
type SummarizeError struct {
	Kind ErrorKind
	Err  error
}

func (e *SummarizeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("summarize failed: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("summarize failed: %s", e.Kind)
}

func (e *SummarizeError) Unwrap() error { return e.Err }

func errUnavailable(err error) *SummarizeError { return &SummarizeError{Kind: ErrorLLMUnavailable, Err: err} }
func errRateLimited(err error) *SummarizeError { return &SummarizeError{Kind: ErrorRateLimited, Err: err} }
func errTimeout(err error) *SummarizeError     { return &SummarizeError{Kind: ErrorTimeout, Err: err} }
func errInvalid(err error) *SummarizeError     { return &SummarizeError{Kind: ErrorSummaryInvalid, Err: err} }
func errTooLarge(err error) *SummarizeError    { return &SummarizeError{Kind: ErrorInputTooLarge, Err: err} }
