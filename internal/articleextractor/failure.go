package articleextractor

import "fmt"

// FailureKind classifies why Extract could not produce an Article.
type FailureKind string

const (
	FailureNetworkError FailureKind = "network_error"
	FailureHTTPError    FailureKind = "http_error"
	FailureTimeout      FailureKind = "timeout"
	FailureBodyTooShort FailureKind = "body_too_short"
	FailureUnparseable  FailureKind = "unparseable"
)

// ExtractionFailure is returned (never panics) when Extract cannot produce
// an Article meeting the minimum body-length invariant.
type ExtractionFailure struct {
	Kind       FailureKind
	HTTPStatus int
	Err        error
}

func (f *ExtractionFailure) Error() string {
	if f.Kind == FailureHTTPError {
		return fmt.Sprintf("extraction failed: %s(%d)", f.Kind, f.HTTPStatus)
	}
	if f.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("extraction failed: %s", f.Kind)
}

func (f *ExtractionFailure) Unwrap() error { return f.Err }

func failNetwork(err error) *ExtractionFailure {
	return &ExtractionFailure{Kind: FailureNetworkError, Err: err}
}

func failHTTP(status int) *ExtractionFailure {
	return &ExtractionFailure{Kind: FailureHTTPError, HTTPStatus: status}
}

func failTimeout(err error) *ExtractionFailure {
	return &ExtractionFailure{Kind: FailureTimeout, Err: err}
}

func failBodyTooShort() *ExtractionFailure { return &ExtractionFailure{Kind: FailureBodyTooShort} }

func failUnparseable(err error) *ExtractionFailure {
	return &ExtractionFailure{Kind: FailureUnparseable, Err: err}
}
