package pipeline

// RequestErrorKind classifies a fatal, whole-request failure: one that
// prevents SummarizeResponse from being built at all, as opposed to a
// per-item entity.PipelineError collected inside a successful response.
type RequestErrorKind string

const (
	ErrorInvalidRequest    RequestErrorKind = "invalid_request"
	ErrorKeywordEmpty      RequestErrorKind = "keyword_empty"
	ErrorNoFeedsConfigured RequestErrorKind = "no_feeds_configured"
	ErrorNoResults         RequestErrorKind = "no_results"
)

// RequestError is returned instead of a SummarizeResponse when the
// request cannot proceed at all.
type RequestError struct {
	Kind    RequestErrorKind
	Message string
}

func (e *RequestError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func newRequestError(kind RequestErrorKind, message string) *RequestError {
	return &RequestError{Kind: kind, Message: message}
}
