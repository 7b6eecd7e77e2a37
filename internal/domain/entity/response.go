package entity

import "time"

// ArticleResult is one summarized article as returned to a caller.
type ArticleResult struct {
	Title    string
	URL      string
	Source   string
	Summary  string
	Language LanguageHint
	Category Category
}

// PipelineErrorKind classifies a per-item failure recorded in a
// SummarizeResponse's Errors slice. It spans every stage of the
// orchestrator (feed fetch, article extraction, summarization,
// persistence, mail) rather than duplicating each stage's own narrower
// taxonomy.
type PipelineErrorKind string

const (
	PipelineErrorNetwork             PipelineErrorKind = "network_error"
	PipelineErrorTimeout             PipelineErrorKind = "timeout"
	PipelineErrorHTTP                PipelineErrorKind = "http_error"
	PipelineErrorParseError          PipelineErrorKind = "parse_error"
	PipelineErrorCharsetUnresolvable PipelineErrorKind = "charset_unresolvable"
	PipelineErrorBodyTooShort        PipelineErrorKind = "body_too_short"
	PipelineErrorUnparseable         PipelineErrorKind = "unparseable"
	PipelineErrorLLMUnavailable      PipelineErrorKind = "llm_unavailable"
	PipelineErrorRateLimited         PipelineErrorKind = "rate_limited"
	PipelineErrorSummaryInvalid      PipelineErrorKind = "summary_invalid"
	PipelineErrorInputTooLarge       PipelineErrorKind = "input_too_large"
	PipelineErrorStoreUnavailable    PipelineErrorKind = "store_unavailable"
	PipelineErrorMail                PipelineErrorKind = "mail_error"
)

// PipelineStage names the orchestrator stage a PipelineError occurred in.
type PipelineStage string

const (
	StageFeedFetch PipelineStage = "feed_fetch"
	StageExtract   PipelineStage = "article_extract"
	StageSummarize PipelineStage = "summarize"
	StagePersist   PipelineStage = "persist"
	StageMail      PipelineStage = "mail"
	StageKeywords  PipelineStage = "keywords"
)

// PipelineError is a single per-item failure, collected rather than
// raised so the rest of the request can still succeed.
type PipelineError struct {
	Stage   PipelineStage
	URL     string
	Kind    PipelineErrorKind
	Message string
}

// SummarizeResponse is the result of SummarizeByQuery or SummarizeByRSS.
type SummarizeResponse struct {
	Success           bool
	Articles          []ArticleResult
	TotalArticles     int
	ExtractedKeywords []string
	Partial           bool
	Errors            []PipelineError
	ProcessedAt       time.Time
}
