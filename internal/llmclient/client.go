// Package llmclient provides a narrow, provider-agnostic LLM client used
// by both the keyword extractor (C4) and the LLM summarizer (C6). Each
// caller builds its own safe system/user prompt; this package only owns
// the transport, circuit breaker, and retry concerns shared by any
// single-round-trip LLM call.
package llmclient

import "context"

// Completer sends a single system+user prompt pair to an LLM and returns
// its raw text reply.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
