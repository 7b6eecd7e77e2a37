package pipeline

import (
	"context"
	"fmt"
	"html"
	"strings"

	"catchup-feed/internal/domain/entity"
)

// mailDigest renders a summary digest as HTML and plain text and hands it
// to the injected MailSender. A delivery failure is surfaced to the
// caller so it can be recorded as a PipelineError; it never fails the
// request, since the summaries themselves already succeeded.
func (o *Orchestrator) mailDigest(ctx context.Context, to string, summarized []entity.SummarizedArticle) error {
	if o.mailSender == nil {
		return nil
	}

	subject := fmt.Sprintf("Your news digest: %d articles", len(summarized))

	var htmlBody, textBody strings.Builder
	htmlBody.WriteString("<html><body><h1>News Digest</h1>")
	for _, sa := range summarized {
		htmlBody.WriteString(fmt.Sprintf(
			"<h2><a href=\"%s\">%s</a></h2><p>%s</p>",
			html.EscapeString(sa.Article.URL),
			html.EscapeString(sa.Article.Title),
			html.EscapeString(sa.Summary),
		))
		textBody.WriteString(sa.Article.Title)
		textBody.WriteString("\n")
		textBody.WriteString(sa.Article.URL)
		textBody.WriteString("\n")
		textBody.WriteString(sa.Summary)
		textBody.WriteString("\n\n")
	}
	htmlBody.WriteString("</body></html>")

	return o.mailSender.Send(ctx, to, subject, htmlBody.String(), textBody.String())
}
