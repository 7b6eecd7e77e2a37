package articleextractor

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// stripNoise removes elements that never contribute article text, plus
// anything whose class or id matches adPattern.
func stripNoise(doc *goquery.Document, adPattern *regexp.Regexp) {
	doc.Find("script, style, noscript").Remove()
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		if adPattern.MatchString(class) || adPattern.MatchString(id) {
			sel.Remove()
		}
	})
}

// selectBody runs the fallback ladder against doc, returning the first
// candidate whose normalized text reaches minArticleBodyLength. selectors
// is the configured list of CSS selectors tried after <article>.
func selectBody(doc *goquery.Document, selectors []string, minLen int) string {
	if text := normalizeText(doc.Find("article").First().Text()); len(text) >= minLen {
		return text
	}

	for _, sel := range selectors {
		if text := normalizeText(doc.Find(sel).First().Text()); len(text) >= minLen {
			return text
		}
	}

	if text := normalizeText(largestDivText(doc)); len(text) >= minLen {
		return text
	}

	return normalizeText(concatenateParagraphs(doc))
}

// largestDivText returns the text of the <div> with the most visible
// text, used when no configured selector matches the page's markup.
func largestDivText(doc *goquery.Document) string {
	best := ""
	doc.Find("div").Each(func(_ int, sel *goquery.Selection) {
		text := sel.Text()
		if len(text) > len(best) {
			best = text
		}
	})
	return best
}

func concatenateParagraphs(doc *goquery.Document) string {
	var b []string
	doc.Find("body p").Each(func(_ int, sel *goquery.Selection) {
		b = append(b, sel.Text())
	})
	joined := ""
	for i, p := range b {
		if i > 0 {
			joined += "\n\n"
		}
		joined += p
	}
	return joined
}
