package feedfetcher

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
)

// xmlDeclCharset matches the encoding attribute of an XML declaration,
// e.g. <?xml version="1.0" encoding="EUC-KR"?>.
var xmlDeclCharset = regexp.MustCompile(`(?i)<\?xml[^>]*encoding=["']([^"']+)["']`)

// sniffFallbackOrder is tried, in order, when neither the HTTP
// Content-Type nor the XML declaration name a charset. It matches
// spec.md's required fallback order.
var sniffFallbackOrder = []string{"utf-8", "euc-kr", "cp949", "latin-1"}

// decodeBody resolves body's charset and returns it decoded to UTF-8.
// Resolution order: contentTypeCharset (from the HTTP header), then the
// XML declaration inside body, then byte-sniffing via chardet, then the
// fixed fallback order. The first decoder producing valid UTF-8 wins.
func decodeBody(body []byte, contentTypeCharset string) (string, bool) {
	candidates := make([]string, 0, 4)

	if contentTypeCharset != "" {
		candidates = append(candidates, contentTypeCharset)
	}
	if m := xmlDeclCharset.FindSubmatch(body); m != nil {
		candidates = append(candidates, string(m[1]))
	}
	if detected := sniffCharset(body); detected != "" {
		candidates = append(candidates, detected)
	}
	candidates = append(candidates, sniffFallbackOrder...)

	for _, name := range candidates {
		if decoded, ok := tryDecode(body, name); ok {
			return decoded, true
		}
	}

	return "", false
}

func sniffCharset(body []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(body)
	if err != nil || result == nil {
		return ""
	}
	return result.Charset
}

func tryDecode(body []byte, name string) (string, bool) {
	enc := resolveEncoding(name)
	if enc == nil {
		return "", false
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", false
	}
	if !validUTF8XML(decoded) {
		return "", false
	}
	return string(decoded), true
}

// resolveEncoding maps a charset label (from a header, XML declaration, or
// chardet) to a golang.org/x/text Encoding. Known Korean aliases are
// special-cased since htmlindex does not register CP949 under that name.
func resolveEncoding(name string) encoding.Encoding {
	normalized := strings.ToLower(strings.TrimSpace(name))

	switch normalized {
	case "utf-8", "utf8":
		return encoding.Nop
	case "euc-kr", "euckr":
		return korean.EUCKR
	case "cp949", "ms949", "uhc":
		return korean.EUCKR
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1
	}

	if enc, err := htmlindex.Get(normalized); err == nil {
		return enc
	}
	return nil
}

// validUTF8XML rejects a decode that produced the Unicode replacement
// character, which x/text decoders emit in place of byte sequences that
// don't belong to the chosen encoding.
func validUTF8XML(decoded []byte) bool {
	return !bytes.ContainsRune(decoded, 0xFFFD)
}
