package feedfetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

func TestDecodeBody_PrefersContentTypeCharset(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?><rss><channel></channel></rss>`)

	decoded, ok := decodeBody(body, "utf-8")
	require.True(t, ok)
	assert.Contains(t, decoded, "<rss>")
}

func TestDecodeBody_FallsBackToXMLDeclaration(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="EUC-KR"?><rss><channel><title>테스트</title></channel></rss>`)
	encoded, err := korean.EUCKR.NewEncoder().String(`<?xml version="1.0" encoding="EUC-KR"?><rss><channel><title>테스트</title></channel></rss>`)
	require.NoError(t, err)
	_ = body

	decoded, ok := decodeBody([]byte(encoded), "")
	require.True(t, ok)
	assert.Contains(t, decoded, "테스트")
}

func TestDecodeBody_FallsBackToUTF8WhenNoHintsMatch(t *testing.T) {
	body := []byte(`<rss><channel><title>plain ascii</title></channel></rss>`)

	decoded, ok := decodeBody(body, "")
	require.True(t, ok)
	assert.Contains(t, decoded, "plain ascii")
}

func TestResolveEncoding(t *testing.T) {
	tests := []struct {
		name    string
		wantNil bool
	}{
		{"utf-8", false},
		{"EUC-KR", false},
		{"cp949", false},
		{"latin-1", false},
		{"bogus-charset-name", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := resolveEncoding(tt.name)
			if tt.wantNil {
				assert.Nil(t, enc)
			} else {
				assert.NotNil(t, enc)
			}
		})
	}
}
