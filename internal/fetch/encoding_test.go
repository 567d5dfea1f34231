package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeBodyUTF8PassThrough(t *testing.T) {
	t.Parallel()

	require.Equal(t, "공지사항", DecodeBody([]byte("공지사항")))
	require.Equal(t, "plain ascii", DecodeBody([]byte("plain ascii")))
}

func TestDecodeBodyEUCKR(t *testing.T) {
	t.Parallel()

	// "한글" in EUC-KR.
	require.Equal(t, "한글", DecodeBody([]byte{0xC7, 0xD1, 0xB1, 0xDB}))
}

func TestDecodeBodyReplacesGarbage(t *testing.T) {
	t.Parallel()

	got := DecodeBody([]byte{0xFF, 0xFE, 0x41})
	require.NotEmpty(t, got)
	require.True(t, strings.ContainsRune(got, '�') || strings.Contains(got, "A"))
}

func TestPageDocumentCached(t *testing.T) {
	t.Parallel()

	p := &Page{URL: "https://example.com", Body: "<html><body><p>hi</p></body></html>"}
	first, err := p.Document()
	require.NoError(t, err)
	second, err := p.Document()
	require.NoError(t, err)
	require.Same(t, first, second)
}
