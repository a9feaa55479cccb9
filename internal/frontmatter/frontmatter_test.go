package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Generics\n\nHello\n")

	header, body, found, err := Split(input)
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, header)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsHeaderAndBody(t *testing.T) {
	input := []byte("---\ntitle: Generics\n---\n# Generics\n")

	header, body, found, err := Split(input)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("title: Generics\n"), header)
	require.Equal(t, []byte("# Generics\n"), body)
}

func TestSplit_CRLF_SplitsHeaderAndBody(t *testing.T) {
	input := []byte("---\r\ntitle: Generics\r\n---\r\n# Generics\r\n")

	header, body, found, err := Split(input)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("title: Generics\r\n"), header)
	require.Equal(t, []byte("# Generics\r\n"), body)
}

func TestSplit_EmptyBlock_FoundWithEmptyHeader(t *testing.T) {
	header, body, found, err := Split([]byte("---\n---\n# Generics\n"))
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, header)
	require.Equal(t, []byte("# Generics\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF_FoundWithEmptyBody(t *testing.T) {
	header, body, found, err := Split([]byte("---\ntitle: Generics\n---"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("title: Generics\n"), header)
	require.Empty(t, body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, found, err := Split([]byte("---\ntitle: Generics\n# Generics\n"))
	require.Error(t, err)
	require.False(t, found)
	require.True(t, errors.Is(err, ErrUnterminated))
}

func TestDecode_UnknownKeysIgnored(t *testing.T) {
	var out struct {
		Title string `yaml:"title"`
	}
	err := Decode([]byte("title: Generics\nfuture_field: 42\n"), &out)
	require.NoError(t, err)
	require.Equal(t, "Generics", out.Title)
}

func TestDecode_InvalidYAML_ReturnsError(t *testing.T) {
	var out map[string]any
	require.Error(t, Decode([]byte(": not yaml"), &out))
}

func TestDecode_Empty_NoOp(t *testing.T) {
	var out struct {
		Title string `yaml:"title"`
	}
	require.NoError(t, Decode(nil, &out))
	require.Empty(t, out.Title)
}
