package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrUnterminated indicates the document opened a front matter block but
// never closed it.
var ErrUnterminated = errors.New("front matter start delimiter found but closing delimiter is missing")

// Split separates a `---` delimited YAML front matter block from the markdown
// body. Both LF and CRLF documents are handled.
//
// If the document does not start with a delimiter line, found is false and
// body is the full input.
func Split(content []byte) (header, body []byte, found bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]

	// An immediately closed block is valid: empty header.
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// Closing delimiter at EOF without a trailing newline.
		tail := []byte(nl + "---")
		if bytes.HasSuffix(rest, tail) {
			return rest[:len(rest)-len(tail)+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrUnterminated
	}

	header = rest[:idx+len(nl)]
	body = rest[idx+len(closeSeq):]
	return header, body, true, nil
}

// Decode unmarshals raw front matter YAML (without delimiters) into out.
// Unknown keys are ignored so documents may carry fields newer than the
// binary understands.
func Decode(header []byte, out any) error {
	if len(header) == 0 {
		return nil
	}
	return yaml.Unmarshal(header, out)
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
