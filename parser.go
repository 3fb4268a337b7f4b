package udimgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ParseLine parses a single manifest line. It returns ErrMalformedLine when
// the line holds no token.
func ParseLine(line string) (Texture, error) {
	return parseLine(line, 0)
}

// parseLine parses a line and records its line number.
func parseLine(line string, n int) (Texture, error) {
	toks := lexLine(line, n)
	if len(toks) == 0 {
		return Texture{}, ErrMalformedLine
	}

	var flags []string
	if len(toks) > 1 {
		flags = make([]string, 0, len(toks)-1)
		for _, tok := range toks[1:] {
			flags = append(flags, tok.Lit)
		}
	}

	t := NewTexture(toks[0].Lit, flags...)
	t.Line = n
	return t, nil
}

// Parse parses a manifest from bytes.
func Parse(data []byte, opt *ParseOptions) (*Manifest, error) {
	return Decode(bytes.NewReader(data), opt)
}

// Decode parses a manifest from reader. Blank lines are skipped silently;
// unreadable lines are skipped and reported in Manifest.Issues.
func Decode(r io.Reader, opt *ParseOptions) (*Manifest, error) {
	popt, err := opt.normalize()
	if err != nil {
		return nil, err
	}

	m := &Manifest{}
	lr := newLineReader(r)
	for {
		line, ok, err := lr.next()
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", lr.line+1, err)
		}
		if !ok {
			break
		}

		if !popt.DisableUTF8Check && !validText(line) {
			m.Issues = append(m.Issues, Issue{
				Level:   IssueWarning,
				Code:    CodeMalformedLine,
				Message: "line is not valid UTF-8, skipped",
				Line:    lr.line,
			})
			continue
		}

		// Blank lines carry no texture and are not worth an issue.
		t, err := parseLine(line, lr.line)
		if err != nil {
			continue
		}

		if p, ok := popt.excluded(t.Filename); ok {
			m.Issues = append(m.Issues, Issue{
				Level:   IssueInfo,
				Code:    CodeExcluded,
				Message: "excluded by " + p,
				Path:    t.Filename,
				Line:    lr.line,
			})
			continue
		}

		m.Textures = append(m.Textures, t)
	}

	return m, nil
}

// DecodeFile parses a manifest from a file. A missing path yields
// ErrInputNotFound and a zero-length file yields ErrInputEmpty.
func DecodeFile(path string, opt *ParseOptions) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInputNotFound, path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInputEmpty, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, opt)
}
