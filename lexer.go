package udimgen

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenType represents a type of a token.
type tokenType int

// token types.
const (
	tokFilename tokenType = iota // First token on a line
	tokFlag                      // Any following token
)

// token represents a whitespace-delimited word on a manifest line.
type token struct {
	Lit  string    // Literal value of the token
	Type tokenType // Type of the token
	Line int       // Line number of the token
	Col  int       // 1-based rune column of the token
}

// lexLine splits a line on runs of white space.
func lexLine(s string, line int) []token {
	var toks []token
	start, startCol := -1, 0
	col := 0
	for i, r := range s {
		col++
		if unicode.IsSpace(r) {
			if start >= 0 {
				toks = appendToken(toks, s[start:i], line, startCol)
				start = -1
			}
			continue
		}
		if start < 0 {
			start, startCol = i, col
		}
	}
	if start >= 0 {
		toks = appendToken(toks, s[start:], line, startCol)
	}

	return toks
}

// appendToken appends a token, typing the first one as the filename.
func appendToken(toks []token, lit string, line, col int) []token {
	typ := tokFlag
	if len(toks) == 0 {
		typ = tokFilename
	}

	return append(toks, token{Lit: lit, Type: typ, Line: line, Col: col})
}

// lineReader yields manifest lines without terminators.
type lineReader struct {
	r    *bufio.Reader // Reader for the input
	line int           // Number of the last line returned
	eof  bool          // End of file
}

// newLineReader creates a line reader for the manifest.
func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// next returns the next line. ok is false once input is exhausted.
func (l *lineReader) next() (string, bool, error) {
	if l.eof {
		return "", false, nil
	}

	s, err := l.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, err
		}
		l.eof = true
		if s == "" {
			return "", false, nil
		}
	}

	l.line++
	if l.line == 1 {
		// Skip UTF-8 BOM if present.
		s = strings.TrimPrefix(s, "\uFEFF")
	}
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")

	return s, true, nil
}

// validText reports whether a line can be read as UTF-8 text.
func validText(s string) bool {
	return utf8.ValidString(s)
}
