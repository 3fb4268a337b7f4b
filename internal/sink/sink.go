// Package sink writes generated build scripts to stdout, local files or
// S3-compatible object storage.
package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joseyose/udimgen"
)

// Sink receives the generated script in a single write.
type Sink interface {
	Write(ctx context.Context, data []byte) error
	String() string
}

// ObjectScheme prefixes object storage targets.
const ObjectScheme = "s3://"

// Open selects a sink for target. An empty target or "-" writes to stdout,
// "s3://bucket/key" writes to object storage, anything else is a file path.
func Open(target string, stdout io.Writer, s3 S3Config) (Sink, error) {
	target = strings.TrimSpace(target)
	switch {
	case target == "" || target == "-":
		return &Writer{W: stdout, Name: "stdout"}, nil
	case strings.HasPrefix(target, ObjectScheme):
		bucket, key, err := ParseObjectURL(target)
		if err != nil {
			return nil, err
		}
		return NewObject(s3, bucket, key)
	default:
		return &File{Path: target}, nil
	}
}

// Writer writes to an already open stream such as stdout.
type Writer struct {
	W    io.Writer
	Name string
}

// Write implements Sink.
func (s *Writer) Write(_ context.Context, data []byte) error {
	if _, err := s.W.Write(data); err != nil {
		return fmt.Errorf("%w: %s: %w", udimgen.ErrSinkWrite, s.Name, err)
	}

	return nil
}

func (s *Writer) String() string { return s.Name }

// File writes to a local path, truncating any previous content.
type File struct {
	Path string
	// Perm is used when the file is created (default 0644).
	Perm os.FileMode
}

// Write implements Sink. The file is created only when Write is called and
// closed before it returns.
func (s *File) Write(_ context.Context, data []byte) (err error) {
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}

	f, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", udimgen.ErrSinkWrite, s.Path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %s: %w", udimgen.ErrSinkWrite, s.Path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: %s: %w", udimgen.ErrSinkWrite, s.Path, err)
	}

	return nil
}

func (s *File) String() string { return s.Path }

// ParseObjectURL splits "s3://bucket/key" into bucket and key.
func ParseObjectURL(target string) (string, string, error) {
	rest, ok := strings.CutPrefix(target, ObjectScheme)
	if !ok {
		return "", "", fmt.Errorf("not an object url: %q", target)
	}

	bucket, key, _ := strings.Cut(rest, "/")
	bucket = strings.TrimSpace(bucket)
	key = strings.TrimSpace(key)
	if bucket == "" {
		return "", "", fmt.Errorf("object url %q has no bucket", target)
	}
	if key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("object url %q has no object key", target)
	}

	return bucket, key, nil
}
