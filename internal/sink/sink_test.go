package sink

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseyose/udimgen"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestOpen(t *testing.T) {
	var stdout bytes.Buffer
	s3 := S3Config{Endpoint: "127.0.0.1:9000", AccessKey: "ak", SecretKey: "sk"}

	tests := []struct {
		target string
		want   string
	}{
		{"", "stdout"},
		{"-", "stdout"},
		{"out/mips.mk", "out/mips.mk"},
		{"s3://textures/builds/mips.mk", "s3://textures/builds/mips.mk"},
	}
	for _, tt := range tests {
		s, err := Open(tt.target, &stdout, s3)
		require.NoError(t, err, tt.target)
		assert.Equal(t, tt.want, s.String())
	}

	_, err := Open("s3://textures", &stdout, s3)
	require.Error(t, err)

	_, err = Open("s3://textures/mips.mk", &stdout, S3Config{})
	require.Error(t, err, "missing endpoint")
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := &Writer{W: &buf, Name: "stdout"}
	require.NoError(t, s.Write(context.Background(), []byte("MIPS = \n")))
	assert.Equal(t, "MIPS = \n", buf.String())

	err := (&Writer{W: failingWriter{}, Name: "stdout"}).Write(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, udimgen.ErrSinkWrite)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mips.mk")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o600))

	s := &File{Path: path}
	require.NoError(t, s.Write(context.Background(), []byte("new")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))

	err = (&File{Path: filepath.Join(dir, "missing", "mips.mk")}).Write(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, udimgen.ErrSinkWrite)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseObjectURL(t *testing.T) {
	bucket, key, err := ParseObjectURL("s3://textures/builds/hairpin/mips.mk")
	require.NoError(t, err)
	assert.Equal(t, "textures", bucket)
	assert.Equal(t, "builds/hairpin/mips.mk", key)

	for _, bad := range []string{"textures/mips.mk", "s3://", "s3:///mips.mk", "s3://textures/", "s3://textures/dir/"} {
		_, _, err := ParseObjectURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestObjectSinkCancelled(t *testing.T) {
	s, err := NewObject(S3Config{Endpoint: "127.0.0.1:1", AccessKey: "ak", SecretKey: "sk"}, "textures", "mips.mk")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Write(ctx, []byte("MIPS = \n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, udimgen.ErrSinkWrite)
}
