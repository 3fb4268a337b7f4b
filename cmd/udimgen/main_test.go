package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/joseyose/udimgen"
)

const hairpinManifest = "../../testdata/hairpin.txt"

// execute runs the CLI with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(&app{logger: zap.NewNop()})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "textures.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGenerateToStdout(t *testing.T) {
	want, err := os.ReadFile("../../testdata/hairpin.mk")
	require.NoError(t, err)

	out, err := execute(t, "-i", hairpinManifest)
	require.NoError(t, err)
	assert.Equal(t, string(want), out)
}

func TestGenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mips.mk")

	out, err := execute(t, "--input-file", hairpinManifest, "--output-file", path)
	require.NoError(t, err)
	assert.Empty(t, out, "nothing goes to stdout when writing a file")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "##### MIP Commands Below for 4 Textures #####")
}

func TestGenerateExclude(t *testing.T) {
	out, err := execute(t, "-i", hairpinManifest, "--exclude", "*_spec_*", "--exclude", "*_ao_*")
	require.NoError(t, err)
	assert.Contains(t, out, "for 2 Textures")
	assert.NotContains(t, out, "hairpin_001_spec_1001.tga")
	assert.NotContains(t, out, "hairpin_001_ao_1001.tga")
}

func TestGenerateSkipsBlankLines(t *testing.T) {
	path := writeManifest(t, "a_ao_1001.tga -ao\n\nb_nrm_1001.tga -nrm -highprec\n")

	out, err := execute(t, "-i", path)
	require.NoError(t, err)
	assert.Contains(t, out, "for 2 Textures")
	assert.Contains(t, out, "\t$(MAKEMIP) a_ao_1001.tga -tile -priority 0.9 -cal 1.0 \n")
	assert.Contains(t, out, "\t$(MAKEMIP) b_nrm_1001.tga -tile -priority 0.7 -cal 1.0 -normalmap -highprec \n")
}

func TestGenerateInputErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "-i", filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, udimgen.ErrInputNotFound)
	assert.Equal(t, exitInputNotFound, exitCode(err))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	out := filepath.Join(dir, "mips.mk")

	_, err = execute(t, "-i", empty, "-o", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, udimgen.ErrInputEmpty)
	assert.Equal(t, exitInputEmpty, exitCode(err))
	assert.NoFileExists(t, out, "fatal errors produce no output")
}

func TestGenerateRequiresInput(t *testing.T) {
	_, err := execute(t)
	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(err))
}

func TestGenerateSinkError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "mips.mk")

	_, err := execute(t, "-i", hairpinManifest, "-o", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, udimgen.ErrSinkWrite)
	assert.Equal(t, exitSinkWrite, exitCode(err))
}

func TestGenerateStrict(t *testing.T) {
	path := writeManifest(t, "a_ao.png -ao\n")

	out, err := execute(t, "-i", path)
	require.NoError(t, err, "validation errors are logged, not fatal")
	assert.Contains(t, out, "a_ao.png : a_ao.png")

	out, err = execute(t, "-i", path, "--strict")
	require.Error(t, err)
	assert.ErrorIs(t, err, udimgen.ErrValidation)
	assert.Equal(t, exitValidation, exitCode(err))
	assert.Empty(t, out)
}

func TestGenerateUnrecognizedFlag(t *testing.T) {
	path := writeManifest(t, "a_spec_1001.tga -spec -bogus\n")

	out, err := execute(t, "-i", path, "--strict")
	require.NoError(t, err, "unrecognized flags are warnings")
	assert.Contains(t, out, "-priority 0.1 -cal 1.0 -specmap \n")
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "-i", hairpinManifest)
	require.NoError(t, err)
	assert.Equal(t, "ok: 4 textures, 0 issues\n", out)

	path := writeManifest(t, "a_ao_1001.tga -ao -wat\nb_ao.png -ao\n")
	out, err = execute(t, "check", "-i", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, udimgen.ErrValidation)
	assert.Contains(t, out, `warning line 1 [unrecognized_flag]: unrecognized flag "-wat" (a_ao_1001.tga)`)
	assert.Contains(t, out, "error line 2 [output_collision]")
}

func TestInspectYAML(t *testing.T) {
	out, err := execute(t, "inspect", "-i", hairpinManifest)
	require.NoError(t, err)

	var rep struct {
		Textures []struct {
			Filename string   `yaml:"filename"`
			Kind     string   `yaml:"kind"`
			Flags    []string `yaml:"flags"`
			Output   string   `yaml:"output"`
			Priority float64  `yaml:"priority"`
			Options  string   `yaml:"options"`
		} `yaml:"textures"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Textures, 4)

	nrm := rep.Textures[2]
	assert.Equal(t, "hairpin_001_nrm_1001.tga", nrm.Filename)
	assert.Equal(t, "normal", nrm.Kind)
	assert.Equal(t, []string{"nrm", "highprec"}, nrm.Flags)
	assert.Equal(t, "hairpin_001_nrm_UDIM.mip", nrm.Output)
	assert.Equal(t, 0.7, nrm.Priority)
	assert.Equal(t, "-normalmap -highprec ", nrm.Options)
}

func TestInspectJSON(t *testing.T) {
	path := writeManifest(t, "a_ao_1001.tga -ao -x\n")

	out, err := execute(t, "inspect", "-i", path, "--format", "json")
	require.NoError(t, err)

	var rep inspectReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Textures, 1)
	assert.Equal(t, udimgen.TextureKindAO, rep.Textures[0].Kind)
	assert.Equal(t, []string{"-ao", "-x"}, rep.Textures[0].Tokens)
	assert.Equal(t, 0.9, rep.Textures[0].Priority)
	require.Len(t, rep.Issues, 1)
	assert.Equal(t, udimgen.CodeUnrecognizedFlag, rep.Issues[0].Code)

	_, err = execute(t, "inspect", "-i", path, "--format", "xml")
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitOK},
		{errors.New("boom"), exitFailure},
		{fmt.Errorf("%w: x", udimgen.ErrInputNotFound), exitInputNotFound},
		{fmt.Errorf("%w: x", udimgen.ErrInputEmpty), exitInputEmpty},
		{fmt.Errorf("%w: %w", udimgen.ErrSinkWrite, errors.New("closed")), exitSinkWrite},
		{udimgen.ErrValidation, exitValidation},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCode(tt.err), "%v", tt.err)
	}
}
