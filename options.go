package udimgen

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ParseOptions controls manifest parsing.
type ParseOptions struct {
	// Exclude drops textures whose filename matches any glob.
	// Patterns use doublestar syntax ("**/*_spec_*.tga") and are matched
	// against the filename with forward slashes.
	Exclude []string
	// DisableUTF8Check keeps lines that are not valid UTF-8 instead of
	// skipping them with a malformed_line issue.
	DisableUTF8Check bool
}

// FormatOptions controls build script output. Zero values reproduce the
// default fragment consumed by the mip build.
type FormatOptions struct {
	// Variable is the make variable listing all inputs (default "MIPS").
	Variable string
	// Tool is the command invoked per texture (default "$(MAKEMIP)").
	Tool string
	// Width is the column width filenames are padded to (default 50).
	Width int
}

// ValidateOptions controls validation rules.
type ValidateOptions struct {
	// DisableExtensionsCheck disables the .tga extension check.
	DisableExtensionsCheck bool
	// DisableTileCheck disables the check for a "1001" UDIM tile marker.
	DisableTileCheck bool
	// DisableKindCheck disables matching texture kind against flags.
	DisableKindCheck bool
}

// Format defaults.
const (
	DefaultVariable = "MIPS"
	DefaultTool     = "$(MAKEMIP)"
	DefaultWidth    = 50
)

// normalize normalizes the ParseOptions and validates exclude globs.
func (o *ParseOptions) normalize() (ParseOptions, error) {
	if o == nil {
		return ParseOptions{}, nil
	}

	out := *o
	out.Exclude = nil
	for _, p := range o.Exclude {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return ParseOptions{}, fmt.Errorf("%w: %q", ErrPattern, p)
		}
		out.Exclude = append(out.Exclude, p)
	}

	return out, nil
}

// excluded reports whether filename matches an exclude glob.
func (o ParseOptions) excluded(filename string) (string, bool) {
	if len(o.Exclude) == 0 {
		return "", false
	}

	name := strings.ReplaceAll(filename, "\\", "/")
	for _, p := range o.Exclude {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return p, true
		}
	}

	return "", false
}

// normalize normalizes the FormatOptions.
func (o *FormatOptions) normalize() FormatOptions {
	if o == nil {
		return FormatOptions{Variable: DefaultVariable, Tool: DefaultTool, Width: DefaultWidth}
	}

	out := *o
	if out.Variable == "" {
		out.Variable = DefaultVariable
	}
	if out.Tool == "" {
		out.Tool = DefaultTool
	}
	if out.Width <= 0 {
		out.Width = DefaultWidth
	}

	return out
}

// normalize normalizes the ValidateOptions.
func (o *ValidateOptions) normalize() ValidateOptions {
	if o == nil {
		return ValidateOptions{}
	}

	return *o
}
