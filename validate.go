package udimgen

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IssueLevel represents severity of validation issue.
type IssueLevel string

const (
	// IssueError indicates a validation error.
	IssueError IssueLevel = "error"
	// IssueWarning indicates a validation warning.
	IssueWarning IssueLevel = "warning"
	// IssueInfo indicates a note that needs no action.
	IssueInfo IssueLevel = "info"
)

// Issue codes.
const (
	CodeMalformedLine       = "malformed_line"
	CodeExcluded            = "excluded"
	CodeUnrecognizedFlag    = "unrecognized_flag"
	CodeUnexpectedExtension = "unexpected_extension"
	CodeOutputCollision     = "output_collision"
	CodeMissingTile         = "missing_tile"
	CodeKindFlagMismatch    = "kind_flag_mismatch"
	CodeDuplicateTexture    = "duplicate_texture"
	CodeOutputConflict      = "output_conflict"
)

// Issue represents a validation issue.
type Issue struct {
	Level   IssueLevel `json:"level" yaml:"level"`                   // Severity level
	Code    string     `json:"code,omitempty" yaml:"code,omitempty"` // Machine-readable code
	Message string     `json:"message" yaml:"message"`               // Issue message
	Path    string     `json:"path,omitempty" yaml:"path,omitempty"` // Texture filename
	Line    int        `json:"line,omitempty" yaml:"line,omitempty"` // 1-based manifest line
}

// String renders the issue on one line.
func (i Issue) String() string {
	var b strings.Builder
	b.WriteString(string(i.Level))
	if i.Line > 0 {
		fmt.Fprintf(&b, " line %d", i.Line)
	}
	if i.Code != "" {
		b.WriteString(" [")
		b.WriteString(i.Code)
		b.WriteByte(']')
	}
	b.WriteString(": ")
	b.WriteString(i.Message)
	if i.Path != "" {
		b.WriteString(" (")
		b.WriteString(i.Path)
		b.WriteByte(')')
	}

	return b.String()
}

// HasErrors reports whether any issue is error level.
func HasErrors(issues []Issue) bool {
	for _, it := range issues {
		if it.Level == IssueError {
			return true
		}
	}

	return false
}

// kindFlags pairs texture kinds with the flag that marks them.
var kindFlags = map[TextureKind]ProcessFlag{
	TextureKindAO:     ProcessFlagAO,
	TextureKindNormal: ProcessFlagNormal,
	TextureKindSpec:   ProcessFlagSpec,
}

// Validate validates a manifest and returns issues. It never changes m.
func Validate(m *Manifest, opt *ValidateOptions) []Issue {
	if m == nil {
		return nil
	}

	vopt := opt.normalize()
	var out []Issue

	for _, t := range m.Textures {
		out = append(out, validateTexture(t, vopt)...)
	}

	seen := make(map[string]struct{}, len(m.Textures))
	outputs := make(map[string]Texture, len(m.Textures))
	for _, t := range m.Textures {
		if _, ok := seen[t.Filename]; ok {
			out = append(out, Issue{Level: IssueWarning, Code: CodeDuplicateTexture, Message: "texture listed more than once", Path: t.Filename, Line: t.Line})
			continue
		}
		seen[t.Filename] = struct{}{}

		name := t.OutputName()
		if prev, ok := outputs[name]; ok {
			out = append(out, Issue{
				Level:   IssueError,
				Code:    CodeOutputConflict,
				Message: fmt.Sprintf("output %s also produced by %s", name, prev.Filename),
				Path:    t.Filename,
				Line:    t.Line,
			})
			continue
		}
		outputs[name] = t
	}

	return out
}

// validateTexture validates a single texture.
func validateTexture(t Texture, opt ValidateOptions) []Issue {
	var out []Issue

	for _, tok := range t.UnrecognizedTokens() {
		out = append(out, Issue{Level: IssueWarning, Code: CodeUnrecognizedFlag, Message: fmt.Sprintf("unrecognized flag %q", tok), Path: t.Filename, Line: t.Line})
	}

	if !opt.DisableExtensionsCheck && filepath.Ext(t.Filename) != ".tga" {
		out = append(out, Issue{Level: IssueWarning, Code: CodeUnexpectedExtension, Message: "unexpected texture extension", Path: t.Filename, Line: t.Line})
	}

	// A rule whose target is its own prerequisite never builds.
	if t.OutputName() == t.Filename {
		out = append(out, Issue{Level: IssueError, Code: CodeOutputCollision, Message: "output name equals input name", Path: t.Filename, Line: t.Line})
	}

	if !opt.DisableTileCheck && !strings.Contains(t.Filename, "1001") {
		out = append(out, Issue{Level: IssueWarning, Code: CodeMissingTile, Message: "no 1001 tile marker in filename", Path: t.Filename, Line: t.Line})
	}

	if !opt.DisableKindCheck {
		out = append(out, validateKind(t)...)
	}

	return out
}

// validateKind checks the classified kind against priority flags.
func validateKind(t Texture) []Issue {
	if t.Kind == TextureKindUnknown {
		return nil
	}

	var out []Issue
	if want, ok := kindFlags[t.Kind]; ok && !t.HasFlag(want) {
		out = append(out, Issue{
			Level:   IssueWarning,
			Code:    CodeKindFlagMismatch,
			Message: fmt.Sprintf("%s texture without %s flag", t.Kind, want.Token()),
			Path:    t.Filename,
			Line:    t.Line,
		})
	}

	reported := make(map[ProcessFlag]struct{}, len(t.Flags))
	for _, f := range t.Flags {
		if _, done := reported[f]; done {
			continue
		}
		for kind, kf := range kindFlags {
			if kf != f || kind == t.Kind {
				continue
			}
			reported[f] = struct{}{}
			out = append(out, Issue{
				Level:   IssueWarning,
				Code:    CodeKindFlagMismatch,
				Message: fmt.Sprintf("%s flag on %s texture", f.Token(), t.Kind),
				Path:    t.Filename,
				Line:    t.Line,
			})
		}
	}

	return out
}
