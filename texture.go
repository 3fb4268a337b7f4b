package udimgen

import "strings"

// TextureKind indicates the semantic type of a texture map.
type TextureKind string

const (
	// TextureKindAO represents an ambient occlusion map.
	TextureKindAO TextureKind = "ao"
	// TextureKindBaseColor represents a base color (albedo) map.
	TextureKindBaseColor TextureKind = "basecolor"
	// TextureKindNormal represents a normal map.
	TextureKindNormal TextureKind = "normal"
	// TextureKindSpec represents a specular map.
	TextureKindSpec TextureKind = "spec"
	// TextureKindUnknown is used when no filename pattern matches.
	TextureKindUnknown TextureKind = "unknown"
)

// kindPatterns is checked in order, first match wins.
// "_spec" has no trailing underscore; existing manifests rely on it.
var kindPatterns = []struct {
	pattern string
	kind    TextureKind
}{
	{"_ao_", TextureKindAO},
	{"_basecolor_", TextureKindBaseColor},
	{"_nrm_", TextureKindNormal},
	{"_spec", TextureKindSpec},
}

// Classify returns the texture kind encoded in a filename.
func Classify(filename string) TextureKind {
	for _, p := range kindPatterns {
		if strings.Contains(filename, p.pattern) {
			return p.kind
		}
	}

	return TextureKindUnknown
}

// Texture is one manifest entry.
type Texture struct {
	Filename string        `json:"filename" yaml:"filename"`                 // Input texture filename
	Kind     TextureKind   `json:"kind" yaml:"kind"`                         // Kind derived from Filename
	Flags    []ProcessFlag `json:"flags,omitempty" yaml:"flags,omitempty"`   // Interpreted flags in input order
	Tokens   []string      `json:"tokens,omitempty" yaml:"tokens,omitempty"` // Raw flag tokens, parallel to Flags
	Line     int           `json:"line,omitempty" yaml:"line,omitempty"`     // 1-based manifest line, 0 if unknown
}

// NewTexture builds a texture from a filename and raw flag tokens.
func NewTexture(filename string, tokens ...string) Texture {
	t := Texture{
		Filename: filename,
		Kind:     Classify(filename),
		Flags:    InterpretFlags(tokens),
	}
	if len(tokens) > 0 {
		t.Tokens = append([]string(nil), tokens...)
	}

	return t
}

// OutputName returns the mip filename produced for this texture.
func (t Texture) OutputName() string { return OutputName(t.Filename) }

// Command returns the folded generator state for this texture's flags.
func (t Texture) Command() Command { return FoldFlags(t.Flags) }

// UnrecognizedTokens returns raw tokens that did not map to a known flag.
func (t Texture) UnrecognizedTokens() []string {
	var out []string
	for i, f := range t.Flags {
		if f != ProcessFlagUnrecognized {
			continue
		}
		if i < len(t.Tokens) {
			out = append(out, t.Tokens[i])
		} else {
			out = append(out, "")
		}
	}

	return out
}

// HasFlag reports whether the texture carries flag f.
func (t Texture) HasFlag(f ProcessFlag) bool {
	for _, have := range t.Flags {
		if have == f {
			return true
		}
	}

	return false
}

// OutputName maps an input filename to its UDIM mip filename.
// Every "1001" becomes "UDIM", then every ".tga" becomes ".mip".
func OutputName(filename string) string {
	name := strings.ReplaceAll(filename, "1001", "UDIM")
	return strings.ReplaceAll(name, ".tga", ".mip")
}

// Manifest is a parsed texture manifest.
type Manifest struct {
	Textures []Texture `json:"textures" yaml:"textures"`                 // Textures in manifest order
	Issues   []Issue   `json:"issues,omitempty" yaml:"issues,omitempty"` // Recoverable problems found while reading
}

// Len returns the number of textures.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}

	return len(m.Textures)
}
