package udimgen

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"unicode/utf8"
)

// Encode writes the build script for a manifest to writer.
func Encode(w io.Writer, m *Manifest, opt *FormatOptions) error {
	fopt := opt.normalize()
	// Buffered writer reduces syscall overhead and short writes.
	bw := bufio.NewWriter(w)
	wr := &writer{w: bw, opt: fopt}

	var textures []Texture
	if m != nil {
		textures = m.Textures
	}
	if err := wr.writeVariable(textures); err != nil {
		return err
	}
	if err := wr.writeRules(textures); err != nil {
		return err
	}

	return bw.Flush()
}

// EncodeFile writes the build script for a manifest to a file.
func EncodeFile(path string, m *Manifest, opt *FormatOptions) error {
	b, err := Format(m, opt)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o644)
}

// Format renders the build script for a manifest to bytes.
func Format(m *Manifest, opt *FormatOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, opt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Generate renders the default build script for textures. The result
// depends only on textures.
func Generate(textures []Texture) string {
	b, _ := Format(&Manifest{Textures: textures}, nil)
	return string(b)
}

// writer writes a build script to a writer.
type writer struct {
	w   io.Writer     // Writer to write to
	opt FormatOptions // Normalized options
	pad []byte        // Reused padding buffer
}

// writeVariable writes the variable block listing every input.
func (w *writer) writeVariable(textures []Texture) error {
	if err := w.writeString(w.opt.Variable); err != nil {
		return err
	}
	if err := w.writeString(" = \n"); err != nil {
		return err
	}

	for _, t := range textures {
		if err := w.writeString("\t"); err != nil {
			return err
		}
		if err := w.writePadded(t.Filename, w.opt.Width); err != nil {
			return err
		}
		if err := w.writeString("\\\n"); err != nil {
			return err
		}
	}

	return nil
}

// writeRules writes the rule block, one rule per texture.
func (w *writer) writeRules(textures []Texture) error {
	if err := w.writeString("\n##### MIP Commands Below for "); err != nil {
		return err
	}
	if err := w.writeString(strconv.Itoa(len(textures))); err != nil {
		return err
	}
	if err := w.writeString(" Textures #####\n"); err != nil {
		return err
	}

	for _, t := range textures {
		if err := w.writeRule(t); err != nil {
			return err
		}
	}

	return nil
}

// writeRule writes the dependency line and command line for one texture.
func (w *writer) writeRule(t Texture) error {
	if err := w.writeString(t.OutputName()); err != nil {
		return err
	}
	if err := w.writeString(" : "); err != nil {
		return err
	}
	if err := w.writeString(t.Filename); err != nil {
		return err
	}
	if err := w.writeString("\n\t"); err != nil {
		return err
	}

	c := t.Command()
	if err := w.writeString(w.opt.Tool); err != nil {
		return err
	}
	if err := w.writeString(" "); err != nil {
		return err
	}
	if err := w.writeString(t.Filename); err != nil {
		return err
	}
	if err := w.writeString(" -tile -priority "); err != nil {
		return err
	}
	if err := w.writeString(c.PriorityString()); err != nil {
		return err
	}
	if err := w.writeString(" -cal 1.0 "); err != nil {
		return err
	}
	if err := w.writeString(c.Options); err != nil {
		return err
	}

	return w.writeString("\n")
}

// writePadded writes s left-aligned in a field of width runes.
func (w *writer) writePadded(s string, width int) error {
	if err := w.writeString(s); err != nil {
		return err
	}

	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return nil
	}
	for len(w.pad) < n {
		w.pad = append(w.pad, ' ')
	}
	_, err := w.w.Write(w.pad[:n])

	return err
}

// writeString writes a string to the writer.
func (w *writer) writeString(s string) error {
	_, err := io.WriteString(w.w, s)
	return err
}
