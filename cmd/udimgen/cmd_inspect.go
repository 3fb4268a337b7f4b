package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joseyose/udimgen"
	"github.com/joseyose/udimgen/internal/sink"
)

// inspectEntry is one texture with the rule the generator would write.
type inspectEntry struct {
	udimgen.Texture `yaml:",inline"`

	Output   string  `json:"output" yaml:"output"`
	Priority float64 `json:"priority" yaml:"priority"`
	Options  string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// inspectReport is the document printed by inspect.
type inspectReport struct {
	Textures []inspectEntry  `json:"textures" yaml:"textures"`
	Issues   []udimgen.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func newInspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print parsed textures, their mip rules and issues",
		Long: `Parses the manifest and prints every texture with its kind, flags,
output name, priority and tool options, followed by parse and validation
issues. Useful for checking a manifest before generating.`,
		Args: cobra.NoArgs,
		RunE: a.runInspect,
	}

	addInputFlag(cmd, a)
	cmd.Flags().StringVarP(&a.output, "output-file", "o", "", "write to file or s3://bucket/key instead of stdout")
	cmd.Flags().StringVar(&a.format, "format", "yaml", "output format: yaml or json")

	return cmd
}

func (a *app) runInspect(cmd *cobra.Command, _ []string) error {
	m, err := a.decode()
	if err != nil {
		return err
	}

	rep := inspectReport{
		Textures: make([]inspectEntry, 0, m.Len()),
		Issues:   append(append([]udimgen.Issue(nil), m.Issues...), udimgen.Validate(m, nil)...),
	}
	for _, t := range m.Textures {
		c := t.Command()
		rep.Textures = append(rep.Textures, inspectEntry{
			Texture:  t,
			Output:   t.OutputName(),
			Priority: c.Priority,
			Options:  c.Options,
		})
	}

	out, err := encodeReport(rep, a.format)
	if err != nil {
		return err
	}

	s, err := sink.Open(a.output, cmd.OutOrStdout(), a.cfg.Storage)
	if err != nil {
		return err
	}

	return s.Write(cmd.Context(), out)
}

// encodeReport renders the report as yaml or json.
func encodeReport(rep inspectReport, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q (want yaml or json)", format)
	}

	return buf.Bytes(), nil
}
