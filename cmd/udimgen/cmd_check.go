package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseyose/udimgen"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a texture manifest",
		Long: `Parses and validates the manifest, printing one issue per line.
Exits non-zero when any error-level issue is found.`,
		Args: cobra.NoArgs,
		RunE: a.runCheck,
	}

	addInputFlag(cmd, a)

	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, _ []string) error {
	m, err := a.decode()
	if err != nil {
		return err
	}

	issues := append(append([]udimgen.Issue(nil), m.Issues...), udimgen.Validate(m, nil)...)
	w := cmd.OutOrStdout()
	for _, it := range issues {
		fmt.Fprintln(w, it.String())
	}

	if udimgen.HasErrors(issues) {
		return fmt.Errorf("%w: %d error(s) in %s", udimgen.ErrValidation, countErrors(issues), a.input)
	}

	fmt.Fprintf(w, "ok: %d textures, %d issues\n", m.Len(), len(issues))
	return nil
}
