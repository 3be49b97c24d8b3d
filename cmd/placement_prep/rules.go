package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Sections accepted by --section
const (
	sectionAll            = "all"
	sectionRequiredSkills = "required-skills"
	sectionPowerWords     = "power-words"
	sectionRedFlags       = "red-flags"
	sectionStructure      = "structure"
)

func newRulesCmd(a *app) *cobra.Command {
	var section string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the rules for the configured domain and level",
		Long:  "Print the normalized rule bundle, or one section of the active level: required-skills, power-words, red-flags or structure.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.newEngine(cmd.Context())
			if err != nil {
				return err
			}

			var out any
			switch section {
			case sectionAll:
				out, err = eng.DomainRules()
			case sectionRequiredSkills:
				out, err = eng.RequiredSkills()
			case sectionPowerWords:
				out, err = eng.PowerWords()
			case sectionRedFlags:
				out, err = eng.RedFlags()
			case sectionStructure:
				out, err = eng.StructureGuidelines()
			default:
				return fmt.Errorf("unknown section %q", section)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&section, "section", "s", sectionAll, "all, required-skills, power-words, red-flags or structure")
	return cmd
}
