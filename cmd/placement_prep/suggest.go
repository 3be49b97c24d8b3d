package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jonathan/placement-prep/internal/types"
)

func newSuggestCmd(a *app) *cobra.Command {
	var (
		resumeFile string
		section    string
		field      string
		value      string
	)
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest fixes for a field value or a whole resume",
		Long: "With --section and --field, suggest fixes for a single field value. " +
			"With --resume, produce the resume-wide suggestions ordered by severity.",
		Example: `  placement_prep suggest --section experience --field description --value "Worked on websites"
  placement_prep suggest --resume resume.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fieldMode := section != "" || field != ""
			if fieldMode == (resumeFile != "") {
				return errors.New("use either --resume or --section with --field")
			}
			if fieldMode && (section == "" || field == "") {
				return errors.New("--section and --field are both required")
			}

			eng, err := a.newEngine(cmd.Context())
			if err != nil {
				return err
			}

			var suggestions []types.Suggestion
			if fieldMode {
				suggestions, err = eng.GetSuggestions(value, field, section)
			} else {
				resume, rerr := readResumeFile(resumeFile)
				if rerr != nil {
					return rerr
				}
				suggestions, err = eng.GetGlobalSuggestions(resume)
			}
			if err != nil {
				return err
			}
			if a.cfg.Verbose {
				a.printer.PrintSuggestions(suggestions)
			}
			return writeJSON(cmd.OutOrStdout(), map[string][]types.Suggestion{"suggestions": suggestions})
		},
	}
	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Resume JSON for resume-wide suggestions")
	cmd.Flags().StringVar(&section, "section", "", "Resume section of the field (personalInfo, summary, experience, ...)")
	cmd.Flags().StringVar(&field, "field", "", "Field name within the section")
	cmd.Flags().StringVar(&value, "value", "", "Current field value")
	return cmd
}
