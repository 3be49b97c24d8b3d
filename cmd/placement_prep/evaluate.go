package main

import (
	"github.com/spf13/cobra"
)

// evaluationReport is the evaluate command output
type evaluationReport struct {
	Domain      string `json:"domain"`
	Level       string `json:"level"`
	Passed      int    `json:"passed"`
	Total       int    `json:"total"`
	Evaluations any    `json:"evaluations"`
}

func newEvaluateCmd(a *app) *cobra.Command {
	var jobFile string
	cmd := &cobra.Command{
		Use:   "evaluate <resume.json>",
		Short: "Explain every rule result for a resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resume, err := readResumeFile(args[0])
			if err != nil {
				return err
			}
			job, err := readJobFile(jobFile)
			if err != nil {
				return err
			}
			eng, err := a.newEngine(cmd.Context())
			if err != nil {
				return err
			}
			evals, err := eng.Evaluate(resume, job)
			if err != nil {
				return err
			}
			if a.cfg.Verbose {
				a.printer.PrintEvaluations(evals)
			}

			passed := 0
			for _, e := range evals {
				if e.Passed {
					passed++
				}
			}
			return writeJSON(cmd.OutOrStdout(), evaluationReport{
				Domain:      eng.Domain(),
				Level:       string(eng.Level()),
				Passed:      passed,
				Total:       len(evals),
				Evaluations: evals,
			})
		},
	}
	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Job context JSON to evaluate against")
	return cmd
}
