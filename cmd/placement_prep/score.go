package main

import (
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// fileScore pairs a scored file with its result in batch output
type fileScore struct {
	Path   string `json:"path"`
	Result any    `json:"result"`
}

func newScoreCmd(a *app) *cobra.Command {
	var (
		strategy string
		jobFile  string
	)
	cmd := &cobra.Command{
		Use:   "score <resume.json>...",
		Short: "Score one or more resumes",
		Long: "Score resumes against the configured domain and level. The verdict strategy reports the " +
			"0-100 ATS score with every rule evaluation; the legacy strategy reports the weighted breakdown.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chosen, err := a.resolveStrategy(strategy)
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

			results := make([]any, len(args))
			g, gctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(runtime.GOMAXPROCS(0))
			for i, path := range args {
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					resume, err := readResumeFile(path)
					if err != nil {
						return err
					}
					a.logger.Debug("scoring resume", "path", path, "strategy", chosen)
					results[i], err = scoreResume(eng, chosen, resume, job)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			if a.cfg.Verbose {
				for _, r := range results {
					a.printScore(r)
				}
			}

			if len(args) == 1 {
				return writeJSON(cmd.OutOrStdout(), results[0])
			}
			batch := make([]fileScore, len(args))
			for i, path := range args {
				batch[i] = fileScore{Path: path, Result: results[i]}
			}
			return writeJSON(cmd.OutOrStdout(), batch)
		},
	}
	cmd.Flags().StringVar(&strategy, "strategy", "", "Scoring strategy: legacy or verdict (default from config)")
	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Job context JSON to score against")
	return cmd
}
