package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/placement-prep/internal/ingestion"
)

// Output file names written by ingest-job --out
const (
	cleanedTextFile = "job_posting.cleaned.txt"
	metadataFile    = "job_posting.meta.json"
	jobContextFile  = "job_context.json"
)

func newIngestJobCmd(a *app) *cobra.Command {
	var (
		textFile string
		url      string
		outDir   string
	)
	cmd := &cobra.Command{
		Use:   "ingest-job",
		Short: "Build a job context from a posting",
		Long: "Ingest a job posting from a text file or URL, clean it and extract the job context " +
			"(title, required and preferred skills, keywords) against the configured domain vocabulary.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (textFile == "") == (url == "") {
				return errors.New("exactly one of --text-file or --url must be provided")
			}
			eng, err := a.newEngine(cmd.Context())
			if err != nil {
				return err
			}
			levelRules, err := eng.Rules()
			if err != nil {
				return err
			}

			opts := ingestion.DefaultFetchOptions()
			if timeout := a.cfg.FetchTimeout(); timeout > 0 {
				opts.Timeout = timeout
			}
			ingester := ingestion.NewIngester(a.logger, opts)

			var posting *ingestion.Posting
			if url != "" {
				posting, err = ingester.FromURL(cmd.Context(), url, levelRules)
			} else {
				posting, err = ingester.FromFile(textFile, levelRules)
			}
			if err != nil {
				return fmt.Errorf("ingestion failed: %w", err)
			}
			if a.cfg.Verbose {
				a.printer.PrintJobContext(posting.Job)
			}

			if outDir != "" {
				if err := writePosting(outDir, posting); err != nil {
					return err
				}
				a.logger.Info("wrote ingestion output", "dir", outDir)
			}
			return writeJSON(cmd.OutOrStdout(), posting.Job)
		},
	}
	cmd.Flags().StringVarP(&textFile, "text-file", "t", "", "Path to a job posting text file")
	cmd.Flags().StringVarP(&url, "url", "u", "", "URL of a job posting")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to write the cleaned text, metadata and job context")
	return cmd
}

// writePosting writes the cleaned text, its metadata and the job context into dir
func writePosting(dir string, posting *ingestion.Posting) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, cleanedTextFile), []byte(posting.Text), 0o644); err != nil {
		return fmt.Errorf("failed to write cleaned text: %w", err)
	}
	meta, err := posting.Metadata.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFile), meta, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	job, err := json.MarshalIndent(posting.Job, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal job context: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, jobContextFile), job, 0o644); err != nil {
		return fmt.Errorf("failed to write job context: %w", err)
	}
	return nil
}
