package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/placement-prep/internal/types"
)

var (
	// ErrHTTPRequestFailed is returned when the posting cannot be downloaded
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when the posting HTML cannot be parsed
	ErrContentExtractionFailed = errors.New("content extraction failed")
	// ErrEmptyPosting is returned when no text remains after cleaning
	ErrEmptyPosting = errors.New("job posting is empty")
)

// Posting is an ingested job description
type Posting struct {
	Text     string            `json:"text"`
	Metadata *Metadata         `json:"metadata"`
	Job      *types.JobContext `json:"job"`
}

// Ingester fetches and parses postings
type Ingester struct {
	Fetch  *FetchOptions
	Logger *slog.Logger
}

// NewIngester creates an Ingester. Nil arguments use defaults.
func NewIngester(logger *slog.Logger, opts *FetchOptions) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	if opts == nil {
		opts = DefaultFetchOptions()
	}
	return &Ingester{Fetch: opts, Logger: logger}
}

// FromURL downloads a posting, extracts its main text and builds the JobContext
func (i *Ingester) FromURL(ctx context.Context, rawURL string, levelRules *types.LevelRules) (*Posting, error) {
	platform := DetectPlatform(rawURL)
	i.Logger.Debug("fetching job posting", "url", rawURL, "platform", platform)

	page, err := FetchURL(ctx, rawURL, i.Fetch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	var text string
	if strings.HasPrefix(page.ContentType, "text/plain") {
		text = CleanText(page.HTML)
	} else {
		text, err = ExtractMainText(page.HTML, platform)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}
	}
	i.Logger.Debug("extracted job posting", "url", rawURL, "bytes", len(page.HTML), "chars", len(text))

	posting, err := i.FromText(text, levelRules)
	if err != nil {
		return nil, err
	}
	posting.Metadata.URL = rawURL
	posting.Metadata.Platform = string(platform)
	return posting, nil
}

// FromFile reads a posting from disk
func (i *Ingester) FromFile(path string, levelRules *types.LevelRules) (*Posting, error) {
	text, _, err := IngestFile(path)
	if err != nil {
		return nil, err
	}
	return i.FromText(text, levelRules)
}

// FromText builds a Posting from raw text
func (i *Ingester) FromText(text string, levelRules *types.LevelRules) (*Posting, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, ErrEmptyPosting
	}
	job := BuildJobContext(cleaned, levelRules)
	i.Logger.Debug("built job context",
		"title", job.Title,
		"role", job.RoleType,
		"required", len(job.RequiredSkills),
		"preferred", len(job.PreferredSkills))
	return &Posting{Text: cleaned, Metadata: NewMetadata(cleaned, ""), Job: job}, nil
}
