// Package datasync imports the question bank from JSON or YAML files into the database.
package datasync

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/quizbot/internal/question"
)

// Format is the encoding of a question file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrInvalidQuestion = errors.New("invalid question")

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported question file extension: %s", path)
}

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	New     int
	Updated int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
}

// Importer reads question files and upserts them by id.
type Importer struct {
	repo   question.ImportRepository
	writer io.Writer
}

func NewImporter(repo question.ImportRepository, writer io.Writer) *Importer {
	return &Importer{
		repo:   repo,
		writer: writer,
	}
}

// ReadFile decodes the questions of a raw.json style array or the equivalent YAML list.
func ReadFile(path string) ([]question.Question, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return Decode(file, format)
}

func Decode(r io.Reader, format Format) ([]question.Question, error) {
	var questions []question.Question
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&questions); err != nil {
			return nil, fmt.Errorf("json.Decode() > %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&questions); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("yaml.Decode() > %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported question format: %s", format)
	}
	if err := validate(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func validate(questions []question.Question) error {
	for i, q := range questions {
		if q.ID <= 0 {
			return fmt.Errorf("%w: entry %d has no positive id", ErrInvalidQuestion, i)
		}
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("%w: question %d has no text", ErrInvalidQuestion, q.ID)
		}
	}
	if dups := lo.FindDuplicatesBy(questions, func(q question.Question) int64 { return q.ID }); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate id %d", ErrInvalidQuestion, dups[0].ID)
	}
	return nil
}

// Import upserts questions by id. With DryRun only the report is written.
func (imp *Importer) Import(ctx context.Context, questions []question.Question, opts ImportOptions) (*ImportResult, error) {
	ids, err := imp.repo.FindAllIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindAllIDs() > %w", err)
	}
	existing := lo.SliceToMap(ids, func(id int64) (int64, struct{}) { return id, struct{}{} })

	sorted := slices.Clone(questions)
	slices.SortFunc(sorted, func(a, b question.Question) int {
		return cmp.Compare(a.ID, b.ID)
	})

	var result ImportResult
	for _, q := range sorted {
		if _, ok := existing[q.ID]; ok {
			fmt.Fprintf(imp.writer, "  [UPDATE]  #%d %q\n", q.ID, q.Text)
			result.Updated++
			continue
		}
		fmt.Fprintf(imp.writer, "  [NEW]  #%d %q\n", q.ID, q.Text)
		result.New++
	}

	if opts.DryRun || len(sorted) == 0 {
		return &result, nil
	}
	if err := imp.repo.Upsert(ctx, sorted); err != nil {
		return nil, fmt.Errorf("Upsert() > %w", err)
	}
	return &result, nil
}
