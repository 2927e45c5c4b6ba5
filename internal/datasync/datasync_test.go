package datasync

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_question "github.com/at-ishikawa/quizbot/internal/mocks/question"
	"github.com/at-ishikawa/quizbot/internal/question"
)

func TestImporter_Import(t *testing.T) {
	questions := []question.Question{
		{ID: 2, Text: "What is dropout?", Topic: "dl"},
		{ID: 1, Text: "What is a gradient?", Answer: "Vector of partial derivatives"},
	}

	tests := []struct {
		name       string
		opts       ImportOptions
		setup      func(repo *mock_question.MockImportRepository)
		want       *ImportResult
		wantOutput []string
		wantErr    bool
	}{
		{
			name: "new and existing questions are upserted in id order",
			setup: func(repo *mock_question.MockImportRepository) {
				repo.EXPECT().FindAllIDs(gomock.Any()).Return([]int64{2, 10}, nil)
				repo.EXPECT().Upsert(gomock.Any(), []question.Question{questions[1], questions[0]}).Return(nil)
			},
			want:       &ImportResult{New: 1, Updated: 1},
			wantOutput: []string{`[NEW]  #1 "What is a gradient?"`, `[UPDATE]  #2 "What is dropout?"`},
		},
		{
			name: "dry run does not write",
			opts: ImportOptions{DryRun: true},
			setup: func(repo *mock_question.MockImportRepository) {
				repo.EXPECT().FindAllIDs(gomock.Any()).Return(nil, nil)
			},
			want: &ImportResult{New: 2},
		},
		{
			name: "upsert failure",
			setup: func(repo *mock_question.MockImportRepository) {
				repo.EXPECT().FindAllIDs(gomock.Any()).Return(nil, nil)
				repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("constraint violation"))
			},
			wantErr: true,
		},
		{
			name: "id lookup failure",
			setup: func(repo *mock_question.MockImportRepository) {
				repo.EXPECT().FindAllIDs(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_question.NewMockImportRepository(ctrl)
			tt.setup(repo)

			var out bytes.Buffer
			got, err := NewImporter(repo, &out).Import(context.Background(), questions, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		format  Format
		want    []question.Question
		wantErr error
	}{
		{
			name:   "raw json",
			input:  `[{"id": 1, "question": "What is bias?", "topic": "ML", "answer": "Systematic error"}, {"id": 2, "question": "What is AUC?"}]`,
			format: FormatJSON,
			want: []question.Question{
				{ID: 1, Text: "What is bias?", Topic: "ML", Answer: "Systematic error"},
				{ID: 2, Text: "What is AUC?"},
			},
		},
		{
			name: "yaml",
			input: `- id: 1
  question: What is bias?
  topic: ML
- id: 2
  question: What is AUC?
  answer: Area under the ROC curve
`,
			format: FormatYAML,
			want: []question.Question{
				{ID: 1, Text: "What is bias?", Topic: "ML"},
				{ID: 2, Text: "What is AUC?", Answer: "Area under the ROC curve"},
			},
		},
		{
			name:   "empty yaml",
			input:  "",
			format: FormatYAML,
		},
		{
			name:    "missing text",
			input:   `[{"id": 1, "question": "  "}]`,
			format:  FormatJSON,
			wantErr: ErrInvalidQuestion,
		},
		{
			name:    "missing id",
			input:   `[{"question": "What is bias?"}]`,
			format:  FormatJSON,
			wantErr: ErrInvalidQuestion,
		},
		{
			name:    "duplicate id",
			input:   `[{"id": 1, "question": "A"}, {"id": 1, "question": "B"}]`,
			format:  FormatJSON,
			wantErr: ErrInvalidQuestion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input), tt.format)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raw.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 3, "question": "What is recall?"}]`), 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []question.Question{{ID: 3, Text: "What is recall?"}}, got)

	_, err = ReadFile(filepath.Join(dir, "questions.csv"))
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "raw.json", want: FormatJSON},
		{path: "questions.YAML", want: FormatYAML},
		{path: "questions.yml", want: FormatYAML},
		{path: "questions.txt", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
