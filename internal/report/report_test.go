// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/slide-scorer/pkg/types"
)

func sampleReport() types.AggregateReport {
	return types.AggregateReport{
		Source: "review.pptx",
		SlideScores: []types.SlideScore{
			{
				Number:   1,
				Weighted: 1.4,
				Report: types.SlideReport{
					types.CriterionStructure: {Score: 5, Comment: `Title present: "Plan".`, Weight: 0.2},
					types.CriterionBrevity:   {Score: 4, Comment: "12 words, within the 50 word limit.", Weight: 0.1},
				},
			},
			{
				Number:   2,
				Weighted: 0,
				Report: types.SlideReport{
					types.CriterionStructure: {Comment: "No title found.", Weight: 0.2},
				},
			},
		},
		AverageScore: 0.7,
	}
}

func TestWriteFeedbackXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "feedback.xlsx")
	rows := []types.FeedbackRow{
		{Slide: "Slide 1", Clarity: "2 bullet points found. Total words: 11.", Outcome: "Focus on outcomes. Yes, outcome identified."},
		{Slide: "Slide 2", Recommendation: "1 recommendations found."},
	}

	require.NoError(t, WriteFeedbackXLSX(path, "", rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheet}, f.GetSheetList())
	got, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, FeedbackHeader, got[0])
	assert.Equal(t, "Slide 1", got[1][0])
	assert.Equal(t, "2 bullet points found. Total words: 11.", got[1][1])
	assert.Equal(t, "Focus on outcomes. Yes, outcome identified.", got[1][3])
	assert.Equal(t, "1 recommendations found.", got[2][6])
}

func TestWriteFeedbackXLSXHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteFeedbackXLSX(path, "Review", nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Review")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, FeedbackHeader, got[0])
}

func TestPrintScores(t *testing.T) {
	var buf bytes.Buffer
	PrintScores(&buf, sampleReport())
	out := buf.String()

	assert.Contains(t, out, "Slide 1: 1.40")
	assert.Contains(t, out, "Slide 2: 0.00")
	assert.Contains(t, out, "Overall average score: 0.70 (2 slides)")

	// Criteria appear in report order regardless of map order.
	first := strings.Index(out, "structure")
	brevity := strings.Index(out, "brevity")
	require.True(t, first >= 0 && brevity >= 0)
	assert.Less(t, first, brevity)
	assert.Contains(t, out, "x 0.10")
}

func TestPrintScoresEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintScores(&buf, types.AggregateReport{Source: "blank.pptx"})
	assert.Equal(t, "No slides found in blank.pptx.\n", buf.String())
}

func TestPrintCriteria(t *testing.T) {
	var buf bytes.Buffer
	PrintCriteria(&buf, []types.Criterion{
		{Name: types.CriterionStructure, Weight: 0.5},
		{Name: types.CriterionBrevity, Weight: 0.25},
	})
	assert.Contains(t, buf.String(), fmt.Sprintf("%-15s  0.50", "structure"))
	assert.Contains(t, buf.String(), fmt.Sprintf("%-15s  0.75", "total"))
}

func TestWriteFormats(t *testing.T) {
	r := sampleReport()

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, r, FormatJSON))
		var got types.AggregateReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, r, got)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, r, FormatYAML))
		assert.Contains(t, buf.String(), "average_score: 0.7")
		var got types.AggregateReport
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, r.SlideScores[0].Report, got.SlideScores[0].Report)
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, r, ""))
		assert.Contains(t, buf.String(), "Overall average score")
	})

	t.Run("unsupported", func(t *testing.T) {
		err := Write(&bytes.Buffer{}, r, "csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})
}
