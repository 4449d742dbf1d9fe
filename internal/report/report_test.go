package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myssom/letterbrick/internal/feedback"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "emphasis dropped",
			in:   "**가을**(명사) + **하늘**(명사)은(조사)",
			want: []string{"가을(명사) + 하늘(명사)은(조사)"},
		},
		{
			name: "heading and list",
			in:   "## 형태소 분석\n\n- 가을(명사)\n- 하늘(명사)\n",
			want: []string{"형태소 분석", "- 가을(명사)", "- 하늘(명사)"},
		},
		{
			name: "table",
			in:   "| 단어 | 의미 |\n|---|---|\n| 가을 | 계절 |\n| 하늘 | 공간 |\n",
			want: []string{"단어 | 의미", "가을 | 계절", "하늘 | 공간"},
		},
		{
			name: "soft breaks keep lines",
			in:   "첫째 줄\n둘째 줄",
			want: []string{"첫째 줄", "둘째 줄"},
		},
		{
			name: "blank input",
			in:   "  \n\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flatten(tt.in))
		})
	}
}

func TestPDF_RenderCoreFont(t *testing.T) {
	p, err := NewPDF("")
	require.NoError(t, err)

	out, err := p.Render("Letterbrick report", []feedback.Section{
		{Label: "Original", Text: "The autumn sky is clear."},
		{Label: "Analysis", Text: "**bold** words\n\n- item one\n- item two"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output should be a PDF document")
}

func TestPDF_RenderNoSections(t *testing.T) {
	p, err := NewPDF("")
	require.NoError(t, err)

	out, err := p.Render("empty", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestNewPDF_MissingFont(t *testing.T) {
	_, err := NewPDF(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Error(t, err)
}
