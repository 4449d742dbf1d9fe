package feedback

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullBuilder() *RecordBuilder {
	return NewRecordBuilder().
		Set(FieldOriginalText, "가을 하늘은 맑고 푸르다.").
		Set(FieldTransformedText, "하늘이 푸르고 맑은 가을이다.").
		Set(FieldCreativeText, "가을 하늘 아래, 내 마음도 맑아진다.").
		SetResult(Result{Stage: StageAnalysis, RawText: "analysis"}).
		SetResult(Result{Stage: StageTransformScore, RawText: "score 85"}).
		SetResult(Result{Stage: StageTransformRemark, RawText: "remark"}).
		SetResult(Result{Stage: StageCreativeScore, RawText: "4.5"}).
		SetResult(Result{Stage: StageCreativeRemark, RawText: "creative remark"})
}

func TestRecordBuilder_Complete(t *testing.T) {
	now := time.Date(2025, 10, 3, 14, 5, 9, 0, time.Local)

	rec, err := fullBuilder().Build(now)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, "2025-10-03 14:05:09", rec.Key())
	assert.Equal(t, "analysis", rec.Analysis)
	assert.Equal(t, "score 85", rec.TransformScore)
	assert.Equal(t, "creative remark", rec.CreativeRemark)
}

func TestRecordBuilder_EmptyStringCountsAsSet(t *testing.T) {
	rec, err := fullBuilder().Set(FieldTransformedText, "").Set(FieldTransformScore, "").Build(time.Now())
	require.NoError(t, err)
	assert.Empty(t, rec.TransformedText)
	assert.Empty(t, rec.TransformScore)
}

func TestRecordBuilder_MissingField(t *testing.T) {
	b := NewRecordBuilder().
		Set(FieldOriginalText, "a").
		Set(FieldTransformedText, "b").
		Set(FieldCreativeText, "c").
		Set(FieldAnalysis, "d").
		Set(FieldTransformScore, "e").
		Set(FieldTransformRemark, "f").
		Set(FieldCreativeScore, "g")

	_, err := b.Build(time.Now())
	require.Error(t, err)
	assert.True(t, IsIncompleteRecord(err))

	var ir *IncompleteRecordError
	require.ErrorAs(t, err, &ir)
	assert.Equal(t, FieldCreativeRemark, ir.Field)
}

func TestRecordBuilder_UnknownFieldIgnored(t *testing.T) {
	_, err := NewRecordBuilder().Set("nonsense", "x").Build(time.Now())
	var ir *IncompleteRecordError
	require.ErrorAs(t, err, &ir)
	assert.Equal(t, FieldOriginalText, ir.Field)
}

func TestRecord_SectionsOrder(t *testing.T) {
	rec, err := fullBuilder().Build(time.Now())
	require.NoError(t, err)

	sections := rec.Sections()
	require.Len(t, sections, 8)

	labels := make([]string, len(sections))
	for i, s := range sections {
		labels[i] = s.Label
	}
	assert.Equal(t, []string{
		"원문", "형태변형", "창의적", "분석",
		"형태변형 평가", "형태 한 줄 평", "창의 평가", "창의 한 줄 평",
	}, labels)
	assert.Equal(t, "4.5", sections[6].Text)
}

func TestStageField(t *testing.T) {
	for _, s := range Stages {
		assert.NotEmpty(t, StageField(s), "stage %s has no record field", s)
		assert.True(t, s.Valid())
	}
	assert.Empty(t, StageField(Stage("other")))
	assert.False(t, Stage("other").Valid())
}
