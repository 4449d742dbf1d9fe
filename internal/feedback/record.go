package feedback

import (
	"time"

	"github.com/google/uuid"
)

// KeyLayout is the history key format: one key per second.
const KeyLayout = "2006-01-02 15:04:05"

// Record is the persisted outcome of one complete creative run. The star
// rating is display-only and deliberately not part of it.
type Record struct {
	ID              uuid.UUID `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	OriginalText    string    `json:"original_text"`
	TransformedText string    `json:"transformed_text"`
	CreativeText    string    `json:"creative_text"`
	Analysis        string    `json:"analysis"`
	TransformScore  string    `json:"transform_score"`
	TransformRemark string    `json:"transform_remark"`
	CreativeScore   string    `json:"creative_score"`
	CreativeRemark  string    `json:"creative_remark"`
}

// Key returns the history key for the record.
func (r Record) Key() string {
	return r.Timestamp.Format(KeyLayout)
}

// Section is one labelled block of a rendered report.
type Section struct {
	Label string
	Text  string
}

// Sections returns the record's texts in fixed report order.
func (r Record) Sections() []Section {
	return []Section{
		{Label: "원문", Text: r.OriginalText},
		{Label: "형태변형", Text: r.TransformedText},
		{Label: "창의적", Text: r.CreativeText},
		{Label: "분석", Text: r.Analysis},
		{Label: "형태변형 평가", Text: r.TransformScore},
		{Label: "형태 한 줄 평", Text: r.TransformRemark},
		{Label: "창의 평가", Text: r.CreativeScore},
		{Label: "창의 한 줄 평", Text: r.CreativeRemark},
	}
}

// Record field names, as reported by IncompleteRecordError.
const (
	FieldOriginalText    = "original_text"
	FieldTransformedText = "transformed_text"
	FieldCreativeText    = "creative_text"
	FieldAnalysis        = "analysis"
	FieldTransformScore  = "transform_score"
	FieldTransformRemark = "transform_remark"
	FieldCreativeScore   = "creative_score"
	FieldCreativeRemark  = "creative_remark"
)

var recordFields = []string{
	FieldOriginalText,
	FieldTransformedText,
	FieldCreativeText,
	FieldAnalysis,
	FieldTransformScore,
	FieldTransformRemark,
	FieldCreativeScore,
	FieldCreativeRemark,
}

// RecordBuilder assembles a Record and refuses to build until every field has
// been assigned. An empty string counts as assigned.
type RecordBuilder struct {
	rec Record
	set map[string]bool
}

func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{set: make(map[string]bool, len(recordFields))}
}

// Set assigns a field by name. Unknown names are ignored so they surface as
// missing fields in Build.
func (b *RecordBuilder) Set(field, value string) *RecordBuilder {
	switch field {
	case FieldOriginalText:
		b.rec.OriginalText = value
	case FieldTransformedText:
		b.rec.TransformedText = value
	case FieldCreativeText:
		b.rec.CreativeText = value
	case FieldAnalysis:
		b.rec.Analysis = value
	case FieldTransformScore:
		b.rec.TransformScore = value
	case FieldTransformRemark:
		b.rec.TransformRemark = value
	case FieldCreativeScore:
		b.rec.CreativeScore = value
	case FieldCreativeRemark:
		b.rec.CreativeRemark = value
	default:
		return b
	}
	b.set[field] = true
	return b
}

// SetResult assigns the field that belongs to a stage result.
func (b *RecordBuilder) SetResult(res Result) *RecordBuilder {
	return b.Set(StageField(res.Stage), res.RawText)
}

// Build stamps the record with a fresh id and the given time.
func (b *RecordBuilder) Build(now time.Time) (Record, error) {
	for _, f := range recordFields {
		if !b.set[f] {
			return Record{}, &IncompleteRecordError{Field: f}
		}
	}
	rec := b.rec
	rec.ID = uuid.New()
	rec.Timestamp = now
	return rec, nil
}

// StageField maps a stage to the record field holding its output.
func StageField(s Stage) string {
	switch s {
	case StageAnalysis:
		return FieldAnalysis
	case StageTransformScore:
		return FieldTransformScore
	case StageTransformRemark:
		return FieldTransformRemark
	case StageCreativeScore:
		return FieldCreativeScore
	case StageCreativeRemark:
		return FieldCreativeRemark
	default:
		return ""
	}
}
