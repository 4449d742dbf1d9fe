package feedback

import "context"

// Stage identifies one request/response unit of the feedback pipeline.
type Stage string

const (
	StageAnalysis        Stage = "analysis"
	StageTransformScore  Stage = "transform_score"
	StageTransformRemark Stage = "transform_remark"
	StageCreativeScore   Stage = "creative_score"
	StageCreativeRemark  Stage = "creative_remark"
)

// Stages lists every stage in the order a creative run executes them.
var Stages = []Stage{
	StageAnalysis,
	StageTransformScore,
	StageTransformRemark,
	StageCreativeScore,
	StageCreativeRemark,
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	switch s {
	case StageAnalysis, StageTransformScore, StageTransformRemark, StageCreativeScore, StageCreativeRemark:
		return true
	default:
		return false
	}
}

// Request is a single stage invocation. It is built fresh for every call.
type Request struct {
	Stage      Stage
	SourceText string
}

// Result is the raw evaluator output for one stage. RawText is markdown and
// carries no schema beyond possibly containing a rating token.
type Result struct {
	Stage   Stage  `json:"stage"`
	RawText string `json:"raw_text"`
}

// Completer is the external text-completion capability.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
