package feedback

import (
	"errors"
	"fmt"
)

// ErrUnknownStage is returned by Build for a stage without a template.
var ErrUnknownStage = errors.New("unknown stage")

const analysisPrompt = `문예창작 교수처럼 아래 문장을 분석해 주세요.
각 항목은 Markdown 형식으로 출력하고, 중요한 단어는 **굵게** 표시해 주세요.

✅ 형태소 분석: 단어(품사) + 조사
✅ 의미 분석: 주요 단어 → 의미 설명 (표 형식)
✅ 수사법 분석: 어떤 수사법을 사용했고 어떤 효과가 있는지 설명

문장: "%s"`

const transformScorePrompt = `아래 문장은 사용자의 형태변형 필사입니다.
아래 기준으로 엄격하게 평가해 주세요:
- 구조적 변형도 (30점)
- 의미 보존 (30점)
- 문법 정확성 (20점)
- 표현력 (20점)

항목별 점수 + 총점 + 개선 예시 포함 (Markdown 형식)

문장: "%s"`

const creativeScorePrompt = `아래 문장은 사용자의 창의적 필사입니다.
아래 기준으로 엄격하게 평가해 주세요:
- 감성 전달력
- 창의성
- 문장 완성도
- 스타일 적합성

1. 별점 (숫자만, 1~5점)
2. 장점
3. 개선점
4. 총평

별점은 반드시 숫자만 표시하고, 나머지는 Markdown 형식으로 출력해 주세요.

문장: "%s"`

// Remark stages must answer in one sentence, formal register.
const transformRemarkPrompt = `아래 문장을 **AI 문창과 교수**처럼 평가해 주세요.
- 작법적으로 한 문장으로 피드백
- 어미는 모두 존댓말(~입니다 / ~합니다 등)로 통일해 주세요.

문장: "%s"`

const creativeRemarkPrompt = `아래 문장을 **AI 문창과 교수**처럼 평가해 주세요.
- 작법적으로 한 문장으로
- 어미는 모두 **존댓말**(~입니다 / ~합니다)로 작성해 주세요.

문장: "%s"`

var templates = map[Stage]string{
	StageAnalysis:        analysisPrompt,
	StageTransformScore:  transformScorePrompt,
	StageTransformRemark: transformRemarkPrompt,
	StageCreativeScore:   creativeScorePrompt,
	StageCreativeRemark:  creativeRemarkPrompt,
}

// Build renders the instruction prompt for a stage. It does not validate the
// source text; callers skip stages whose input is empty.
func Build(stage Stage, sourceText string) (string, error) {
	tmpl, ok := templates[stage]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
	return fmt.Sprintf(tmpl, sourceText), nil
}
