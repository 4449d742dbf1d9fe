package hermes

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/myssom/letterbrick/internal/feedback"
	"github.com/myssom/letterbrick/internal/pipeline"
	"github.com/myssom/letterbrick/internal/rating"
)

func outcome(rated bool) pipeline.Outcome {
	o := pipeline.Outcome{
		Record: feedback.Record{
			ID:           uuid.MustParse("0b6d8a52-3c1e-4f7a-9d43-5a2f0c8e1b77"),
			Timestamp:    time.Date(2024, 10, 1, 9, 30, 0, 0, time.Local),
			OriginalText: "가을 하늘은 맑고 푸르다.",
			CreativeText: "가을 하늘 아래, 내 마음도 맑아진다.",
		},
		Persisted: true,
	}
	if rated {
		o.Rating, o.Rated = rating.FromValue(4.5), true
	}
	return o
}

func TestNewRecordedEvent_Rated(t *testing.T) {
	evt := NewRecordedEvent(outcome(true))

	if evt.RecordID != "0b6d8a52-3c1e-4f7a-9d43-5a2f0c8e1b77" {
		t.Errorf("unexpected record id %q", evt.RecordID)
	}
	if evt.Key != "2024-10-01 09:30:00" {
		t.Errorf("expected key 2024-10-01 09:30:00, got %q", evt.Key)
	}
	if evt.Rating == nil || *evt.Rating != 4.5 {
		t.Fatalf("expected rating 4.5, got %v", evt.Rating)
	}
	if evt.Stars != "⭐️⭐️⭐️⭐️☆ (4.5점)" {
		t.Errorf("unexpected stars %q", evt.Stars)
	}
}

func TestNewRecordedEvent_UnratedEncodesNull(t *testing.T) {
	data, err := json.Marshal(NewRecordedEvent(outcome(false)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := raw["rating"]; !ok || v != nil {
		t.Errorf("expected rating null, got %v (present=%v)", v, ok)
	}
	if _, ok := raw["stars"]; ok {
		t.Error("expected stars to be omitted when unrated")
	}
	if raw["creative_text"] != "가을 하늘 아래, 내 마음도 맑아진다." {
		t.Errorf("unexpected creative_text %v", raw["creative_text"])
	}
}
