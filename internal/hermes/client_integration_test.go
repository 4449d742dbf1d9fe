//go:build integration

package hermes

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"
)

func skipWithoutNATS(t *testing.T) string {
	t.Helper()
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set, skipping integration test")
	}
	return url
}

func TestIntegration_NotifyPublishesRecordedEvent(t *testing.T) {
	natsURL := skipWithoutNATS(t)
	ctx := context.Background()

	client, err := NewClient(ctx, natsURL, os.Getenv("NATS_TOKEN"), slog.Default())
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer client.Close()

	received := make(chan RecordedEvent, 1)
	err = client.Subscribe(SubjectRecorded, func(subject string, data []byte) {
		var evt RecordedEvent
		json.Unmarshal(data, &evt)
		received <- evt
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	// Give subscription time to propagate
	time.Sleep(100 * time.Millisecond)

	if err := client.Notify(ctx, outcome(true)); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	select {
	case evt := <-received:
		if evt.Key != "2024-10-01 09:30:00" {
			t.Errorf("unexpected key %q", evt.Key)
		}
		if evt.Rating == nil || *evt.Rating != 4.5 {
			t.Errorf("expected rating 4.5, got %v", evt.Rating)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}
