// Package slack posts a summary of every recorded feedback run to a channel.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/myssom/letterbrick/internal/pipeline"
)

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

type Poster struct {
	token   string
	channel string
	client  *http.Client
	logger  *slog.Logger
	apiURL  string
}

func NewPoster(token, channel string, logger *slog.Logger) *Poster {
	return &Poster{
		token:   token,
		channel: channel,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiURL:  defaultPostMessageURL,
		logger:  logger,
	}
}

// Notify implements pipeline.Notifier. The summary goes to the channel and
// the full creative evaluation is attached as a thread reply.
func (p *Poster) Notify(ctx context.Context, o pipeline.Outcome) error {
	ts, err := p.PostSummary(ctx, o)
	if err != nil {
		return err
	}
	if o.Record.CreativeScore == "" {
		return nil
	}
	return p.PostThread(ctx, ts, o.Record.CreativeScore)
}

// PostSummary posts the record summary and returns the message timestamp.
func (p *Poster) PostSummary(ctx context.Context, o pipeline.Outcome) (string, error) {
	text := formatSummary(o)

	ts, err := p.post(ctx, map[string]any{
		"channel": p.channel,
		"text":    text,
		"blocks": []map[string]any{
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": text,
				},
			},
			{
				"type": "context",
				"elements": []map[string]any{
					{
						"type": "mrkdwn",
						"text": "기록 " + o.Record.Key() + " | " + o.Record.ID.String(),
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}

	p.logger.Info("posted feedback summary to slack", "ts", ts, "key", o.Record.Key())
	return ts, nil
}

// PostThread posts a threaded reply to a message.
func (p *Poster) PostThread(ctx context.Context, threadTS, text string) error {
	_, err := p.post(ctx, map[string]any{
		"channel":   p.channel,
		"thread_ts": threadTS,
		"text":      text,
	})
	return err
}

func (p *Poster) post(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("slack post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		TS    string `json:"ts"`
		Error string `json:"error,omitempty"`
	}
	if err := json.Unmarshal(respBody, &slackResp); err != nil {
		return "", fmt.Errorf("parse slack response: %w", err)
	}
	if !slackResp.OK {
		return "", fmt.Errorf("slack error: %s", slackResp.Error)
	}
	return slackResp.TS, nil
}

func formatSummary(o pipeline.Outcome) string {
	var sb strings.Builder
	rec := o.Record

	sb.WriteString("*새 필사 평가가 기록되었습니다*\n")
	if rec.OriginalText != "" {
		fmt.Fprintf(&sb, "*원문:* %s\n", rec.OriginalText)
	}
	if rec.TransformedText != "" {
		fmt.Fprintf(&sb, "*형태변형:* %s\n", rec.TransformedText)
	}
	fmt.Fprintf(&sb, "*창의적:* %s\n", rec.CreativeText)

	if o.Rated {
		fmt.Fprintf(&sb, "*별점:* %s\n", o.Rating.String())
	} else {
		sb.WriteString("*별점:* _평가 텍스트에서 별점을 찾지 못했습니다._\n")
	}
	if rec.CreativeRemark != "" {
		fmt.Fprintf(&sb, "> %s", rec.CreativeRemark)
	}

	return sb.String()
}
