package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/myssom/letterbrick/internal/pipeline"
)

// SubjectRecorded is published once per persisted feedback record.
const SubjectRecorded = "letterbrick.feedback.recorded"

// RecordedEvent announces a persisted record. Rating is nil when the
// evaluator text carried no rating token.
type RecordedEvent struct {
	RecordID     string    `json:"record_id"`
	Key          string    `json:"key"`
	Timestamp    time.Time `json:"timestamp"`
	OriginalText string    `json:"original_text"`
	CreativeText string    `json:"creative_text"`
	Rating       *float64  `json:"rating"`
	Stars        string    `json:"stars,omitempty"`
}

// NewRecordedEvent summarises a creative run outcome.
func NewRecordedEvent(o pipeline.Outcome) RecordedEvent {
	evt := RecordedEvent{
		RecordID:     o.Record.ID.String(),
		Key:          o.Record.Key(),
		Timestamp:    o.Record.Timestamp,
		OriginalText: o.Record.OriginalText,
		CreativeText: o.Record.CreativeText,
	}
	if o.Rated {
		v := o.Rating.Value
		evt.Rating = &v
		evt.Stars = o.Rating.String()
	}
	return evt
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(ctx context.Context, url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.Name("letterbrick"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

// Notify implements pipeline.Notifier.
func (c *Client) Notify(_ context.Context, o pipeline.Outcome) error {
	if err := c.Publish(SubjectRecorded, NewRecordedEvent(o)); err != nil {
		return fmt.Errorf("publish %s: %w", SubjectRecorded, err)
	}
	return nil
}

func (c *Client) Subscribe(subject string, handler func(subject string, data []byte)) error {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", subject)
	return nil
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.conn.Close()
}
