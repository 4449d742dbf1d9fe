package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/myssom/letterbrick/internal/feedback"
)

const schema = `
CREATE TABLE IF NOT EXISTS feedback_records (
	key              text PRIMARY KEY,
	id               uuid NOT NULL,
	created_at       timestamptz NOT NULL,
	original_text    text NOT NULL,
	transformed_text text NOT NULL,
	creative_text    text NOT NULL,
	analysis         text NOT NULL,
	transform_score  text NOT NULL,
	transform_remark text NOT NULL,
	creative_score   text NOT NULL,
	creative_remark  text NOT NULL
)`

// Postgres keeps the history in a single feedback_records table.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (s *Postgres) Close() {
	s.pool.Close()
}

// Append writes a record. A key collision replaces the earlier row.
func (s *Postgres) Append(ctx context.Context, key string, rec feedback.Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO feedback_records (key, id, created_at, original_text, transformed_text, creative_text,
			analysis, transform_score, transform_remark, creative_score, creative_remark)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (key) DO UPDATE SET
			id = EXCLUDED.id,
			created_at = EXCLUDED.created_at,
			original_text = EXCLUDED.original_text,
			transformed_text = EXCLUDED.transformed_text,
			creative_text = EXCLUDED.creative_text,
			analysis = EXCLUDED.analysis,
			transform_score = EXCLUDED.transform_score,
			transform_remark = EXCLUDED.transform_remark,
			creative_score = EXCLUDED.creative_score,
			creative_remark = EXCLUDED.creative_remark`,
		key, rec.ID, rec.Timestamp, rec.OriginalText, rec.TransformedText, rec.CreativeText,
		rec.Analysis, rec.TransformScore, rec.TransformRemark, rec.CreativeScore, rec.CreativeRemark,
	)
	if err != nil {
		return fmt.Errorf("insert feedback record: %w", err)
	}
	return nil
}

func (s *Postgres) LoadAll(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT key, id, created_at, original_text, transformed_text, creative_text,
			analysis, transform_score, transform_remark, creative_score, creative_remark
		FROM feedback_records
		ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("query feedback records: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		r := &e.Record
		if err := rows.Scan(&e.Key, &r.ID, &r.Timestamp, &r.OriginalText, &r.TransformedText, &r.CreativeText,
			&r.Analysis, &r.TransformScore, &r.TransformRemark, &r.CreativeScore, &r.CreativeRemark); err != nil {
			return nil, fmt.Errorf("scan feedback record: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback records: %w", err)
	}
	return entries, nil
}
