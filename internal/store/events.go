package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// GatewayEventData captures a single AI gateway call for the event log.
type GatewayEventData struct {
	Purpose     string
	Provider    string
	Model       string
	LatencyMs   int64
	Success     bool
	Error       string
	InputChars  int
	OutputChars int
}

// GatewayEventRecord is a logged gateway call read back from the store.
type GatewayEventRecord struct {
	ID        int64
	Timestamp time.Time
	GatewayEventData
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // filter by purpose label ("" = all)
}

// EventRepo provides append and query access to the gateway event log.
type EventRepo interface {
	// Append records an AI gateway call.
	Append(ctx context.Context, data GatewayEventData) error

	// Query returns logged calls, newest first.
	Query(ctx context.Context, opts QueryOpts) ([]GatewayEventRecord, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) Append(ctx context.Context, data GatewayEventData) error {
	success := 0
	if data.Success {
		success = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gateway_events
			(purpose, provider, model, latency_ms, success, error, input_chars, output_chars)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Purpose, data.Provider, data.Model, data.LatencyMs,
		success, data.Error, data.InputChars, data.OutputChars,
	)
	if err != nil {
		return fmt.Errorf("append gateway event: %w", err)
	}
	return nil
}

func (r *eventRepo) Query(ctx context.Context, opts QueryOpts) ([]GatewayEventRecord, error) {
	q := `SELECT id, timestamp, purpose, provider, model, latency_ms, success, error, input_chars, output_chars
		FROM gateway_events`
	var args []any
	if opts.Purpose != "" {
		q += ` WHERE purpose = ?`
		args = append(args, opts.Purpose)
	}
	q += ` ORDER BY id DESC`
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query gateway events: %w", err)
	}
	defer rows.Close()

	var records []GatewayEventRecord
	for rows.Next() {
		var rec GatewayEventRecord
		var success int
		if err := rows.Scan(
			&rec.ID, &rec.Timestamp, &rec.Purpose, &rec.Provider, &rec.Model,
			&rec.LatencyMs, &success, &rec.Error, &rec.InputChars, &rec.OutputChars,
		); err != nil {
			return nil, fmt.Errorf("scan gateway event: %w", err)
		}
		rec.Success = success == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}
