package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, sessionEventsTable,
		[]string{"session_id", "difficulty", "year", "subjects", "score", "attempts", "duration_secs"},
		[]any{data.SessionID, data.Difficulty, data.Year, data.Subjects, data.Score, data.Attempts, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	b := builder()
	query, args := applyOpts(
		b.Select("id", "sequence", "timestamp", "session_id", "difficulty", "year", "subjects", "score", "attempts", "duration_secs").
			From(b.Table(sessionEventsTable)),
		opts,
	).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.SessionID, &rec.Difficulty, &rec.Year, &rec.Subjects,
			&rec.Score, &rec.Attempts, &rec.DurationSecs,
		); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return records, nil
}

func (r *eventRepo) ClearSessions(ctx context.Context) (int64, error) {
	query, args := builder().Delete(sessionEventsTable).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear session events: %w", err)
	}
	return res.RowsAffected()
}
