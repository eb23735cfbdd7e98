package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

// ProgressRepositoryPG implements domain.ProgressRepository backed by
// PostgreSQL. The table is append-only; nothing updates or deletes events.
type ProgressRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepositoryPG.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepositoryPG {
	return &ProgressRepositoryPG{pool: pool}
}

// Append stores one completion event.
func (r *ProgressRepositoryPG) Append(ctx context.Context, event *domain.CompletionEvent) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO completion_events (id, lesson_id, lesson_title, user_id, user_display_name, completed_at)
VALUES ($1, $2, $3, $4, $5, $6);
`, event.ID, event.LessonID, event.LessonTitle, event.UserID, event.UserDisplayName, event.CompletedAt)
	return err
}

// ListByUser returns the user's completion history, newest first.
func (r *ProgressRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.CompletionEvent, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, lesson_id, lesson_title, user_id, user_display_name, completed_at
FROM completion_events
WHERE user_id = $1
ORDER BY completed_at DESC;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.CompletionEvent
	for rows.Next() {
		var e domain.CompletionEvent
		if err := rows.Scan(&e.ID, &e.LessonID, &e.LessonTitle, &e.UserID, &e.UserDisplayName, &e.CompletedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountByUser counts distinct completed lessons, the teacher-dashboard KPI.
func (r *ProgressRepositoryPG) CountByUser(ctx context.Context, userID string) (int, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT lesson_id) FROM completion_events WHERE user_id = $1`, userID)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
