package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

// LessonRepositoryPG implements domain.LessonRepository backed by PostgreSQL.
// Theory, vocabulary and exercises live in jsonb columns; lessons are only
// written by bulk seeding.
type LessonRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewLessonRepository creates a new LessonRepositoryPG.
func NewLessonRepository(pool *pgxpool.Pool) *LessonRepositoryPG {
	return &LessonRepositoryPG{pool: pool}
}

const lessonColumns = `id, sequence_number, title, theory, vocabulary, exercises, created_at, updated_at`

// List returns the full catalog ordered by sequence number ascending.
func (r *LessonRepositoryPG) List(ctx context.Context) ([]domain.Lesson, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+lessonColumns+` FROM lessons ORDER BY sequence_number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, *lesson)
	}
	return lessons, rows.Err()
}

// GetByID fetches a single lesson.
func (r *LessonRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+lessonColumns+` FROM lessons WHERE id = $1`, id)
	return scanLesson(row)
}

// UpsertAll replaces the stored catalog entries for the given lessons in one
// transaction. Used by the bulk seed flow only.
func (r *LessonRepositoryPG) UpsertAll(ctx context.Context, lessons []domain.Lesson) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const query = `
INSERT INTO lessons (id, sequence_number, title, theory, vocabulary, exercises)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET sequence_number = EXCLUDED.sequence_number,
    title = EXCLUDED.title,
    theory = EXCLUDED.theory,
    vocabulary = EXCLUDED.vocabulary,
    exercises = EXCLUDED.exercises,
    updated_at = NOW();
`
	for _, lesson := range lessons {
		theory, err := json.Marshal(lesson.Theory)
		if err != nil {
			return fmt.Errorf("marshal theory for %s: %w", lesson.ID, err)
		}
		vocabulary, err := json.Marshal(lesson.Vocabulary)
		if err != nil {
			return fmt.Errorf("marshal vocabulary for %s: %w", lesson.ID, err)
		}
		exercises, err := json.Marshal(lesson.Exercises)
		if err != nil {
			return fmt.Errorf("marshal exercises for %s: %w", lesson.ID, err)
		}
		if _, err := tx.Exec(ctx, query, lesson.ID, lesson.SequenceNumber, lesson.Title, theory, vocabulary, exercises); err != nil {
			return fmt.Errorf("upsert lesson %s: %w", lesson.ID, err)
		}
	}
	return tx.Commit(ctx)
}

func scanLesson(row pgx.Row) (*domain.Lesson, error) {
	var l domain.Lesson
	var theory, vocabulary, exercises []byte
	if err := row.Scan(&l.ID, &l.SequenceNumber, &l.Title, &theory, &vocabulary, &exercises, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(theory, &l.Theory); err != nil {
		return nil, fmt.Errorf("decode theory for %s: %w", l.ID, err)
	}
	if err := json.Unmarshal(vocabulary, &l.Vocabulary); err != nil {
		return nil, fmt.Errorf("decode vocabulary for %s: %w", l.ID, err)
	}
	if err := json.Unmarshal(exercises, &l.Exercises); err != nil {
		return nil, fmt.Errorf("decode exercises for %s: %w", l.ID, err)
	}
	return &l, nil
}
