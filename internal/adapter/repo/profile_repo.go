package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

// ProfileRepositoryPG implements domain.ProfileRepository backed by PostgreSQL.
type ProfileRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepositoryPG.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepositoryPG {
	return &ProfileRepositoryPG{pool: pool}
}

const profileColumns = `id, email, display_name, photo_url, role, linked_teacher_email, last_active`

// GetByID fetches a profile by the identity-provider user id.
func (r *ProfileRepositoryPG) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE id = $1`, id)
	return scanProfile(row)
}

// Upsert lazily creates the profile on first touch and refreshes the
// identity-derived fields afterwards. Merge semantics: role and
// linked_teacher_email are never overwritten here, and last_active is always
// bumped.
func (r *ProfileRepositoryPG) Upsert(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	query := `
INSERT INTO user_profiles (id, email, display_name, photo_url, role, last_active)
VALUES ($1, $2, $3, $4, $5, NOW())
ON CONFLICT (id) DO UPDATE
SET email = EXCLUDED.email,
    display_name = EXCLUDED.display_name,
    photo_url = EXCLUDED.photo_url,
    last_active = NOW()
RETURNING ` + profileColumns + `;
`
	role := profile.Role
	if role == "" {
		role = domain.RoleStudent
	}
	row := r.pool.QueryRow(ctx, query, profile.ID, profile.Email, profile.DisplayName, profile.PhotoURL, role)
	return scanProfile(row)
}

// SetLinkedTeacher stores the teacher email the student linked to.
func (r *ProfileRepositoryPG) SetLinkedTeacher(ctx context.Context, userID, teacherEmail string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE user_profiles SET linked_teacher_email = $2, last_active = NOW() WHERE id = $1`,
		userID, strings.ToLower(strings.TrimSpace(teacherEmail)))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetRole updates the persisted role. Super-admin console only.
func (r *ProfileRepositoryPG) SetRole(ctx context.Context, userID string, role domain.Role) error {
	tag, err := r.pool.Exec(ctx, `UPDATE user_profiles SET role = $2 WHERE id = $1`, userID, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAll returns every profile, newest activity first.
func (r *ProfileRepositoryPG) ListAll(ctx context.Context) ([]domain.UserProfile, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+profileColumns+` FROM user_profiles ORDER BY last_active DESC NULLS LAST`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

// ListByLinkedTeacher returns the students linked to the given teacher email.
func (r *ProfileRepositoryPG) ListByLinkedTeacher(ctx context.Context, teacherEmail string) ([]domain.UserProfile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE linked_teacher_email = $1 ORDER BY display_name ASC`,
		strings.ToLower(strings.TrimSpace(teacherEmail)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

func collectProfiles(rows pgx.Rows) ([]domain.UserProfile, error) {
	var profiles []domain.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func scanProfile(row pgx.Row) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var photoURL, linkedTeacher sql.NullString
	var lastActive sql.NullTime
	var role string
	if err := row.Scan(&p.ID, &p.Email, &p.DisplayName, &photoURL, &role, &linkedTeacher, &lastActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.PhotoURL = photoURL.String
	p.LinkedTeacherEmail = linkedTeacher.String
	p.Role = domain.ParseRole(role)
	if lastActive.Valid {
		p.LastActive = lastActive.Time
	}
	return &p, nil
}
