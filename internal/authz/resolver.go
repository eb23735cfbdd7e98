package authz

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

// Resolver reconciles the injected super-admin allow-list with the persisted
// profile role into an effective capability.
type Resolver struct {
	superAdmins map[string]struct{}
	profiles    domain.ProfileRepository
	logger      zerolog.Logger
}

// NewResolver builds a resolver around the given allow-list of super-admin
// emails. The list is matched case-insensitively.
func NewResolver(superAdminEmails []string, profiles domain.ProfileRepository, logger zerolog.Logger) *Resolver {
	allow := make(map[string]struct{}, len(superAdminEmails))
	for _, email := range superAdminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allow[email] = struct{}{}
		}
	}
	return &Resolver{superAdmins: allow, profiles: profiles, logger: logger}
}

// Resolve returns the capability for an authenticated identity. The
// allow-list is authoritative and short-circuits the profile read. A missing
// profile, an unrecognized role or a store failure all resolve to student:
// an error on this path must never grant elevated access.
func (r *Resolver) Resolve(ctx context.Context, identity domain.Identity) Capability {
	if r.IsSuperAdmin(identity.Email) {
		return CapabilitySuperAdmin
	}

	profile, err := r.profiles.GetByID(ctx, identity.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Error().Err(err).Str("user_id", identity.ID).Msg("role lookup failed, resolving to student")
		}
		return CapabilityStudent
	}

	if profile.Role == domain.RoleTeacher {
		return CapabilityTeacher
	}
	return CapabilityStudent
}

// IsSuperAdmin reports whether the email is on the injected allow-list.
func (r *Resolver) IsSuperAdmin(email string) bool {
	_, ok := r.superAdmins[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
