package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ClaudesonRodrigo/english-turbo/internal/authz"
	"github.com/ClaudesonRodrigo/english-turbo/internal/domain"
)

// CapabilityResolver resolves the effective capability for an identity.
// Satisfied by authz.Resolver.
type CapabilityResolver interface {
	Resolve(ctx context.Context, identity domain.Identity) authz.Capability
}

type capabilityContextKey struct{}

// LandingRoute is where denied requests are pointed at.
const LandingRoute = "/"

// RequireCapability guards a route group. A request without an authenticated
// identity is still unresolved and gets 401; the protected handler must not
// run, not even transiently. A resolved capability outside the allowed set
// gets 403 with a redirect hint to the landing route. Allowed requests carry
// the resolved capability in their context.
func RequireCapability(resolver CapabilityResolver, allowed ...authz.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "unauthorized",
					"message": "authentication required",
				})
				return
			}

			capability := resolver.Resolve(r.Context(), identity)
			if !capability.In(allowed...) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":    "forbidden",
					"message":  "insufficient capability",
					"redirect": LandingRoute,
				})
				return
			}

			ctx := context.WithValue(r.Context(), capabilityContextKey{}, capability)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CapabilityFromContext returns the capability resolved by the guard.
func CapabilityFromContext(ctx context.Context) (authz.Capability, bool) {
	capability, ok := ctx.Value(capabilityContextKey{}).(authz.Capability)
	return capability, ok
}
