// Package authz derives the effective capability of a session and backs the
// route guards. Capabilities are computed per request, never persisted.
package authz

// Capability is the effective permission level of a session.
type Capability string

const (
	CapabilityStudent    Capability = "student"
	CapabilityTeacher    Capability = "teacher"
	CapabilitySuperAdmin Capability = "superAdmin"
)

// In reports whether the capability is a member of the given set.
func (c Capability) In(set ...Capability) bool {
	for _, s := range set {
		if c == s {
			return true
		}
	}
	return false
}
