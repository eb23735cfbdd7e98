package domain

import (
	"strings"
	"time"
)

// Role enumerates the persisted roles a profile may carry.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a persisted role value onto a known Role. Unknown or empty
// values degrade to student.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleTeacher:
		return RoleTeacher
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleStudent
	}
}

// Identity is the authenticated user as reported by the identity provider.
// It is immutable for the session and not owned by this service.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
	PhotoURL    string
}

// UserProfile is the persisted per-user document, keyed by Identity.ID.
// Created lazily on the first profile-touching action.
type UserProfile struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	DisplayName        string    `json:"displayName"`
	PhotoURL           string    `json:"photoURL,omitempty"`
	Role               Role      `json:"role"`
	LinkedTeacherEmail string    `json:"linkedTeacherEmail,omitempty"`
	LastActive         time.Time `json:"lastActive"`
}
