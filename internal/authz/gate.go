// Package authz implements the capability gate guarding backoffice
// operations. It is a pure per-request decision layer: no stored state
// beyond the actor's role.
package authz

import (
	"errors"
	"strings"

	"github.com/banbasresort/backoffice-api/internal/models"
)

// Capability names the minimum privilege tier an operation requires. The
// tiers nest: every admin also holds agent-write, every agent also holds
// viewer-read.
type Capability string

const (
	// CapabilityViewerRead covers listing and viewing reservations,
	// inquiries, audit logs, and non-revenue analytics.
	CapabilityViewerRead Capability = "viewer-read"
	// CapabilityAgentWrite covers creating and editing reservations and
	// converting inquiries.
	CapabilityAgentWrite Capability = "agent-write"
	// CapabilityAdminOnly covers user management, rate updates, and revenue
	// visibility.
	CapabilityAdminOnly Capability = "admin-only"
)

// Denial reasons. Handlers map these onto distinct responses: missing actor
// sends the caller to login, a missing role record gets an explanatory
// landing-page message, and the ownership violation points back at the
// resource instead of the dashboard.
var (
	ErrUnauthenticated    = errors.New("authz: no authenticated actor")
	ErrNoRoleAssigned     = errors.New("authz: actor has no role assigned")
	ErrInsufficientRole   = errors.New("authz: insufficient role")
	ErrUnknownCapability  = errors.New("authz: unknown capability")
	ErrOwnershipViolation = errors.New("authz: actor does not own the resource")
)

// Actor is the authenticated staff identity attached to a request.
type Actor struct {
	ID   uint
	Name string
	Role string
}

// NormalizedRole returns the actor's role lowercased and trimmed.
func (a Actor) NormalizedRole() string {
	return strings.ToLower(strings.TrimSpace(a.Role))
}

var capabilityRoles = map[Capability]map[string]struct{}{
	CapabilityViewerRead: {
		models.RoleViewer: {},
		models.RoleAgent:  {},
		models.RoleAdmin:  {},
	},
	CapabilityAgentWrite: {
		models.RoleAgent: {},
		models.RoleAdmin: {},
	},
	CapabilityAdminOnly: {
		models.RoleAdmin: {},
	},
}

// Authorize decides whether the actor may perform an operation requiring the
// given capability. A nil actor is unauthenticated; an actor with an empty
// role is denied with ErrNoRoleAssigned for every capability, which callers
// must keep distinguishable from ErrInsufficientRole.
func Authorize(actor *Actor, capability Capability) error {
	if actor == nil || actor.ID == 0 {
		return ErrUnauthenticated
	}

	role := actor.NormalizedRole()
	if role == "" {
		return ErrNoRoleAssigned
	}

	allowed, ok := capabilityRoles[capability]
	if !ok {
		return ErrUnknownCapability
	}
	if _, ok := allowed[role]; !ok {
		return ErrInsufficientRole
	}

	return nil
}

// AuthorizeOwner applies Authorize and then the ownership refinement used by
// reservation edit and delete: holders of the capability may act only on
// reservations they created, unless they are admins.
func AuthorizeOwner(actor *Actor, capability Capability, ownerID uint) error {
	if err := Authorize(actor, capability); err != nil {
		return err
	}
	if actor.NormalizedRole() == models.RoleAdmin {
		return nil
	}
	if actor.ID != ownerID {
		return ErrOwnershipViolation
	}
	return nil
}

// CanViewRevenue reports whether the actor may see revenue figures.
func CanViewRevenue(actor *Actor) bool {
	return Authorize(actor, CapabilityAdminOnly) == nil
}
