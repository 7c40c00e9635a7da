package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorizeCapabilityMatrix(t *testing.T) {
	cases := []struct {
		name       string
		role       string
		capability Capability
		wantErr    error
	}{
		{"viewer can read", "viewer", CapabilityViewerRead, nil},
		{"agent can read", "agent", CapabilityViewerRead, nil},
		{"admin can read", "admin", CapabilityViewerRead, nil},
		{"viewer cannot write", "viewer", CapabilityAgentWrite, ErrInsufficientRole},
		{"agent can write", "agent", CapabilityAgentWrite, nil},
		{"admin can write", "admin", CapabilityAgentWrite, nil},
		{"viewer denied admin", "viewer", CapabilityAdminOnly, ErrInsufficientRole},
		{"agent denied admin", "agent", CapabilityAdminOnly, ErrInsufficientRole},
		{"admin allowed admin", "admin", CapabilityAdminOnly, nil},
		{"role casing normalized", " Admin ", CapabilityAdminOnly, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(&Actor{ID: 7, Role: tc.role}, tc.capability)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestAuthorizeUnauthenticated(t *testing.T) {
	require.ErrorIs(t, Authorize(nil, CapabilityViewerRead), ErrUnauthenticated)
	require.ErrorIs(t, Authorize(&Actor{ID: 0, Role: "admin"}, CapabilityViewerRead), ErrUnauthenticated)
}

func TestAuthorizeNoRoleAssignedDeniedEverywhere(t *testing.T) {
	actor := &Actor{ID: 3, Name: "roleless"}
	for _, capability := range []Capability{CapabilityViewerRead, CapabilityAgentWrite, CapabilityAdminOnly} {
		err := Authorize(actor, capability)
		require.ErrorIs(t, err, ErrNoRoleAssigned)
		require.NotErrorIs(t, err, ErrInsufficientRole)
	}
}

func TestAuthorizeUnknownCapability(t *testing.T) {
	require.ErrorIs(t, Authorize(&Actor{ID: 1, Role: "admin"}, Capability("superuser")), ErrUnknownCapability)
}

func TestAuthorizeOwnerRefinement(t *testing.T) {
	const ownerID = 11

	require.NoError(t, AuthorizeOwner(&Actor{ID: ownerID, Role: "agent"}, CapabilityAgentWrite, ownerID))
	require.NoError(t, AuthorizeOwner(&Actor{ID: 99, Role: "admin"}, CapabilityAgentWrite, ownerID))

	err := AuthorizeOwner(&Actor{ID: 12, Role: "agent"}, CapabilityAgentWrite, ownerID)
	require.ErrorIs(t, err, ErrOwnershipViolation)

	// Capability check still runs first.
	err = AuthorizeOwner(&Actor{ID: ownerID, Role: "viewer"}, CapabilityAgentWrite, ownerID)
	require.ErrorIs(t, err, ErrInsufficientRole)
}

func TestCanViewRevenue(t *testing.T) {
	require.True(t, CanViewRevenue(&Actor{ID: 1, Role: "admin"}))
	require.False(t, CanViewRevenue(&Actor{ID: 2, Role: "agent"}))
	require.False(t, CanViewRevenue(&Actor{ID: 3, Role: "viewer"}))
	require.False(t, CanViewRevenue(nil))
}
