package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// InvitationPrefix namespaces invitation records inside the verification
// store. The full identifier is "invitation:<email>".
const InvitationPrefix = "invitation:"

// InvitationIdentifier builds the store identifier for an email address.
func InvitationIdentifier(email string) string {
	return InvitationPrefix + email
}

// EmailFromIdentifier recovers the invited email from a store identifier.
func EmailFromIdentifier(identifier string) string {
	return strings.TrimPrefix(identifier, InvitationPrefix)
}

// InvitationMetadata is the validated shape of the metadata blob attached to
// every invitation record.
type InvitationMetadata struct {
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	InvitedBy string    `json:"invitedBy"`
	InvitedAt time.Time `json:"invitedAt"`
}

// Encode marshals the metadata for storage.
func (m InvitationMetadata) Encode() (json.RawMessage, error) {
	return json.Marshal(m)
}

// ParseInvitationMetadata validates a raw metadata blob. It returns ok=false
// on any violation (wrong types, missing name, unknown role, missing inviter,
// unparseable timestamp) so callers can treat corrupt or legacy records as
// absent instead of failing.
func ParseInvitationMetadata(raw json.RawMessage) (InvitationMetadata, bool) {
	var aux struct {
		Name      string `json:"name"`
		Role      string `json:"role"`
		InvitedBy string `json:"invitedBy"`
		InvitedAt string `json:"invitedAt"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return InvitationMetadata{}, false
	}

	name := strings.TrimSpace(aux.Name)
	if name == "" {
		return InvitationMetadata{}, false
	}

	role, ok := ParseRole(aux.Role)
	if !ok {
		return InvitationMetadata{}, false
	}

	if strings.TrimSpace(aux.InvitedBy) == "" {
		return InvitationMetadata{}, false
	}

	invitedAt, err := time.Parse(time.RFC3339, aux.InvitedAt)
	if err != nil {
		return InvitationMetadata{}, false
	}

	return InvitationMetadata{
		Name:      name,
		Role:      role,
		InvitedBy: aux.InvitedBy,
		InvitedAt: invitedAt,
	}, true
}

// Invitation is the read model of a single pending invitation.
type Invitation struct {
	Email     string
	Metadata  InvitationMetadata
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PendingInvitation is a listing row with the inviter's name resolved.
// InvitedByName is nil when the inviting account no longer exists.
type PendingInvitation struct {
	Email         string
	Name          string
	Role          Role
	InvitedBy     string
	InvitedByName *string
	InvitedAt     time.Time
	ExpiresAt     time.Time
}
