package foyersdk

// ErrorResponse is the standard error envelope every endpoint returns on
// failure.
type ErrorResponse struct {
	// Error is a stable machine-readable code (e.g. "invalid_request",
	// "not_found", "server_error")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// InviteRequest creates a new invitation. Role must be "ADMIN" or "USER".
type InviteRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// InviteResponse carries the outcome of creating or resending an invitation.
// The invitation token itself is delivered out of band and never appears in
// API responses.
type InviteResponse struct {
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"`
}

// Invitation is one pending invitation as returned by the listing and get
// endpoints.
type Invitation struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	InvitedBy string `json:"invited_by"`

	// InvitedByName is null when the inviting account no longer exists.
	InvitedByName *string `json:"invited_by_name"`

	InvitedAt int64 `json:"invited_at"`
	ExpiresAt int64 `json:"expires_at"`
}

// ListInvitationsResponse is one page of pending invitations. Total counts
// every invitation matching the search, before pagination.
type ListInvitationsResponse struct {
	Invitations []Invitation `json:"invitations"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
}

// LookupRequest checks whether an invitation token is still redeemable.
type LookupRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// LookupResponse reports token validity. Reason is set only when Valid is
// false: one of "not_found", "expired", "invalid_token". Name, Role, and
// ExpiresAt are present only for a valid token.
type LookupResponse struct {
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

// AcceptRequest redeems an invitation and creates the account.
type AcceptRequest struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

// AcceptResponse describes the account created by redeeming an invitation.
type AcceptResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency status on the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}
