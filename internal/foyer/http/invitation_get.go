package http

import (
	"net/http"

	"github.com/foyerhq/foyer/internal/foyer/service"
	"github.com/foyerhq/foyer/pkg/foyersdk"
	"github.com/foyerhq/foyer/pkg/httpx"
	"github.com/foyerhq/foyer/pkg/slogx"
)

type InvitationGetHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Get Invitation Endpoint
//	@Description	Fetch the pending invitation for an email. Expired invitations and invitations with unreadable metadata are reported as not found. This is an admin-only operation.
//	@Tags			Invitations
//	@Produce		json
//	@Param			email	path		string					true	"Invitee email"
//	@Success		200		{object}	foyersdk.Invitation		"email, name, role, invited_by, invited_by_name, invited_at, expires_at"
//	@Failure		404		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{email} [get].
func (h *InvitationGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	inv, err := h.InvitationService.GetValidInvitation(ctx, r.PathValue("email"))
	if err != nil {
		log.Error("failed to fetch invitation", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeServerError,
			ErrorDescription: "Failed to fetch invitation",
		})
		return
	}
	if inv == nil {
		httpx.WriteJSON(w, http.StatusNotFound, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeNotFound,
			ErrorDescription: "No pending invitation for this email",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, foyersdk.Invitation{
		Email:     inv.Email,
		Name:      inv.Metadata.Name,
		Role:      string(inv.Metadata.Role),
		InvitedBy: inv.Metadata.InvitedBy,
		InvitedAt: inv.Metadata.InvitedAt.Unix(),
		ExpiresAt: inv.ExpiresAt.Unix(),
	})
}
