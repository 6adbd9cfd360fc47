package http

import (
	"errors"
	"net/http"

	"github.com/foyerhq/foyer/internal/foyer/service"
	"github.com/foyerhq/foyer/pkg/foyersdk"
	"github.com/foyerhq/foyer/pkg/httpx"
	"github.com/foyerhq/foyer/pkg/slogx"
)

type InvitationResendHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Resend Invitation Endpoint
//	@Description	Revoke every outstanding token for the email and issue a fresh one with the same metadata and a reset expiry. Expired invitations cannot be resent; issue a new invitation instead. This is an admin-only operation.
//	@Tags			Invitations
//	@Produce		json
//	@Param			email	path		string					true	"Invitee email"
//	@Success		200		{object}	foyersdk.InviteResponse	"email, expires_at"
//	@Failure		404		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{email}/resend [post].
func (h *InvitationResendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email := r.PathValue("email")

	// Resend reuses the pending invitation's own metadata. An expired or
	// absent invitation has nothing to reuse and reads as not found.
	inv, err := h.InvitationService.GetValidInvitation(ctx, email)
	if err != nil {
		log.Error("failed to fetch invitation for resend", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeServerError,
			ErrorDescription: "Failed to resend invitation",
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

	_, err = h.InvitationService.Resend(ctx, inv.Email, inv.Metadata.Name, inv.Metadata.Role, inv.Metadata.InvitedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInvitationRequest), errors.Is(err, service.ErrInvalidRole):
			httpx.WriteJSON(w, http.StatusBadRequest, foyersdk.ErrorResponse{
				Error:            foyersdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Invalid invitation parameters",
			})
		default:
			log.Error("failed to resend invitation", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, foyersdk.ErrorResponse{
				Error:            foyersdk.ErrorCodeServerError,
				ErrorDescription: "Failed to resend invitation",
			})
		}
		return
	}

	fresh, err := h.InvitationService.GetValidInvitation(ctx, inv.Email)
	if err != nil || fresh == nil {
		log.Error("failed to load resent invitation", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeServerError,
			ErrorDescription: "Failed to resend invitation",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, foyersdk.InviteResponse{
		Email:     fresh.Email,
		ExpiresAt: fresh.ExpiresAt.Unix(),
	})
}
