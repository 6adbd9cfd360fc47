package http

import (
	"errors"
	"net/http"

	"github.com/foyerhq/foyer/internal/foyer/service"
	"github.com/foyerhq/foyer/pkg/foyersdk"
	"github.com/foyerhq/foyer/pkg/httpx"
	"github.com/foyerhq/foyer/pkg/slogx"
)

type InvitationDeleteHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Delete Invitation Endpoint
//	@Description	Revoke every invitation for the email. Deleting an email with no invitations succeeds with no effect. This is an admin-only operation.
//	@Tags			Invitations
//	@Produce		json
//	@Param			email	path	string	true	"Invitee email"
//	@Success		204		"invitations revoked"
//	@Failure		500		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{email} [delete].
func (h *InvitationDeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if _, err := h.InvitationService.Delete(ctx, r.PathValue("email")); err != nil {
		if errors.Is(err, service.ErrInvalidInvitationRequest) {
			httpx.WriteJSON(w, http.StatusBadRequest, foyersdk.ErrorResponse{
				Error:            foyersdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Invalid email",
			})
			return
		}
		log.Error("failed to delete invitation", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeServerError,
			ErrorDescription: "Failed to delete invitation",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
