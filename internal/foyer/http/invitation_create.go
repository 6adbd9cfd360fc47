package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/foyerhq/foyer/internal/foyer/domain"
	"github.com/foyerhq/foyer/internal/foyer/service"
	"github.com/foyerhq/foyer/pkg/foyersdk"
	"github.com/foyerhq/foyer/pkg/httpx"
	"github.com/foyerhq/foyer/pkg/slogx"
)

type InvitationCreateHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Create Invitation Endpoint
//	@Description	Issue an invitation token for a new user. The token is delivered out of band and never returned in the response. This is an admin-only operation.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foyersdk.InviteRequest	true	"Invite request"
//	@Success		201		{object}	foyersdk.InviteResponse	"email, expires_at"
//	@Failure		400		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations [post].
func (h *InvitationCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req foyersdk.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		httpx.WriteJSON(w, http.StatusBadRequest, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "role must be ADMIN or USER",
		})
		return
	}

	// The authenticated admin is recorded as the inviter.
	invitedBy := httpx.UserIDFromContext(ctx)
	if invitedBy == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeUnauthorized,
			ErrorDescription: "Authentication required",
		})
		return
	}

	_, err := h.InvitationService.Issue(ctx, req.Email, req.Name, role, invitedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInvitationRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, foyersdk.ErrorResponse{
				Error:            foyersdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Invalid invitation parameters",
			})
		case errors.Is(err, service.ErrInvalidRole):
			httpx.WriteJSON(w, http.StatusBadRequest, foyersdk.ErrorResponse{
				Error:            foyersdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Invalid role",
			})
		default:
			log.Error("failed to create invitation", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, foyersdk.ErrorResponse{
				Error:            foyersdk.ErrorCodeServerError,
				ErrorDescription: "Failed to create invitation",
			})
		}
		return
	}

	inv, err := h.InvitationService.GetValidInvitation(ctx, req.Email)
	if err != nil || inv == nil {
		log.Error("failed to load created invitation", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeServerError,
			ErrorDescription: "Failed to create invitation",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, foyersdk.InviteResponse{
		Email:     inv.Email,
		ExpiresAt: inv.ExpiresAt.Unix(),
	})
}
