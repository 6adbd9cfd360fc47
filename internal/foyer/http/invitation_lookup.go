package http

import (
	"encoding/json"
	"net/http"

	"github.com/foyerhq/foyer/internal/foyer/service"
	"github.com/foyerhq/foyer/pkg/foyersdk"
	"github.com/foyerhq/foyer/pkg/httpx"
	"github.com/foyerhq/foyer/pkg/slogx"
)

type InvitationLookupHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Invitation Lookup Endpoint
//	@Description	Check whether an invitation token is still redeemable. Invalid outcomes are typed results (not_found, expired, invalid_token), not errors, and the response never reveals stored token material. Public signup endpoint, strictly rate limited.
//	@Tags			Signup
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foyersdk.LookupRequest	true	"Lookup request"
//	@Success		200		{object}	foyersdk.LookupResponse	"valid, reason, name, role, expires_at"
//	@Failure		400		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invitations/lookup [post].
func (h *InvitationLookupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req foyersdk.LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.Email == "" || req.Token == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "email and token are required",
		})
		return
	}

	status, err := h.InvitationService.GetTokenStatus(ctx, req.Email, req.Token)
	if err != nil {
		log.Error("failed to look up invitation token", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeServerError,
			ErrorDescription: "Failed to look up invitation",
		})
		return
	}

	if !status.Valid {
		httpx.WriteJSON(w, http.StatusOK, foyersdk.LookupResponse{
			Valid:  false,
			Reason: string(status.Reason),
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, foyersdk.LookupResponse{
		Valid:     true,
		Name:      status.Metadata.Name,
		Role:      string(status.Metadata.Role),
		ExpiresAt: status.ExpiresAt.Unix(),
	})
}
