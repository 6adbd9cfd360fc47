package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/foyerhq/foyer/internal/foyer/service"
	"github.com/foyerhq/foyer/pkg/foyersdk"
	"github.com/foyerhq/foyer/pkg/httpx"
	"github.com/foyerhq/foyer/pkg/slogx"
)

type InvitationAcceptHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Invitation Accept Endpoint
//	@Description	Redeem an invitation token and create the account with the invited name and role. All token-level failures return the same invalid_token error so the endpoint cannot be used to probe which invitations exist. Public signup endpoint, strictly rate limited.
//	@Tags			Signup
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foyersdk.AcceptRequest	true	"Accept request"
//	@Success		201		{object}	foyersdk.AcceptResponse	"user_id, email, name, role, created_at"
//	@Failure		400		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	foyersdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invitations/accept [post].
func (h *InvitationAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req foyersdk.AcceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	user, err := h.InvitationService.Accept(ctx, req.Email, req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			httpx.WriteJSON(w, http.StatusBadRequest, foyersdk.ErrorResponse{
				Error:            foyersdk.ErrorCodeInvalidToken,
				ErrorDescription: "Invalid or expired invitation token",
			})
		case errors.Is(err, service.ErrPasswordTooShort):
			httpx.WriteJSON(w, http.StatusBadRequest, foyersdk.ErrorResponse{
				Error:            foyersdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Password does not meet the minimum length",
			})
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			httpx.WriteJSON(w, http.StatusConflict, foyersdk.ErrorResponse{
				Error:            foyersdk.ErrorCodeConflict,
				ErrorDescription: "An account with this email already exists",
			})
		default:
			log.Error("failed to accept invitation", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, foyersdk.ErrorResponse{
				Error:            foyersdk.ErrorCodeServerError,
				ErrorDescription: "Failed to accept invitation",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, foyersdk.AcceptResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Unix(),
	})
}
