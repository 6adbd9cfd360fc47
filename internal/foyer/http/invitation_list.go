package http

import (
	"net/http"
	"strconv"

	"github.com/foyerhq/foyer/internal/foyer/service"
	"github.com/foyerhq/foyer/pkg/foyersdk"
	"github.com/foyerhq/foyer/pkg/httpx"
	"github.com/foyerhq/foyer/pkg/slogx"
)

type InvitationListHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		List Pending Invitations Endpoint
//	@Description	List every non-expired invitation with search, sorting, and pagination. Search is a case-insensitive substring match over name and email. This is an admin-only operation.
//	@Tags			Invitations
//	@Produce		json
//	@Param			search		query		string	false	"Substring to match against name or email"
//	@Param			page		query		int		false	"Page number (default 1)"
//	@Param			limit		query		int		false	"Page size (default 20)"
//	@Param			sort_by		query		string	false	"Sort key: name, email, invitedAt, expiresAt (default invitedAt)"
//	@Param			sort_order	query		string	false	"Sort order: asc or desc (default desc)"
//	@Success		200			{object}	foyersdk.ListInvitationsResponse	"invitations, total, page, limit"
//	@Failure		400			{object}	foyersdk.ErrorResponse				"error, error_description"
//	@Failure		401			{object}	foyersdk.ErrorResponse				"error, error_description"
//	@Failure		500			{object}	foyersdk.ErrorResponse				"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations [get].
func (h *InvitationListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	opts, ok := listOptionsFromQuery(w, r)
	if !ok {
		return
	}

	result, err := h.InvitationService.ListPendingInvitations(ctx, opts)
	if err != nil {
		log.Error("failed to list invitations", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, foyersdk.ErrorResponse{
			Error:            foyersdk.ErrorCodeServerError,
			ErrorDescription: "Failed to list invitations",
		})
		return
	}

	invitations := make([]foyersdk.Invitation, 0, len(result.Items))
	for _, item := range result.Items {
		invitations = append(invitations, foyersdk.Invitation{
			Email:         item.Email,
			Name:          item.Name,
			Role:          string(item.Role),
			InvitedBy:     item.InvitedBy,
			InvitedByName: item.InvitedByName,
			InvitedAt:     item.InvitedAt.Unix(),
			ExpiresAt:     item.ExpiresAt.Unix(),
		})
	}

	httpx.WriteJSON(w, http.StatusOK, foyersdk.ListInvitationsResponse{
		Invitations: invitations,
		Total:       result.Total,
		Page:        opts.Page,
		Limit:       opts.Limit,
	})
}

// listOptionsFromQuery parses the listing query parameters, writing a 400 and
// returning ok=false on anything malformed.
func listOptionsFromQuery(w http.ResponseWriter, r *http.Request) (service.ListOptions, bool) {
	q := r.URL.Query()
	opts := service.ListOptions{
		Search: q.Get("search"),
		Page:   1,
		Limit:  20,
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			writeBadListParam(w, "page must be a positive integer")
			return service.ListOptions{}, false
		}
		opts.Page = page
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			writeBadListParam(w, "limit must be between 1 and 100")
			return service.ListOptions{}, false
		}
		opts.Limit = limit
	}

	if raw := q.Get("sort_by"); raw != "" {
		field, ok := service.ParseSortField(raw)
		if !ok {
			writeBadListParam(w, "sort_by must be one of: name, email, invitedAt, expiresAt")
			return service.ListOptions{}, false
		}
		opts.SortBy = field
	}

	switch q.Get("sort_order") {
	case "":
	case "asc":
		opts.SortOrder = service.SortAsc
	case "desc":
		opts.SortOrder = service.SortDesc
	default:
		writeBadListParam(w, "sort_order must be asc or desc")
		return service.ListOptions{}, false
	}

	return opts, true
}

func writeBadListParam(w http.ResponseWriter, desc string) {
	httpx.WriteJSON(w, http.StatusBadRequest, foyersdk.ErrorResponse{
		Error:            foyersdk.ErrorCodeInvalidRequest,
		ErrorDescription: desc,
	})
}
