package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foyerhq/foyer/internal/foyer/service"
	"github.com/foyerhq/foyer/internal/foyer/store"
	"github.com/foyerhq/foyer/internal/foyer/store/drivers/sqlite"
	"github.com/foyerhq/foyer/pkg/foyersdk"
	"github.com/foyerhq/foyer/pkg/jwtx"
	"github.com/foyerhq/foyer/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*Router, *jwtx.HS256, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer := &jwtx.HS256{Secret: []byte("test-secret"), Issuer: "foyer-test"}
	logger := slogx.New(slogx.Config{Service: "foyer", Env: "dev", Level: "error", Format: "text"})

	r := NewRouter(signer, "test", st, logger)
	r.InvitationService = &service.InvitationService{Store: st}
	r.ApplyRoutes()

	return r, signer, st
}

func adminToken(t *testing.T, signer *jwtx.HS256, scopes ...string) string {
	t.Helper()
	token, err := signer.Sign("01ADMIN", scopes, time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, r *Router, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestInvitationAdminFlow(t *testing.T) {
	r, signer, st := newTestRouter(t)
	token := adminToken(t, signer, "admin:read", "admin:write")

	rec := doJSON(t, r, http.MethodPost, "/v1/invitations", token, foyersdk.InviteRequest{
		Email: "Flow@Example.com",
		Name:  "Flow Test",
		Role:  "USER",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created foyersdk.InviteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "flow@example.com", created.Email)
	require.Greater(t, created.ExpiresAt, time.Now().Unix())

	rec = doJSON(t, r, http.MethodGet, "/v1/invitations?search=flow", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed foyersdk.ListInvitationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Equal(t, 1, listed.Total)
	require.Equal(t, "flow@example.com", listed.Invitations[0].Email)
	require.Equal(t, "01ADMIN", listed.Invitations[0].InvitedBy)

	rec = doJSON(t, r, http.MethodGet, "/v1/invitations/flow@example.com", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/v1/invitations/flow@example.com/resend", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/v1/invitations/flow@example.com", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/v1/invitations/flow@example.com", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The store is empty again once the flow finishes.
	_, err := st.Verifications().GetLatestVerification(t.Context(), "invitation:flow@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestInvitationAuthRequired(t *testing.T) {
	r, signer, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/v1/invitations", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// A valid token without the admin scopes is forbidden.
	token := adminToken(t, signer, "profile:read")
	rec = doJSON(t, r, http.MethodGet, "/v1/invitations", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/v1/invitations", token, foyersdk.InviteRequest{
		Email: "x@example.com", Name: "X", Role: "USER",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestInvitationLookupEndpoint(t *testing.T) {
	r, signer, _ := newTestRouter(t)
	token := adminToken(t, signer, "admin:write")

	rec := doJSON(t, r, http.MethodPost, "/v1/invitations", token, foyersdk.InviteRequest{
		Email: "lookup@example.com",
		Name:  "Lookup Test",
		Role:  "ADMIN",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Wrong token: a typed negative result, not an error.
	rec = doJSON(t, r, http.MethodPost, "/v1/invitations/lookup", "", foyersdk.LookupRequest{
		Email: "lookup@example.com",
		Token: "0000000000000000000000000000000000000000000000000000000000000000",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp foyersdk.LookupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Valid)
	require.Equal(t, "invalid_token", resp.Reason)
	require.Empty(t, resp.Name)

	rec = doJSON(t, r, http.MethodPost, "/v1/invitations/lookup", "", foyersdk.LookupRequest{
		Email: "ghost@example.com",
		Token: "anything",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Valid)
	require.Equal(t, "not_found", resp.Reason)
}
