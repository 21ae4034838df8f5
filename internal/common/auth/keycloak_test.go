package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awards-portal/internal/common/config"
	apperrors "awards-portal/internal/common/errors"
)

// fakeKeycloak serves the realm endpoints used by KeycloakClient.
type fakeKeycloak struct {
	activeToken   string
	password      string
	resetUserID   string
	resetPassword string
	tokenRequests int
}

func (f *fakeKeycloak) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/realms/awards/protocol/openid-connect/token/introspect", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("token") != f.activeToken {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"active": false})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"active":       true,
			"username":     "reviewer",
			"sub":          "user-123",
			"realm_access": map[string]interface{}{"roles": []string{"awards-admin"}},
		})
	})

	mux.HandleFunc("/realms/awards/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch r.PostForm.Get("grant_type") {
		case "client_credentials":
			f.tokenRequests++
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "service-token", "expires_in": 300})
		case "password":
			if r.PostForm.Get("password") != f.password {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "user-token", "expires_in": 300})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	mux.HandleFunc("/admin/realms/awards/users/user-123/reset-password", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "Bearer service-token", r.Header.Get("Authorization"))
		var body struct {
			Type      string `json:"type"`
			Value     string `json:"value"`
			Temporary bool   `json:"temporary"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "password", body.Type)
		assert.False(t, body.Temporary)
		f.resetUserID = "user-123"
		f.resetPassword = body.Value
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func newTestClient(t *testing.T, fake *fakeKeycloak) *KeycloakClient {
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	return NewKeycloakClient(config.KeycloakConfig{
		URL:          server.URL + "/",
		Realm:        "awards",
		ClientID:     "awards-portal",
		ClientSecret: "secret",
		AdminRole:    "awards-admin",
		Timeout:      2000,
	})
}

func TestValidateToken(t *testing.T) {
	client := newTestClient(t, &fakeKeycloak{activeToken: "good"})

	info, err := client.ValidateToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "reviewer", info.Identity())
	assert.True(t, info.HasRole(client.AdminRole()))
	assert.False(t, info.HasRole("superuser"))

	_, err = client.ValidateToken(context.Background(), "expired")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAuthenticationFailed))
}

func TestChangePassword(t *testing.T) {
	fake := &fakeKeycloak{activeToken: "good", password: "old-password"}
	client := newTestClient(t, fake)

	info, err := client.ValidateToken(context.Background(), "good")
	require.NoError(t, err)

	require.NoError(t, client.ChangePassword(context.Background(), info, "old-password", "new-password"))
	assert.Equal(t, "user-123", fake.resetUserID)
	assert.Equal(t, "new-password", fake.resetPassword)

	require.NoError(t, client.ChangePassword(context.Background(), info, "old-password", "newer-password"))
	assert.Equal(t, 1, fake.tokenRequests)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	fake := &fakeKeycloak{activeToken: "good", password: "old-password"}
	client := newTestClient(t, fake)

	info := &TokenInfo{Active: true, Username: "reviewer", Sub: "user-123"}
	err := client.ChangePassword(context.Background(), info, "guess", "new-password")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAuthenticationFailed))
	assert.Empty(t, fake.resetPassword)
}

func TestContextIdentity(t *testing.T) {
	_, err := ContextIdentity{}.CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrNoIdentity)

	ctx := WithTokenInfo(context.Background(), &TokenInfo{Email: "chan.taiman@healthtech.hk"})
	user, err := ContextIdentity{}.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "chan.taiman@healthtech.hk", user)
}
