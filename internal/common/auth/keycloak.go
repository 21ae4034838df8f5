// internal/common/auth/keycloak.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"awards-portal/internal/common/config"
	apperrors "awards-portal/internal/common/errors"
	apphttp "awards-portal/internal/common/http"
)

// KeycloakClient talks to a single Keycloak realm: token introspection for
// the admin API and the password change flow.
type KeycloakClient struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	adminRole    string
	httpClient   *apphttp.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// TokenResponse holds the response from Keycloak's token endpoint.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
}

// TokenInfo holds the fields of the introspection response that the portal
// uses.
type TokenInfo struct {
	Active      bool   `json:"active"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	Sub         string `json:"sub,omitempty"`
	Exp         int64  `json:"exp,omitempty"`
	RealmAccess struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

func (t *TokenInfo) HasRole(role string) bool {
	for _, r := range t.RealmAccess.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Identity is the caller recorded as updatedBy.
func (t *TokenInfo) Identity() string {
	if t.Username != "" {
		return t.Username
	}
	if t.Email != "" {
		return t.Email
	}
	return t.Sub
}

func NewKeycloakClient(cfg config.KeycloakConfig) *KeycloakClient {
	timeout := config.GetDuration(cfg.Timeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &KeycloakClient{
		baseURL:      strings.TrimSuffix(cfg.URL, "/"),
		realm:        cfg.Realm,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		adminRole:    cfg.AdminRole,
		httpClient:   apphttp.NewClient(timeout),
	}
}

func (k *KeycloakClient) AdminRole() string {
	return k.adminRole
}

func (k *KeycloakClient) realmURL(path string) string {
	return fmt.Sprintf("%s/realms/%s/%s", k.baseURL, k.realm, path)
}

// getAccessToken returns a service account token, fetching a new one with the
// client credentials grant when the cached token has expired.
func (k *KeycloakClient) getAccessToken(ctx context.Context) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.accessToken != "" && k.tokenExpiry.After(time.Now()) {
		return k.accessToken, nil
	}

	resp, err := k.httpClient.PostForm(ctx, k.realmURL("protocol/openid-connect/token"), url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {k.clientID},
		"client_secret": {k.clientSecret},
	})
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apphttp.StatusError(resp)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	k.accessToken = tokenResp.AccessToken
	// refresh slightly early so a token never expires mid-request
	k.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - 10*time.Second)
	return k.accessToken, nil
}

// ValidateToken introspects an access token and returns its claims when active.
func (k *KeycloakClient) ValidateToken(ctx context.Context, token string) (*TokenInfo, error) {
	resp, err := k.httpClient.PostForm(ctx, k.realmURL("protocol/openid-connect/token/introspect"), url.Values{
		"token":           {token},
		"token_type_hint": {"access_token"},
		"client_id":       {k.clientID},
		"client_secret":   {k.clientSecret},
	})
	if err != nil {
		return nil, apperrors.NewExternalServiceError("keycloak", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := apphttp.StatusError(resp)
		if apphttp.IsTransient(resp.StatusCode) {
			return nil, apperrors.NewExternalServiceError("keycloak", err)
		}
		return nil, apperrors.NewAuthenticationError(err.Error())
	}

	var info TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, apperrors.NewExternalServiceError("keycloak", fmt.Errorf("decode introspection response: %w", err))
	}
	if !info.Active {
		return nil, apperrors.NewAuthenticationError("token is not active")
	}
	return &info, nil
}

// VerifyPassword checks a username/password pair with the resource owner
// password grant. The issued token is discarded.
func (k *KeycloakClient) VerifyPassword(ctx context.Context, username, password string) error {
	resp, err := k.httpClient.PostForm(ctx, k.realmURL("protocol/openid-connect/token"), url.Values{
		"grant_type":    {"password"},
		"client_id":     {k.clientID},
		"client_secret": {k.clientSecret},
		"username":      {username},
		"password":      {password},
	})
	if err != nil {
		return apperrors.NewExternalServiceError("keycloak", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		return apperrors.NewAuthenticationError("current password is incorrect")
	default:
		return apperrors.NewExternalServiceError("keycloak", apphttp.StatusError(resp))
	}
}

// ResetPassword sets a permanent password for a user through the admin API.
func (k *KeycloakClient) ResetPassword(ctx context.Context, userID, newPassword string) error {
	token, err := k.getAccessToken(ctx)
	if err != nil {
		return apperrors.NewExternalServiceError("keycloak", err)
	}

	body, err := json.Marshal(map[string]interface{}{
		"type":      "password",
		"value":     newPassword,
		"temporary": false,
	})
	if err != nil {
		return apperrors.NewPasswordChangeFailedError(err.Error())
	}

	endpoint := fmt.Sprintf("%s/admin/realms/%s/users/%s/reset-password", k.baseURL, k.realm, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return apperrors.NewPasswordChangeFailedError(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return apperrors.NewExternalServiceError("keycloak", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return apperrors.NewPasswordChangeFailedError(apphttp.StatusError(resp).Error())
	}
	return nil
}

// ChangePassword verifies the caller's current password and then sets the new
// one.
func (k *KeycloakClient) ChangePassword(ctx context.Context, caller *TokenInfo, currentPassword, newPassword string) error {
	if err := k.VerifyPassword(ctx, caller.Identity(), currentPassword); err != nil {
		return err
	}
	return k.ResetPassword(ctx, caller.Sub, newPassword)
}
