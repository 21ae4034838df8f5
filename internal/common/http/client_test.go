package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "  short and stout \n")
	}))
	defer server.Close()

	client := NewClient(time.Second)
	resp, err := client.PostForm(context.Background(), server.URL, url.Values{"grant_type": {"password"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.EqualError(t, StatusError(resp), "unexpected status 418: short and stout")
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(http.StatusServiceUnavailable))
	assert.True(t, IsTransient(http.StatusGatewayTimeout))
	assert.False(t, IsTransient(http.StatusUnauthorized))
	assert.False(t, IsTransient(http.StatusOK))
}
