package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_SingleSlot(t *testing.T) {
	store := NewTokenStore()

	_, ok := store.Get()
	assert.False(t, ok, "empty store means unauthenticated")

	store.Set("token-a")
	store.Set("token-b")
	token, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "token-b", token, "at most one token is held")

	store.Clear()
	_, ok = store.Get()
	assert.False(t, ok)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	store := NewTokenStore()
	store.Set("abc123")
	c := New(srv.URL, store)

	_, err := c.AuthMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, NewTokenStore())
	_, err := c.AuthMe(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_ClearsSessionAndRedirectsOn401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"code": "TOKEN_EXPIRED", "message": "token expired"},
		})
	}))
	defer srv.Close()

	store := NewTokenStore()
	store.Set("stale-token")

	redirected := false
	c := New(srv.URL, store, WithAuthFailureHandler(func() { redirected = true }))

	_, err := c.AuthMe(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "TOKEN_EXPIRED", apiErr.Body.Code)

	_, stillHeld := store.Get()
	assert.False(t, stillHeld, "401 must clear the stored token")
	assert.True(t, redirected, "401 must trigger the auth-failure handler")
}

func TestClient_Non401ErrorKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"code": "RECOVERY_INVALID", "message": "recovery already used"},
		})
	}))
	defer srv.Close()

	store := NewTokenStore()
	store.Set("still-good")

	redirected := false
	c := New(srv.URL, store, WithAuthFailureHandler(func() { redirected = true }))

	err := c.ResetPassword(context.Background(), 42, "pw2", "pw2")
	require.Error(t, err)

	token, ok := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "still-good", token)
	assert.False(t, redirected)
}

func TestClient_LoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "fresh-token",
			"token_type":   "Bearer",
			"expires_in":   900,
			"role":         1,
		})
	}))
	defer srv.Close()

	store := NewTokenStore()
	c := New(srv.URL, store)

	resp, err := c.Login(context.Background(), "E001", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", resp.AccessToken)

	token, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "fresh-token", token)
}
