package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"squadfinder_backend/middleware"
	"squadfinder_backend/relay"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture(t *testing.T, relayFn http.HandlerFunc) (*gin.Engine, *middleware.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	relaySrv := httptest.NewServer(relayFn)
	t.Cleanup(relaySrv.Close)

	tokens := middleware.NewTokenService([]byte("test-secret"))
	h := NewAuthHandler(tokens, relay.NewClient(relaySrv.URL), "http://localhost:8080", zap.NewNop())

	r := gin.New()
	r.Use(middleware.OptionalSession(tokens))
	r.POST("/auth/link", h.RequestLink)
	r.GET("/auth/verify", h.Verify)
	r.GET("/auth/session", h.Session)
	return r, tokens
}

func TestRequestLink(t *testing.T) {
	var sent relay.SendRequest
	router, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.Write([]byte(`{"id":"msg_1"}`))
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/link",
			bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("valid email gets a link", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/link",
			bytes.NewReader([]byte(`{"email":"ray@example.com"}`)))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ray@example.com", sent.Email)
		assert.Contains(t, sent.Message, "/auth/verify?token=")
	})
}

func TestVerifyAndSession(t *testing.T) {
	router, tokens := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	linkToken, err := tokens.MintLinkToken("ray@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/verify?token="+url.QueryEscape(linkToken), nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var verified struct {
		Token string `json:"token"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verified))
	assert.Equal(t, "ray@example.com", verified.Email)

	t.Run("session token identifies the user", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		req.Header.Set("Authorization", "Bearer "+verified.Token)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"email":"ray@example.com"}`, w.Body.String())
	})

	t.Run("anonymous session is null", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"email":null}`, w.Body.String())
	})

	t.Run("link token cannot act as a session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		req.Header.Set("Authorization", "Bearer "+linkToken)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"email":null}`, w.Body.String())
	})
}

func TestVerifyRejectsGarbage(t *testing.T) {
	router, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/verify?token=garbage", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
