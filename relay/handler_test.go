package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRelayRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Any("/", h.Handle)
	return r
}

func TestRelayContract(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Squad Finder <noreply@squadfinder.app>", body["from"])

		w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer provider.Close()

	h := NewHandler("key-123", "Squad Finder <noreply@squadfinder.app>", provider.Client(), zap.NewNop())
	h.providerURL = provider.URL
	router := newRelayRouter(h)

	t.Run("non-POST is 405", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("missing email is 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/",
			bytes.NewReader([]byte(`{"subject":"hi","message":"there"}`)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("proxies the provider response on success", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/",
			bytes.NewReader([]byte(`{"email":"ray@example.com","subject":"hi","message":"there"}`)))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"msg_1"}`, w.Body.String())
	})
}

func TestRelayMissingKey(t *testing.T) {
	h := NewHandler("", "sender", nil, zap.NewNop())
	router := newRelayRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/",
		bytes.NewReader([]byte(`{"email":"ray@example.com"}`)))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRelayProviderFailure(t *testing.T) {
	h := NewHandler("key-123", "sender", nil, zap.NewNop())
	h.providerURL = "http://127.0.0.1:1/unreachable"
	router := newRelayRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/",
		bytes.NewReader([]byte(`{"email":"ray@example.com"}`)))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestClientSend(t *testing.T) {
	var got SendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Send(context.Background(), "ray@example.com", "subject", "message")
	require.NoError(t, err)
	assert.Equal(t, "ray@example.com", got.Email)
	assert.Equal(t, "subject", got.Subject)
}

func TestClientSendNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	assert.Error(t, c.Send(context.Background(), "ray@example.com", "s", "m"))
}
