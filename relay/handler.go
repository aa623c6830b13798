// Package relay is the outbound email boundary: a small deployable that
// fronts the transactional email provider, and the client the main service
// uses to reach it. The provider API key lives only on the relay side.
package relay

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const providerURL = "https://api.resend.com/emails"

// SendRequest is the relay's inbound contract.
type SendRequest struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type Handler struct {
	apiKey      string
	sender      string
	providerURL string
	client      *http.Client
	log         *zap.Logger
}

func NewHandler(apiKey, sender string, client *http.Client, log *zap.Logger) *Handler {
	if client == nil {
		client = http.DefaultClient
	}
	return &Handler{
		apiKey:      apiKey,
		sender:      sender,
		providerURL: providerURL,
		client:      client,
		log:         log,
	}
}

// Handle accepts POST {email, subject, message}, forwards it to the provider
// with the fixed sender, and proxies the provider's JSON response. Non-POST
// gets 405, a missing email 400, a missing key or failed provider call 500.
func (h *Handler) Handle(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if h.apiKey == "" {
		h.log.Error("provider API key is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Email relay is not configured"})
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"from":    h.sender,
		"to":      []string{req.Email},
		"subject": req.Subject,
		"text":    req.Message,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build provider request"})
		return
	}

	providerReq, err := http.NewRequestWithContext(c.Request.Context(),
		http.MethodPost, h.providerURL, bytes.NewReader(payload))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build provider request"})
		return
	}
	providerReq.Header.Set("Content-Type", "application/json")
	providerReq.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(providerReq)
	if err != nil {
		h.log.Error("provider call failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.log.Error("failed to read provider response", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
