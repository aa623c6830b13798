package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"squadfinder_backend/middleware"
	"squadfinder_backend/models"
	"squadfinder_backend/relay"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	tokens  *middleware.TokenService
	mailer  *relay.Client
	baseURL string
	log     *zap.Logger
}

func NewAuthHandler(tokens *middleware.TokenService, mailer *relay.Client, baseURL string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{tokens: tokens, mailer: mailer, baseURL: baseURL, log: log}
}

// RequestLink emails a one-time sign-in link. There are no passwords; the
// link token is the whole credential.
func (h *AuthHandler) RequestLink(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "Enter a valid email address"}})
		return
	}

	token, err := h.tokens.MintLinkToken(req.Email)
	if err != nil {
		h.log.Error("failed to mint link token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": models.ErrorStatus("Couldn't send the sign-in link. Try again."),
		})
		return
	}

	link := fmt.Sprintf("%s/auth/verify?token=%s", h.baseURL, url.QueryEscape(token))
	message := "Click to sign in to Squad Finder:\n\n" + link +
		"\n\nThe link expires in 15 minutes. If you didn't request it, ignore this email."

	if err := h.mailer.Send(c.Request.Context(), req.Email, "Your sign-in link", message); err != nil {
		h.log.Error("failed to send sign-in link", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": models.ErrorStatus("Couldn't send the sign-in link. Try again."),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": models.InfoStatus("Check your email for a sign-in link."),
	})
}

// Verify exchanges a link token for a session token.
func (h *AuthHandler) Verify(c *gin.Context) {
	linkToken := c.Query("token")
	if linkToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	email, err := h.tokens.ParseToken(linkToken, middleware.PurposeLink)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired sign-in link"})
		return
	}

	sessionToken, err := h.tokens.MintSessionToken(email)
	if err != nil {
		h.log.Error("failed to mint session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": sessionToken,
		"email": email,
	})
}

// Session reports the current identity, or null when anonymous.
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"email": middleware.SessionEmail(c)})
}
