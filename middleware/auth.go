package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. A link token is only good for the verify exchange; a
// session token identifies the signed-in user on subsequent requests.
const (
	PurposeLink    = "link"
	PurposeSession = "session"
)

const (
	linkTokenTTL    = 15 * time.Minute
	sessionTokenTTL = 30 * 24 * time.Hour
)

// SessionEmailKey is the gin context key holding the authenticated email.
const SessionEmailKey = "sessionEmail"

type Claims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenService mints and validates the magic-link and session tokens.
type TokenService struct {
	JWTSecret []byte
}

func NewTokenService(jwtSecret []byte) *TokenService {
	return &TokenService{JWTSecret: jwtSecret}
}

// MintLinkToken creates the short-lived token embedded in a sign-in link.
func (s *TokenService) MintLinkToken(email string) (string, error) {
	return s.mint(email, PurposeLink, linkTokenTTL)
}

// MintSessionToken creates the long-lived token returned after verification.
func (s *TokenService) MintSessionToken(email string) (string, error) {
	return s.mint(email, PurposeSession, sessionTokenTTL)
}

func (s *TokenService) mint(email, purpose string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	return token.SignedString(s.JWTSecret)
}

// ParseToken validates a token and returns the email it identifies. The
// purpose must match: a link token cannot act as a session and vice versa.
func (s *TokenService) ParseToken(tokenString, wantPurpose string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.Purpose != wantPurpose {
		return "", fmt.Errorf("wrong token purpose %q", claims.Purpose)
	}
	return claims.Email, nil
}

// OptionalSession attaches the session identity to the context when a valid
// bearer token is present. Anonymous requests pass through untouched; no
// route requires a session.
func OptionalSession(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		if email, err := tokens.ParseToken(parts[1], PurposeSession); err == nil {
			c.Set(SessionEmailKey, email)
		}
		c.Next()
	}
}

// SessionEmail returns the authenticated email, or nil for anonymous
// requests.
func SessionEmail(c *gin.Context) *string {
	if v, ok := c.Get(SessionEmailKey); ok {
		if email, ok := v.(string); ok {
			return &email
		}
	}
	return nil
}
