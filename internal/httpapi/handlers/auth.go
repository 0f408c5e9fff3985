package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/todonaut/todonaut/pkg/clients"
	"github.com/todonaut/todonaut/pkg/logger"
	"github.com/todonaut/todonaut/pkg/session"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for an upstream token and stores it in the
// session cookie. Upstream rejections are passed through verbatim.
func (h *Handlers) Login(c *gin.Context) {
	ctx := c.Request.Context()

	payload := loginPayload{}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Username == "" || payload.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing credentials"})
		return
	}

	token, err := h.upstream.Login(ctx, payload.Username, payload.Password)
	if err != nil {
		apiErr := &clients.APIError{}
		if errors.As(err, &apiErr) {
			status := apiErr.StatusCode
			if status == 0 {
				status = http.StatusInternalServerError
			}
			c.Data(status, "application/json", apiErr.Body)
			return
		}
		logger.Logger(ctx).WithError(err).Error("login request to upstream failed")
		c.JSON(http.StatusBadGateway, gin.H{"message": "Login failed"})
		return
	}

	if token == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed: token missing"})
		return
	}

	http.SetCookie(c.Writer, session.Issue(token))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Logout clears the session cookie. It is deliberately unauthenticated.
func (h *Handlers) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, session.Revoke())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me returns the upstream identity behind the session token. No hydration
// happens here; only the todo routes touch the store.
func (h *Handlers) Me(c *gin.Context) {
	ctx := c.Request.Context()

	token, ok := session.FromRequest(c.Request)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	user, err := h.upstream.Me(ctx, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, user)
}
