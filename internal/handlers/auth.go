package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/exclucatalog/exclucatalog/internal/events"
	"github.com/exclucatalog/exclucatalog/internal/hash"
	"github.com/exclucatalog/exclucatalog/internal/kvstore"
	"github.com/exclucatalog/exclucatalog/internal/middleware/auth"
)

// AuthHandler gates the catalog behind a single shared password.
type AuthHandler struct {
	KV            kvstore.Store
	SessionSecret []byte
	PasswordHash  string // bcrypt hash; preferred
	Password      string // plaintext dev fallback
	Producer      events.Publisher
}

func (h *AuthHandler) checkPassword(password string) bool {
	if h.PasswordHash != "" {
		return hash.CheckPassword(h.PasswordHash, password)
	}
	if h.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h.Password), []byte(password)) == 1
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if !h.checkPassword(req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "contraseña incorrecta")
	}

	token, exp, err := auth.SignSessionToken(h.SessionSecret, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create session")
	}
	c.SetCookie(auth.SessionCookie(token, exp))

	// Mirrors the persisted flag alongside the cookie; the guard only
	// trusts the cookie.
	if err := h.KV.Save(c.Request().Context(), kvstore.KeyAuthSession, []byte("true")); err != nil {
		c.Logger().Errorf("save auth flag: %v", err)
	}

	h.publish(c, map[string]any{"type": "user_logged_in"})

	return c.JSON(http.StatusOK, echo.Map{"authenticated": true})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(auth.ExpiredCookie())

	if err := h.KV.Delete(c.Request().Context(), kvstore.KeyAuthSession); err != nil {
		c.Logger().Errorf("delete auth flag: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.Publish(ctx, "auth", event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}
