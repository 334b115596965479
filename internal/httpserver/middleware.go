package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ndmitriev/online-store/internal/models"
	"github.com/ndmitriev/online-store/pkg/tokens"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

func createCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func setAuthCookies(c echo.Context, pair tokenPair) {
	c.SetCookie(createCookie(accessCookieName, pair.AccessToken, "/", time.Now().Add(tokens.AccessTTL)))
	c.SetCookie(createCookie(refreshCookieName, pair.RefreshToken, "/", time.Now().Add(tokens.RefreshTTL)))
}

func clearAuthCookies(c echo.Context) {
	expired := time.Unix(0, 0)
	c.SetCookie(createCookie(accessCookieName, "", "/", expired))
	c.SetCookie(createCookie(refreshCookieName, "", "/", expired))
}

type tokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthMiddleware struct {
	JWTSecret []byte
}

type validatorFunc func(claims *tokens.AccessClaims) error

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *AuthMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator validatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessCookie, err := c.Cookie(accessCookieName)
		if err != nil || accessCookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(accessCookie.Value, m.JWTSecret)
		if err != nil || claims == nil {
			clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				return err
			}
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set("user_id", claims.UserID.String())
	c.Set("role", claims.Role)
}
