package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RolePartner Role = "FINTECH_PARTNER"
	// RoleAnonymous is assigned when auth is disabled.
	RoleAnonymous Role = "ANONYMOUS"
)

const (
	HeaderAPIKey = "X-API-Key"
	roleKey      = "auth.role"
)

type apiKey struct {
	key  string
	role Role
}

// APIKeyAuth maps static X-API-Key values onto roles. With no keys configured
// every request passes as RoleAnonymous and every role check succeeds.
type APIKeyAuth struct {
	keys []apiKey
}

func NewAPIKeyAuth(adminKey, partnerKey string) *APIKeyAuth {
	a := &APIKeyAuth{}
	if adminKey != "" {
		a.keys = append(a.keys, apiKey{key: adminKey, role: RoleAdmin})
	}
	if partnerKey != "" {
		a.keys = append(a.keys, apiKey{key: partnerKey, role: RolePartner})
	}
	return a
}

func (a *APIKeyAuth) Enabled() bool { return len(a.keys) > 0 }

func (a *APIKeyAuth) lookup(presented string) (Role, bool) {
	for _, k := range a.keys {
		if subtle.ConstantTimeCompare([]byte(k.key), []byte(presented)) == 1 {
			return k.role, true
		}
	}
	return "", false
}

// Authenticate resolves the caller's role or answers 401.
func (a *APIKeyAuth) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !a.Enabled() {
				c.Set(roleKey, RoleAnonymous)
				return next(c)
			}
			role, ok := a.lookup(strings.TrimSpace(c.Request().Header.Get(HeaderAPIKey)))
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or missing API key"})
			}
			c.Set(roleKey, role)
			return next(c)
		}
	}
}

// Require answers 403 unless the caller holds one of roles.
func (a *APIKeyAuth) Require(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !a.Enabled() {
				return next(c)
			}
			have := RoleFrom(c)
			for _, r := range roles {
				if have == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "role " + string(have) + " may not perform this action"})
		}
	}
}

// RoleFrom returns the role set by Authenticate, or "" if it did not run.
func RoleFrom(c echo.Context) Role {
	r, _ := c.Get(roleKey).(Role)
	return r
}
