package auth

import (
	"strings"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext describes the caller of the current request
type AuthContext struct {
	UserID   kernel.UserID
	Role     string
	Scopes   []string
	IsAPIKey bool
}

// IsAnonymous reports whether the request carries no identity
func (a *AuthContext) IsAnonymous() bool {
	return a == nil || (a.UserID.IsEmpty() && !a.IsAPIKey)
}

// HasScope reports whether any granted scope covers required
func (a *AuthContext) HasScope(required string) bool {
	if a == nil {
		return false
	}
	for _, s := range a.Scopes {
		if ScopeMatches(s, required) {
			return true
		}
	}
	return false
}

// Middleware resolves identity from a bearer token or an admin API key
type Middleware struct {
	tokens  TokenService
	apiKeys *APIKeyVerifier
}

func NewMiddleware(tokens TokenService, apiKeys *APIKeyVerifier) *Middleware {
	return &Middleware{tokens: tokens, apiKeys: apiKeys}
}

// Identify attaches an AuthContext when credentials are present. Missing
// credentials leave the request anonymous; bad credentials are rejected.
func (m *Middleware) Identify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key := c.Get("X-API-Key"); key != "" {
			if !m.apiKeys.Verify(key) {
				return ErrInvalidAPIKey()
			}
			c.Locals(authContextKey, &AuthContext{
				Role:     "admin",
				Scopes:   ScopesForRole("admin"),
				IsAPIKey: true,
			})
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return ErrInvalidToken().WithDetail("reason", "invalid authorization format")
		}

		claims, err := m.tokens.ValidateAccessToken(token)
		if err != nil {
			logx.Debugf("rejected bearer token: %v", err)
			return ErrInvalidToken()
		}

		c.Locals(authContextKey, &AuthContext{
			UserID: claims.UserID,
			Role:   claims.Role,
			Scopes: ScopesForRole(claims.Role),
		})
		return c.Next()
	}
}

// RequireUser rejects anonymous requests
func (m *Middleware) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok || ac.UserID.IsEmpty() {
			return ErrUnauthorized()
		}
		return c.Next()
	}
}

// RequireScope rejects requests whose identity lacks scope
func (m *Middleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok || ac.IsAnonymous() {
			return ErrUnauthorized()
		}
		if !ac.HasScope(scope) {
			return ErrInsufficientScope().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

// GetAuthContext returns the identity attached by Identify
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	ac, ok := c.Locals(authContextKey).(*AuthContext)
	return ac, ok && ac != nil
}

// CurrentUser returns the caller's user id or kernel.AnonymousUser
func CurrentUser(c *fiber.Ctx) kernel.UserID {
	if ac, ok := GetAuthContext(c); ok {
		return ac.UserID
	}
	return kernel.AnonymousUser
}
