package auth

import (
	"errors"
	"net/http"
	"time"

	"slicepoll/internal/users"
	"slicepoll/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Reason strings returned in terminal {"error": ...} bodies. These are part
// of the HTTP contract; clients match on them.
const (
	reasonAuthRequired  = "Authentication required"
	reasonInvalidFormat = "Invalid token format"
	reasonExpired       = "Token expired"
	reasonVerifyFailed  = "Failed to verify token"
	reasonAdminRequired = "Admin access required"
)

// Gate turns the token decoder and the user provisioner into reusable route
// guards. Handlers behind a guard can assume a principal is on the request
// context.
type Gate struct {
	users *users.Service
	// clock is injectable for deterministic expiry tests.
	clock func() time.Time
}

func NewGate(us *users.Service) *Gate {
	return &Gate{users: us, clock: time.Now}
}

// RequireAuthenticated decodes the bearer token, lazily provisions a local
// user for first-time callers, and injects the principal into the request
// context. Every failure is terminal for the request and maps to exactly one
// 401 body; store failures are deliberately folded into the catch-all reason
// rather than surfacing as a 500.
func (g *Gate) RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, _, ok := g.authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireAdmin runs the authenticated path, then checks the LOCAL user's
// role. A caller whose token lists admin-ish roles but whose local row says
// "user" is still forbidden: the local row is the source of truth.
func (g *Gate) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, u, ok := g.authenticate(c)
		if !ok {
			return
		}
		if !u.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": reasonAdminRequired})
			return
		}
		c.Next()
	}
}

// Optional authenticates when a usable token is present but never aborts:
// anonymous and unverifiable callers pass through without a principal.
// Public routes use it to personalize responses opportunistically.
func (g *Gate) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := DecodeBearer(c.GetHeader(authorizationHeader), g.clock())
		if err == nil && claims.Subject != "" {
			if u, perr := g.users.Ensure(c.Request.Context(), claims.Subject, claims.Email); perr == nil {
				c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), claims.Identity(), u))
			}
		}
		c.Next()
	}
}

func (g *Gate) authenticate(c *gin.Context) (Identity, users.User, bool) {
	claims, err := DecodeBearer(c.GetHeader(authorizationHeader), g.clock())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": decodeReason(err)})
		return Identity{}, users.User{}, false
	}
	if claims.Subject == "" {
		// A token with no subject cannot be provisioned.
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": reasonVerifyFailed})
		return Identity{}, users.User{}, false
	}

	u, err := g.users.Ensure(c.Request.Context(), claims.Subject, claims.Email)
	if err != nil {
		logger.FromGin(c).Error("user provisioning failed", "err", err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": reasonVerifyFailed})
		return Identity{}, users.User{}, false
	}

	id := claims.Identity()
	c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), id, u))
	return id, u, true
}

func decodeReason(err error) string {
	switch {
	case errors.Is(err, ErrNoCredentials):
		return reasonAuthRequired
	case errors.Is(err, ErrMalformedToken):
		return reasonInvalidFormat
	case errors.Is(err, ErrTokenExpired):
		return reasonExpired
	default:
		return reasonVerifyFailed
	}
}
