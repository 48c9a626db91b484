package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	ContextUserID       = "userID"
	ContextBarbershopID = "barbershopID"
	ContextUserRole     = "userRole"
)

const (
	RoleOwner  = "owner"
	RoleBarber = "barber"
)

// AuthMiddleware accepts HS256 bearer tokens issued by the identity
// provider. sub is the barber id of the acting user.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "expected a bearer token")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_claims", "invalid token claims")
			return
		}

		userID, ok1 := claims["sub"].(float64)
		barbershopID, ok2 := claims["barbershopId"].(float64)
		role, _ := claims["role"].(string)
		if !ok1 || !ok2 || userID <= 0 || barbershopID <= 0 {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "token is missing sub or barbershopId")
			return
		}
		if role == "" {
			role = RoleBarber
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextBarbershopID, uint(barbershopID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireRole lets through only the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Abort(c, http.StatusForbidden, "forbidden", "insufficient role")
	}
}

func UserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}

func BarbershopID(c *gin.Context) uint {
	return c.GetUint(ContextBarbershopID)
}

// ActorID is the acting user as stored in audit columns.
func ActorID(c *gin.Context) *uint {
	id := c.GetUint(ContextUserID)
	if id == 0 {
		return nil
	}
	return &id
}

func IsOwner(c *gin.Context) bool {
	return c.GetString(ContextUserRole) == RoleOwner
}
