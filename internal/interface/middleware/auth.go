package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oteixeira-dev/cadastro-api/internal/domain/apperr"
	"github.com/oteixeira-dev/cadastro-api/pkg/helpers"
	"github.com/oteixeira-dev/cadastro-api/pkg/response"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// Auth extracts the bearer token from the Authorization header, verifies it,
// and injects the claims into the Gin context. Absent credential rejects with
// 401, failed verification with 403. The gate itself never touches the
// database: a user deleted after issuance surfaces as 404 from the handler.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			e := apperr.ErrMissingToken
			response.Abort(c, e.Status(), e.Error(), e.Code())
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			e := apperr.ErrMissingToken
			response.Abort(c, e.Status(), e.Error(), e.Code())
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			e := apperr.ErrInvalidToken
			response.Abort(c, e.Status(), e.Error(), e.Code())
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}
