package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oteixeira-dev/cadastro-api/internal/interface/http"
	"github.com/oteixeira-dev/cadastro-api/internal/interface/middleware"
	"github.com/oteixeira-dev/cadastro-api/pkg/helpers"
)

// UserModule wires user CRUD, login, and the token-gated profile route.
// Public: POST /users, GET /users, GET /users/:id, PUT /users/:id,
// DELETE /users/:id, POST /login
// Protected: GET /profile

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Create)
	rg.GET("/users", m.Handler.List)
	rg.GET("/users/:id", m.Handler.Get)
	rg.PUT("/users/:id", m.Handler.Update)
	rg.DELETE("/users/:id", m.Handler.Delete)

	rg.POST("/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/profile", m.Handler.Profile)
	}
}
