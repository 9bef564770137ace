package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oteixeira-dev/cadastro-api/internal/application"
	"github.com/oteixeira-dev/cadastro-api/internal/domain/apperr"
	"github.com/oteixeira-dev/cadastro-api/internal/interface/middleware"
	"github.com/oteixeira-dev/cadastro-api/pkg/response"
	"github.com/oteixeira-dev/cadastro-api/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Nome         string `json:"nome" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	CPF          string `json:"cpf" binding:"required"`
	TipoCadastro string `json:"tipo_cadastro" binding:"required"`
	Senha        string `json:"senha" binding:"required,pwd"`
}

type updateUserRequest struct {
	Nome         string `json:"nome"`
	Email        string `json:"email" binding:"omitempty,email"`
	CPF          string `json:"cpf"`
	TipoCadastro string `json:"tipo_cadastro"`
	Senha        string `json:"senha" binding:"omitempty,pwd"`
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), userapp.CreateUserInput{
		Nome:         req.Nome,
		Email:        req.Email,
		CPF:          req.CPF,
		TipoCadastro: req.TipoCadastro,
		Senha:        req.Senha,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user created")
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users")
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	u, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user")
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateUser(c.Request.Context(), id, userapp.UpdateUserInput{
		Nome:         req.Nome,
		Email:        req.Email,
		CPF:          req.CPF,
		TipoCadastro: req.TipoCadastro,
		Senha:        req.Senha,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated")
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := h.Svc.DeleteUser(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user deleted")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token, "expires_at": exp}, "login successful")
}

// Profile echoes the authenticated caller's own record. The record is
// re-fetched here, not trusted from the token, so a deleted user gets 404.
func (h *UserHandler) Profile(c *gin.Context) {
	uid := c.GetInt64(middleware.CtxUserIDKey)
	u, err := h.Svc.GetUser(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile")
}

// parseID reads the :id route parameter. A non-numeric id cannot name any
// record, so it is reported as not found.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.ErrUserNotFound
	}
	return id, nil
}
