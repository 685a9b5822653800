package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tasktracker/internal/auth"
	"tasktracker/internal/model"
	"tasktracker/internal/service"
)

type UserUseCase interface {
	Register(ctx context.Context, in service.RegisterInput) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type UserHandler struct {
	users     UserUseCase
	jwtSecret string
	tokenTTL  time.Duration
	logger    *slog.Logger
}

func NewUserHandler(users UserUseCase, jwtSecret string, tokenTTL time.Duration, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Register godoc
// @Summary      Register a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user  body      RegisterRequest  true  "Account"
// @Success      201   {object}  UserResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, newUserResponse(user))
}

// Login godoc
// @Summary      Log in and receive a bearer token
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        credentials  body      LoginRequest  true  "Credentials"
// @Success      200          {object}  LoginResponse
// @Failure      400          {object}  ErrorResponse
// @Failure      401          {object}  ErrorResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, user.ID.String(), h.tokenTTL)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

// FindByEmail godoc
// @Summary      Look up a user by email
// @Tags         Users
// @Produce      json
// @Param        email  query     string  true  "Email"
// @Success      200    {object}  UserResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse
// @Router       /users [get]
func (h *UserHandler) FindByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email query parameter is required"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// GetByID godoc
// @Summary      Get a user
// @Tags         Users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  UserResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// respondLookupError answers a direct user lookup, where a missing user is
// a 404 rather than the 400 used for dangling references.
func (h *UserHandler) respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		return
	}
	respondError(c, h.logger, err)
}
