package auth

import (
	"net/http"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	jwtManager *JWTManager
	logger     *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwtManager *JWTManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Type      string    `json:"type" example:"Bearer"`
	Role      string    `json:"role" example:"admin"`
	ExpiresIn int       `json:"expires_in" example:"600"` // 10 minutes in seconds
	ExpiresAt time.Time `json:"expires_at" example:"2024-01-15T12:00:00Z"`
}

type account struct {
	password string
	role     string
}

// Simple authentication (for prototype)
// In production, this should validate against a user database
var accounts = map[string]account{
	"admin":  {password: "admin123", role: RoleAdmin},
	"buyer":  {password: "buyer123", role: RoleBuyer},
	"seller": {password: "seller123", role: RoleSeller},
}

// Login handles POST /api/v1/auth/login
// @Summary      Login and get JWT token
// @Description  Authenticates a user and returns a JWT token valid for 10 minutes. Available users: admin/admin123, buyer/buyer123, seller/seller123
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Login credentials"
// @Success      200      {object}  LoginResponse  "Token generated successfully"
// @Failure      400      {object}  errors.StandardError  "Missing credentials"
// @Failure      401      {object}  errors.StandardError  "Invalid credentials"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid login request", zap.Error(err))
		c.Error(errors.NewValidationError("invalid request", "username or password"))
		c.Abort()
		return
	}

	acct, ok := accounts[req.Username]
	if !ok || acct.password != req.Password {
		h.logger.Warn("Invalid credentials",
			zap.String("username", req.Username),
		)
		c.JSON(http.StatusUnauthorized, errors.NewStandardError("Unauthorized", "invalid credentials", "username or password incorrect"))
		c.Abort()
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Username, acct.role)
	if err != nil {
		h.logger.Error("Failed to generate token", zap.Error(err))
		c.Error(errors.NewInternalError("failed to generate token", err))
		c.Abort()
		return
	}

	expiresAt := time.Now().Add(10 * time.Minute)
	response := LoginResponse{
		Token:     token,
		Type:      "Bearer",
		Role:      acct.role,
		ExpiresIn: 600, // 10 minutes in seconds
		ExpiresAt: expiresAt,
	}

	h.logger.Info("User logged in successfully",
		zap.String("username", req.Username),
		zap.String("role", acct.role),
		zap.Time("expires_at", expiresAt),
	)

	c.JSON(http.StatusOK, response)
}
