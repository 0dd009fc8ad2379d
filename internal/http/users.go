package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
)

// UsersController exposes the login and identity-check endpoints.
type UsersController struct {
	authService *auth.Service
}

func NewUsersController(authService *auth.Service) *UsersController {
	return &UsersController{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges username/password for an API token. Issuing a token
// replaces any previous one for the user.
// POST /api/auth/login
func (uc *UsersController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := uc.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		// Same response for unknown user and wrong password
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}

	token, err := uc.authService.GenerateToken(user.ID)
	if err != nil {
		respondInternalError(c, err, "login")
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token})
}

// Me returns the authenticated caller's username as a bare JSON string.
// GET /api/me
func (uc *UsersController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, auth.GetUsername(c))
}
