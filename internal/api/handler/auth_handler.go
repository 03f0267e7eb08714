package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

// AuthHandler handles the OAuth login flow and the session profile.
type AuthHandler struct {
	auth  ports.AuthService
	users ports.UserService
}

func NewAuthHandler(auth ports.AuthService, users ports.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

type callbackResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Login handles GET /auth/login.
//
// @Summary      Redirect to the OAuth provider
// @Tags         auth
// @Success      302
// @Failure      500  {object}  errorResponse
// @Router       /auth/login [get]
func (h *AuthHandler) Login(c echo.Context) error {
	url, err := h.auth.LoginURL(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, url)
}

// Callback handles GET /auth/callback.
//
// @Summary      Complete the OAuth flow and issue a session token
// @Tags         auth
// @Produce      json
// @Param        code   query     string  true  "Authorization code"
// @Param        state  query     string  true  "Opaque state issued at login"
// @Success      200    {object}  callbackResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /auth/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing code or state")
	}

	token, user, err := h.auth.HandleCallback(c.Request().Context(), code, state)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, callbackResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Me handles GET /v1/me.
//
// @Summary      Current session profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
