package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // SQL database interactions
	"net/http"     // HTTP status codes and primitives
	"strings"      // string manipulation utilities
	"time"         // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/plastiside/plastiside/internal/config"     // app configuration
	"github.com/plastiside/plastiside/internal/model"      // domain records
	"github.com/plastiside/plastiside/internal/repository" // DB repositories
	"github.com/plastiside/plastiside/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role"` // citizen | buyer | collector | admin
	BusinessName string `json:"businessName"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type inviteReq struct {
	InviteCode string `json:"inviteCode"`
	Email      string `json:"email"`
}

type userPart struct {
	ID        uint64  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Role      string  `json:"role"`
	Points    int64   `json:"points"`
	Rank      string  `json:"rank"`
	Avatar    *string `json:"avatar,omitempty"`
}
type authResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
	User    userPart  `json:"user"`
}

func toUserPart(u model.User) userPart {
	return userPart{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Points:    u.Points,
		Rank:      u.Rank,
		Avatar:    u.AvatarURL,
	}
}

var allowedRegisterRoles = map[string]bool{
	model.RoleCitizen:   true,
	model.RoleBuyer:     true,
	model.RoleCollector: true,
	model.RoleAdmin:     true,
}

// Register: create user and return a token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password/firstName/lastName required"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if !allowedRegisterRoles[role] {
		role = model.RoleCitizen
	}
	var businessName *string
	if role == model.RoleCollector && strings.TrimSpace(req.BusinessName) != "" {
		bn := strings.TrimSpace(req.BusinessName)
		businessName = &bn
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.FirstName, req.LastName, role, businessName, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, role, h.Cfg.TokenTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		Token:   access.Token,
		Expires: access.Exp,
		User:    toUserPart(u),
	})
}

// Login: verify credentials and return a new token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.TokenTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		Token:   access.Token,
		Expires: access.Exp,
		User:    toUserPart(u),
	})
}

// Logout: tokens are stateless, the client simply discards its copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// VerifyAdminInvite checks an invite code ahead of admin registration.
// Codes come from configuration; an email already in use is rejected so
// the client can surface the error before the registration form.
func (h *AuthHandler) VerifyAdminInvite(c echo.Context) error {
	var req inviteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	code := strings.TrimSpace(req.InviteCode)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if code == "" || email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invite code and email required"})
	}

	valid := false
	for _, k := range h.Cfg.AdminInviteCodes {
		if k == code {
			valid = true
			break
		}
	}
	if !valid {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid invite code"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, email); err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
	} else if err != sql.ErrNoRows {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "invite code verified"})
}

// Me: simple protected endpoint.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"role":    c.Get("role"),
	})
}
