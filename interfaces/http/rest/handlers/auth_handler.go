// Package handlers contains the REST route handlers.
package handlers

import (
	"context"
	"net/http"

	"jobtrack/application/services"
	"jobtrack/pkg/auth"
	"jobtrack/pkg/common"
	"jobtrack/pkg/validation"

	"go.uber.org/zap"
)

// maxBodyBytes caps request payload size for all JSON endpoints.
const maxBodyBytes = 1 << 20

// UserService is the slice of the users service the auth routes need.
type UserService interface {
	CreateUser(ctx context.Context, in services.CreateUserInput) (services.UserDTO, error)
	VerifyUser(ctx context.Context, email, password string) (services.UserDTO, error)
	GetActiveUser(ctx context.Context, email string) (services.UserDTO, error)
}

// TokenSigner issues signed session tokens.
type TokenSigner interface {
	Sign(session auth.Session) (string, error)
}

// AuthHandler serves registration, login, and logout.
type AuthHandler struct {
	users        UserService
	tokens       TokenSigner
	cookieDomain string
	logger       *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users UserService, tokens TokenSigner, cookieDomain string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:        users,
		tokens:       tokens,
		cookieDomain: cookieDomain,
		logger:       logger,
	}
}

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User  services.UserDTO `json:"user"`
	Token string           `json:"token"`
}

// Register creates a new account in pending status.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), services.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, user)
}

// Login verifies credentials, sets the auth cookie, and returns the signed
// token for clients that prefer the Authorization header.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	user, err := h.users.VerifyUser(r.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	token, err := h.tokens.Sign(auth.Session{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.FirstName + " " + user.LastName,
	})
	if err != nil {
		h.logger.Error("could not sign session token", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	auth.AttachSessionCookie(w, token, h.cookieDomain)
	common.RespondJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

// Logout expires the auth cookie. Tokens are stateless so there is nothing to
// revoke server side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ExpireSessionCookie(w, h.cookieDomain)
	common.RespondJSON(w, http.StatusOK, nil)
}

// Me returns the account behind the current session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	user, err := h.users.GetActiveUser(r.Context(), session.Email)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, user)
}
