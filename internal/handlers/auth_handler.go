package handlers

import (
	"context"
	"net/http"

	"github.com/campusrfid/ledger/internal/middleware"
	"github.com/campusrfid/ledger/internal/models"
	"github.com/campusrfid/ledger/internal/services"
)

// AccountAuth is the slice of the auth service the HTTP layer drives.
type AccountAuth interface {
	Authenticate(ctx context.Context, email, password string) (*models.Account, error)
	Register(ctx context.Context, email, password string) (*models.Account, error)
	IssueSession(acc *models.Account) (string, *models.Session, error)
	RevokeSession(ctx context.Context, session *models.Session)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"driver@campus.edu"`
	Password string `json:"password" validate:"required" example:"secret"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"driver@campus.edu"`
	Password string `json:"password" validate:"required,min=1,max=128" example:"secret"`
}

type AuthHandler struct {
	auth      AccountAuth
	validator *services.ValidationHelper
	secure    bool
}

// NewAuthHandler builds the login, registration and logout endpoints.
// secureCookie marks the session cookie Secure for TLS deployments.
func NewAuthHandler(auth AccountAuth, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		validator: services.NewValidationHelper(),
		secure:    secureCookie,
	}
}

// LoginForm describes the login form
// @Summary Login form
// @Tags Auth
// @Produce json
// @Success 200 {object} object{action=string,fields=[]string}
// @Router /login [get]
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"action": loginView,
		"fields": []string{"email", "password"},
	})
}

// Login authenticates an approved account and starts a session
// @Summary Login
// @Description Authenticates by email and password. Pending accounts are refused.
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} object{success=bool,token=string,role=string,redirect=string}
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := services.DecodeRequest(w, r, &req); err != nil {
		services.SendViewError(w, "Invalid request body", http.StatusBadRequest, loginView)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	acc, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, loginView)
		return
	}

	token, session, err := h.auth.IssueSession(acc)
	if err != nil {
		writeServiceError(w, r, err, loginView)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"token":    token,
		"role":     acc.Role,
		"redirect": dashboardView,
	})
}

// RegisterForm describes the registration form
// @Summary Registration form
// @Tags Auth
// @Produce json
// @Success 200 {object} object{action=string,fields=[]string}
// @Router /register [get]
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"action": registerView,
		"fields": []string{"email", "password"},
	})
}

// Register creates an account awaiting admin approval
// @Summary Register
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body RegisterRequest true "New account"
// @Success 201 {object} object{success=bool,message=string,redirect=string}
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := services.DecodeRequest(w, r, &req); err != nil {
		services.SendViewError(w, "Invalid request body", http.StatusBadRequest, registerView)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	if _, err := h.auth.Register(r.Context(), req.Email, req.Password); err != nil {
		writeServiceError(w, r, err, registerView)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Registration submitted. Wait for admin approval.",
		"redirect": loginView,
	})
}

// Logout revokes the current session
// @Summary Logout
// @Tags Auth
// @Security BearerAuth
// @Success 303
// @Router /logout [get]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session, ok := middleware.SessionFromContext(r.Context()); ok {
		h.auth.RevokeSession(r.Context(), session)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, loginView, http.StatusSeeOther)
}
