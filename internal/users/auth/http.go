// Copyright (c) 2026 BookWise. All rights reserved.

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amitkr8158/bookwise/internal/platform/apperr"
	"github.com/amitkr8158/bookwise/internal/platform/constants"
	requestutil "github.com/amitkr8158/bookwise/internal/platform/request"
	"github.com/amitkr8158/bookwise/internal/platform/respond"
)

type Handler struct {
	service      *Service
	secureCookie bool
}

// NewHandler builds the auth HTTP handler. secureCookie should be true in any
// environment served over HTTPS.
func NewHandler(service *Service, secureCookie bool) *Handler {
	return &Handler{service: service, secureCookie: secureCookie}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Post("/refresh", handler.refresh)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)
	router.Post("/change-password", handler.changePassword)
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.UserAgent = request.UserAgent()
	input.IPAddress = request.RemoteAddr

	session, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session.RefreshToken, session.RefreshTokenExpiresAt)
	respond.OK(writer, loginResponse{AccessToken: session.AccessToken, User: session.User})
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		if err := handler.service.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.clearRefreshCookie(writer)
	respond.NoContent(writer)
}

func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil {
		respond.Error(writer, request, apperr.Unauthorized("Refresh token is missing"))
		return
	}

	session, err := handler.service.RefreshSession(
		request.Context(), cookie.Value, request.UserAgent(), request.RemoteAddr)
	if err != nil {
		handler.clearRefreshCookie(writer)
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session.RefreshToken, session.RefreshTokenExpiresAt)
	respond.OK(writer, loginResponse{AccessToken: session.AccessToken, User: session.User})
}

type forgotPasswordInput struct {
	Email string `json:"email"`
}

func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ForgotPassword(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Same body whether or not the account exists.
	respond.OK(writer, map[string]string{
		"message": "If that email is registered, a reset link has been sent.",
	})
}

type resetPasswordInput struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ResetPassword(request.Context(), input.Token, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Password has been reset. Please log in."})
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.ChangePassword(request.Context(), userID, input.CurrentPassword, input.NewPassword)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearRefreshCookie(writer)
	respond.OK(writer, map[string]string{"message": "Password changed. Please log in again."})
}

func (handler *Handler) setRefreshCookie(writer http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    token,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   handler.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

func (handler *Handler) clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
