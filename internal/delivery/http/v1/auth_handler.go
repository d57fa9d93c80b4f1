package v1

import (
	"net/http"
	"time"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/internal/usecase"
	"orderdesk-backend/pkg/logger"
	"orderdesk-backend/pkg/utils"
)

const accessTokenCookie = "accessToken"

type AuthHandler struct {
	authUC       *usecase.AuthUsecase
	secureCookie bool
}

// NewAuthHandler marks the session cookie Secure unless running in development.
func NewAuthHandler(authUC *usecase.AuthUsecase, env string) *AuthHandler {
	return &AuthHandler{authUC: authUC, secureCookie: env != "development"}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := utils.DecodeJSON(r, maxJSONBody, &creds); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.authUC.Signup(r.Context(), creds)
	if err != nil {
		writeUsecaseError(w, r, "signup", err)
		return
	}
	h.setSessionCookie(w, res)
	utils.WriteJSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := utils.DecodeJSON(r, maxJSONBody, &creds); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.authUC.Login(r.Context(), creds)
	if err != nil {
		writeUsecaseError(w, r, "login", err)
		return
	}
	logger.WithContext(r.Context()).Info().Str("user_id", res.User.ID).Msg("Operator logged in")
	h.setSessionCookie(w, res)
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	user, err := h.authUC.Me(r.Context(), session)
	if err != nil {
		writeUsecaseError(w, r, "me", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, res *domain.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    res.Token,
		Path:     "/",
		Expires:  res.ExpiresAt,
		MaxAge:   int(time.Until(res.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
