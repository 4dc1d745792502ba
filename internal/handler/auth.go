package handler

import (
	"errors"
	"net/http"

	"storefront-be/internal/auth"
	"storefront-be/internal/customer"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"
)

type AuthHandler struct {
	svc          user.Service
	profiles     customer.Service
	secureCookie bool
}

func NewAuthHandler(svc user.Service, profiles customer.Service, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, profiles: profiles, secureCookie: secureCookie}
}

type AuthResponse struct {
	Token  string `json:"token"`
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterParams
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, u, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respond(w, http.StatusCreated, token, u)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req user.LoginParams
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, u, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respond(w, http.StatusOK, token, u)
}

// Logout expires the access token cookie. It needs no valid session, so a
// client holding a stale cookie can always clear it.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie("", -1))
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

type MeResponse struct {
	UserID          uint                     `json:"userId"`
	Username        string                   `json:"username"`
	Email           string                   `json:"email"`
	Role            string                   `json:"role"`
	ShippingDetails *ShippingDetailsResponse `json:"shippingDetails"`
}

// Me returns the account behind the token with any saved shipping details.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Profile(r.Context(), customerID(r))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// token outlived its account
			utils.WriteJSONError(w, "user not logged in", http.StatusUnauthorized)
			return
		}
		writeError(w, r, err)
		return
	}

	resp := MeResponse{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}

	d, err := h.profiles.GetShippingDetails(r.Context(), u.ID)
	switch {
	case err == nil:
		sd := toShippingDetailsResponse(d)
		resp.ShippingDetails = &sd
	case !errors.Is(err, customer.ErrShippingDetailsNotFound):
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) cookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) respond(w http.ResponseWriter, code int, token string, u *user.User) {
	http.SetCookie(w, h.cookie(token, 0))

	utils.WriteJSON(w, code, AuthResponse{
		Token:  token,
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
	})
}
