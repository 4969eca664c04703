package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

const refreshCookieName = "refreshToken"

// --- Register / Login ---

type RegisterInput struct {
	Body struct {
		Name     string `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Email    string `json:"email" maxLength:"255" doc:"Email address"`
		Password string `json:"password" maxLength:"72" doc:"Account password"`
	}
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email" doc:"Email address"`
		Password string `json:"password" doc:"Account password"`
	}
}

// SessionOutput returns the access token in the body and sets the refresh cookie.
type SessionOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      AuthResponse
}

// --- Refresh / Logout / Me ---

type RefreshInput struct {
	RefreshToken string `cookie:"refreshToken" doc:"Refresh token cookie"`
}

type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
}

type MeOutput struct {
	Body UserResponse
}

func (h *handlers) registerAuth() {
	huma.Register(h.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/register",
		Summary:       "Create an account",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *RegisterInput) (*SessionOutput, error) {
		session, err := h.Auth.Register(ctx, input.Body.Name, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, toHumaError(ctx, h.Logger, err)
		}
		return h.sessionOutput(session), nil
	})

	huma.Register(h.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in with email and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*SessionOutput, error) {
		session, err := h.Auth.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, toHumaError(ctx, h.Logger, err)
		}
		return h.sessionOutput(session), nil
	})

	huma.Register(h.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Rotate the session tokens",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RefreshInput) (*SessionOutput, error) {
		session, err := h.Auth.Refresh(ctx, input.RefreshToken)
		if err != nil {
			expired := h.refreshCookie("", -1)
			return nil, huma.ErrorWithHeaders(
				toHumaError(ctx, h.Logger, err),
				http.Header{"Set-Cookie": []string{expired.String()}},
			)
		}
		return h.sessionOutput(session), nil
	})

	huma.Register(h.api, huma.Operation{
		OperationID:   "logout",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/logout",
		Summary:       "Clear the refresh cookie",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusNoContent,
	}, func(_ context.Context, _ *struct{}) (*LogoutOutput, error) {
		return &LogoutOutput{SetCookie: h.refreshCookie("", -1)}, nil
	})

	huma.Register(h.api, h.authenticated(huma.Operation{
		OperationID: "me",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Get the current user",
		Tags:        []string{"Auth"},
	}), func(ctx context.Context, _ *struct{}) (*MeOutput, error) {
		user, err := h.Auth.Me(ctx, userIDFrom(ctx))
		if err != nil {
			return nil, toHumaError(ctx, h.Logger, err)
		}
		return &MeOutput{Body: toUserResponse(user)}, nil
	})
}

func (h *handlers) sessionOutput(session domain.Session) *SessionOutput {
	return &SessionOutput{
		SetCookie: h.refreshCookie(session.RefreshToken, int(h.Cookie.MaxAge.Seconds())),
		Body: AuthResponse{
			User:        toUserResponse(session.User),
			AccessToken: session.AccessToken,
		},
	}
}

// refreshCookie builds the refresh token cookie. A negative maxAge deletes it.
func (h *handlers) refreshCookie(value string, maxAge int) http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.Cookie.Secure {
		sameSite = http.SameSiteStrictMode
	}
	return http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: sameSite,
	}
}
