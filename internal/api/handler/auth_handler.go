package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/job-portal/internal/api/metrics"
	"github.com/talentbridge/job-portal/internal/api/middleware"
	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

// Tokens is the slice of the identity provider the auth routes call directly.
type Tokens interface {
	IdentityFromToken(ctx context.Context, token string) (*domain.Identity, error)
	RefreshToken(ctx context.Context, token string) (*domain.Session, error)
}

type AuthHandler struct {
	sessions ports.SessionService
	tokens   Tokens
}

func NewAuthHandler(sessions ports.SessionService, tokens Tokens) *AuthHandler {
	return &AuthHandler{sessions: sessions, tokens: tokens}
}

// SignUp creates an account and, unless email confirmation is pending, its
// profile and role records.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Account details"
// @Success      201   {object}  signUpResponse
// @Success      202   {object}  signUpResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "validation").Inc()
		return err
	}

	res, err := h.sessions.SignUp(c.Request().Context(), ports.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		Role:        req.Role,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		ServiceType: req.ServiceType,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", authResult(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("signup", "ok").Inc()

	if res.PendingConfirmation {
		return c.JSON(http.StatusAccepted, signUpResponse{PendingConfirmation: true, Message: res.Message})
	}
	return c.JSON(http.StatusCreated, signUpResponse{Session: toSessionResponse(*res.Session, res.View)})
}

// SignIn authenticates and returns a session with the resolved profile.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signin", "validation").Inc()
		return err
	}

	res, err := h.sessions.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signin", authResult(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("signin", "ok").Inc()

	return c.JSON(http.StatusOK, toSessionResponse(res.Session, res.View))
}

// Confirm completes a pending sign-up.
//
// @Summary      Confirm email address
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      confirmRequest  true  "Confirmation token"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/confirm [post]
func (h *AuthHandler) Confirm(c echo.Context) error {
	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.sessions.ConfirmEmail(c.Request().Context(), req.Token)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("confirm", authResult(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("confirm", "ok").Inc()

	return c.JSON(http.StatusOK, toSessionResponse(res.Session, res.View))
}

// SignOut revokes the bearer token. It always answers 204: an unknown or
// expired token leaves nothing to revoke.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	token := rawBearer(c)
	if token != "" {
		var identityID string
		if identity, err := h.tokens.IdentityFromToken(c.Request().Context(), token); err == nil {
			identityID = identity.ID
		}
		h.sessions.SignOut(c.Request().Context(), token, identityID)
	}
	metrics.AuthAttemptsTotal.WithLabelValues("signout", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Refresh exchanges a valid access token for a new one.
//
// @Summary      Refresh access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	session, err := h.tokens.RefreshToken(c.Request().Context(), middleware.AccessTokenFrom(c))
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("refresh", authResult(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("refresh", "ok").Inc()
	return c.JSON(http.StatusOK, toSessionResponse(*session, nil))
}

// Me reports the current user, their composite view and whether the session
// controller has finished starting. Anonymous callers get nulls.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	resp := meResponse{Ready: h.sessions.Ready()}

	identity, ok := middleware.IdentityFrom(c)
	if !ok || !resp.Ready {
		return c.JSON(http.StatusOK, resp)
	}
	resp.User = &identity

	view, err := h.sessions.Current(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	resp.Profile = view
	return c.JSON(http.StatusOK, resp)
}

func rawBearer(c echo.Context) string {
	scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// authResult is the metric label for a failed auth operation.
func authResult(err error) string {
	var ae *domain.AuthError
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ae):
		return string(ae.Code)
	case errors.As(err, &ve):
		return "validation"
	case errors.Is(err, domain.ErrIdentityExists):
		return "exists"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	default:
		return "error"
	}
}
