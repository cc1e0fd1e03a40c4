package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sportmeet/backend/internal/api/metrics"
	"github.com/sportmeet/backend/internal/core/domain"
	"github.com/sportmeet/backend/internal/core/ports"
)

// AuthHandler serves the public registration and login endpoints.
type AuthHandler struct {
	register ports.RegisterService
	auth     ports.AuthService
}

func NewAuthHandler(register ports.RegisterService, auth ports.AuthService) *AuthHandler {
	return &AuthHandler{register: register, auth: auth}
}

type registerRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
}

type resendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register handles POST /public/users/register.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account draft"
// @Success      201   {object}  codeResponse
// @Failure      400   {object}  codeResponse
// @Router       /public/users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.register.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	switch {
	case err == nil:
		metrics.RegistrationsTotal.WithLabelValues("success").Inc()
		return c.JSON(http.StatusCreated, codeResponse{Code: codeSuccess})
	case errors.Is(err, domain.ErrAlreadyRegistered):
		metrics.RegistrationsTotal.WithLabelValues("already_registered").Inc()
		return c.JSON(http.StatusBadRequest, codeResponse{Code: codeAlreadyRegistered})
	case errors.Is(err, domain.ErrEmailDelivery):
		metrics.RegistrationsTotal.WithLabelValues("email_error").Inc()
		return c.JSON(http.StatusBadRequest, codeResponse{Code: codeEmailError})
	default:
		return err
	}
}

// Confirm handles GET /public/users/confirm/:token.
//
// @Summary      Confirm a registration token
// @Tags         auth
// @Produce      json
// @Param        token  path      string  true  "Confirmation token"
// @Success      200    {object}  codeResponse
// @Failure      400    {object}  codeResponse
// @Router       /public/users/confirm/{token} [get]
func (h *AuthHandler) Confirm(c echo.Context) error {
	err := h.register.Confirm(c.Request().Context(), c.Param("token"))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, codeResponse{Code: codeSuccess})
	case errors.Is(err, domain.ErrTokenNotFound):
		return c.JSON(http.StatusBadRequest, codeResponse{Code: codeTokenNotFound})
	case errors.Is(err, domain.ErrTokenExpired):
		return c.JSON(http.StatusBadRequest, codeResponse{Code: codeTokenExpired})
	default:
		return err
	}
}

// Resend handles POST /public/users/confirm/resend.
//
// @Summary      Resend the confirmation email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resendRequest  true  "Account email"
// @Success      200   {object}  codeResponse
// @Failure      400   {object}  codeResponse
// @Router       /public/users/confirm/resend [post]
func (h *AuthHandler) Resend(c echo.Context) error {
	var req resendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.register.Resend(c.Request().Context(), req.Email)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, codeResponse{Code: codeSuccess})
	case errors.Is(err, domain.ErrTokenNotFound):
		return c.JSON(http.StatusBadRequest, codeResponse{Code: codeTokenNotFound})
	case errors.Is(err, domain.ErrEmailDelivery):
		return c.JSON(http.StatusBadRequest, codeResponse{Code: codeEmailError})
	default:
		return err
	}
}

// Login handles POST /public/users/login.
//
// An unknown email and a wrong password both answer WRONG_LOGIN_OR_PASSWORD;
// only a disabled account is distinguished, so the client can prompt for
// email confirmation.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  codeResponse
// @Router       /public/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, _, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case err == nil:
		metrics.LoginsTotal.WithLabelValues("success").Inc()
		return c.JSON(http.StatusOK, loginResponse{Token: token})
	case errors.Is(err, domain.ErrAccountNotEnabled):
		metrics.LoginsTotal.WithLabelValues("not_enabled").Inc()
		return c.JSON(http.StatusBadRequest, codeResponse{Code: codeConfirmYourAccount})
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return c.JSON(http.StatusBadRequest, codeResponse{Code: codeWrongLoginPassword})
	default:
		return err
	}
}
