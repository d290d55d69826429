package handlers

import (
	"errors"
	"net/http"

	"school_achievements/internal/account"
	"school_achievements/internal/auth"
	"school_achievements/internal/models"
	"school_achievements/internal/response"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type GoogleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

type MeResponse struct {
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	Roles       []string `json:"roles"`
}

func userInfo(u *models.User) response.UserInfo {
	return response.UserInfo{
		ID:          u.ID,
		ExternalID:  u.ExternalID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsVerified:  u.IsVerified,
		Roles:       u.RoleNames(),
	}
}

func tokenResponse(u *models.User, pair auth.TokenPair) response.TokenResponse {
	return response.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		User:         userInfo(u),
	}
}

// accountError переводит ошибки сервиса аккаунтов в ответ API.
func (h *Handler) accountError(c *gin.Context, err error) {
	var (
		status = http.StatusInternalServerError
		code   = "INTERNAL_ERROR"
	)
	switch {
	case errors.Is(err, account.ErrNotInRoster):
		status, code = http.StatusBadRequest, "USER_NOT_IN_SCHOOL_DB"
	case errors.Is(err, account.ErrAlreadyRegistered):
		status, code = http.StatusBadRequest, "USER_EXISTS"
	case errors.Is(err, account.ErrInvalidVerification):
		status, code = http.StatusBadRequest, "INVALID_VERIFICATION_TOKEN"
	case errors.Is(err, account.ErrVerificationExpired):
		status, code = http.StatusBadRequest, "VERIFICATION_EXPIRED"
	case errors.Is(err, account.ErrAlreadyVerified):
		status, code = http.StatusBadRequest, "ALREADY_VERIFIED"
	case errors.Is(err, account.ErrResetUnavailableToday):
		status, code = http.StatusBadRequest, "RESET_UNAVAILABLE_TODAY"
	case errors.Is(err, account.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, account.ErrRegistrationRequired):
		status, code = http.StatusUnauthorized, "REGISTRATION_REQUIRED"
	case errors.Is(err, account.ErrUserNotFound):
		status, code = http.StatusUnauthorized, "USER_NOT_FOUND"
	case errors.Is(err, auth.ErrInvalidToken):
		status, code = http.StatusUnauthorized, "INVALID_TOKEN"
	case errors.Is(err, auth.ErrGoogleToken):
		status, code = http.StatusUnauthorized, "INVALID_GOOGLE_TOKEN"
	case errors.Is(err, account.ErrNotVerified):
		status, code = http.StatusForbidden, "EMAIL_NOT_VERIFIED"
	case errors.Is(err, account.ErrInactive):
		status, code = http.StatusForbidden, "USER_INACTIVE"
	}

	if status == http.StatusInternalServerError {
		h.Logger.Error().Err(err).Str("path", c.FullPath()).Msg("ошибка сервиса аккаунтов")
		c.JSON(status, response.ErrorResponse{Code: code, Message: "Внутренняя ошибка сервера"})
		return
	}
	c.JSON(status, response.ErrorResponse{Code: code, Message: err.Error()})
}

// Register
// @Summary		Регистрация пользователя
// @Description	Задает пароль пользователю из базы школы и отправляет письмо подтверждения
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			user	body		RegisterRequest				true	"Email и пароль"
// @Success		201		{object}	response.RegisterResponse	"Письмо подтверждения отправлено"
// @Failure		400		{object}	response.ErrorResponse		"VALIDATION_ERROR, USER_NOT_IN_SCHOOL_DB, USER_EXISTS"
// @Failure		500		{object}	response.ErrorResponse		"INTERNAL_ERROR"
// @Router			/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	user, err := h.Accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.accountError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.RegisterResponse{
		Message: "Регистрация прошла успешно",
		UserID:  user.ID,
		Email:   user.Email,
		Note:    "Проверьте почту и подтвердите email, чтобы войти",
	})
}

// VerifyEmail
// @Summary		Подтверждение email
// @Description	Активирует аккаунт по токену из письма и сразу выдает токены
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			body	body		VerifyEmailRequest		true	"Токен из письма"
// @Success		200		{object}	response.TokenResponse
// @Failure		400		{object}	response.ErrorResponse	"INVALID_VERIFICATION_TOKEN, VERIFICATION_EXPIRED"
// @Router			/auth/verify-email [post]
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	user, pair, err := h.Accounts.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		h.accountError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(user, pair))
}

// ResendVerification
// @Summary		Повторная отправка письма подтверждения
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			body	body		EmailRequest	true	"Email"
// @Success		200		{object}	response.SuccessResponse
// @Failure		400		{object}	response.ErrorResponse	"ALREADY_VERIFIED, REGISTRATION_REQUIRED"
// @Failure		404		{object}	response.ErrorResponse	"USER_NOT_FOUND"
// @Router			/auth/resend-verification [post]
func (h *Handler) ResendVerification(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	err := h.Accounts.ResendVerification(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, account.ErrUserNotFound):
		notFound(c, "USER_NOT_FOUND", err.Error())
		return
	case errors.Is(err, account.ErrRegistrationRequired):
		badRequest(c, "REGISTRATION_REQUIRED", err.Error())
		return
	case err != nil:
		h.accountError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Письмо подтверждения отправлено повторно"})
}

// Login
// @Summary		Авторизация пользователя
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			user	body		LoginRequest			true	"Данные для авторизации"
// @Success		200		{object}	response.TokenResponse	"Успешная авторизация"
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR"
// @Failure		401		{object}	response.ErrorResponse	"INVALID_CREDENTIALS, REGISTRATION_REQUIRED"
// @Failure		403		{object}	response.ErrorResponse	"EMAIL_NOT_VERIFIED, USER_INACTIVE"
// @Router			/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	user, pair, err := h.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.accountError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(user, pair))
}

// Me
// @Summary		Текущий пользователь
// @Tags			auth
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	MeResponse
// @Failure		401	{object}	response.ErrorResponse
// @Router			/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user := auth.CurrentUser(c)
	c.JSON(http.StatusOK, MeResponse{
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Roles:       user.RoleNames(),
	})
}

// Refresh
// @Summary		Обновление токенов
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			body	body		RefreshRequest			true	"Refresh токен"
// @Success		200		{object}	response.TokenResponse
// @Failure		401		{object}	response.ErrorResponse	"INVALID_TOKEN, USER_NOT_FOUND"
// @Failure		403		{object}	response.ErrorResponse	"USER_INACTIVE"
// @Router			/auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	user, pair, err := h.Accounts.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.accountError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(user, pair))
}

// ForgotPassword
// @Summary		Сброс пароля
// @Description	Высылает новый пароль на почту. Не чаще раза в сутки
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			body	body		EmailRequest	true	"Email"
// @Success		200		{object}	response.SuccessResponse
// @Failure		400		{object}	response.ErrorResponse	"RESET_UNAVAILABLE_TODAY"
// @Router			/auth/forgot-password [post]
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	if err := h.Accounts.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.accountError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{
		Message: "Если аккаунт существует и активен, новый пароль отправлен на почту",
	})
}

// GoogleLogin
// @Summary		Вход через Google
// @Description	Принимает ID токен или access токен Google
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			body	body		GoogleLoginRequest		true	"Токен Google"
// @Success		200		{object}	response.TokenResponse
// @Failure		401		{object}	response.ErrorResponse	"INVALID_GOOGLE_TOKEN, USER_NOT_FOUND"
// @Failure		403		{object}	response.ErrorResponse	"USER_INACTIVE"
// @Router			/auth/google [post]
func (h *Handler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	user, pair, err := h.Accounts.GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		h.accountError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(user, pair))
}
