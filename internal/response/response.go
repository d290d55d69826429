package response

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Ошибка валидации данных
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: поле email должно быть валидным email адресом
	Details string `json:"details,omitempty"`
}

// UserInfo содержит краткие данные пользователя, которые возвращаются вместе с токенами
type UserInfo struct {
	ID          uint     `json:"id"`
	ExternalID  string   `json:"external_id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	IsVerified  bool     `json:"is_verified"`
	Roles       []string `json:"roles"`
}

// TokenResponse представляет ответ с токенами авторизации
type TokenResponse struct {
	// JWT токен для доступа к защищенным эндпоинтам
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"access_token"`

	// JWT токен для обновления access токена
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	RefreshToken string `json:"refresh_token"`

	// example: bearer
	TokenType string `json:"token_type"`

	User UserInfo `json:"user"`
}

// RegisterResponse возвращается после успешной регистрации
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Note    string `json:"note"`
}

// ContactInfo содержит контакты руководителя, которые видит ученик
type ContactInfo struct {
	DisplayName string `json:"display_name"`
	About       string `json:"about,omitempty"`
	Image       string `json:"image,omitempty"`
	Email       string `json:"email"`
	MaxURL      string `json:"max_url,omitempty"`
}
