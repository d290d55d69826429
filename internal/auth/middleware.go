package auth

import (
	"net/http"
	"strings"

	"school_achievements/internal/models"
	"school_achievements/internal/response"
	"school_achievements/internal/storage"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey   = "user"
	ctxUserIDKey = "userID"
)

// LoadUser ищет пользователя из токена вместе с ролями. Подменяется в тестах.
var LoadUser = func(userID uint, email string) (*models.User, error) {
	var user models.User
	err := storage.DB.Preload("Roles").
		Where("id = ? AND email = ?", userID, email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthMiddleware проверяет access токен и кладет пользователя в контекст.
func AuthMiddleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		// браузерный WebSocket не умеет передавать заголовки, токен приходит в query
		if authHeader == "" && c.Query("token") != "" {
			authHeader = "Bearer " + c.Query("token")
		}
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "NO_AUTH_HEADER",
				Message: "Требуется авторизация",
			})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Неверный формат заголовка Authorization",
			})
			return
		}

		claims, err := tokens.ParseAccess(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Неверный или просроченный токен",
			})
			return
		}

		user, err := LoadUser(claims.UserID, claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "USER_NOT_FOUND",
				Message: "Пользователь не найден",
			})
			return
		}

		SetUser(c, user)
		c.Next()
	}
}

// RequireActive пропускает только активных пользователей.
func RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "USER_INACTIVE",
				Message: "Пользователь неактивен",
			})
			return
		}
		c.Next()
	}
}

// RequireRole пропускает активных пользователей, у которых есть хотя бы одна из ролей.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{
				Code:    "USER_INACTIVE",
				Message: "Пользователь неактивен",
			})
			return
		}
		for _, role := range roles {
			if user.HasRole(role) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "FORBIDDEN_ROLE",
			Message: "Недостаточно прав",
			Details: "требуется роль: " + strings.Join(roles, ", "),
		})
	}
}

func SetUser(c *gin.Context, user *models.User) {
	c.Set(ctxUserKey, user)
	c.Set(ctxUserIDKey, user.ID)
}

// CurrentUser возвращает пользователя, положенного AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
