// Package handlers содержит HTTP-обработчики API.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"school_achievements/internal/account"
	"school_achievements/internal/response"
	"school_achievements/internal/roster"
	"school_achievements/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RosterSyncer запускает синхронизацию реестров по запросу администратора.
type RosterSyncer interface {
	SyncTeachers(ctx context.Context) (roster.Stats, error)
	SyncStudents(ctx context.Context) (roster.Stats, error)
}

// Handler держит зависимости обработчиков.
type Handler struct {
	DB       *gorm.DB
	Accounts *account.Service
	Hub      *ws.Hub
	Roster   RosterSyncer
	Logger   zerolog.Logger

	// NowFunc подменяется в тестах.
	NowFunc func() time.Time
}

func New(db *gorm.DB, accounts *account.Service, hub *ws.Hub, syncer RosterSyncer, logger zerolog.Logger) *Handler {
	return &Handler{
		DB:       db,
		Accounts: accounts,
		Hub:      hub,
		Roster:   syncer,
		Logger:   logger.With().Str("component", "http").Logger(),
		NowFunc:  time.Now,
	}
}

type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message"`
}

// Health
// @Summary		Проверка работоспособности
// @Tags			health
// @Produce		json
// @Success		200	{object}	HealthResponse
// @Router			/health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Message: "Сервис учета достижений работает"})
}

func validationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: "Ошибка валидации данных",
		Details: err.Error(),
	})
}

func notFound(c *gin.Context, code, message string) {
	c.JSON(http.StatusNotFound, response.ErrorResponse{Code: code, Message: message})
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Code: code, Message: message})
}

// dbError логирует ошибку базы и отвечает 500.
func (h *Handler) dbError(c *gin.Context, err error, message string) {
	h.Logger.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	c.JSON(http.StatusInternalServerError, response.ErrorResponse{
		Code:    "DB_ERROR",
		Message: message,
	})
}

// idParam разбирает числовой параметр пути и сам отвечает 400 при ошибке.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_ID",
			Message: "Некорректный идентификатор",
			Details: name + ": " + c.Param(name),
		})
		return 0, false
	}
	return uint(id), true
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
