package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"school_achievements/internal/models"
	"school_achievements/internal/response"
	"school_achievements/internal/roster"

	"github.com/gin-gonic/gin"
)

const (
	defaultEmailLogLimit = 100
	maxEmailLogLimit     = 1000
)

// SyncTeachers
// @Summary		Синхронизация учителей
// @Description	Загружает список учителей с сайта школы и сверяет его с пользователями
// @Tags			admin
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	roster.Stats
// @Failure		403	{object}	response.ErrorResponse	"FORBIDDEN_ROLE"
// @Failure		502	{object}	response.ErrorResponse	"SYNC_FAILED, EMPTY_ROSTER"
// @Failure		503	{object}	response.ErrorResponse	"SOURCE_UNAVAILABLE"
// @Router			/admin/sync_teachers [post]
func (h *Handler) SyncTeachers(c *gin.Context) {
	h.runSync(c, h.Roster.SyncTeachers)
}

// SyncStudents
// @Summary		Синхронизация учеников
// @Description	Загружает учеников из старой базы школы и сверяет их с пользователями
// @Tags			admin
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	roster.Stats
// @Failure		403	{object}	response.ErrorResponse	"FORBIDDEN_ROLE"
// @Failure		502	{object}	response.ErrorResponse	"SYNC_FAILED, EMPTY_ROSTER"
// @Failure		503	{object}	response.ErrorResponse	"SOURCE_UNAVAILABLE"
// @Router			/admin/sync_students [post]
func (h *Handler) SyncStudents(c *gin.Context) {
	h.runSync(c, h.Roster.SyncStudents)
}

func (h *Handler) runSync(c *gin.Context, sync func(ctx context.Context) (roster.Stats, error)) {
	stats, err := sync(c.Request.Context())
	switch {
	case errors.Is(err, roster.ErrSourceUnavailable):
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{
			Code:    "SOURCE_UNAVAILABLE",
			Message: "Источник реестра недоступен",
			Details: err.Error(),
		})
	case errors.Is(err, roster.ErrEmptyRoster):
		c.JSON(http.StatusBadGateway, response.ErrorResponse{
			Code:    "EMPTY_ROSTER",
			Message: "Внешний источник вернул пустой список, синхронизация не выполнена",
		})
	case err != nil:
		c.JSON(http.StatusBadGateway, response.ErrorResponse{
			Code:    "SYNC_FAILED",
			Message: "Синхронизация не выполнена",
			Details: err.Error(),
		})
	default:
		c.JSON(http.StatusOK, stats)
	}
}

// EmailLogs
// @Summary		Журнал отправки писем
// @Tags			admin
// @Produce		json
// @Security		BearerAuth
// @Param			limit	query	int	false	"Количество записей (по умолчанию 100)"
// @Success		200	{array}		models.EmailLog
// @Failure		403	{object}	response.ErrorResponse	"FORBIDDEN_ROLE"
// @Router			/admin/email-logs [get]
func (h *Handler) EmailLogs(c *gin.Context) {
	limit := defaultEmailLogLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(c, "VALIDATION_ERROR", "limit должен быть положительным числом")
			return
		}
		limit = min(n, maxEmailLogLimit)
	}

	var logs []models.EmailLog
	if err := h.DB.WithContext(c.Request.Context()).Order("sent_at DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
		h.dbError(c, err, "Ошибка при получении журнала писем")
		return
	}
	c.JSON(http.StatusOK, logs)
}
