package handlers

import (
	"net/http"
	"time"

	"school_achievements/internal/auth"
	"school_achievements/internal/journal"
	"school_achievements/internal/models"
	"school_achievements/internal/response"

	"github.com/gin-gonic/gin"
)

type EventRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	EventTypeID  uint   `json:"event_type_id" binding:"required"`
	Description  string `json:"description"`
	AcademicYear string `json:"academic_year" binding:"required,academic_year" example:"2024-2025"`
	DateStart    string `json:"date_start" binding:"omitempty,datetime=2006-01-02" example:"2024-10-01"`
	DateEnd      string `json:"date_end" binding:"omitempty,datetime=2006-01-02" example:"2024-12-20"`
}

// EventDetails содержит мероприятие вместе со статистикой по этапам.
type EventDetails struct {
	Event models.Event `json:"event"`
	journal.EventStats
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &t
}

// ListEvents
// @Summary		Активные мероприятия
// @Tags			events
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	models.Event
// @Router			/events/all_events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	var events []models.Event
	err := h.DB.WithContext(c.Request.Context()).
		Preload("EventType").
		Where("is_active = ?", true).
		Order("date_start DESC NULLS LAST, title").
		Find(&events).Error
	if err != nil {
		h.dbError(c, err, "Ошибка при получении мероприятий")
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent возвращает мероприятие и статистику участия.
// @Summary		Мероприятие со статистикой
// @Tags			events
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int	true	"ID мероприятия"
// @Success		200	{object}	EventDetails
// @Failure		404	{object}	response.ErrorResponse	"EVENT_NOT_FOUND"
// @Router			/events/{id} [get]
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	db := h.DB.WithContext(c.Request.Context())

	var event models.Event
	if err := preloadEventType(db).First(&event, id).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "EVENT_NOT_FOUND", "Мероприятие не найдено")
			return
		}
		h.dbError(c, err, "Ошибка при получении мероприятия")
		return
	}

	var achievements []models.Achievement
	if err := db.Preload("Result").Preload("Student").Where("event_id = ?", id).Find(&achievements).Error; err != nil {
		h.dbError(c, err, "Ошибка при получении результатов")
		return
	}

	var highSchool int64
	err := db.Model(&models.User{}).
		Where("archived = ? AND (group_name LIKE ? OR group_name LIKE ?)", false, "10%", "11%").
		Count(&highSchool).Error
	if err != nil {
		h.dbError(c, err, "Ошибка при подсчете учеников")
		return
	}

	c.JSON(http.StatusOK, EventDetails{
		Event:      event,
		EventStats: journal.EventStatistics(&event, achievements, int(highSchool)),
	})
}

// CreateEvent
// @Summary		Создание мероприятия
// @Description	Доступно руководителю типа мероприятия и администратору
// @Tags			events
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			body	body		EventRequest	true	"Мероприятие"
// @Success		201		{object}	models.Event
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR, EVENT_EXISTS, EVENT_TYPE_ARCHIVED"
// @Failure		403		{object}	response.ErrorResponse	"NOT_EVENT_TYPE_LEADER"
// @Failure		404		{object}	response.ErrorResponse	"EVENT_TYPE_NOT_FOUND"
// @Router			/events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	start, end := parseDate(req.DateStart), parseDate(req.DateEnd)
	if start != nil && end != nil && end.Before(*start) {
		badRequest(c, "VALIDATION_ERROR", "Дата окончания раньше даты начала")
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	user := auth.CurrentUser(c)

	var et models.EventType
	if err := db.First(&et, req.EventTypeID).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "EVENT_TYPE_NOT_FOUND", "Тип мероприятия не найден")
			return
		}
		h.dbError(c, err, "Ошибка при получении типа мероприятия")
		return
	}
	if et.IsArchived {
		badRequest(c, "EVENT_TYPE_ARCHIVED", "Тип мероприятия в архиве")
		return
	}
	isLeader := et.LeaderID != nil && *et.LeaderID == user.ID
	if !isLeader && !user.HasRole(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "NOT_EVENT_TYPE_LEADER",
			Message: "Создавать мероприятия может только руководитель типа мероприятия",
		})
		return
	}

	var count int64
	if err := db.Model(&models.Event{}).Where("title = ? AND academic_year = ?", req.Title, req.AcademicYear).Count(&count).Error; err != nil {
		h.dbError(c, err, "Ошибка при проверке названия")
		return
	}
	if count > 0 {
		badRequest(c, "EVENT_EXISTS", "Мероприятие с таким названием уже есть в этом учебном году")
		return
	}

	event := models.Event{
		Title:        req.Title,
		EventTypeID:  et.ID,
		Description:  req.Description,
		AcademicYear: req.AcademicYear,
		DateStart:    start,
		DateEnd:      end,
		IsActive:     true,
	}
	if err := db.Create(&event).Error; err != nil {
		h.dbError(c, err, "Ошибка при создании мероприятия")
		return
	}
	event.EventType = &et
	c.JSON(http.StatusCreated, event)
}

// LeaderEvents
// @Summary		Мероприятия типов, которыми руководит учитель
// @Tags			event-leader
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	models.Event
// @Router			/event-leader/events [get]
func (h *Handler) LeaderEvents(c *gin.Context) {
	user := auth.CurrentUser(c)
	var events []models.Event
	err := h.DB.WithContext(c.Request.Context()).
		Preload("EventType").
		Joins("JOIN event_types et ON et.id = events.event_type_id").
		Where("et.leader_id = ?", user.ID).
		Order("events.date_start DESC NULLS LAST, events.title").
		Find(&events).Error
	if err != nil {
		h.dbError(c, err, "Ошибка при получении мероприятий")
		return
	}
	c.JSON(http.StatusOK, events)
}
