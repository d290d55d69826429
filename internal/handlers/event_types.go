package handlers

import (
	"net/http"

	"school_achievements/internal/auth"
	"school_achievements/internal/models"
	"school_achievements/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PossibleResultRequest struct {
	Title         string `json:"title" binding:"required,max=255"`
	PointsForDone int    `json:"points_for_done" binding:"min=0"`
}

type StageRequest struct {
	Title               string                  `json:"title" binding:"required,max=255"`
	StageOrder          int                     `json:"stage_order" binding:"min=0"`
	MinScoreForFinished int                     `json:"min_score_for_finished" binding:"min=0"`
	PossibleResults     []PossibleResultRequest `json:"possible_results" binding:"dive"`
}

type EventTypeRequest struct {
	Title                  string         `json:"title" binding:"required,max=255"`
	Description            string         `json:"description"`
	LeaderID               *uint          `json:"leader_id"`
	MinStagesForCompletion int            `json:"min_stages_for_completion" binding:"min=0"`
	Stages                 []StageRequest `json:"stages" binding:"dive"`
}

func (r StageRequest) toModel() models.Stage {
	stage := models.Stage{
		Title:               r.Title,
		StageOrder:          r.StageOrder,
		MinScoreForFinished: r.MinScoreForFinished,
	}
	for _, pr := range r.PossibleResults {
		stage.PossibleResults = append(stage.PossibleResults, models.PossibleResult{Title: pr.Title, PointsForDone: pr.PointsForDone})
	}
	return stage
}

func preloadStages(db *gorm.DB) *gorm.DB {
	return db.Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("stage_order") }).
		Preload("Stages.PossibleResults", func(db *gorm.DB) *gorm.DB { return db.Order("points_for_done") })
}

// checkEventTypeInput проверяет уникальность названия и существование руководителя.
// При ошибке сам отвечает клиенту.
func (h *Handler) checkEventTypeInput(c *gin.Context, req EventTypeRequest, excludeID uint) bool {
	db := h.DB.WithContext(c.Request.Context())

	var count int64
	if err := db.Model(&models.EventType{}).Where("title = ? AND id <> ?", req.Title, excludeID).Count(&count).Error; err != nil {
		h.dbError(c, err, "Ошибка при проверке названия")
		return false
	}
	if count > 0 {
		badRequest(c, "EVENT_TYPE_EXISTS", "Тип мероприятия с таким названием уже существует")
		return false
	}

	if req.LeaderID != nil {
		var leader models.User
		err := db.Where("id = ? AND archived = ?", *req.LeaderID, false).First(&leader).Error
		if isNotFound(err) {
			badRequest(c, "LEADER_NOT_FOUND", "Руководитель не найден")
			return false
		}
		if err != nil {
			h.dbError(c, err, "Ошибка при поиске руководителя")
			return false
		}
	}
	return true
}

// ListEventTypes
// @Summary		Активные типы мероприятий
// @Tags			event-types
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	models.EventType
// @Router			/event-types/all_event_types [get]
func (h *Handler) ListEventTypes(c *gin.Context) {
	var types []models.EventType
	err := preloadStages(h.DB.WithContext(c.Request.Context())).
		Preload("Leader").
		Where("is_archived = ?", false).
		Order("title").
		Find(&types).Error
	if err != nil {
		h.dbError(c, err, "Ошибка при получении типов мероприятий")
		return
	}
	c.JSON(http.StatusOK, types)
}

// AdminListEventTypes возвращает все типы мероприятий, включая архивные.
// @Summary		Все типы мероприятий
// @Tags			admin
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	models.EventType
// @Failure		403	{object}	response.ErrorResponse	"FORBIDDEN_ROLE"
// @Router			/admin/all_event_types [get]
func (h *Handler) AdminListEventTypes(c *gin.Context) {
	var types []models.EventType
	err := preloadStages(h.DB.WithContext(c.Request.Context())).
		Preload("Leader").
		Order("title").
		Find(&types).Error
	if err != nil {
		h.dbError(c, err, "Ошибка при получении типов мероприятий")
		return
	}
	c.JSON(http.StatusOK, types)
}

// GetEventType
// @Summary		Тип мероприятия
// @Tags			event-types
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int	true	"ID типа"
// @Success		200	{object}	models.EventType
// @Failure		404	{object}	response.ErrorResponse	"EVENT_TYPE_NOT_FOUND"
// @Router			/event-types/{id} [get]
func (h *Handler) GetEventType(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var et models.EventType
	err := preloadStages(h.DB.WithContext(c.Request.Context())).Preload("Leader").First(&et, id).Error
	if isNotFound(err) {
		notFound(c, "EVENT_TYPE_NOT_FOUND", "Тип мероприятия не найден")
		return
	}
	if err != nil {
		h.dbError(c, err, "Ошибка при получении типа мероприятия")
		return
	}
	c.JSON(http.StatusOK, et)
}

// CreateEventType создает тип мероприятия вместе с этапами и вариантами результатов.
// @Summary		Создание типа мероприятия
// @Tags			event-types
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			body	body		EventTypeRequest	true	"Тип мероприятия"
// @Success		201		{object}	models.EventType
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR, EVENT_TYPE_EXISTS, LEADER_NOT_FOUND"
// @Router			/event-types [post]
func (h *Handler) CreateEventType(c *gin.Context) {
	var req EventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	if !h.checkEventTypeInput(c, req, 0) {
		return
	}

	et := models.EventType{
		Title:                  req.Title,
		Description:            req.Description,
		LeaderID:               req.LeaderID,
		MinStagesForCompletion: req.MinStagesForCompletion,
	}
	for _, s := range req.Stages {
		et.Stages = append(et.Stages, s.toModel())
	}

	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&et).Error
	})
	if err != nil {
		h.dbError(c, err, "Ошибка при создании типа мероприятия")
		return
	}
	h.Logger.Info().Uint("event_type_id", et.ID).Uint("by", auth.CurrentUser(c).ID).Msg("создан тип мероприятия")
	c.JSON(http.StatusCreated, et)
}

// UpdateEventType меняет поля типа и добавляет новые этапы. Существующие этапы не удаляются,
// чтобы не потерять привязанные к ним результаты.
// @Summary		Изменение типа мероприятия
// @Tags			event-types
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			id		path		int					true	"ID типа"
// @Param			body	body		EventTypeRequest	true	"Тип мероприятия"
// @Success		200		{object}	models.EventType
// @Failure		400		{object}	response.ErrorResponse	"VALIDATION_ERROR, EVENT_TYPE_EXISTS, LEADER_NOT_FOUND"
// @Failure		404		{object}	response.ErrorResponse	"EVENT_TYPE_NOT_FOUND"
// @Router			/event-types/{id} [put]
func (h *Handler) UpdateEventType(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req EventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var et models.EventType
	if err := db.First(&et, id).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "EVENT_TYPE_NOT_FOUND", "Тип мероприятия не найден")
			return
		}
		h.dbError(c, err, "Ошибка при получении типа мероприятия")
		return
	}
	if !h.checkEventTypeInput(c, req, et.ID) {
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&et).Updates(map[string]any{
			"title":                     req.Title,
			"description":               req.Description,
			"leader_id":                 req.LeaderID,
			"min_stages_for_completion": req.MinStagesForCompletion,
		}).Error; err != nil {
			return err
		}
		for _, s := range req.Stages {
			stage := s.toModel()
			stage.EventTypeID = et.ID
			if err := tx.Create(&stage).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.dbError(c, err, "Ошибка при обновлении типа мероприятия")
		return
	}

	if err := preloadStages(db).Preload("Leader").First(&et, id).Error; err != nil {
		h.dbError(c, err, "Ошибка при получении типа мероприятия")
		return
	}
	c.JSON(http.StatusOK, et)
}

// ArchiveEventType
// @Summary		Архивирование типа мероприятия
// @Tags			event-types
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int	true	"ID типа"
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"EVENT_TYPE_NOT_FOUND"
// @Router			/event-types/{id}/archive [post]
func (h *Handler) ArchiveEventType(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	res := h.DB.WithContext(c.Request.Context()).Model(&models.EventType{}).Where("id = ?", id).Update("is_archived", true)
	if res.Error != nil {
		h.dbError(c, res.Error, "Ошибка при архивировании типа мероприятия")
		return
	}
	if res.RowsAffected == 0 {
		notFound(c, "EVENT_TYPE_NOT_FOUND", "Тип мероприятия не найден")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Тип мероприятия перенесен в архив"})
}

// DeleteEventType
// @Summary		Удаление типа мероприятия
// @Description	Удаление запрещено, если у типа есть мероприятия
// @Tags			event-types
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int	true	"ID типа"
// @Success		200	{object}	response.SuccessResponse
// @Failure		400	{object}	response.ErrorResponse	"EVENT_TYPE_HAS_EVENTS"
// @Failure		404	{object}	response.ErrorResponse	"EVENT_TYPE_NOT_FOUND"
// @Router			/event-types/{id} [delete]
func (h *Handler) DeleteEventType(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	db := h.DB.WithContext(c.Request.Context())

	var et models.EventType
	if err := db.First(&et, id).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "EVENT_TYPE_NOT_FOUND", "Тип мероприятия не найден")
			return
		}
		h.dbError(c, err, "Ошибка при получении типа мероприятия")
		return
	}

	var events int64
	if err := db.Model(&models.Event{}).Where("event_type_id = ?", id).Count(&events).Error; err != nil {
		h.dbError(c, err, "Ошибка при проверке мероприятий")
		return
	}
	if events > 0 {
		badRequest(c, "EVENT_TYPE_HAS_EVENTS", "Нельзя удалить тип, к которому привязаны мероприятия")
		return
	}

	if err := db.Delete(&et).Error; err != nil {
		h.dbError(c, err, "Ошибка при удалении типа мероприятия")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Тип мероприятия удален"})
}

// EventTypesByLeader
// @Summary		Типы мероприятий руководителя
// @Tags			event-types
// @Produce		json
// @Security		BearerAuth
// @Param			leader_id	path	int	true	"ID руководителя"
// @Success		200	{array}	models.EventType
// @Router			/event-types/leader/{leader_id} [get]
func (h *Handler) EventTypesByLeader(c *gin.Context) {
	leaderID, ok := idParam(c, "leader_id")
	if !ok {
		return
	}
	h.respondLeaderEventTypes(c, leaderID)
}

// LeaderEventTypes
// @Summary		Типы мероприятий, которыми руководит текущий учитель
// @Tags			event-leader
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	models.EventType
// @Router			/event-leader/event_types [get]
func (h *Handler) LeaderEventTypes(c *gin.Context) {
	h.respondLeaderEventTypes(c, auth.CurrentUser(c).ID)
}

func (h *Handler) respondLeaderEventTypes(c *gin.Context, leaderID uint) {
	var types []models.EventType
	err := preloadStages(h.DB.WithContext(c.Request.Context())).
		Where("leader_id = ? AND is_archived = ?", leaderID, false).
		Order("title").
		Find(&types).Error
	if err != nil {
		h.dbError(c, err, "Ошибка при получении типов мероприятий")
		return
	}
	c.JSON(http.StatusOK, types)
}
