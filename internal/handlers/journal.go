package handlers

import (
	"net/http"

	"school_achievements/internal/auth"
	"school_achievements/internal/journal"
	"school_achievements/internal/metrics"
	"school_achievements/internal/models"
	"school_achievements/internal/response"
	"school_achievements/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

type SetResultRequest struct {
	ResultID uint `json:"result_id" binding:"required"`
}

// ResultChange описывает изменение ячейки журнала. Его же получают подписчики WebSocket.
type ResultChange struct {
	AchievementID uint    `json:"achievement_id,omitempty"`
	EventID       uint    `json:"event_id"`
	StudentID     uint    `json:"student_id"`
	StageID       uint    `json:"stage_id"`
	ResultID      *uint   `json:"result_id"`
	ResultTitle   *string `json:"result_title"`
	CurrentScore  int     `json:"current_score"`
	Status        string  `json:"status"`
	TeacherID     uint    `json:"teacher_id"`
}

// ClassJournal
// @Summary		Журнал класса по мероприятию
// @Tags			journal
// @Produce		json
// @Security		BearerAuth
// @Param			event_id	path	int	true	"ID мероприятия"
// @Param			group_id	path	int	true	"ID класса"
// @Success		200	{array}		journal.StudentJournal
// @Failure		404	{object}	response.ErrorResponse	"EVENT_NOT_FOUND, GROUP_NOT_FOUND, NO_STUDENTS"
// @Router			/journal/{event_id}/{group_id} [get]
func (h *Handler) ClassJournal(c *gin.Context) {
	eventID, ok := idParam(c, "event_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var event models.Event
	if err := preloadEventType(h.DB.WithContext(ctx)).First(&event, eventID).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "EVENT_NOT_FOUND", "Мероприятие не найдено")
			return
		}
		h.dbError(c, err, "Ошибка при получении мероприятия")
		return
	}
	group, ok := h.loadGroup(c, "group_id")
	if !ok {
		return
	}

	students, err := studentsOfGroups(ctx, h.DB, []string{group.Name})
	if err != nil {
		h.dbError(c, err, "Ошибка при получении учеников")
		return
	}
	if len(students) == 0 {
		notFound(c, "NO_STUDENTS", "В классе нет учеников")
		return
	}

	achievements, err := achievementsFor(ctx, h.DB, []uint{event.ID}, userIDs(students))
	if err != nil {
		h.dbError(c, err, "Ошибка при получении результатов")
		return
	}
	c.JSON(http.StatusOK, journal.ClassJournal(&event, students, achievements, h.NowFunc()))
}

// SetResult
// @Summary		Выставление результата
// @Description	Создает или заменяет результат ученика на этапе мероприятия
// @Tags			journal
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			event_id	path	int					true	"ID мероприятия"
// @Param			student_id	path	int					true	"ID ученика"
// @Param			stage_id	path	int					true	"ID этапа"
// @Param			body		body	SetResultRequest	true	"Результат"
// @Success		200	{object}	ResultChange
// @Failure		400	{object}	response.ErrorResponse	"RESULT_STAGE_MISMATCH, STAGE_EVENT_MISMATCH"
// @Failure		404	{object}	response.ErrorResponse	"EVENT_NOT_FOUND, STUDENT_NOT_FOUND, STAGE_NOT_FOUND, RESULT_NOT_FOUND"
// @Router			/journal/{event_id}/{student_id}/{stage_id} [post]
func (h *Handler) SetResult(c *gin.Context) {
	eventID, ok := idParam(c, "event_id")
	if !ok {
		return
	}
	studentID, ok := idParam(c, "student_id")
	if !ok {
		return
	}
	stageID, ok := idParam(c, "stage_id")
	if !ok {
		return
	}
	var req SetResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	teacher := auth.CurrentUser(c)

	var (
		event   models.Event
		student models.User
		stage   models.Stage
		result  models.PossibleResult
	)
	lookups := []struct {
		dest    any
		id      uint
		code    string
		message string
	}{
		{&event, eventID, "EVENT_NOT_FOUND", "Мероприятие не найдено"},
		{&student, studentID, "STUDENT_NOT_FOUND", "Ученик не найден"},
		{&stage, stageID, "STAGE_NOT_FOUND", "Этап не найден"},
		{&result, req.ResultID, "RESULT_NOT_FOUND", "Вариант результата не найден"},
	}
	for _, l := range lookups {
		if err := db.First(l.dest, l.id).Error; err != nil {
			if isNotFound(err) {
				notFound(c, l.code, l.message)
				return
			}
			h.dbError(c, err, "Ошибка при получении данных журнала")
			return
		}
	}
	if stage.EventTypeID != event.EventTypeID {
		badRequest(c, "STAGE_EVENT_MISMATCH", "Этап не относится к типу этого мероприятия")
		return
	}
	if result.StageID != stage.ID {
		badRequest(c, "RESULT_STAGE_MISMATCH", "Результат не относится к этому этапу")
		return
	}

	snapshot := datatypes.JSONMap{"student_name": student.DisplayName, "group_name": student.Group()}
	achievement := models.Achievement{
		TeacherID:   teacher.ID,
		StudentID:   studentID,
		EventID:     eventID,
		StageID:     stageID,
		ResultID:    result.ID,
		AchievedAt:  h.NowFunc(),
		StudentData: snapshot,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "event_id"}, {Name: "stage_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"teacher_id", "result_id", "achieved_at", "student_data"}),
	}).Create(&achievement).Error
	if err != nil {
		h.dbError(c, err, "Ошибка при сохранении результата")
		return
	}
	achievement.Result = &result

	status, score := journal.StageStatus(stage, &achievement)
	change := ResultChange{
		AchievementID: achievement.ID,
		EventID:       eventID,
		StudentID:     studentID,
		StageID:       stageID,
		ResultID:      &result.ID,
		ResultTitle:   &result.Title,
		CurrentScore:  score,
		Status:        status,
		TeacherID:     teacher.ID,
	}
	metrics.JournalUpdates.WithLabelValues("upsert").Inc()
	h.publish(eventID, ws.EventResultUpdated, change)
	c.JSON(http.StatusOK, change)
}

// DeleteResult
// @Summary		Удаление результата
// @Tags			journal
// @Produce		json
// @Security		BearerAuth
// @Param			event_id	path	int	true	"ID мероприятия"
// @Param			student_id	path	int	true	"ID ученика"
// @Param			stage_id	path	int	true	"ID этапа"
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"ACHIEVEMENT_NOT_FOUND"
// @Router			/journal/{event_id}/{student_id}/{stage_id} [delete]
func (h *Handler) DeleteResult(c *gin.Context) {
	eventID, ok := idParam(c, "event_id")
	if !ok {
		return
	}
	studentID, ok := idParam(c, "student_id")
	if !ok {
		return
	}
	stageID, ok := idParam(c, "stage_id")
	if !ok {
		return
	}

	res := h.DB.WithContext(c.Request.Context()).
		Where("student_id = ? AND event_id = ? AND stage_id = ?", studentID, eventID, stageID).
		Delete(&models.Achievement{})
	if res.Error != nil {
		h.dbError(c, res.Error, "Ошибка при удалении результата")
		return
	}
	if res.RowsAffected == 0 {
		notFound(c, "ACHIEVEMENT_NOT_FOUND", "Результат не найден")
		return
	}

	metrics.JournalUpdates.WithLabelValues("delete").Inc()
	h.publish(eventID, ws.EventResultDeleted, ResultChange{
		EventID:   eventID,
		StudentID: studentID,
		StageID:   stageID,
		Status:    journal.StatusFailed,
		TeacherID: auth.CurrentUser(c).ID,
	})
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Результат удален"})
}

// EventTypeStages
// @Summary		Этапы типа мероприятия
// @Tags			journal
// @Produce		json
// @Security		BearerAuth
// @Param			event_type_id	path	int	true	"ID типа мероприятия"
// @Success		200	{array}		models.Stage
// @Failure		404	{object}	response.ErrorResponse	"EVENT_TYPE_NOT_FOUND"
// @Router			/journal/events/{event_type_id}/stages [get]
func (h *Handler) EventTypeStages(c *gin.Context) {
	typeID, ok := idParam(c, "event_type_id")
	if !ok {
		return
	}

	var et models.EventType
	if err := preloadStages(h.DB.WithContext(c.Request.Context())).First(&et, typeID).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "EVENT_TYPE_NOT_FOUND", "Тип мероприятия не найден")
			return
		}
		h.dbError(c, err, "Ошибка при получении этапов")
		return
	}
	stages := et.Stages
	if stages == nil {
		stages = []models.Stage{}
	}
	c.JSON(http.StatusOK, stages)
}

func (h *Handler) publish(eventID uint, eventType string, change ResultChange) {
	if h.Hub == nil {
		return
	}
	h.Hub.Publish(eventID, eventType, change)
}
