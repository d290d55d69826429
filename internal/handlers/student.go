package handlers

import (
	"net/http"

	"school_achievements/internal/auth"
	"school_achievements/internal/journal"
	"school_achievements/internal/models"
	"school_achievements/internal/response"

	"github.com/gin-gonic/gin"
)

type StudentInfo struct {
	ID              uint                  `json:"id"`
	DisplayName     string                `json:"display_name"`
	GroupName       string                `json:"group_name"`
	ProjectOfficeID *uint                 `json:"project_office_id"`
	ClassLeader     *response.ContactInfo `json:"class_leader"`
	ProjectLeader   *response.ContactInfo `json:"project_leader"`
}

// StudentMe
// @Summary		Данные ученика
// @Description	Класс, проектный офис и контакты классного руководителя и руководителя проектного офиса
// @Tags			student
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	StudentInfo
// @Failure		403	{object}	response.ErrorResponse	"FORBIDDEN_ROLE"
// @Router			/student [get]
func (h *Handler) StudentMe(c *gin.Context) {
	user := auth.CurrentUser(c)
	ctx := c.Request.Context()

	info := StudentInfo{ID: user.ID, DisplayName: user.DisplayName, GroupName: user.Group()}
	if info.GroupName == "" {
		c.JSON(http.StatusOK, info)
		return
	}

	leaders, err := classLeaders(ctx, h.DB, info.GroupName)
	if err != nil {
		h.dbError(c, err, "Ошибка при поиске классного руководителя")
		return
	}
	if len(leaders) > 0 {
		info.ClassLeader = contactOf(&leaders[0])
	}

	office, err := officeOfGroup(ctx, h.DB, info.GroupName)
	switch {
	case isNotFound(err):
	case err != nil:
		h.dbError(c, err, "Ошибка при поиске проектного офиса")
		return
	default:
		info.ProjectOfficeID = &office.ID
		info.ProjectLeader = contactOf(office.Leader)
	}
	c.JSON(http.StatusOK, info)
}

// StudentProjectOffice
// @Summary		Проектный офис ученика
// @Tags			student
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	models.ProjectOffice
// @Failure		404	{object}	response.ErrorResponse	"PROJECT_OFFICE_NOT_FOUND"
// @Router			/student/project_office [get]
func (h *Handler) StudentProjectOffice(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user.Group() == "" {
		notFound(c, "PROJECT_OFFICE_NOT_FOUND", "Проектный офис не найден")
		return
	}

	office, err := officeOfGroup(c.Request.Context(), h.DB, user.Group())
	if isNotFound(err) {
		notFound(c, "PROJECT_OFFICE_NOT_FOUND", "Проектный офис не найден")
		return
	}
	if err != nil {
		h.dbError(c, err, "Ошибка при поиске проектного офиса")
		return
	}
	c.JSON(http.StatusOK, office)
}

// StudentRecordBook
// @Summary		Зачетка ученика
// @Description	Результаты по активным мероприятиям проектного офиса класса ученика
// @Tags			student
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	journal.RecordBook
// @Router			/student/record-book/marks [get]
func (h *Handler) StudentRecordBook(c *gin.Context) {
	user := auth.CurrentUser(c)
	ctx := c.Request.Context()

	var events []models.Event
	if user.Group() != "" {
		err := preloadEventType(h.DB.WithContext(ctx)).
			Where("events.is_active = ?", true).
			Where(`events.id IN (
				SELECT poe.event_id FROM project_office_events poe
				JOIN project_offices po ON po.id = poe.project_office_id AND po.is_active = ?
				JOIN project_office_groups pog ON pog.project_office_id = po.id
				JOIN groups g ON g.id = pog.group_id
				WHERE g.name = ?)`, true, user.Group()).
			Find(&events).Error
		if err != nil {
			h.dbError(c, err, "Ошибка при получении мероприятий")
			return
		}
	}

	achievements, err := achievementsFor(ctx, h.DB, eventIDs(events), []uint{user.ID})
	if err != nil {
		h.dbError(c, err, "Ошибка при получении результатов")
		return
	}
	c.JSON(http.StatusOK, journal.BuildRecordBook(user.ID, events, achievements))
}
