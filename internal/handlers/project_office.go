package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"school_achievements/internal/auth"
	"school_achievements/internal/journal"
	"school_achievements/internal/models"
	"school_achievements/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OfficeEvent struct {
	models.Event
	IsImportant bool `json:"is_important"`
}

type PivotResponse struct {
	Events   []OfficeEvent          `json:"events"`
	Students []journal.PivotStudent `json:"students"`
}

type ChangeEventsRequest struct {
	EventIDs []uint `json:"event_ids"`
}

type ImportanceRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// currentOffice возвращает проектный офис текущего пользователя или отвечает 404.
func (h *Handler) currentOffice(c *gin.Context) (*models.ProjectOffice, bool) {
	office, err := officeOfLeader(c.Request.Context(), h.DB, auth.CurrentUser(c).ID)
	if isNotFound(err) {
		notFound(c, "PROJECT_OFFICE_NOT_FOUND", "Пользователь не руководит проектным офисом")
		return nil, false
	}
	if err != nil {
		h.dbError(c, err, "Ошибка при получении проектного офиса")
		return nil, false
	}
	return office, true
}

func (h *Handler) officeEventsWithImportance(c *gin.Context, officeID uint) ([]OfficeEvent, error) {
	ctx := c.Request.Context()
	events, err := officeEvents(ctx, h.DB, officeID)
	if err != nil {
		return nil, err
	}
	var links []models.ProjectOfficeEvent
	if err := h.DB.WithContext(ctx).Where("project_office_id = ? AND is_important = ?", officeID, true).Find(&links).Error; err != nil {
		return nil, err
	}
	important := make(map[uint]bool, len(links))
	for _, l := range links {
		important[l.EventID] = true
	}

	out := make([]OfficeEvent, 0, len(events))
	for _, e := range events {
		out = append(out, OfficeEvent{Event: e, IsImportant: important[e.ID]})
	}
	return out, nil
}

// OfficeJournal
// @Summary		Журнал мероприятия по классам проектного офиса
// @Tags			project-office
// @Produce		json
// @Security		BearerAuth
// @Param			event_id	path	int	true	"ID мероприятия"
// @Success		200	{array}		journal.OfficeStudentJournal
// @Failure		404	{object}	response.ErrorResponse	"PROJECT_OFFICE_NOT_FOUND, EVENT_NOT_FOUND"
// @Router			/project-office/journal/{event_id} [get]
func (h *Handler) OfficeJournal(c *gin.Context) {
	office, ok := h.currentOffice(c)
	if !ok {
		return
	}
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

	students, err := studentsOfGroups(ctx, h.DB, office.ClassNames())
	if err != nil {
		h.dbError(c, err, "Ошибка при получении учеников")
		return
	}
	achievements, err := achievementsFor(ctx, h.DB, []uint{event.ID}, userIDs(students))
	if err != nil {
		h.dbError(c, err, "Ошибка при получении результатов")
		return
	}
	teachers, err := teachersWithGroups(ctx, h.DB)
	if err != nil {
		h.dbError(c, err, "Ошибка при получении классных руководителей")
		return
	}

	c.JSON(http.StatusOK, journal.OfficeJournal(&event, students, achievements, journal.ClassTeachers(teachers), h.NowFunc()))
}

// OfficeEvents
// @Summary		Мероприятия проектного офиса
// @Tags			project-office
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		OfficeEvent
// @Failure		404	{object}	response.ErrorResponse	"PROJECT_OFFICE_NOT_FOUND"
// @Router			/project-office/events [get]
func (h *Handler) OfficeEvents(c *gin.Context) {
	office, ok := h.currentOffice(c)
	if !ok {
		return
	}
	events, err := h.officeEventsWithImportance(c, office.ID)
	if err != nil {
		h.dbError(c, err, "Ошибка при получении мероприятий")
		return
	}
	c.JSON(http.StatusOK, events)
}

// OfficeGroups
// @Summary		Классы проектного офиса
// @Tags			project-office
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		GroupInfo
// @Failure		404	{object}	response.ErrorResponse	"PROJECT_OFFICE_NOT_FOUND"
// @Router			/project-office/groups [get]
func (h *Handler) OfficeGroups(c *gin.Context) {
	office, ok := h.currentOffice(c)
	if !ok {
		return
	}

	var counts []struct {
		GroupName string
		Total     int
	}
	if names := office.ClassNames(); len(names) > 0 {
		err := h.DB.WithContext(c.Request.Context()).Model(&models.User{}).
			Select("group_name, COUNT(*) AS total").
			Where("archived = ? AND group_name IN ?", false, names).
			Group("group_name").
			Scan(&counts).Error
		if err != nil {
			h.dbError(c, err, "Ошибка при подсчете учеников")
			return
		}
	}
	byName := make(map[string]int, len(counts))
	for _, row := range counts {
		byName[row.GroupName] = row.Total
	}

	out := make([]GroupInfo, 0, len(office.AccessibleClasses))
	for _, g := range office.AccessibleClasses {
		out = append(out, groupInfo(g, byName[g.Name]))
	}
	c.JSON(http.StatusOK, out)
}

// OfficePivot
// @Summary		Сводная таблица проектного офиса
// @Description	Ученики по строкам, мероприятия офиса по столбцам. Параметр groups ограничивает классы
// @Tags			project-office
// @Produce		json
// @Security		BearerAuth
// @Param			groups	query	string	false	"Классы через запятую"
// @Success		200	{object}	PivotResponse
// @Failure		404	{object}	response.ErrorResponse	"PROJECT_OFFICE_NOT_FOUND"
// @Router			/project-office/pivot-data-optimized [get]
func (h *Handler) OfficePivot(c *gin.Context) {
	office, ok := h.currentOffice(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	classes := office.ClassNames()
	if raw := c.Query("groups"); raw != "" {
		allowed := make(map[string]bool, len(classes))
		for _, name := range classes {
			allowed[name] = true
		}
		classes = classes[:0:0]
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); allowed[name] {
				classes = append(classes, name)
			}
		}
	}

	events, err := h.officeEventsWithImportance(c, office.ID)
	if err != nil {
		h.dbError(c, err, "Ошибка при получении мероприятий")
		return
	}
	students, err := studentsOfGroups(ctx, h.DB, classes)
	if err != nil {
		h.dbError(c, err, "Ошибка при получении учеников")
		return
	}
	plain := make([]models.Event, 0, len(events))
	for _, e := range events {
		plain = append(plain, e.Event)
	}
	achievements, err := achievementsFor(ctx, h.DB, eventIDs(plain), userIDs(students))
	if err != nil {
		h.dbError(c, err, "Ошибка при получении результатов")
		return
	}
	teachers, err := teachersWithGroups(ctx, h.DB)
	if err != nil {
		h.dbError(c, err, "Ошибка при получении классных руководителей")
		return
	}

	c.JSON(http.StatusOK, PivotResponse{
		Events:   events,
		Students: journal.Pivot(students, plain, achievements, journal.ClassTeachers(teachers)),
	})
}

// ChangeOfficeEvents заменяет набор мероприятий офиса. Флаг важности сохраняется
// у мероприятий, которые остаются в наборе.
// @Summary		Изменение мероприятий проектного офиса
// @Tags			project-office
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			body	body	ChangeEventsRequest	true	"Новый список мероприятий"
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"PROJECT_OFFICE_NOT_FOUND, EVENT_NOT_FOUND"
// @Router			/project-office/change-events-project [post]
func (h *Handler) ChangeOfficeEvents(c *gin.Context) {
	office, ok := h.currentOffice(c)
	if !ok {
		return
	}
	var req ChangeEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	db := h.DB.WithContext(c.Request.Context())

	wanted := make(map[uint]bool, len(req.EventIDs))
	ids := make([]uint, 0, len(req.EventIDs))
	for _, id := range req.EventIDs {
		if !wanted[id] {
			wanted[id] = true
			ids = append(ids, id)
		}
	}

	if len(ids) > 0 {
		var found []uint
		if err := db.Model(&models.Event{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
			h.dbError(c, err, "Ошибка при проверке мероприятий")
			return
		}
		exists := make(map[uint]bool, len(found))
		for _, id := range found {
			exists[id] = true
		}
		var missing []string
		for _, id := range ids {
			if !exists[id] {
				missing = append(missing, fmt.Sprint(id))
			}
		}
		if len(missing) > 0 {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "EVENT_NOT_FOUND",
				Message: "Мероприятия не найдены",
				Details: strings.Join(missing, ", "),
			})
			return
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		drop := tx.Where("project_office_id = ?", office.ID)
		if len(ids) > 0 {
			drop = drop.Where("event_id NOT IN ?", ids)
		}
		if err := drop.Delete(&models.ProjectOfficeEvent{}).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		links := make([]models.ProjectOfficeEvent, 0, len(ids))
		for _, id := range ids {
			links = append(links, models.ProjectOfficeEvent{ProjectOfficeID: office.ID, EventID: id})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})
	if err != nil {
		h.dbError(c, err, "Ошибка при сохранении мероприятий офиса")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Мероприятия проектного офиса обновлены"})
}

// ChangeEventImportance
// @Summary		Отметка важности мероприятия
// @Tags			project-office
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			event_id	path	int					true	"ID мероприятия"
// @Param			body		body	ImportanceRequest	true	"Флаг важности"
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"PROJECT_OFFICE_NOT_FOUND, EVENT_NOT_FOUND"
// @Router			/project-office/change-event-imp/{event_id} [post]
func (h *Handler) ChangeEventImportance(c *gin.Context) {
	office, ok := h.currentOffice(c)
	if !ok {
		return
	}
	eventID, ok := idParam(c, "event_id")
	if !ok {
		return
	}
	var req ImportanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	db := h.DB.WithContext(c.Request.Context())

	var event models.Event
	if err := db.Select("id").First(&event, eventID).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "EVENT_NOT_FOUND", "Мероприятие не найдено")
			return
		}
		h.dbError(c, err, "Ошибка при получении мероприятия")
		return
	}

	link := models.ProjectOfficeEvent{ProjectOfficeID: office.ID, EventID: eventID, IsImportant: *req.Value}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_office_id"}, {Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_important"}),
	}).Create(&link).Error
	if err != nil {
		h.dbError(c, err, "Ошибка при сохранении важности")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Важность мероприятия обновлена"})
}
