package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"school_achievements/internal/auth"
	"school_achievements/internal/models"
	"school_achievements/internal/response"

	"github.com/gin-gonic/gin"
)

type GroupInfo struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Grade        int    `json:"grade"`
	Letter       string `json:"letter"`
	StudentCount int    `json:"studentCount"`
}

type StudentBrief struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Image       string `json:"image,omitempty"`
	GroupName   string `json:"group_name"`
	IsActive    bool   `json:"is_active"`
}

type GroupCard struct {
	Group    GroupInfo             `json:"group"`
	Teacher  *response.ContactInfo `json:"teacher"`
	Students []StudentBrief        `json:"students"`
}

// splitGroupName разбирает название вида "11-Т" на параллель и литеру.
func splitGroupName(name string) (int, string) {
	gradePart, letter, _ := strings.Cut(name, "-")
	grade, _ := strconv.Atoi(strings.TrimSpace(gradePart))
	return grade, strings.TrimSpace(letter)
}

func groupInfo(g models.Group, students int) GroupInfo {
	grade, letter := splitGroupName(g.Name)
	return GroupInfo{ID: g.ID, Name: g.Name, Grade: grade, Letter: letter, StudentCount: students}
}

func briefs(users []models.User) []StudentBrief {
	out := make([]StudentBrief, 0, len(users))
	for _, u := range users {
		out = append(out, StudentBrief{
			ID:          u.ID,
			DisplayName: u.DisplayName,
			Email:       u.Email,
			Image:       u.Image,
			GroupName:   u.Group(),
			IsActive:    u.IsActive,
		})
	}
	return out
}

// loadGroup ищет класс по параметру пути и сам отвечает при ошибке.
func (h *Handler) loadGroup(c *gin.Context, param string) (*models.Group, bool) {
	id, ok := idParam(c, param)
	if !ok {
		return nil, false
	}
	var group models.Group
	if err := h.DB.WithContext(c.Request.Context()).First(&group, id).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "GROUP_NOT_FOUND", "Класс не найден")
			return nil, false
		}
		h.dbError(c, err, "Ошибка при получении класса")
		return nil, false
	}
	return &group, true
}

// ListGroups
// @Summary		Все классы
// @Tags			groups
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	models.Group
// @Router			/groups/all [get]
func (h *Handler) ListGroups(c *gin.Context) {
	var groups []models.Group
	if err := h.DB.WithContext(c.Request.Context()).Order("name").Find(&groups).Error; err != nil {
		h.dbError(c, err, "Ошибка при получении классов")
		return
	}
	c.JSON(http.StatusOK, groups)
}

// LedGroups
// @Summary		Классы, которыми руководит учитель
// @Tags			groups
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	models.Group
// @Router			/groups/for_group_leader [get]
func (h *Handler) LedGroups(c *gin.Context) {
	user := auth.CurrentUser(c)
	groups := []models.Group{}
	if len(user.GroupsLeader) > 0 {
		err := h.DB.WithContext(c.Request.Context()).
			Where("name IN ?", []string(user.GroupsLeader)).
			Order("name").
			Find(&groups).Error
		if err != nil {
			h.dbError(c, err, "Ошибка при получении классов")
			return
		}
	}
	c.JSON(http.StatusOK, groups)
}

// GroupStudents
// @Summary		Ученики класса
// @Tags			groups
// @Produce		json
// @Security		BearerAuth
// @Param			group_id	path	int	true	"ID класса"
// @Success		200	{array}		StudentBrief
// @Failure		404	{object}	response.ErrorResponse	"GROUP_NOT_FOUND"
// @Router			/groups/for_group_leader/{group_id} [get]
func (h *Handler) GroupStudents(c *gin.Context) {
	group, ok := h.loadGroup(c, "group_id")
	if !ok {
		return
	}
	students, err := studentsOfGroups(c.Request.Context(), h.DB, []string{group.Name})
	if err != nil {
		h.dbError(c, err, "Ошибка при получении учеников")
		return
	}
	c.JSON(http.StatusOK, briefs(students))
}

// GetGroupCard
// @Summary		Карточка класса
// @Tags			groups
// @Produce		json
// @Security		BearerAuth
// @Param			group_id	path	int	true	"ID класса"
// @Success		200	{object}	GroupCard
// @Failure		404	{object}	response.ErrorResponse	"GROUP_NOT_FOUND, GROUP_LEADER_NOT_FOUND"
// @Router			/groups/{group_id} [get]
func (h *Handler) GetGroupCard(c *gin.Context) {
	group, ok := h.loadGroup(c, "group_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	leaders, err := classLeaders(ctx, h.DB, group.Name)
	if err != nil {
		h.dbError(c, err, "Ошибка при поиске классного руководителя")
		return
	}
	if len(leaders) == 0 {
		notFound(c, "GROUP_LEADER_NOT_FOUND", "Классный руководитель не найден")
		return
	}

	students, err := studentsOfGroups(ctx, h.DB, []string{group.Name})
	if err != nil {
		h.dbError(c, err, "Ошибка при получении учеников")
		return
	}
	c.JSON(http.StatusOK, GroupCard{
		Group:    groupInfo(*group, len(students)),
		Teacher:  contactOf(&leaders[0]),
		Students: briefs(students),
	})
}

// GroupLeaderEventTypes
// @Summary		Типы мероприятий для классного руководителя
// @Tags			group-leader
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	models.EventType
// @Router			/group-leader/event_types [get]
func (h *Handler) GroupLeaderEventTypes(c *gin.Context) {
	h.ListEventTypes(c)
}

// GroupLeaderEvents
// @Summary		Мероприятия всех типов
// @Tags			group-leader
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	models.Event
// @Router			/group-leader/events [get]
func (h *Handler) GroupLeaderEvents(c *gin.Context) {
	var events []models.Event
	err := h.DB.WithContext(c.Request.Context()).
		Preload("EventType").
		Joins("JOIN event_types et ON et.id = events.event_type_id AND et.is_archived = ?", false).
		Where("events.is_active = ?", true).
		Order("events.date_start DESC NULLS LAST, events.title").
		Find(&events).Error
	if err != nil {
		h.dbError(c, err, "Ошибка при получении мероприятий")
		return
	}
	c.JSON(http.StatusOK, events)
}

// GroupLeaderStudents
// @Summary		Ученики класса руководителя
// @Description	Без параметра group берется первый класс, которым руководит учитель
// @Tags			group-leader
// @Produce		json
// @Security		BearerAuth
// @Param			group	query	string	false	"Название класса"
// @Success		200	{array}		StudentBrief
// @Failure		404	{object}	response.ErrorResponse	"GROUP_NOT_FOUND"
// @Router			/group-leader/students [get]
func (h *Handler) GroupLeaderStudents(c *gin.Context) {
	user := auth.CurrentUser(c)
	group := c.Query("group")
	if group == "" {
		if len(user.GroupsLeader) == 0 {
			notFound(c, "GROUP_NOT_FOUND", "Учитель не руководит ни одним классом")
			return
		}
		group = user.GroupsLeader[0]
	}

	students, err := studentsOfGroups(c.Request.Context(), h.DB, []string{group})
	if err != nil {
		h.dbError(c, err, "Ошибка при получении учеников")
		return
	}
	c.JSON(http.StatusOK, briefs(students))
}

// GroupLeaderOf
// @Summary		Классный руководитель класса
// @Tags			group-leader
// @Produce		json
// @Security		BearerAuth
// @Param			group_id	path	int	true	"ID класса"
// @Success		200	{object}	response.ContactInfo
// @Failure		404	{object}	response.ErrorResponse	"GROUP_NOT_FOUND, GROUP_LEADER_NOT_FOUND"
// @Router			/group-leader/{group_id} [get]
func (h *Handler) GroupLeaderOf(c *gin.Context) {
	group, ok := h.loadGroup(c, "group_id")
	if !ok {
		return
	}
	leaders, err := classLeaders(c.Request.Context(), h.DB, group.Name)
	if err != nil {
		h.dbError(c, err, "Ошибка при поиске классного руководителя")
		return
	}
	if len(leaders) == 0 {
		notFound(c, "GROUP_LEADER_NOT_FOUND", "Классный руководитель не найден")
		return
	}
	c.JSON(http.StatusOK, contactOf(&leaders[0]))
}
