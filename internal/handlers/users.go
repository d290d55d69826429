package handlers

import (
	"net/http"

	"school_achievements/internal/auth"
	"school_achievements/internal/models"

	"github.com/gin-gonic/gin"
)

type UserProfile struct {
	ID              uint     `json:"id"`
	DisplayName     string   `json:"display_name"`
	Email           string   `json:"email"`
	Image           string   `json:"image,omitempty"`
	Roles           []string `json:"roles"`
	HasPOffice      bool     `json:"has_p_office"`
	HasEventTypes   bool     `json:"has_event_types"`
	HasGroupsLeader bool     `json:"has_groups_leader"`
	HasAdmin        bool     `json:"has_admin"`
}

// UsersMe возвращает профиль и флаги разделов, доступных пользователю.
// На /users/{id} отвечает так же: идентификатор в пути не используется.
// @Summary		Профиль текущего пользователя
// @Tags			users
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	UserProfile
// @Failure		400	{object}	response.ErrorResponse	"USER_INACTIVE"
// @Failure		500	{object}	response.ErrorResponse	"DB_ERROR"
// @Router			/users/me [get]
// @Router			/users/{id} [get]
func (h *Handler) UsersMe(c *gin.Context) {
	user := auth.CurrentUser(c)
	db := h.DB.WithContext(c.Request.Context())

	var offices, eventTypes, groups int64
	if err := db.Model(&models.ProjectOffice{}).Where("leader_uid = ? AND is_active = ?", user.ID, true).Count(&offices).Error; err != nil {
		h.dbError(c, err, "Ошибка при получении проектных офисов")
		return
	}
	if err := db.Model(&models.EventType{}).Where("leader_id = ?", user.ID).Count(&eventTypes).Error; err != nil {
		h.dbError(c, err, "Ошибка при получении типов мероприятий")
		return
	}
	if len(user.GroupsLeader) > 0 {
		if err := db.Model(&models.Group{}).Where("name IN ?", []string(user.GroupsLeader)).Count(&groups).Error; err != nil {
			h.dbError(c, err, "Ошибка при получении классов")
			return
		}
	}

	c.JSON(http.StatusOK, UserProfile{
		ID:              user.ID,
		DisplayName:     user.DisplayName,
		Email:           user.Email,
		Image:           user.Image,
		Roles:           user.RoleNames(),
		HasPOffice:      offices > 0,
		HasEventTypes:   eventTypes > 0,
		HasGroupsLeader: groups > 0,
		HasAdmin:        user.HasRole(models.RoleAdmin),
	})
}
