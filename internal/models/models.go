package models

import (
	"time"

	"gorm.io/datatypes"
)

// Названия ролей, которые создаются при миграции.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleParent  = "parent"
)

// DefaultRoles перечисляет роли с описаниями для начального заполнения.
var DefaultRoles = []Role{
	{Name: RoleStudent, Description: "Ученик"},
	{Name: RoleTeacher, Description: "Учитель"},
	{Name: RoleAdmin, Description: "Администратор"},
	{Name: RoleParent, Description: "Родитель"},
}

type User struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	ExternalID         string     `gorm:"uniqueIndex;not null" json:"external_id"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       *string    `json:"-"`
	IsActive           bool       `gorm:"default:false;not null" json:"is_active"`
	IsVerified         bool       `gorm:"default:false;not null" json:"is_verified"`
	RequiresPassword   bool       `gorm:"default:true;not null" json:"requires_password"`
	VerificationToken  *string    `gorm:"index" json:"-"`
	VerificationSentAt *time.Time `json:"-"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	EmailVerifiedAt    *time.Time `json:"email_verified_at,omitempty"`
	PasswordResetAt    *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	DisplayName string `gorm:"size:255;not null;default:''" json:"display_name"`
	Phone       string `gorm:"size:20" json:"phone,omitempty"`
	Image       string `json:"image,omitempty"`
	About       string `json:"about,omitempty"`
	MaxLinkURL  string `json:"max_link_url,omitempty"`
	Archived    bool   `gorm:"default:false;not null;index" json:"archived"`

	// GroupName хранит класс ученика, например "11-Т".
	GroupName *string `gorm:"size:50;index" json:"group_name,omitempty"`
	// GroupsLeader перечисляет классы, у которых учитель является классным руководителем.
	GroupsLeader datatypes.JSONSlice[string] `json:"groups_leader,omitempty"`

	Roles []Role `gorm:"many2many:user_roles;" json:"roles,omitempty"`
}

// HasRole проверяет наличие роли у пользователя. Роли должны быть предзагружены.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames возвращает имена ролей пользователя.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// LeadsGroup сообщает, является ли пользователь классным руководителем группы.
func (u *User) LeadsGroup(name string) bool {
	for _, g := range u.GroupsLeader {
		if g == name {
			return true
		}
	}
	return false
}

// Group возвращает класс ученика или пустую строку.
func (u *User) Group() string {
	if u.GroupName == nil {
		return ""
	}
	return *u.GroupName
}

type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description,omitempty"`
}

// Group описывает класс. Связь с учениками идет по совпадению названия с User.GroupName.
type Group struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null;index" json:"name"`
}
