package models

import (
	"time"

	"gorm.io/datatypes"
)

// Achievement хранит результат одного ученика на одном этапе мероприятия.
// На пару ученик и этап мероприятия приходится не больше одной записи.
type Achievement struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	TeacherID         uint              `gorm:"index;not null" json:"teacher_id"`
	Teacher           *User             `gorm:"foreignKey:TeacherID" json:"-"`
	StudentID         uint              `gorm:"not null;uniqueIndex:idx_achievement_student_stage,priority:1" json:"student_id"`
	Student           *User             `gorm:"foreignKey:StudentID" json:"-"`
	EventID           uint              `gorm:"index;not null;uniqueIndex:idx_achievement_student_stage,priority:2" json:"event_id"`
	Event             *Event            `json:"-"`
	StageID           uint              `gorm:"index;not null;uniqueIndex:idx_achievement_student_stage,priority:3" json:"stage_id"`
	Stage             *Stage            `json:"-"`
	ResultID          uint              `gorm:"index;not null" json:"result_id"`
	Result            *PossibleResult   `gorm:"foreignKey:ResultID" json:"-"`
	AchievedAt        time.Time         `gorm:"not null;autoCreateTime" json:"achieved_at"`
	ProofDocumentPath string            `gorm:"size:500" json:"proof_document_path,omitempty"`
	StudentData       datatypes.JSONMap `json:"student_data,omitempty"`
}

func (Achievement) TableName() string { return "student_achievements" }

// EmailLog фиксирует каждую попытку отправки письма.
type EmailLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;not null;index" json:"email"`
	Subject      string    `gorm:"size:500;not null" json:"subject"`
	TemplateName string    `gorm:"size:100;not null" json:"template_name"`
	Status       string    `gorm:"size:50;not null;default:pending" json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	SentAt       time.Time `gorm:"autoCreateTime" json:"sent_at"`
}

const (
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
	EmailStatusPending = "pending"
)

// All перечисляет модели для AutoMigrate в порядке зависимостей.
func All() []any {
	return []any{
		&Role{}, &User{}, &Group{},
		&EventType{}, &Stage{}, &PossibleResult{}, &Event{},
		&Achievement{}, &ProjectOffice{}, &EmailLog{},
	}
}
