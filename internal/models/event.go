package models

import "time"

type EventType struct {
	ID                     uint    `gorm:"primaryKey" json:"id"`
	Title                  string  `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Description            string  `json:"description,omitempty"`
	LeaderID               *uint   `gorm:"index" json:"leader_id,omitempty"`
	Leader                 *User   `gorm:"foreignKey:LeaderID" json:"leader,omitempty"`
	MinStagesForCompletion int     `gorm:"default:0;not null" json:"min_stages_for_completion"`
	IsArchived             bool    `gorm:"default:false;not null" json:"is_archived"`
	Stages                 []Stage `gorm:"constraint:OnDelete:CASCADE;" json:"stages,omitempty"`
	Events                 []Event `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// RequiredStages считает, сколько этапов нужно пройти, чтобы мероприятие было зачтено.
// Если минимум не задан, требуются все этапы.
func (et *EventType) RequiredStages(stagesCount int) int {
	if et.MinStagesForCompletion > 0 {
		return et.MinStagesForCompletion
	}
	return stagesCount
}

type Stage struct {
	ID                  uint             `gorm:"primaryKey" json:"id"`
	EventTypeID         uint             `gorm:"index;not null" json:"event_type_id"`
	Title               string           `gorm:"size:255;not null" json:"title"`
	StageOrder          int              `gorm:"not null" json:"stage_order"`
	MinScoreForFinished int              `gorm:"not null;default:0" json:"min_score_for_finished"`
	PossibleResults     []PossibleResult `gorm:"constraint:OnDelete:CASCADE;" json:"possible_results,omitempty"`
}

type PossibleResult struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	StageID       uint   `gorm:"index;not null" json:"stage_id"`
	Title         string `gorm:"size:255;not null" json:"title"`
	PointsForDone int    `gorm:"not null;default:0" json:"points_for_done"`
}

type Event struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null;index" json:"title"`
	EventTypeID  uint       `gorm:"index;not null" json:"event_type_id"`
	EventType    *EventType `json:"event_type,omitempty"`
	Description  string     `json:"description,omitempty"`
	AcademicYear string     `gorm:"size:9;not null" json:"academic_year"`
	DateStart    *time.Time `gorm:"type:date" json:"date_start,omitempty"`
	DateEnd      *time.Time `gorm:"type:date" json:"date_end,omitempty"`
	IsActive     bool       `gorm:"default:true;not null" json:"is_active"`
}

// Date возвращает дату начала, а если ее нет, дату окончания.
func (e *Event) Date() *time.Time {
	if e.DateStart != nil {
		return e.DateStart
	}
	return e.DateEnd
}
