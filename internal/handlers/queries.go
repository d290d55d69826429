package handlers

import (
	"context"
	"encoding/json"

	"school_achievements/internal/models"
	"school_achievements/internal/response"

	"gorm.io/gorm"
)

// preloadEventType загружает тип мероприятия с этапами и вариантами результатов.
func preloadEventType(db *gorm.DB) *gorm.DB {
	return db.Preload("EventType").
		Preload("EventType.Stages", func(db *gorm.DB) *gorm.DB { return db.Order("stage_order") }).
		Preload("EventType.Stages.PossibleResults")
}

// classLeaders возвращает неархивных учителей, которые руководят классом.
func classLeaders(ctx context.Context, db *gorm.DB, group string) ([]models.User, error) {
	filter, err := json.Marshal([]string{group})
	if err != nil {
		return nil, err
	}
	var leaders []models.User
	err = db.WithContext(ctx).
		Where("archived = ? AND groups_leader @> ?", false, string(filter)).
		Order("display_name").
		Find(&leaders).Error
	return leaders, err
}

// teachersWithGroups возвращает всех неархивных классных руководителей.
func teachersWithGroups(ctx context.Context, db *gorm.DB) ([]models.User, error) {
	var teachers []models.User
	err := db.WithContext(ctx).
		Where("archived = ? AND CASE WHEN jsonb_typeof(groups_leader) = 'array' THEN jsonb_array_length(groups_leader) ELSE 0 END > 0", false).
		Find(&teachers).Error
	return teachers, err
}

// studentsOfGroups возвращает неархивных учеников указанных классов.
func studentsOfGroups(ctx context.Context, db *gorm.DB, groups []string) ([]models.User, error) {
	if len(groups) == 0 {
		return []models.User{}, nil
	}
	var students []models.User
	err := db.WithContext(ctx).
		Where("archived = ? AND group_name IN ?", false, groups).
		Order("group_name, display_name").
		Find(&students).Error
	return students, err
}

// officeOfLeader ищет активный проектный офис, которым руководит пользователь.
func officeOfLeader(ctx context.Context, db *gorm.DB, userID uint) (*models.ProjectOffice, error) {
	var office models.ProjectOffice
	err := db.WithContext(ctx).
		Preload("AccessibleClasses", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Where("leader_uid = ? AND is_active = ?", userID, true).
		First(&office).Error
	if err != nil {
		return nil, err
	}
	return &office, nil
}

// officeOfGroup ищет активный проектный офис, в который входит класс.
func officeOfGroup(ctx context.Context, db *gorm.DB, group string) (*models.ProjectOffice, error) {
	var office models.ProjectOffice
	err := db.WithContext(ctx).
		Preload("Leader").
		Joins("JOIN project_office_groups pog ON pog.project_office_id = project_offices.id").
		Joins("JOIN groups g ON g.id = pog.group_id").
		Where("project_offices.is_active = ? AND g.name = ?", true, group).
		First(&office).Error
	if err != nil {
		return nil, err
	}
	return &office, nil
}

// officeEvents возвращает активные мероприятия проектного офиса.
func officeEvents(ctx context.Context, db *gorm.DB, officeID uint) ([]models.Event, error) {
	var events []models.Event
	err := preloadEventType(db.WithContext(ctx)).
		Joins("JOIN project_office_events poe ON poe.event_id = events.id").
		Where("poe.project_office_id = ? AND events.is_active = ?", officeID, true).
		Order("events.date_start DESC NULLS LAST, events.id").
		Find(&events).Error
	return events, err
}

// achievementsFor загружает результаты учеников по мероприятиям вместе с вариантом результата.
func achievementsFor(ctx context.Context, db *gorm.DB, eventIDs []uint, studentIDs []uint) ([]models.Achievement, error) {
	if len(eventIDs) == 0 || len(studentIDs) == 0 {
		return []models.Achievement{}, nil
	}
	var achievements []models.Achievement
	err := db.WithContext(ctx).
		Preload("Result").
		Where("event_id IN ? AND student_id IN ?", eventIDs, studentIDs).
		Find(&achievements).Error
	return achievements, err
}

func userIDs(users []models.User) []uint {
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func eventIDs(events []models.Event) []uint {
	ids := make([]uint, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}

func contactOf(u *models.User) *response.ContactInfo {
	if u == nil {
		return nil
	}
	return &response.ContactInfo{
		DisplayName: u.DisplayName,
		About:       u.About,
		Image:       u.Image,
		Email:       u.Email,
		MaxURL:      u.MaxLinkURL,
	}
}
