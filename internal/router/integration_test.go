package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"school_achievements/internal/auth"
	"school_achievements/internal/handlers"
	"school_achievements/internal/journal"
	"school_achievements/internal/models"
	"school_achievements/internal/storage"
	"school_achievements/internal/storage/storagetest"
	"school_achievements/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type school struct {
	db      *gorm.DB
	router  *gin.Engine
	tokens  *auth.TokenManager
	teacher *models.User
	student *models.User
	admin   *models.User
	group   models.Group
	etype   models.EventType
	event   models.Event
	office  models.ProjectOffice
}

func role(t *testing.T, db *gorm.DB, name string) models.Role {
	var r models.Role
	require.NoError(t, db.Where("name = ?", name).First(&r).Error)
	return r
}

func newSchool(t *testing.T) *school {
	db := storagetest.NewPostgres(t)
	require.NoError(t, validation.Register())

	prevDB := storage.DB
	storage.DB = db
	t.Cleanup(func() { storage.DB = prevDB })

	s := &school{db: db, tokens: testTokens()}
	group := "11-Т"
	s.teacher = &models.User{
		ExternalID: "t1", Email: "teacher@school.ru", DisplayName: "Иванова Анна",
		IsActive: true, IsVerified: true, RequiresPassword: true,
		GroupsLeader: datatypes.JSONSlice[string]{group},
		Roles:        []models.Role{role(t, db, models.RoleTeacher)},
	}
	s.student = &models.User{
		ExternalID: "s1", Email: "student@school.ru", DisplayName: "Петров Петр",
		IsActive: true, IsVerified: true, RequiresPassword: true, GroupName: &group,
		Roles: []models.Role{role(t, db, models.RoleStudent)},
	}
	s.admin = &models.User{
		ExternalID: "a1", Email: "admin@school.ru", DisplayName: "Админ",
		IsActive: true, IsVerified: true, RequiresPassword: true,
		Roles: []models.Role{role(t, db, models.RoleAdmin)},
	}
	require.NoError(t, db.Create(s.teacher).Error)
	require.NoError(t, db.Create(s.student).Error)
	require.NoError(t, db.Create(s.admin).Error)

	s.group = models.Group{Name: group}
	require.NoError(t, db.Create(&s.group).Error)

	s.etype = models.EventType{
		Title:    "Олимпиада",
		LeaderID: &s.teacher.ID,
		Stages: []models.Stage{
			{Title: "Отбор", StageOrder: 1, MinScoreForFinished: 2, PossibleResults: []models.PossibleResult{
				{Title: "Участие", PointsForDone: 1},
				{Title: "Победа", PointsForDone: 5},
			}},
			{Title: "Финал", StageOrder: 2, MinScoreForFinished: 3, PossibleResults: []models.PossibleResult{
				{Title: "Призер", PointsForDone: 3},
			}},
		},
	}
	require.NoError(t, db.Create(&s.etype).Error)

	start := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	s.event = models.Event{Title: "Физика", EventTypeID: s.etype.ID, AcademicYear: "2024-2025", DateStart: &start, IsActive: true}
	require.NoError(t, db.Create(&s.event).Error)

	s.office = models.ProjectOffice{
		Title: "Инженерный", IsActive: true, LeaderUID: &s.teacher.ID,
		AccessibleClasses: []models.Group{s.group},
		AccessibleEvents:  []models.Event{s.event},
	}
	require.NoError(t, db.Create(&s.office).Error)

	h := handlers.New(db, nil, nil, nil, zerolog.Nop())
	s.router = newTestRouter(h, s.tokens)
	return s
}

func (s *school) do(t *testing.T, u *models.User, method, path string, body any) (int, []byte) {
	t.Helper()
	w := doJSON(s.router, method, path, bearer(t, s.tokens, u), body)
	return w.Code, w.Body.Bytes()
}

func (s *school) stage(order int) models.Stage {
	for _, st := range s.etype.Stages {
		if st.StageOrder == order {
			return st
		}
	}
	panic("нет этапа")
}

func TestJournalFlow(t *testing.T) {
	s := newSchool(t)
	selection, final := s.stage(1), s.stage(2)
	winner := selection.PossibleResults[1]

	path := fmt.Sprintf("/api/journal/%d/%d/%d", s.event.ID, s.student.ID, selection.ID)

	// результат чужого этапа
	code, body := s.do(t, s.teacher, http.MethodPost, path, map[string]any{"result_id": final.PossibleResults[0].ID})
	require.Equal(t, http.StatusBadRequest, code, string(body))

	code, body = s.do(t, s.teacher, http.MethodPost, path, map[string]any{"result_id": 999999})
	require.Equal(t, http.StatusNotFound, code, string(body))

	code, body = s.do(t, s.teacher, http.MethodPost, path, map[string]any{"result_id": winner.ID})
	require.Equal(t, http.StatusOK, code, string(body))
	var change handlers.ResultChange
	require.NoError(t, json.Unmarshal(body, &change))
	assert.Equal(t, journal.StatusPassed, change.Status)
	assert.Equal(t, 5, change.CurrentScore)

	// повторная запись заменяет результат, а не дублирует
	code, _ = s.do(t, s.teacher, http.MethodPost, path, map[string]any{"result_id": selection.PossibleResults[0].ID})
	require.Equal(t, http.StatusOK, code)
	var count int64
	require.NoError(t, s.db.Model(&models.Achievement{}).Where("student_id = ?", s.student.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored models.Achievement
	require.NoError(t, s.db.Where("student_id = ?", s.student.ID).First(&stored).Error)
	assert.Equal(t, s.teacher.ID, stored.TeacherID)
	assert.Equal(t, "Петров Петр", stored.StudentData["student_name"])

	code, body = s.do(t, s.teacher, http.MethodGet, fmt.Sprintf("/api/journal/%d/%d", s.event.ID, s.group.ID), nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var rows []journal.StudentJournal
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].TotalScore)
	assert.Equal(t, 2, rows[0].MinStagesRequired)
	assert.Equal(t, journal.StatusFailed, rows[0].Stages[0].Status)

	code, _ = s.do(t, s.teacher, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, s.teacher, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestConcurrentSetResultKeepsOneRow(t *testing.T) {
	s := newSchool(t)
	selection := s.stage(1)
	path := fmt.Sprintf("/api/journal/%d/%d/%d", s.event.ID, s.student.ID, selection.ID)
	token := bearer(t, s.tokens, s.teacher)

	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result := selection.PossibleResults[i%2]
			codes[i] = doJSON(s.router, http.MethodPost, path, token, map[string]any{"result_id": result.ID}).Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
	var count int64
	require.NoError(t, s.db.Model(&models.Achievement{}).
		Where("student_id = ? AND event_id = ? AND stage_id = ?", s.student.ID, s.event.ID, selection.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// прямая вставка дубля отклоняется уникальным индексом
	dup := models.Achievement{
		TeacherID: s.teacher.ID, StudentID: s.student.ID, EventID: s.event.ID,
		StageID: selection.ID, ResultID: selection.PossibleResults[0].ID,
	}
	assert.Error(t, s.db.Create(&dup).Error)
}

func TestStudentRecordBookAndCard(t *testing.T) {
	s := newSchool(t)
	selection := s.stage(1)
	code, _ := s.do(t, s.teacher, http.MethodPost,
		fmt.Sprintf("/api/journal/%d/%d/%d", s.event.ID, s.student.ID, selection.ID),
		map[string]any{"result_id": selection.PossibleResults[1].ID})
	require.Equal(t, http.StatusOK, code)

	code, body := s.do(t, s.student, http.MethodGet, "/api/student/record-book/marks", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var book journal.RecordBook
	require.NoError(t, json.Unmarshal(body, &book))
	require.Len(t, book.Marks, 1)
	assert.Equal(t, "Физика", book.Marks[0].EventName)
	assert.Equal(t, "2024-10-01", book.Marks[0].Date)
	assert.Equal(t, journal.StatusFailed, book.Marks[0].Type)
	assert.Equal(t, 1, book.Marks[0].CompletedStagesCount)

	code, body = s.do(t, s.student, http.MethodGet, "/api/student", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var info handlers.StudentInfo
	require.NoError(t, json.Unmarshal(body, &info))
	require.NotNil(t, info.ClassLeader)
	assert.Equal(t, "teacher@school.ru", info.ClassLeader.Email)
	require.NotNil(t, info.ProjectOfficeID)
	assert.Equal(t, s.office.ID, *info.ProjectOfficeID)

	code, body = s.do(t, s.teacher, http.MethodGet, fmt.Sprintf("/api/groups/%d", s.group.ID), nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var card handlers.GroupCard
	require.NoError(t, json.Unmarshal(body, &card))
	assert.Equal(t, 11, card.Group.Grade)
	assert.Equal(t, 1, card.Group.StudentCount)
	assert.Len(t, card.Students, 1)
}

func TestUsersMeFlags(t *testing.T) {
	s := newSchool(t)

	code, body := s.do(t, s.teacher, http.MethodGet, "/api/users/me", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var profile handlers.UserProfile
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.True(t, profile.HasPOffice)
	assert.True(t, profile.HasEventTypes)
	assert.True(t, profile.HasGroupsLeader)
	assert.False(t, profile.HasAdmin)

	// путь с идентификатором отвечает профилем текущего пользователя
	code, body = s.do(t, s.teacher, http.MethodGet, fmt.Sprintf("/api/users/%d", s.student.ID), nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var byID handlers.UserProfile
	require.NoError(t, json.Unmarshal(body, &byID))
	assert.Equal(t, profile, byID)
}

func TestEventTypesAndEvents(t *testing.T) {
	s := newSchool(t)

	code, body := s.do(t, s.teacher, http.MethodPost, "/api/event-types", map[string]any{"title": "Олимпиада"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "EVENT_TYPE_EXISTS")

	code, body = s.do(t, s.teacher, http.MethodPost, "/api/event-types", map[string]any{
		"title":     "Конференция",
		"leader_id": s.teacher.ID,
		"stages": []map[string]any{
			{"title": "Доклад", "stage_order": 1, "min_score_for_finished": 1, "possible_results": []map[string]any{{"title": "Выступил", "points_for_done": 1}}},
		},
	})
	require.Equal(t, http.StatusCreated, code, string(body))
	var created models.EventType
	require.NoError(t, json.Unmarshal(body, &created))
	require.Len(t, created.Stages, 1)
	require.Len(t, created.Stages[0].PossibleResults, 1)

	code, body = s.do(t, s.teacher, http.MethodPost, "/api/events", map[string]any{
		"title": "Физика", "event_type_id": s.etype.ID, "academic_year": "2024-2026",
	})
	assert.Equal(t, http.StatusBadRequest, code, string(body))

	code, body = s.do(t, s.teacher, http.MethodPost, "/api/events", map[string]any{
		"title": "Физика", "event_type_id": s.etype.ID, "academic_year": "2024-2025",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "EVENT_EXISTS")

	code, body = s.do(t, s.teacher, http.MethodPost, "/api/events", map[string]any{
		"title": "Физика", "event_type_id": s.etype.ID, "academic_year": "2025-2026", "date_start": "2025-10-01",
	})
	require.Equal(t, http.StatusCreated, code, string(body))

	// удаление типа с мероприятиями запрещено, а учителю недоступно вовсе
	code, _ = s.do(t, s.teacher, http.MethodDelete, fmt.Sprintf("/api/event-types/%d", s.etype.ID), nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, body = s.do(t, s.admin, http.MethodDelete, fmt.Sprintf("/api/event-types/%d", s.etype.ID), nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "EVENT_TYPE_HAS_EVENTS")

	code, _ = s.do(t, s.admin, http.MethodDelete, fmt.Sprintf("/api/event-types/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, code)
	var stages int64
	require.NoError(t, s.db.Model(&models.Stage{}).Where("event_type_id = ?", created.ID).Count(&stages).Error)
	assert.Zero(t, stages)

	code, body = s.do(t, s.teacher, http.MethodGet, fmt.Sprintf("/api/events/%d", s.event.ID), nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var details handlers.EventDetails
	require.NoError(t, json.Unmarshal(body, &details))
	assert.Equal(t, s.event.ID, details.Event.ID)
	assert.Equal(t, 1, details.HighSchoolStudents)
	assert.Len(t, details.Stages, 2)
}

func TestProjectOffice(t *testing.T) {
	s := newSchool(t)

	code, body := s.do(t, s.teacher, http.MethodPost, fmt.Sprintf("/api/project-office/change-event-imp/%d", s.event.ID), map[string]any{"value": true})
	require.Equal(t, http.StatusOK, code, string(body))

	code, body = s.do(t, s.teacher, http.MethodGet, "/api/project-office/events", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var events []handlers.OfficeEvent
	require.NoError(t, json.Unmarshal(body, &events))
	require.Len(t, events, 1)
	assert.True(t, events[0].IsImportant)

	code, body = s.do(t, s.teacher, http.MethodPost, "/api/project-office/change-events-project", map[string]any{"event_ids": []uint{s.event.ID, 424242}})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, string(body), "424242")

	// оставшееся мероприятие сохраняет флаг важности
	code, _ = s.do(t, s.teacher, http.MethodPost, "/api/project-office/change-events-project", map[string]any{"event_ids": []uint{s.event.ID}})
	require.Equal(t, http.StatusOK, code)
	var link models.ProjectOfficeEvent
	require.NoError(t, s.db.Where("project_office_id = ? AND event_id = ?", s.office.ID, s.event.ID).First(&link).Error)
	assert.True(t, link.IsImportant)

	code, body = s.do(t, s.teacher, http.MethodGet, "/api/project-office/pivot-data-optimized?groups="+url.QueryEscape("11-Т,9-Б"), nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var pivot handlers.PivotResponse
	require.NoError(t, json.Unmarshal(body, &pivot))
	require.Len(t, pivot.Students, 1)
	cell := pivot.Students[0].Events[fmt.Sprint(s.event.ID)]
	assert.Equal(t, journal.StatusNotStarted, cell.Status)
	require.NotNil(t, pivot.Students[0].ClassTeacher)
	assert.Equal(t, "Иванова Анна", *pivot.Students[0].ClassTeacher)

	code, _ = s.do(t, s.teacher, http.MethodPost, "/api/project-office/change-events-project", map[string]any{"event_ids": []uint{}})
	require.Equal(t, http.StatusOK, code)
	var links int64
	require.NoError(t, s.db.Model(&models.ProjectOfficeEvent{}).Where("project_office_id = ?", s.office.ID).Count(&links).Error)
	assert.Zero(t, links)

	// у администратора нет проектного офиса
	code, _ = s.do(t, s.admin, http.MethodGet, "/api/project-office/groups", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAdminEmailLogs(t *testing.T) {
	s := newSchool(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.db.Create(&models.EmailLog{
			Email: "x@school.ru", Subject: "s", TemplateName: "welcome", Status: models.EmailStatusSent,
		}).Error)
	}

	code, body := s.do(t, s.admin, http.MethodGet, "/api/admin/email-logs?limit=2", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var logs []models.EmailLog
	require.NoError(t, json.Unmarshal(body, &logs))
	assert.Len(t, logs, 2)

	code, _ = s.do(t, s.admin, http.MethodGet, "/api/admin/email-logs?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
