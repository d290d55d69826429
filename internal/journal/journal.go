// Package journal считает журналы, зачетки и сводные таблицы по загруженным сущностям.
// Функции пакета не обращаются к базе данных.
package journal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"school_achievements/internal/models"
)

const (
	StatusPassed     = "зачет"
	StatusFailed     = "незачет"
	StatusInProgress = "в процессе"
	StatusNotStarted = "не начато"
)

type ResultOption struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Points int    `json:"points"`
}

type StageResult struct {
	Name             string         `json:"name"`
	Status           string         `json:"status"`
	Date             *time.Time     `json:"date"`
	ResultTitle      *string        `json:"result_title"`
	Score            int            `json:"score"`
	MinRequiredScore int            `json:"min_required_score"`
	CurrentScore     int            `json:"current_score"`
	StageID          uint           `json:"stage_id"`
	PossibleResults  []ResultOption `json:"possible_results"`
}

type StudentJournal struct {
	ID                   uint          `json:"id"`
	StudentID            uint          `json:"student_id"`
	StudentName          string        `json:"student_name"`
	EventName            string        `json:"event_name"`
	Type                 string        `json:"type"`
	Date                 time.Time     `json:"date"`
	Stages               []StageResult `json:"stages"`
	TotalScore           int           `json:"total_score"`
	MinStagesRequired    int           `json:"min_stages_required"`
	CompletedStagesCount int           `json:"completed_stages_count"`
}

// OfficeStudentJournal это строка журнала проектного офиса с классом и классным руководителем.
type OfficeStudentJournal struct {
	StudentJournal
	GroupName    string  `json:"group_name"`
	ClassTeacher *string `json:"class_teacher"`
}

type achievementKey struct {
	eventID   uint
	studentID uint
	stageID   uint
}

func indexAchievements(achievements []models.Achievement) map[achievementKey]*models.Achievement {
	idx := make(map[achievementKey]*models.Achievement, len(achievements))
	for i := range achievements {
		a := &achievements[i]
		idx[achievementKey{a.EventID, a.StudentID, a.StageID}] = a
	}
	return idx
}

// SortedStages возвращает этапы типа мероприятия по порядку.
func SortedStages(et *models.EventType) []models.Stage {
	if et == nil {
		return nil
	}
	stages := append([]models.Stage(nil), et.Stages...)
	sort.SliceStable(stages, func(i, j int) bool { return stages[i].StageOrder < stages[j].StageOrder })
	return stages
}

// StageStatus возвращает статус и баллы этапа. Этап зачтен, если есть результат и его баллы не ниже минимума этапа.
func StageStatus(stage models.Stage, a *models.Achievement) (status string, score int) {
	if a == nil || a.Result == nil {
		return StatusFailed, 0
	}
	score = a.Result.PointsForDone
	if score >= stage.MinScoreForFinished {
		return StatusPassed, score
	}
	return StatusFailed, score
}

func studentName(u *models.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return fmt.Sprintf("Ученик %d", u.ID)
}

func resultOptions(stage models.Stage) []ResultOption {
	opts := make([]ResultOption, 0, len(stage.PossibleResults))
	for _, pr := range stage.PossibleResults {
		opts = append(opts, ResultOption{ID: pr.ID, Title: pr.Title, Points: pr.PointsForDone})
	}
	sort.Slice(opts, func(i, j int) bool { return opts[i].Points < opts[j].Points })
	return opts
}

func studentRow(event *models.Event, stages []models.Stage, student *models.User, idx map[achievementKey]*models.Achievement, now time.Time) StudentJournal {
	date := now
	if event.DateStart != nil {
		date = *event.DateStart
	}
	row := StudentJournal{
		ID:                student.ID,
		StudentID:         student.ID,
		StudentName:       studentName(student),
		EventName:         event.Title,
		Date:              date,
		Stages:            make([]StageResult, 0, len(stages)),
		MinStagesRequired: len(stages),
	}
	if event.EventType != nil {
		row.Type = event.EventType.Title
		row.MinStagesRequired = event.EventType.RequiredStages(len(stages))
	}

	for _, stage := range stages {
		a := idx[achievementKey{event.ID, student.ID, stage.ID}]
		status, score := StageStatus(stage, a)
		sr := StageResult{
			Name:             stage.Title,
			Status:           status,
			Score:            stage.MinScoreForFinished,
			MinRequiredScore: stage.MinScoreForFinished,
			CurrentScore:     score,
			StageID:          stage.ID,
			PossibleResults:  resultOptions(stage),
		}
		if a != nil {
			achieved := a.AchievedAt
			sr.Date = &achieved
			if a.Result != nil {
				title := a.Result.Title
				sr.ResultTitle = &title
			}
		}
		if status == StatusPassed {
			row.CompletedStagesCount++
		}
		row.TotalScore += score
		row.Stages = append(row.Stages, sr)
	}
	return row
}

// ClassJournal строит журнал класса по мероприятию. EventType с этапами и результатами
// должен быть предзагружен, у достижений должен быть загружен Result.
func ClassJournal(event *models.Event, students []models.User, achievements []models.Achievement, now time.Time) []StudentJournal {
	stages := SortedStages(event.EventType)
	idx := indexAchievements(achievements)

	sorted := append([]models.User(nil), students...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DisplayName < sorted[j].DisplayName })

	rows := make([]StudentJournal, 0, len(sorted))
	for i := range sorted {
		rows = append(rows, studentRow(event, stages, &sorted[i], idx, now))
	}
	return rows
}

// OfficeJournal строит журнал мероприятия по всем ученикам проектного офиса.
// classTeachers сопоставляет класс с именами его классных руководителей.
func OfficeJournal(event *models.Event, students []models.User, achievements []models.Achievement, classTeachers map[string][]string, now time.Time) []OfficeStudentJournal {
	stages := SortedStages(event.EventType)
	idx := indexAchievements(achievements)

	sorted := append([]models.User(nil), students...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if gi, gj := sorted[i].Group(), sorted[j].Group(); gi != gj {
			return gi < gj
		}
		return sorted[i].DisplayName < sorted[j].DisplayName
	})

	rows := make([]OfficeStudentJournal, 0, len(sorted))
	for i := range sorted {
		s := &sorted[i]
		row := OfficeStudentJournal{
			StudentJournal: studentRow(event, stages, s, idx, now),
			GroupName:      s.Group(),
		}
		if names := classTeachers[s.Group()]; len(names) > 0 {
			joined := strings.Join(names, ", ")
			row.ClassTeacher = &joined
		}
		rows = append(rows, row)
	}
	return rows
}

// ClassTeachers сопоставляет каждому классу имена учителей, которые им руководят.
func ClassTeachers(teachers []models.User) map[string][]string {
	out := make(map[string][]string)
	for _, t := range teachers {
		for _, g := range t.GroupsLeader {
			out[g] = append(out[g], t.DisplayName)
		}
	}
	for g := range out {
		sort.Strings(out[g])
	}
	return out
}
