package journal

import (
	"sort"
	"strconv"
	"strings"

	"school_achievements/internal/models"
)

type PivotStage struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	CurrentScore int    `json:"current_score"`
}

type PivotEvent struct {
	EventName            string       `json:"event_name"`
	TotalScore           int          `json:"total_score"`
	CompletedStagesCount int          `json:"completed_stages_count"`
	MinStagesRequired    int          `json:"min_stages_required"`
	Stages               []PivotStage `json:"stages"`
	Status               string       `json:"status"`
}

type PivotStudent struct {
	ID           uint                  `json:"id"`
	StudentName  string                `json:"student_name"`
	GroupName    string                `json:"group_name"`
	ClassTeacher *string               `json:"class_teacher"`
	Events       map[string]PivotEvent `json:"events"`
}

// Pivot строит сводную таблицу: ученики проектного офиса по строкам, мероприятия по столбцам.
func Pivot(students []models.User, events []models.Event, achievements []models.Achievement, classTeachers map[string][]string) []PivotStudent {
	idx := indexAchievements(achievements)

	sorted := append([]models.User(nil), students...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if gi, gj := sorted[i].Group(), sorted[j].Group(); gi != gj {
			return gi < gj
		}
		return sorted[i].DisplayName < sorted[j].DisplayName
	})

	out := make([]PivotStudent, 0, len(sorted))
	for i := range sorted {
		s := &sorted[i]
		row := PivotStudent{
			ID:          s.ID,
			StudentName: studentName(s),
			GroupName:   s.Group(),
			Events:      make(map[string]PivotEvent, len(events)),
		}
		if names := classTeachers[s.Group()]; len(names) > 0 {
			joined := strings.Join(names, ", ")
			row.ClassTeacher = &joined
		}
		for j := range events {
			ev := &events[j]
			row.Events[strconv.FormatUint(uint64(ev.ID), 10)] = pivotEvent(s.ID, ev, idx)
		}
		out = append(out, row)
	}
	return out
}

func pivotEvent(studentID uint, ev *models.Event, idx map[achievementKey]*models.Achievement) PivotEvent {
	stages := SortedStages(ev.EventType)
	pe := PivotEvent{
		EventName:         ev.Title,
		Stages:            make([]PivotStage, 0, len(stages)),
		MinStagesRequired: len(stages),
	}
	if ev.EventType != nil {
		pe.MinStagesRequired = ev.EventType.RequiredStages(len(stages))
	}

	for _, stage := range stages {
		status, score := StageStatus(stage, idx[achievementKey{ev.ID, studentID, stage.ID}])
		pe.Stages = append(pe.Stages, PivotStage{Name: stage.Title, Status: status, CurrentScore: score})
		pe.TotalScore += score
		if status == StatusPassed {
			pe.CompletedStagesCount++
		}
	}

	switch {
	case len(stages) > 0 && pe.CompletedStagesCount >= pe.MinStagesRequired:
		pe.Status = StatusPassed
	case pe.TotalScore > 0:
		pe.Status = StatusInProgress
	default:
		pe.Status = StatusNotStarted
	}
	return pe
}
