package journal

import (
	"sort"
	"time"

	"school_achievements/internal/models"
)

type StageMark struct {
	Name             string  `json:"name"`
	Status           string  `json:"status"`
	Date             *string `json:"date"`
	ResultTitle      *string `json:"result_title"`
	Score            int     `json:"score"`
	MinRequiredScore int     `json:"min_required_score"`
	CurrentScore     int     `json:"current_score"`
}

type EventMark struct {
	ID                   uint        `json:"id"`
	EventName            string      `json:"eventName"`
	Type                 string      `json:"type"`
	Date                 string      `json:"date"`
	Stages               []StageMark `json:"stages"`
	TotalScore           int         `json:"total_score"`
	MinStagesRequired    int         `json:"min_stages_required"`
	CompletedStagesCount int         `json:"completed_stages_count"`
}

type RecordBook struct {
	Marks []EventMark `json:"marks"`
}

// BuildRecordBook собирает зачетку ученика по доступным ему мероприятиям в порядке их id.
// У мероприятий должен быть предзагружен EventType с этапами.
func BuildRecordBook(studentID uint, events []models.Event, achievements []models.Achievement) RecordBook {
	idx := indexAchievements(achievements)

	sorted := append([]models.Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	book := RecordBook{Marks: make([]EventMark, 0, len(sorted))}
	for i := range sorted {
		ev := &sorted[i]
		stages := SortedStages(ev.EventType)

		mark := EventMark{
			ID:                ev.ID,
			EventName:         ev.Title,
			Stages:            make([]StageMark, 0, len(stages)),
			MinStagesRequired: len(stages),
		}
		if ev.EventType != nil {
			mark.MinStagesRequired = ev.EventType.RequiredStages(len(stages))
		}
		if d := ev.Date(); d != nil {
			mark.Date = d.Format(time.DateOnly)
		}

		for _, stage := range stages {
			a := idx[achievementKey{ev.ID, studentID, stage.ID}]
			status, score := StageStatus(stage, a)
			sm := StageMark{
				Name:             stage.Title,
				Status:           status,
				Score:            score,
				MinRequiredScore: stage.MinScoreForFinished,
				CurrentScore:     score,
			}
			if a != nil {
				d := a.AchievedAt.Format(time.DateOnly)
				sm.Date = &d
				if a.Result != nil {
					title := a.Result.Title
					sm.ResultTitle = &title
				}
			}
			if status == StatusPassed {
				mark.CompletedStagesCount++
			}
			mark.TotalScore += score
			mark.Stages = append(mark.Stages, sm)
		}

		mark.Type = StatusFailed
		if len(stages) > 0 && mark.CompletedStagesCount >= mark.MinStagesRequired {
			mark.Type = StatusPassed
		}
		book.Marks = append(book.Marks, mark)
	}
	return book
}
