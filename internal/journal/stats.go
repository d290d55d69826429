package journal

import (
	"math"
	"sort"
	"strings"
	"time"

	"school_achievements/internal/models"
)

type AchievementView struct {
	ID                uint           `json:"id"`
	StudentID         uint           `json:"student_id"`
	StudentName       string         `json:"student_name"`
	TeacherID         uint           `json:"teacher_id"`
	StageID           uint           `json:"stage_id"`
	ResultID          uint           `json:"result_id"`
	ResultTitle       string         `json:"result_title"`
	AchievedAt        time.Time      `json:"achieved_at"`
	ProofDocumentPath string         `json:"proof_document_path,omitempty"`
	StudentData       map[string]any `json:"student_data,omitempty"`
}

type StageStats struct {
	ID                  uint              `json:"id"`
	Title               string            `json:"title"`
	StageOrder          int               `json:"stage_order"`
	MinScoreForFinished int               `json:"min_score_for_finished"`
	Achievements        []AchievementView `json:"achievements"`
}

type EventStats struct {
	Stages                  []StageStats `json:"stages"`
	TotalAchievements       int          `json:"total_achievements"`
	UniqueStudents          int          `json:"unique_students"`
	HighSchoolStudents      int          `json:"high_school_students"`
	HighSchoolParticipants  int          `json:"high_school_participants"`
	ParticipationPercentage float64      `json:"participation_percentage"`
}

// IsHighSchool сообщает, относится ли класс к 10-11 параллели.
func IsHighSchool(group string) bool {
	return strings.HasPrefix(group, "10") || strings.HasPrefix(group, "11")
}

// EventStatistics группирует достижения мероприятия по этапам и считает долю
// старшеклассников, у которых есть хотя бы один результат. highSchoolTotal это
// число неархивных учеников 10-11 классов.
func EventStatistics(event *models.Event, achievements []models.Achievement, highSchoolTotal int) EventStats {
	stages := SortedStages(event.EventType)
	byStage := make(map[uint][]AchievementView, len(stages))
	students := make(map[uint]struct{})
	highSchool := make(map[uint]struct{})

	for _, a := range achievements {
		view := AchievementView{
			ID:                a.ID,
			StudentID:         a.StudentID,
			TeacherID:         a.TeacherID,
			StageID:           a.StageID,
			ResultID:          a.ResultID,
			AchievedAt:        a.AchievedAt,
			ProofDocumentPath: a.ProofDocumentPath,
			StudentData:       a.StudentData,
		}
		if a.Result != nil {
			view.ResultTitle = a.Result.Title
		}
		if a.Student != nil {
			view.StudentName = studentName(a.Student)
			if IsHighSchool(a.Student.Group()) {
				highSchool[a.StudentID] = struct{}{}
			}
		}
		byStage[a.StageID] = append(byStage[a.StageID], view)
		students[a.StudentID] = struct{}{}
	}

	out := EventStats{
		Stages:                 make([]StageStats, 0, len(stages)),
		TotalAchievements:      len(achievements),
		UniqueStudents:         len(students),
		HighSchoolStudents:     highSchoolTotal,
		HighSchoolParticipants: len(highSchool),
	}
	for _, stage := range stages {
		views := byStage[stage.ID]
		if views == nil {
			views = []AchievementView{}
		}
		sort.SliceStable(views, func(i, j int) bool { return views[i].AchievedAt.Before(views[j].AchievedAt) })
		out.Stages = append(out.Stages, StageStats{
			ID:                  stage.ID,
			Title:               stage.Title,
			StageOrder:          stage.StageOrder,
			MinScoreForFinished: stage.MinScoreForFinished,
			Achievements:        views,
		})
	}
	if highSchoolTotal > 0 {
		pct := float64(len(highSchool)) / float64(highSchoolTotal) * 100
		out.ParticipationPercentage = math.Round(pct*100) / 100
	}
	return out
}
