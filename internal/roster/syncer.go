package roster

import (
	"context"
	"errors"

	"school_achievements/internal/models"
)

// ErrSourceUnavailable означает, что источник для роли не настроен или к нему нельзя подключиться.
var ErrSourceUnavailable = errors.New("источник реестра недоступен")

// Syncer запускает синхронизацию учителей и учеников через общий Reconciler.
type Syncer struct {
	Reconciler *Reconciler
	Teachers   Source
	Students   Source
}

func (s *Syncer) SyncTeachers(ctx context.Context) (Stats, error) {
	return s.run(ctx, s.Teachers)
}

func (s *Syncer) SyncStudents(ctx context.Context) (Stats, error) {
	return s.run(ctx, s.Students)
}

// Sync выбирает источник по имени роли.
func (s *Syncer) Sync(ctx context.Context, role string) (Stats, error) {
	switch role {
	case models.RoleTeacher:
		return s.SyncTeachers(ctx)
	case models.RoleStudent:
		return s.SyncStudents(ctx)
	default:
		return Stats{Errors: []string{}}, ErrSourceUnavailable
	}
}

func (s *Syncer) run(ctx context.Context, src Source) (Stats, error) {
	if src == nil {
		return Stats{Errors: []string{}}, ErrSourceUnavailable
	}
	return s.Reconciler.Run(ctx, src)
}
