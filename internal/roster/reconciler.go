package roster

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"school_achievements/internal/metrics"
	"school_achievements/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Stats описывает итог одного прогона синхронизации.
type Stats struct {
	Added         int      `json:"added"`
	Updated       int      `json:"updated"`
	Archived      int      `json:"archived"`
	Errors        []string `json:"errors"`
	TotalExternal int      `json:"total_external"`
}

// Reconciler переносит внешний реестр в таблицу пользователей.
// Пользователи никогда не удаляются, отсутствующие во внешнем списке архивируются.
type Reconciler struct {
	Store  Store
	Logger zerolog.Logger

	// NowFunc и SuffixFunc подменяются в тестах.
	NowFunc    func() time.Time
	SuffixFunc func() string
}

func NewReconciler(store Store, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		Store:      store,
		Logger:     logger.With().Str("component", "roster").Logger(),
		NowFunc:    time.Now,
		SuffixFunc: randomSuffix,
	}
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

// Run выполняет синхронизацию для роли источника в одной транзакции.
func (r *Reconciler) Run(ctx context.Context, src Source) (Stats, error) {
	role := src.Role()
	logger := r.Logger.With().Str("role", role).Logger()
	start := time.Now()
	defer func() {
		metrics.RosterSyncDuration.WithLabelValues(role).Observe(time.Since(start).Seconds())
	}()

	people, err := src.Fetch(ctx)
	if err == nil && len(people) == 0 {
		err = ErrEmptyRoster
	}
	if err != nil {
		metrics.RosterSyncRuns.WithLabelValues(role, "failed").Inc()
		logger.Error().Err(err).Msg("не удалось получить внешний список")
		return Stats{Errors: []string{}}, err
	}

	var stats Stats
	err = r.Store.Transaction(ctx, func(tx Tx) error {
		stats = Stats{Errors: []string{}, TotalExternal: len(people)}
		return r.reconcile(tx, role, people, &stats, logger)
	})
	if err != nil {
		metrics.RosterSyncRuns.WithLabelValues(role, "failed").Inc()
		logger.Error().Err(err).Msg("синхронизация отменена, изменения откатены")
		return Stats{Errors: []string{}}, err
	}

	metrics.RosterSyncRuns.WithLabelValues(role, "success").Inc()
	metrics.RosterSyncUsers.WithLabelValues(role, "added").Add(float64(stats.Added))
	metrics.RosterSyncUsers.WithLabelValues(role, "updated").Add(float64(stats.Updated))
	metrics.RosterSyncUsers.WithLabelValues(role, "archived").Add(float64(stats.Archived))
	metrics.RosterSyncUsers.WithLabelValues(role, "error").Add(float64(len(stats.Errors)))

	logger.Info().
		Int("added", stats.Added).
		Int("updated", stats.Updated).
		Int("archived", stats.Archived).
		Int("errors", len(stats.Errors)).
		Int("total_external", stats.TotalExternal).
		Msg("синхронизация завершена")
	return stats, nil
}

func (r *Reconciler) reconcile(tx Tx, roleName string, people []Person, stats *Stats, logger zerolog.Logger) error {
	role, err := tx.FindRole(roleName)
	if err != nil {
		return err
	}

	claimed := make(map[string]string, len(people))
	keep := make([]string, 0, len(people))
	for _, p := range people {
		keep = append(keep, p.ExternalID)

		var added bool
		var changed bool
		err := tx.Savepoint(func(tx Tx) error {
			email, err := r.resolveEmail(tx, p, claimed, logger)
			if err != nil {
				return err
			}
			added, changed, err = upsert(tx, role, p, email)
			if err != nil {
				return err
			}
			claimed[email] = p.ExternalID
			return nil
		})
		switch {
		case err != nil:
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", p.DisplayName, err))
			logger.Warn().Err(err).Str("external_id", p.ExternalID).Msg("ошибка обработки записи")
		case added:
			stats.Added++
		case changed:
			stats.Updated++
		}
	}

	archived, err := tx.ArchiveMissing(role, keep)
	if err != nil {
		return fmt.Errorf("ошибка архивации: %w", err)
	}
	stats.Archived = archived
	return nil
}

// resolveEmail возвращает email для записи. Если адрес уже занят другим внешним
// пользователем в этом прогоне или другим локальным пользователем, к локальной части
// добавляется суффикс из времени и случайной строки.
func (r *Reconciler) resolveEmail(tx Tx, p Person, claimed map[string]string, logger zerolog.Logger) (string, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("некорректный email %q", p.Email)
	}

	free, err := emailFree(tx, email, p.ExternalID, claimed)
	if err != nil || free {
		return email, err
	}

	// ранее переписанный адрес сохраняется, чтобы не менять его на каждом прогоне
	existing, err := tx.FindByExternalID(p.ExternalID)
	if err != nil {
		return "", err
	}
	if existing != nil && isRewriteOf(existing.Email, email) {
		if ok, err := emailFree(tx, existing.Email, p.ExternalID, claimed); err != nil || ok {
			return existing.Email, err
		}
	}

	local, domain, _ := strings.Cut(email, "@")
	for attempt := 0; attempt < 5; attempt++ {
		candidate := fmt.Sprintf("%s.%d-%s@%s", local, r.NowFunc().Unix(), r.SuffixFunc(), domain)
		ok, err := emailFree(tx, candidate, p.ExternalID, claimed)
		if err != nil {
			return "", err
		}
		if ok {
			logger.Warn().
				Str("external_id", p.ExternalID).
				Str("old_email", email).
				Str("new_email", candidate).
				Msg("email занят, адрес переписан")
			return candidate, nil
		}
	}
	return "", fmt.Errorf("не удалось подобрать свободный email для %s", email)
}

func emailFree(tx Tx, email, externalID string, claimed map[string]string) (bool, error) {
	if owner, ok := claimed[email]; ok && owner != externalID {
		return false, nil
	}
	owner, found, err := tx.EmailOwner(email)
	if err != nil {
		return false, err
	}
	return !found || owner == externalID, nil
}

// isRewriteOf проверяет, что candidate получен из base добавлением суффикса.
func isRewriteOf(candidate, base string) bool {
	cLocal, cDomain, ok1 := strings.Cut(strings.ToLower(candidate), "@")
	bLocal, bDomain, ok2 := strings.Cut(base, "@")
	if !ok1 || !ok2 || cDomain != bDomain {
		return false
	}
	return strings.HasPrefix(cLocal, bLocal+".") && strings.Contains(cLocal[len(bLocal)+1:], "-")
}

func upsert(tx Tx, role *models.Role, p Person, email string) (added, changed bool, err error) {
	user, err := tx.FindByExternalID(p.ExternalID)
	if err != nil {
		return false, false, err
	}

	if user == nil {
		user = &models.User{
			ExternalID:       p.ExternalID,
			Email:            email,
			DisplayName:      p.DisplayName,
			RequiresPassword: true,
		}
		applyRoleFields(user, role.Name, p)
		if err := tx.CreateUser(user, role); err != nil {
			return false, false, err
		}
		return true, false, nil
	}

	if user.Email != email {
		user.Email = email
		changed = true
	}
	if user.DisplayName != p.DisplayName {
		user.DisplayName = p.DisplayName
		changed = true
	}
	if applyRoleFields(user, role.Name, p) {
		changed = true
	}
	if user.Archived {
		user.Archived = false
		changed = true
	}

	var addRole *models.Role
	if !user.HasRole(role.Name) {
		addRole = role
		changed = true
	}
	if !changed {
		return false, false, nil
	}
	if err := tx.SaveUser(user, addRole); err != nil {
		return false, false, err
	}
	return false, true, nil
}

// applyRoleFields обновляет поля, которые ведет источник данной роли.
func applyRoleFields(user *models.User, role string, p Person) bool {
	changed := false
	switch role {
	case models.RoleTeacher:
		if user.Image != p.Image {
			user.Image = p.Image
			changed = true
		}
		if !slices.Equal([]string(user.GroupsLeader), p.GroupsLeader) {
			user.GroupsLeader = p.GroupsLeader
			changed = true
		}
	case models.RoleStudent:
		var group *string
		if p.GroupName != "" {
			g := p.GroupName
			group = &g
		}
		if user.Group() != p.GroupName {
			user.GroupName = group
			changed = true
		}
	}
	return changed
}
