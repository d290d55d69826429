package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"school_achievements/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	role   string
	people []Person
	err    error
}

func (s staticSource) Role() string { return s.role }

func (s staticSource) Fetch(context.Context) ([]Person, error) { return s.people, s.err }

func newTestReconciler(store Store) *Reconciler {
	r := NewReconciler(store, zerolog.Nop())
	r.NowFunc = func() time.Time { return time.Unix(1700000000, 0) }
	r.SuffixFunc = func() string { return "abc123" }
	return r
}

func teachers(people ...Person) staticSource {
	return staticSource{role: models.RoleTeacher, people: people}
}

func TestRunAddsUpdatesAndArchives(t *testing.T) {
	store := newMemoryStore(models.RoleStudent, models.RoleTeacher)
	store.add(models.User{ExternalID: "1", Email: "old@school.ru", DisplayName: "Старое Имя"}, models.RoleTeacher)
	store.add(models.User{ExternalID: "2", Email: "same@school.ru", DisplayName: "Петров", GroupsLeader: []string{"10-А"}}, models.RoleTeacher)
	store.add(models.User{ExternalID: "3", Email: "gone@school.ru", DisplayName: "Уволен"}, models.RoleTeacher)
	store.add(models.User{ExternalID: "4", Email: "back@school.ru", DisplayName: "Вернулся", Archived: true}, models.RoleTeacher)
	store.add(models.User{ExternalID: "s1", Email: "student@school.ru", DisplayName: "Ученик"}, models.RoleStudent)

	stats, err := newTestReconciler(store).Run(context.Background(), teachers(
		Person{ExternalID: "1", DisplayName: "Новое Имя", Email: "new@school.ru", GroupsLeader: []string{}},
		Person{ExternalID: "2", DisplayName: "Петров", Email: "same@school.ru", GroupsLeader: []string{"10-А"}},
		Person{ExternalID: "4", DisplayName: "Вернулся", Email: "back@school.ru", GroupsLeader: []string{}},
		Person{ExternalID: "5", DisplayName: "Новенький", Email: "fresh@school.ru", Image: "https://img/5.jpg", GroupsLeader: []string{"11-Т"}},
	))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 2, stats.Updated)
	assert.Equal(t, 1, stats.Archived)
	assert.Empty(t, stats.Errors)
	assert.Equal(t, 4, stats.TotalExternal)

	assert.Equal(t, "new@school.ru", store.byExternalID("1").Email)
	assert.Equal(t, "Новое Имя", store.byExternalID("1").DisplayName)
	assert.True(t, store.byExternalID("3").Archived)
	assert.False(t, store.byExternalID("4").Archived)
	assert.False(t, store.byExternalID("s1").Archived, "ученики не архивируются синхронизацией учителей")

	fresh := store.byExternalID("5")
	require.NotNil(t, fresh)
	assert.True(t, fresh.RequiresPassword)
	assert.False(t, fresh.IsActive)
	assert.True(t, fresh.HasRole(models.RoleTeacher))
	assert.Equal(t, []string{"11-Т"}, []string(fresh.GroupsLeader))
	assert.Equal(t, "https://img/5.jpg", fresh.Image)
}

func TestRunAttachesMissingRole(t *testing.T) {
	store := newMemoryStore(models.RoleStudent, models.RoleTeacher)
	store.add(models.User{ExternalID: "7", Email: "t@school.ru", DisplayName: "Учитель", GroupsLeader: []string{}}, "")

	stats, err := newTestReconciler(store).Run(context.Background(), teachers(
		Person{ExternalID: "7", DisplayName: "Учитель", Email: "t@school.ru", GroupsLeader: []string{}},
	))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)
	assert.True(t, store.byExternalID("7").HasRole(models.RoleTeacher))
}

func TestRunResolvesEmailCollisions(t *testing.T) {
	store := newMemoryStore(models.RoleStudent, models.RoleTeacher)
	store.add(models.User{ExternalID: "s9", Email: "taken@school.ru", DisplayName: "Ученик"}, models.RoleStudent)

	stats, err := newTestReconciler(store).Run(context.Background(), teachers(
		Person{ExternalID: "1", DisplayName: "Первый", Email: "dup@school.ru"},
		Person{ExternalID: "2", DisplayName: "Второй", Email: "DUP@school.ru"},
		Person{ExternalID: "3", DisplayName: "Третий", Email: "taken@school.ru"},
	))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Added)
	assert.Empty(t, stats.Errors)

	assert.Equal(t, "dup@school.ru", store.byExternalID("1").Email)
	assert.Equal(t, "dup.1700000000-abc123@school.ru", store.byExternalID("2").Email)
	assert.Equal(t, "taken.1700000000-abc123@school.ru", store.byExternalID("3").Email)
	assert.Equal(t, "taken@school.ru", store.byExternalID("s9").Email)
}

func TestRunKeepsPreviousRewrite(t *testing.T) {
	store := newMemoryStore(models.RoleStudent, models.RoleTeacher)
	store.add(models.User{ExternalID: "s9", Email: "taken@school.ru"}, models.RoleStudent)
	store.add(models.User{ExternalID: "3", Email: "taken.1600000000-ffffff@school.ru", DisplayName: "Третий", GroupsLeader: []string{}}, models.RoleTeacher)

	stats, err := newTestReconciler(store).Run(context.Background(), teachers(
		Person{ExternalID: "3", DisplayName: "Третий", Email: "taken@school.ru", GroupsLeader: []string{}},
	))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, "taken.1600000000-ffffff@school.ru", store.byExternalID("3").Email)
}

func TestRunRecordsItemErrorsAndContinues(t *testing.T) {
	store := newMemoryStore(models.RoleStudent, models.RoleTeacher)
	store.failOn["2"] = errors.New("constraint violation")

	stats, err := newTestReconciler(store).Run(context.Background(), teachers(
		Person{ExternalID: "1", DisplayName: "Первый", Email: "a@school.ru"},
		Person{ExternalID: "2", DisplayName: "Второй", Email: "b@school.ru"},
		Person{ExternalID: "3", DisplayName: "Третий", Email: ""},
		Person{ExternalID: "4", DisplayName: "Четвертый", Email: "d@school.ru"},
	))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Added)
	require.Len(t, stats.Errors, 2)
	assert.Contains(t, stats.Errors[0], "Второй: constraint violation")
	assert.Contains(t, stats.Errors[1], "Третий")
	assert.Nil(t, store.byExternalID("2"))
	assert.NotNil(t, store.byExternalID("4"))
}

func TestRunAbortsWhenRoleMissing(t *testing.T) {
	store := newMemoryStore(models.RoleStudent)

	_, err := newTestReconciler(store).Run(context.Background(), teachers(
		Person{ExternalID: "1", DisplayName: "Первый", Email: "a@school.ru"},
	))
	assert.ErrorIs(t, err, ErrRoleNotFound)
	assert.Empty(t, store.users)
	assert.Equal(t, 0, store.commitCount)
}

func TestRunRollsBackOnArchiveFailure(t *testing.T) {
	store := newMemoryStore(models.RoleStudent, models.RoleTeacher)
	store.archiveErr = errors.New("db gone")

	_, err := newTestReconciler(store).Run(context.Background(), teachers(
		Person{ExternalID: "1", DisplayName: "Первый", Email: "a@school.ru"},
	))
	assert.Error(t, err)
	assert.Empty(t, store.users, "добавленные пользователи должны быть откатены")
}

func TestRunRefusesEmptyOrFailedSource(t *testing.T) {
	store := newMemoryStore(models.RoleStudent, models.RoleTeacher)
	store.add(models.User{ExternalID: "1", Email: "a@school.ru"}, models.RoleTeacher)

	_, err := newTestReconciler(store).Run(context.Background(), teachers())
	assert.ErrorIs(t, err, ErrEmptyRoster)

	_, err = newTestReconciler(store).Run(context.Background(), staticSource{role: models.RoleTeacher, err: errors.New("timeout")})
	assert.Error(t, err)

	assert.False(t, store.byExternalID("1").Archived)
}

func TestRunStudents(t *testing.T) {
	store := newMemoryStore(models.RoleStudent, models.RoleTeacher)
	group := "10-А"
	store.add(models.User{ExternalID: "100", Email: "ivan.ivanov@school.ru", DisplayName: "Иванов Иван", GroupName: &group}, models.RoleStudent)

	stats, err := newTestReconciler(store).Run(context.Background(), staticSource{role: models.RoleStudent, people: []Person{
		{ExternalID: "100", DisplayName: "Иванов Иван", Email: "ivan.ivanov@school.ru", GroupName: "11-А"},
		{ExternalID: "101", DisplayName: "Петров Петр", Email: "petr.petrov@school.ru", GroupName: "11-А"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, "11-А", store.byExternalID("100").Group())
	assert.Equal(t, "11-А", store.byExternalID("101").Group())
}

func TestIsRewriteOf(t *testing.T) {
	assert.True(t, isRewriteOf("taken.1600000000-ffffff@school.ru", "taken@school.ru"))
	assert.False(t, isRewriteOf("taken.other@school.ru", "taken@school.ru"))
	assert.False(t, isRewriteOf("taken.1-a@other.ru", "taken@school.ru"))
	assert.False(t, isRewriteOf("taken@school.ru", "taken@school.ru"))
}
