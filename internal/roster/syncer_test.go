package roster

import (
	"context"
	"testing"

	"school_achievements/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncerDispatchesByRole(t *testing.T) {
	store := newMemoryStore(models.RoleStudent, models.RoleTeacher)
	s := &Syncer{
		Reconciler: newTestReconciler(store),
		Teachers:   teachers(Person{ExternalID: "t1", DisplayName: "Учитель", Email: "t1@school.ru"}),
		Students: staticSource{role: models.RoleStudent, people: []Person{
			{ExternalID: "s1", DisplayName: "Ученик", Email: "s1@school.ru", GroupName: "10-А"},
		}},
	}

	stats, err := s.Sync(context.Background(), models.RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)

	stats, err = s.SyncStudents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, "10-А", store.byExternalID("s1").Group())
}

func TestSyncerWithoutSource(t *testing.T) {
	s := &Syncer{Reconciler: newTestReconciler(newMemoryStore(models.RoleStudent))}

	_, err := s.SyncStudents(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	_, err = s.Sync(context.Background(), models.RoleParent)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
