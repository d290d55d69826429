package tasks

import (
	"context"
	"errors"
	"testing"

	"school_achievements/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSchedulerDisabled(t *testing.T) {
	c, err := InitScheduler(config.RosterConfig{Schedule: "0 0 3 * * *"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestInitSchedulerRegistersJob(t *testing.T) {
	c, err := InitScheduler(config.RosterConfig{ScheduleEnabled: true, Schedule: "0 0 3 * * *"}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Len(t, c.Entries(), 1)
}

func TestInitSchedulerRejectsBadSpec(t *testing.T) {
	_, err := InitScheduler(config.RosterConfig{ScheduleEnabled: true, Schedule: "каждую ночь"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestRunJobsContinuesAfterFailure(t *testing.T) {
	var order []string
	jobs := []Job{
		{Name: "teachers", Run: func(ctx context.Context) error {
			order = append(order, "teachers")
			return errors.New("feed unavailable")
		}},
		{Name: "students", Run: func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			order = append(order, "students")
			return nil
		}},
	}

	failed := RunJobs(context.Background(), zerolog.Nop(), jobs)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"teachers", "students"}, order)
}
