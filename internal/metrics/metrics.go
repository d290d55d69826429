package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "school"

// Registry это отдельный реестр метрик сервиса.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Синхронизация реестров пользователей
var (
	RosterSyncRuns = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roster_sync_runs_total",
			Help:      "Number of roster synchronization runs by role and outcome",
		},
		[]string{"role", "status"},
	)

	RosterSyncUsers = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roster_sync_users_total",
			Help:      "Users touched by roster synchronization by role and action",
		},
		[]string{"role", "action"},
	)

	RosterSyncDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "roster_sync_duration_seconds",
			Help:      "Roster synchronization duration in seconds",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"role"},
	)
)

// EmailsSent считает письма по шаблону и статусу отправки.
var EmailsSent = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_sent_total",
		Help:      "Emails dispatched by template and status",
	},
	[]string{"template", "status"},
)

// JournalUpdates считает изменения результатов в журнале.
var JournalUpdates = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_updates_total",
		Help:      "Achievement writes from the journal by operation",
	},
	[]string{"operation"},
)
