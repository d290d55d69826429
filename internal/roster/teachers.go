package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"school_achievements/internal/config"
	"school_achievements/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const teacherFeedCacheKey = "roster:teacher_feed"

// TeacherFeed читает список сотрудников из JSON выгрузки школьного портала.
type TeacherFeed struct {
	URL          string
	ImageBaseURL string
	SkipEmails   []string
	Client       *http.Client
	// Cache может быть nil, тогда выгрузка всегда запрашивается заново.
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   zerolog.Logger
}

func NewTeacherFeed(cfg config.RosterConfig, cache *redis.Client, logger zerolog.Logger) *TeacherFeed {
	return &TeacherFeed{
		URL:          cfg.TeacherFeedURL,
		ImageBaseURL: cfg.TeacherImageURL,
		SkipEmails:   cfg.TeacherSkipEmails,
		Client:       &http.Client{Timeout: cfg.TeacherFeedTimeout},
		Cache:        cache,
		CacheTTL:     cfg.TeacherCacheTTL,
		Logger:       logger,
	}
}

func (f *TeacherFeed) Role() string { return models.RoleTeacher }

type teacherFeedResponse struct {
	Value []teacherRecord `json:"value"`
}

type teacherRecord struct {
	ID       any    `json:"Id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Image    string `json:"image"`
	ClassStr string `json:"classStr"`
}

func (f *TeacherFeed) Fetch(ctx context.Context) ([]Person, error) {
	body, err := f.load(ctx)
	if err != nil {
		return nil, err
	}

	var feed teacherFeedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("ошибка разбора выгрузки учителей: %w", err)
	}

	people := make([]Person, 0, len(feed.Value))
	for _, rec := range feed.Value {
		if p, ok := f.toPerson(rec); ok {
			people = append(people, p)
		}
	}
	return people, nil
}

func (f *TeacherFeed) load(ctx context.Context) ([]byte, error) {
	if f.Cache != nil {
		cached, err := f.Cache.Get(ctx, teacherFeedCacheKey).Bytes()
		if err == nil && len(cached) > 0 {
			f.Logger.Debug().Msg("выгрузка учителей взята из кэша")
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса выгрузки учителей: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("выгрузка учителей вернула статус %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения выгрузки учителей: %w", err)
	}

	if f.Cache != nil && f.CacheTTL > 0 {
		if err := f.Cache.Set(ctx, teacherFeedCacheKey, body, f.CacheTTL).Err(); err != nil {
			f.Logger.Warn().Err(err).Msg("не удалось сохранить выгрузку учителей в кэш")
		}
	}
	return body, nil
}

func (f *TeacherFeed) toPerson(rec teacherRecord) (Person, bool) {
	id := externalID(rec.ID)
	if id == "" {
		return Person{}, false
	}
	email := strings.ToLower(strings.TrimSpace(rec.Email))
	for _, skip := range f.SkipEmails {
		if strings.EqualFold(email, skip) {
			return Person{}, false
		}
	}

	name := strings.TrimSpace(rec.Name)
	if name == "" {
		name = "Unknown Teacher"
	}

	var image string
	if rec.Image != "" {
		image = f.ImageBaseURL + rec.Image
	}

	return Person{
		ExternalID:   id,
		DisplayName:  name,
		Email:        email,
		Image:        image,
		GroupsLeader: splitGroups(rec.ClassStr),
	}, true
}

func externalID(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

func splitGroups(raw string) []string {
	groups := []string{}
	for _, part := range strings.Split(raw, ",") {
		if g := strings.TrimSpace(part); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}
