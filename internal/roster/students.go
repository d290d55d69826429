package roster

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"school_achievements/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

const studentsQuery = `SELECT personid, email, firstName, lastName, patronymic, className
FROM students WHERE archive = 0`

// StudentTable читает учеников из старой базы школы (только чтение).
// Соединение открывается при первом чтении через Connect и переоткрывается
// при следующем запуске, если база была недоступна.
type StudentTable struct {
	Connect func(ctx context.Context) (*sqlx.DB, error)
	Domain  string
	Logger  zerolog.Logger

	mu   sync.Mutex
	conn *sqlx.DB
}

func (s *StudentTable) Role() string { return models.RoleStudent }

type studentRow struct {
	PersonID   sql.NullString `db:"personid"`
	Email      sql.NullString `db:"email"`
	FirstName  sql.NullString `db:"firstName"`
	LastName   sql.NullString `db:"lastName"`
	Patronymic sql.NullString `db:"patronymic"`
	ClassName  sql.NullString `db:"className"`
}

// DB возвращает открытое соединение или пытается открыть его заново.
func (s *StudentTable) DB(ctx context.Context) (*sqlx.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return s.conn, nil
	}
	if s.Connect == nil {
		return nil, ErrSourceUnavailable
	}
	conn, err := s.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	s.conn = conn
	return conn, nil
}

func (s *StudentTable) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *StudentTable) Fetch(ctx context.Context) ([]Person, error) {
	db, err := s.DB(ctx)
	if err != nil {
		return nil, err
	}
	var rows []studentRow
	if err := db.SelectContext(ctx, &rows, studentsQuery); err != nil {
		return nil, fmt.Errorf("ошибка чтения учеников: %w", err)
	}
	return s.people(rows), nil
}

// people пропускает строки без personid: у таких учеников нет ключа для сопоставления.
func (s *StudentTable) people(rows []studentRow) []Person {
	people := make([]Person, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.PersonID.String) == "" {
			s.Logger.Debug().
				Str("name", strings.TrimSpace(row.LastName.String+" "+row.FirstName.String)).
				Msg("ученик без personid пропущен")
			continue
		}
		people = append(people, row.toPerson(s.Domain))
	}
	return people
}

func (r studentRow) toPerson(domain string) Person {
	id := strings.TrimSpace(r.PersonID.String)
	first := strings.TrimSpace(r.FirstName.String)
	last := strings.TrimSpace(r.LastName.String)
	patronymic := strings.TrimSpace(r.Patronymic.String)

	var parts []string
	for _, p := range []string{last, first, patronymic} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	name := strings.Join(parts, " ")
	if name == "" {
		name = "Ученик " + id
	}

	return Person{
		ExternalID:  id,
		DisplayName: name,
		Email:       studentEmail(r.Email.String, first, last, id, domain),
		GroupName:   strings.TrimSpace(r.ClassName.String),
	}
}

// studentEmail берет email из базы, а если его нет, собирает имя.фамилия@домен.
func studentEmail(email, first, last, id, domain string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && email != "none" {
		return email
	}

	first, last = alnumLower(first), alnumLower(last)
	switch {
	case first != "" && last != "":
		return first + "." + last + "@" + domain
	case first != "":
		return first + "@" + domain
	case last != "":
		return last + "@" + domain
	}

	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return "student." + short + "@" + domain
}

func alnumLower(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
