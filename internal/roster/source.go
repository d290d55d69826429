// Package roster сверяет локальную таблицу пользователей с внешними списками учителей и учеников.
package roster

import (
	"context"
	"errors"
)

// ErrEmptyRoster возвращается, если внешний источник отдал пустой список.
// В этом случае синхронизация не выполняется, чтобы не архивировать всех пользователей.
var ErrEmptyRoster = errors.New("внешний источник вернул пустой список")

// Person это запись внешнего реестра.
type Person struct {
	ExternalID  string
	DisplayName string
	Email       string

	// Поля учителя
	Image        string
	GroupsLeader []string

	// Поле ученика
	GroupName string
}

// Source это внешний реестр людей одной роли.
type Source interface {
	Role() string
	Fetch(ctx context.Context) ([]Person, error)
}
