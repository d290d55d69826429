package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"school_achievements/internal/models"

	"gorm.io/gorm"
)

var ErrRoleNotFound = errors.New("роль не найдена")

// Store открывает транзакцию синхронизации.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Tx) error) error
}

// Tx объединяет операции над пользователями внутри транзакции синхронизации.
type Tx interface {
	FindRole(name string) (*models.Role, error)
	// FindByExternalID возвращает nil без ошибки, если пользователя нет.
	FindByExternalID(externalID string) (*models.User, error)
	// EmailOwner возвращает external_id пользователя, которому принадлежит email.
	EmailOwner(email string) (string, bool, error)
	CreateUser(user *models.User, role *models.Role) error
	// SaveUser сохраняет изменения пользователя и, если addRole не nil, добавляет роль.
	SaveUser(user *models.User, addRole *models.Role) error
	// ArchiveMissing архивирует пользователей роли, чьих external_id нет в keep.
	ArchiveMissing(role *models.Role, keep []string) (int, error)
	// Savepoint выполняет fn так, что ее ошибка откатывает только ее изменения.
	Savepoint(fn func(tx Tx) error) error
}

// GormStore реализует Store поверх Postgres.
type GormStore struct {
	DB *gorm.DB
}

func (s GormStore) Transaction(ctx context.Context, fn func(tx Tx) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormTx{db: tx})
	})
}

type gormTx struct {
	db *gorm.DB
}

func (t gormTx) FindRole(name string) (*models.Role, error) {
	var role models.Role
	err := t.db.Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (t gormTx) FindByExternalID(externalID string) (*models.User, error) {
	var user models.User
	err := t.db.Preload("Roles").Where("external_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (t gormTx) EmailOwner(email string) (string, bool, error) {
	var owners []string
	err := t.db.Model(&models.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Limit(1).
		Pluck("external_id", &owners).Error
	if err != nil {
		return "", false, err
	}
	if len(owners) == 0 {
		return "", false, nil
	}
	return owners[0], true, nil
}

func (t gormTx) CreateUser(user *models.User, role *models.Role) error {
	if err := t.db.Omit("Roles").Create(user).Error; err != nil {
		return err
	}
	return t.db.Model(user).Association("Roles").Append(role)
}

func (t gormTx) SaveUser(user *models.User, addRole *models.Role) error {
	if err := t.db.Omit("Roles").Save(user).Error; err != nil {
		return err
	}
	if addRole == nil {
		return nil
	}
	return t.db.Model(user).Association("Roles").Append(addRole)
}

func (t gormTx) ArchiveMissing(role *models.Role, keep []string) (int, error) {
	holders := t.db.Table("user_roles").Select("user_id").Where("role_id = ?", role.ID)
	res := t.db.Model(&models.User{}).
		Where("archived = ?", false).
		Where("id IN (?)", holders).
		Where("external_id NOT IN ?", keep).
		Updates(map[string]any{"archived": true, "updated_at": time.Now()})
	return int(res.RowsAffected), res.Error
}

func (t gormTx) Savepoint(fn func(tx Tx) error) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		return fn(gormTx{db: tx})
	})
}
