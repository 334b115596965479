package repo

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndmitriev/online-store/internal/models"
)

type UserRepo struct{}

func (UserRepo) FindByEmail(tx *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, accessErr("user.findByEmail", err)
	}
	return &user, nil
}

func (UserRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := tx.Where("user_id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, accessErr("user.findByID", err)
	}
	return &user, nil
}

func (UserRepo) Save(tx *gorm.DB, user *models.User) error {
	if err := tx.Create(user).Error; err != nil {
		return accessErr("user.save", err)
	}
	return nil
}

func (UserRepo) FindRoleByID(tx *gorm.DB, id uuid.UUID) (*models.Role, error) {
	var role models.Role
	if err := tx.Where("role_id = ?", id).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, accessErr("user.findRoleByID", err)
	}
	return &role, nil
}

func (UserRepo) FindRoleByName(tx *gorm.DB, name string) (*models.Role, error) {
	var role models.Role
	if err := tx.Where("role_name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, accessErr("user.findRoleByName", err)
	}
	return &role, nil
}

func (UserRepo) SaveRole(tx *gorm.DB, role *models.Role) error {
	if err := tx.Create(role).Error; err != nil {
		return accessErr("user.saveRole", err)
	}
	return nil
}
