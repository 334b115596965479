package repo

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndmitriev/online-store/internal/models"
)

type CategoryRepo struct{}

func (CategoryRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := tx.Where("category_id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, accessErr("category.findByID", err)
	}
	return &category, nil
}

// FindByName matches case-insensitively: category names are unique regardless
// of casing.
func (CategoryRepo) FindByName(tx *gorm.DB, name string) (*models.Category, error) {
	var category models.Category
	if err := tx.Where("LOWER(name) = LOWER(?)", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, accessErr("category.findByName", err)
	}
	return &category, nil
}

func (CategoryRepo) SearchByName(tx *gorm.DB, query string, limit, offset int) ([]models.Category, error) {
	categories := []models.Category{}
	if err := tx.Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&categories).Error; err != nil {
		return nil, accessErr("category.searchByName", err)
	}
	return categories, nil
}

func (CategoryRepo) FindAll(tx *gorm.DB, limit, offset int) ([]models.Category, error) {
	categories := []models.Category{}
	if err := tx.Order("name ASC").Limit(limit).Offset(offset).Find(&categories).Error; err != nil {
		return nil, accessErr("category.findAll", err)
	}
	return categories, nil
}

func (CategoryRepo) Count(tx *gorm.DB) (int64, error) {
	var total int64
	if err := tx.Model(&models.Category{}).Count(&total).Error; err != nil {
		return 0, accessErr("category.count", err)
	}
	return total, nil
}

func (CategoryRepo) CountByName(tx *gorm.DB, query string) (int64, error) {
	var total int64
	if err := tx.Model(&models.Category{}).
		Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").
		Count(&total).Error; err != nil {
		return 0, accessErr("category.countByName", err)
	}
	return total, nil
}

func (CategoryRepo) Save(tx *gorm.DB, category *models.Category) error {
	if err := tx.Create(category).Error; err != nil {
		return accessErr("category.save", err)
	}
	return nil
}

func (CategoryRepo) Update(tx *gorm.DB, category *models.Category) error {
	res := tx.Model(&models.Category{}).
		Where("category_id = ?", category.CategoryID).
		Updates(map[string]any{
			"name":        category.Name,
			"description": category.Description,
			"updated_at":  category.UpdatedAt,
		})
	if res.Error != nil {
		return accessErr("category.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return accessErr("category.update", gorm.ErrRecordNotFound)
	}
	return nil
}

func (CategoryRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Where("category_id = ?", id).Delete(&models.Category{})
	if res.Error != nil {
		return accessErr("category.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return accessErr("category.delete", gorm.ErrRecordNotFound)
	}
	return nil
}
