package repo

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndmitriev/online-store/internal/models"
)

type ProductRepo struct{}

func (ProductRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := tx.Where("product_id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, accessErr("product.findByID", err)
	}
	return &product, nil
}

func (ProductRepo) FindAll(tx *gorm.DB, limit, offset int) ([]models.Product, error) {
	products := []models.Product{}
	if err := tx.Order("name ASC").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, accessErr("product.findAll", err)
	}
	return products, nil
}

func (ProductRepo) CountAll(tx *gorm.DB) (int64, error) {
	var total int64
	if err := tx.Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, accessErr("product.countAll", err)
	}
	return total, nil
}

func applyFilter(tx *gorm.DB, filter models.ProductFilter) *gorm.DB {
	q := tx.Model(&models.Product{})
	if filter.Name != nil {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+*filter.Name+"%")
	}
	if filter.Description != nil {
		q = q.Where("LOWER(description) LIKE LOWER(?)", "%"+*filter.Description+"%")
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinStock != nil {
		q = q.Where("stock >= ?", *filter.MinStock)
	}
	if filter.MaxStock != nil {
		q = q.Where("stock <= ?", *filter.MaxStock)
	}
	return q
}

func (ProductRepo) FindFiltered(tx *gorm.DB, filter models.ProductFilter, limit, offset int) ([]models.Product, error) {
	products := []models.Product{}
	if err := applyFilter(tx, filter).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error; err != nil {
		return nil, accessErr("product.findFiltered", err)
	}
	return products, nil
}

func (ProductRepo) CountFiltered(tx *gorm.DB, filter models.ProductFilter) (int64, error) {
	var total int64
	if err := applyFilter(tx, filter).Count(&total).Error; err != nil {
		return 0, accessErr("product.countFiltered", err)
	}
	return total, nil
}

func (ProductRepo) Save(tx *gorm.DB, product *models.Product) error {
	if err := tx.Create(product).Error; err != nil {
		return accessErr("product.save", err)
	}
	return nil
}

func (ProductRepo) Update(tx *gorm.DB, product *models.Product) error {
	res := tx.Model(&models.Product{}).
		Where("product_id = ?", product.ProductID).
		Updates(map[string]any{
			"category_id": product.CategoryID,
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"stock":       product.StockQuantity,
			"updated_at":  product.UpdatedAt,
		})
	if res.Error != nil {
		return accessErr("product.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return accessErr("product.update", gorm.ErrRecordNotFound)
	}
	return nil
}

func (ProductRepo) DeleteByID(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Where("product_id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return accessErr("product.deleteByID", res.Error)
	}
	if res.RowsAffected == 0 {
		return accessErr("product.deleteByID", gorm.ErrRecordNotFound)
	}
	return nil
}
