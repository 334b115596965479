package repo

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndmitriev/online-store/internal/models"
)

type CustomerRepo struct{}

func (CustomerRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := tx.Where("customer_id = ?", id).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, accessErr("customer.findByID", err)
	}
	return &customer, nil
}

func (CustomerRepo) FindByUserID(tx *gorm.DB, userID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := tx.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, accessErr("customer.findByUserID", err)
	}
	return &customer, nil
}

func (CustomerRepo) Save(tx *gorm.DB, customer *models.Customer) error {
	if err := tx.Create(customer).Error; err != nil {
		return accessErr("customer.save", err)
	}
	return nil
}

func (CustomerRepo) Update(tx *gorm.DB, customer *models.Customer) error {
	res := tx.Model(&models.Customer{}).
		Where("customer_id = ?", customer.CustomerID).
		Updates(map[string]any{
			"first_name": customer.FirstName,
			"last_name":  customer.LastName,
			"phone":      customer.Phone,
			"is_active":  customer.IsActive,
		})
	if res.Error != nil {
		return accessErr("customer.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return accessErr("customer.update", gorm.ErrRecordNotFound)
	}
	return nil
}
