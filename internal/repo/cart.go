package repo

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndmitriev/online-store/internal/models"
)

type CartRepo struct{}

func (CartRepo) FindByCustomerID(tx *gorm.DB, customerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, accessErr("cart.findByCustomerID", err)
	}
	return &cart, nil
}

func (CartRepo) Save(tx *gorm.DB, cart *models.Cart) error {
	if err := tx.Create(cart).Error; err != nil {
		return accessErr("cart.save", err)
	}
	return nil
}

func (CartRepo) AddItem(tx *gorm.DB, item *models.CartItem) error {
	if err := tx.Create(item).Error; err != nil {
		return accessErr("cart.addItem", err)
	}
	return nil
}

func (CartRepo) FindItemByID(tx *gorm.DB, cartItemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := tx.Where("cart_item_id = ?", cartItemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, accessErr("cart.findItemByID", err)
	}
	return &item, nil
}

func (CartRepo) FindItemsByCartID(tx *gorm.DB, cartID uuid.UUID) ([]models.CartItem, error) {
	items := []models.CartItem{}
	if err := tx.Where("cart_id = ?", cartID).Order("added_at ASC").Find(&items).Error; err != nil {
		return nil, accessErr("cart.findItemsByCartID", err)
	}
	return items, nil
}

func (CartRepo) UpdateItemQuantity(tx *gorm.DB, cartItemID uuid.UUID, newQuantity int) error {
	res := tx.Model(&models.CartItem{}).
		Where("cart_item_id = ?", cartItemID).
		Update("quantity", newQuantity)
	if res.Error != nil {
		return accessErr("cart.updateItemQuantity", res.Error)
	}
	if res.RowsAffected == 0 {
		return accessErr("cart.updateItemQuantity", gorm.ErrRecordNotFound)
	}
	return nil
}

func (CartRepo) DeleteItemByID(tx *gorm.DB, cartItemID uuid.UUID) error {
	res := tx.Where("cart_item_id = ?", cartItemID).Delete(&models.CartItem{})
	if res.Error != nil {
		return accessErr("cart.deleteItemByID", res.Error)
	}
	if res.RowsAffected == 0 {
		return accessErr("cart.deleteItemByID", gorm.ErrRecordNotFound)
	}
	return nil
}
