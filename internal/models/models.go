package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role struct {
	RoleID      uuid.UUID `gorm:"column:role_id;primaryKey"        json:"role_id"`
	RoleName    string    `gorm:"column:role_name;unique;not null" json:"role_name"`
	Description string    `gorm:"column:description"               json:"description"`
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.RoleID == uuid.Nil {
		r.RoleID = uuid.New()
	}
	return nil
}

func (Role) TableName() string {
	return "roles"
}

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

type User struct {
	UserID       uuid.UUID `gorm:"column:user_id;primaryKey"      json:"user_id"`
	Email        string    `gorm:"column:email;unique;not null"   json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null"  json:"-"`
	RoleID       uuid.UUID `gorm:"column:role_id;not null"        json:"role_id"`
	Role         *Role     `gorm:"belongsTo;foreignKey:RoleID;references:RoleID" json:"role,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at"              json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

type Customer struct {
	CustomerID uuid.UUID `gorm:"column:customer_id;primaryKey" json:"customer_id"`
	UserID     uuid.UUID `gorm:"column:user_id;not null"       json:"user_id"`
	User       *User     `gorm:"belongsTo;foreignKey:UserID;references:UserID" json:"-"`
	FirstName  string    `gorm:"column:first_name"             json:"first_name"`
	LastName   string    `gorm:"column:last_name"              json:"last_name"`
	Phone      string    `gorm:"column:phone"                  json:"phone"`
	IsActive   bool      `gorm:"column:is_active;default:true" json:"is_active"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.CustomerID == uuid.Nil {
		c.CustomerID = uuid.New()
	}
	return nil
}

func (Customer) TableName() string {
	return "customer"
}

type Cart struct {
	CartID     uuid.UUID `gorm:"column:cart_id;primaryKey"   json:"cart_id"`
	CustomerID uuid.UUID `gorm:"column:customer_id;not null" json:"customer_id"`
	Customer   *Customer `gorm:"belongsTo;foreignKey:CustomerID;references:CustomerID" json:"-"`
	CreatedAt  time.Time `gorm:"column:created_at"           json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"           json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.CartID == uuid.Nil {
		c.CartID = uuid.New()
	}
	return nil
}

func (Cart) TableName() string {
	return "cart"
}

type CartItem struct {
	CartItemID uuid.UUID `gorm:"column:cart_item_id;primaryKey"     json:"cart_item_id"`
	CartID     uuid.UUID `gorm:"column:cart_id;not null"            json:"cart_id"`
	Cart       *Cart     `gorm:"belongsTo;foreignKey:CartID;references:CartID;constraint:OnDelete:CASCADE"    json:"-"`
	ProductID  uuid.UUID `gorm:"column:product_id;not null"         json:"product_id"`
	Product    *Product  `gorm:"belongsTo;foreignKey:ProductID;references:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
	Quantity   int       `gorm:"column:quantity;check:quantity > 0" json:"quantity"`
	AddedAt    time.Time `gorm:"column:added_at"                    json:"added_at"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.CartItemID == uuid.Nil {
		i.CartItemID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_item"
}

type Category struct {
	CategoryID  uuid.UUID `gorm:"column:category_id;primaryKey" json:"category_id"`
	Name        string    `gorm:"column:name;unique;not null"   json:"name"`
	Description string    `gorm:"column:description"            json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at"             json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"             json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.CategoryID == uuid.Nil {
		c.CategoryID = uuid.New()
	}
	return nil
}

func (Category) TableName() string {
	return "category"
}

type Product struct {
	ProductID     uuid.UUID `gorm:"column:product_id;primaryKey"                        json:"product_id"`
	CategoryID    uuid.UUID `gorm:"column:category_id;not null"                         json:"category_id"`
	Category      *Category `gorm:"belongsTo;foreignKey:CategoryID;references:CategoryID;constraint:OnDelete:RESTRICT"  json:"category,omitempty"`
	Name          string    `gorm:"column:name;not null"                                json:"name"`
	Description   string    `gorm:"column:description"                                  json:"description"`
	Price         float64   `gorm:"column:price;not null;check:price >= 0"              json:"price"`
	StockQuantity int       `gorm:"column:stock;check:stock >= 0"                       json:"stock_quantity"`
	CreatedAt     time.Time `gorm:"column:created_at"                                   json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"                                   json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ProductID == uuid.Nil {
		p.ProductID = uuid.New()
	}
	return nil
}

func (Product) TableName() string {
	return "product"
}

// ProductFilter narrows product searches. Nil fields are ignored.
type ProductFilter struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	MinPrice    *float64   `json:"min_price,omitempty"`
	MaxPrice    *float64   `json:"max_price,omitempty"`
	MinStock    *int       `json:"min_stock,omitempty"`
	MaxStock    *int       `json:"max_stock,omitempty"`
}

func (f ProductFilter) IsEmpty() bool {
	return f.Name == nil && f.Description == nil && f.CategoryID == nil &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinStock == nil && f.MaxStock == nil
}
