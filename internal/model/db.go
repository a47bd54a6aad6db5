package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleClient = "Client"
	RoleAdmin  = "Admin"
)

// Order lifecycle. Unpaid orders may enter payment; a successful gateway
// callback moves them to Pending. Delivered and Canceled are terminal for
// non-staff actors.
const (
	OrderStatusUnpaid    = "Unpaid"
	OrderStatusPending   = "Pending"
	OrderStatusDelivered = "Delivered"
	OrderStatusCanceled  = "Canceled"
)

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusUnpaid, OrderStatusPending, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"size:128;not null" json:"-"`
	FirstName    string  `gorm:"size:30" json:"first_name"`
	LastName     string  `gorm:"size:30" json:"last_name"`
	Address      *string `json:"address"`
	PhoneNumber  *string `gorm:"size:15" json:"phone_number"`
	Role         string  `gorm:"size:20;index;not null;default:Client" json:"role"`
	// IsStaff mirrors Role == Admin and is what permission checks resolve to.
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;index;not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Images  []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Reviews []Review       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	FileName  string `gorm:"size:255;not null" json:"file_name"`
	// ObjectName is the uuid-based name the file is stored under.
	ObjectName string    `gorm:"size:64;uniqueIndex;not null" json:"object_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Ratings   int       `gorm:"not null" json:"ratings"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cart is the per-user open cart. At most one exists per user; it is created
// lazily and cleared, never deleted, when converted to an order.
type Cart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CartID    uint `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`

	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}

// Order is an immutable priced snapshot of a checkout. TotalPrice is computed
// once at creation and never recomputed from items.
type Order struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"index;not null" json:"user_id"`
	Status     string          `gorm:"size:20;index;not null" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem freezes unit price, quantity and line total at order creation,
// independent of later product changes.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"uniqueIndex:idx_order_product;not null" json:"order_id"`
	ProductID  uint            `gorm:"uniqueIndex:idx_order_product;not null" json:"product_id"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}
