package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Cart 购物车，归属于唯一用户
type Cart struct {
	BaseModel
	UserID int64       `gorm:"index;not null"`
	User   *User       `gorm:"constraint:OnDelete:CASCADE;"`
	Items  []OrderItem `gorm:"foreignKey:CartID"`
}

func (Cart) TableName() string {
	return "carts"
}

func (c *Cart) OwnedBy() int64 {
	return c.UserID
}

// OrderItem 商品 + 数量
type OrderItem struct {
	BaseModel
	UserID    int64    `gorm:"index;not null"`
	User      *User    `gorm:"constraint:OnDelete:CASCADE;"`
	ProductID int64    `gorm:"index;not null"`
	Product   *Product `gorm:"constraint:OnDelete:CASCADE;"`
	CartID    *int64   `gorm:"index"`
	Cart      *Cart    `gorm:"constraint:OnDelete:SET NULL;"`
	Quantity  int      `gorm:"not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i *OrderItem) OwnedBy() int64 {
	return i.UserID
}

// Order 订单，由购物车快照生成，创建后不可修改
type Order struct {
	BaseModel
	UserID int64 `gorm:"index;not null"`
	User   *User `gorm:"constraint:OnDelete:CASCADE;"`
	CartID int64 `gorm:"index;not null"`
	Cart   *Cart `gorm:"constraint:OnDelete:RESTRICT;"`

	Total decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// 下单时购物车内容快照 []OrderLine
	Items datatypes.JSON `gorm:"type:json"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) OwnedBy() int64 {
	return o.UserID
}

// OrderLine 订单快照中的一行
type OrderLine struct {
	ProductID int64           `json:"product"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}
