package model

import (
	"github.com/shopspring/decimal"
)

// Product 商品，归属于店铺
type Product struct {
	BaseModel
	VendorID   int64     `gorm:"index;not null"`
	Vendor     *Vendor   `gorm:"constraint:OnDelete:CASCADE;"`
	CategoryID *int64    `gorm:"index"`
	Category   *Category `gorm:"constraint:OnDelete:SET NULL;"`

	// --- 商品基本信息 ---
	Name        string          `gorm:"size:255;not null"`
	Brand       string          `gorm:"size:255"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"type:text"`

	// bool/int 不设置数据库默认值，否则 false/0 会被 GORM 当作零值跳过
	IsAvailable bool `gorm:"not null;index"`
	// 没有尺码时以此为准；有尺码时为各尺码库存之和的上限
	Quantity int `gorm:"not null"`

	// --- 关联关系 ---
	Customers []User  `gorm:"many2many:product_customers;"`
	Sizes     []Size  `gorm:"foreignKey:ProductID"`
	Images    []Image `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// OwnedBy 商品的归属用户为店铺所有者，需预加载 Vendor
func (p *Product) OwnedBy() int64 {
	if p.Vendor == nil {
		return 0
	}
	return p.Vendor.OwnerID
}

// SizeChart 尺码字典
type SizeChart struct {
	BaseModel
	Name string `gorm:"size:32;uniqueIndex;not null"`
}

func (SizeChart) TableName() string {
	return "size_charts"
}

// Size 商品尺码变体
type Size struct {
	BaseModel
	ProductID   int64    `gorm:"index;not null"`
	Product     *Product `gorm:"constraint:OnDelete:CASCADE;"`
	Size        string   `gorm:"size:32;not null"`
	Quantity    int      `gorm:"not null"`
	IsAvailable bool     `gorm:"not null"`
}

func (Size) TableName() string {
	return "sizes"
}

func (s *Size) OwnedBy() int64 {
	if s.Product == nil {
		return 0
	}
	return s.Product.OwnedBy()
}

// Image 商品图片
type Image struct {
	BaseModel
	ProductID int64    `gorm:"index;not null"`
	Product   *Product `gorm:"constraint:OnDelete:CASCADE;"`
	URL       string   `gorm:"size:512;not null"`
	// 上传到对象存储时的 key，外链图片为空
	StorageKey string `gorm:"size:255"`
}

func (Image) TableName() string {
	return "images"
}

func (i *Image) OwnedBy() int64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.OwnedBy()
}
