package model

// Category 商品分类，自引用树结构，深度不限
type Category struct {
	BaseModel
	Name     string    `gorm:"size:255;not null"`
	ParentID *int64    `gorm:"index"`
	Parent   *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL;"`

	SubCategories []Category `gorm:"foreignKey:ParentID"`
}

func (Category) TableName() string {
	return "categories"
}
