package model

// Vendor 店铺，归属于唯一的用户
type Vendor struct {
	BaseModel
	OwnerID     int64  `gorm:"index;not null"` // 创建后不可变更
	Owner       *User  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
}

func (Vendor) TableName() string {
	return "vendors"
}

func (v *Vendor) OwnedBy() int64 {
	return v.OwnerID
}
