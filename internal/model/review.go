package model

// Review 用户对商品的评价
type Review struct {
	BaseModel
	UserID    int64    `gorm:"index;not null"`
	User      *User    `gorm:"constraint:OnDelete:CASCADE;"`
	ProductID int64    `gorm:"index;not null"`
	Product   *Product `gorm:"constraint:OnDelete:CASCADE;"`
	Stars     int      `gorm:"not null"`
	Comment   string   `gorm:"type:text"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) OwnedBy() int64 {
	return r.UserID
}
