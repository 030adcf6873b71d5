// Package testutil 测试用的内存数据库与数据构造
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront_api/internal/model"
	"storefront_api/pkg/database"
)

var dbSeq atomic.Int64

// NewDB 每个测试独立的 sqlite 内存库，已完成迁移
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	// 共享缓存让连接池内的多个连接看到同一个内存库
	dsn := fmt.Sprintf("file:storefront_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Open(database.Options{
		Driver:   database.DriverSQLite,
		DSN:      dsn,
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := database.Migrate(db, model.AllModels()...); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// ==================== 数据构造 ====================

// Password 测试用户的明文密码
const Password = "secret123"

// CreateUser 创建启用状态的用户
func CreateUser(t *testing.T, db *gorm.DB, email string, staff, vendor bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码失败: %v", err)
	}
	u := &model.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
		IsStaff:  staff,
		IsVendor: vendor,
	}
	mustCreate(t, db, u)
	return u
}

// CreateVendor 创建店铺
func CreateVendor(t *testing.T, db *gorm.DB, owner *model.User, name string) *model.Vendor {
	t.Helper()
	v := &model.Vendor{OwnerID: owner.ID, Name: name}
	mustCreate(t, db, v)
	v.Owner = owner
	return v
}

// CreateProduct 创建商品
func CreateProduct(t *testing.T, db *gorm.DB, vendor *model.Vendor, name, price string, quantity int) *model.Product {
	t.Helper()
	p := &model.Product{
		VendorID:    vendor.ID,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Quantity:    quantity,
		IsAvailable: true,
	}
	mustCreate(t, db, p)
	p.Vendor = vendor
	return p
}

// SeedSizes 写入尺码字典
func SeedSizes(t *testing.T, db *gorm.DB, names ...string) {
	t.Helper()
	for _, n := range names {
		mustCreate(t, db, &model.SizeChart{Name: n})
	}
}

func mustCreate(t *testing.T, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Omit(clause.Associations).Create(value).Error; err != nil {
		t.Fatalf("创建测试数据失败: %v", err)
	}
}
