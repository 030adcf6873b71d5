package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
	"storefront_api/internal/repository"
	"storefront_api/internal/testutil"
)

// ==================== 测试辅助 ====================

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr), "期望 ValidationError，实际: %v", err)
	return verr.Fields
}

func assertDenied(t *testing.T, err error, unauthenticated bool) {
	t.Helper()
	var pd *apperr.PermissionDenied
	require.True(t, errors.As(err, &pd), "期望 PermissionDenied，实际: %v", err)
	assert.Equal(t, unauthenticated, pd.Unauthenticated)
}

func assertNotFound(t *testing.T, err error, field string) {
	t.Helper()
	var nf *apperr.NotFoundError
	require.True(t, errors.As(err, &nf), "期望 NotFoundError，实际: %v", err)
	assert.Equal(t, field, nf.Field)
}

// ==================== UserService ====================

func TestUserService_CreateAndLogin(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(repository.NewStore(db))
	svc.SetHashCost(bcrypt.MinCost)
	ctx := context.Background()

	u, err := svc.Create(ctx, nil, []byte(`{"email":"a@example.com","password":"secret123","is_staff":true}`))
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsStaff)
	require.NotNil(t, u.AuthToken)
	assert.NotEmpty(t, u.AuthToken.Key)

	_, err = svc.Create(ctx, nil, []byte(`{"email":"a@example.com","password":"secret123"}`))
	assert.Equal(t, MsgEmailExists, validationFields(t, err)["email"])

	logged, err := svc.Login(ctx, []byte(`{"email":"a@example.com","password":"secret123"}`))
	require.NoError(t, err)
	assert.Equal(t, u.AuthToken.Key, logged.AuthToken.Key)
	assert.NotNil(t, logged.LastLogin)

	_, err = svc.Login(ctx, []byte(`{"email":"a@example.com","password":"wrong-password"}`))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_SoftDelete(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	svc := NewUserService(store)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner@example.com", false, false)
	other := testutil.CreateUser(t, db, "other@example.com", false, false)
	admin := testutil.CreateUser(t, db, "admin@example.com", true, false)

	// 管理员也不能删除他人
	assertDenied(t, svc.Destroy(ctx, admin, owner.ID), false)
	require.NoError(t, svc.Destroy(ctx, owner, owner.ID))

	got, err := svc.Retrieve(ctx, admin, owner.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = svc.Retrieve(ctx, other, owner.ID)
	assertNotFound(t, err, "")

	_, err = svc.Login(ctx, []byte(`{"email":"owner@example.com","password":"`+testutil.Password+`"}`))
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	users, err := svc.List(ctx, admin, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, owner.ID, u.ID)
	}

	users, err = svc.List(ctx, admin, ListQuery{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, err = svc.List(ctx, other, ListQuery{})
	assertDenied(t, err, false)
	_, err = svc.List(ctx, nil, ListQuery{})
	assertDenied(t, err, true)
}

func TestUserService_UpdatePassword(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewUserService(repository.NewStore(db))
	svc.SetHashCost(bcrypt.MinCost)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "a@example.com", false, false)
	testutil.CreateUser(t, db, "b@example.com", false, false)

	_, err := svc.Update(ctx, u, u.ID, []byte(`{"email":"b@example.com"}`), true)
	assert.Equal(t, MsgEmailExists, validationFields(t, err)["email"])

	updated, err := svc.Update(ctx, u, u.ID, []byte(`{"first_name":"Ann","password":"another-pass"}`), true)
	require.NoError(t, err)
	assert.Equal(t, "Ann", updated.FirstName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("another-pass")))
}

// ==================== VendorService ====================

func TestVendorService_Promotion(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	svc := NewVendorService(store)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "a@example.com", false, false)

	v1, err := svc.Create(ctx, u, []byte(`{"name":"first"}`))
	require.NoError(t, err)
	assert.Equal(t, u.ID, v1.OwnerID)

	stored, err := store.Users.GetByID(ctx, u.ID, false)
	require.NoError(t, err)
	assert.True(t, stored.IsVendor)

	// 已是商家时再次创建不报错
	_, err = svc.Create(ctx, stored, []byte(`{"name":"second"}`))
	require.NoError(t, err)
	stored, err = store.Users.GetByID(ctx, u.ID, false)
	require.NoError(t, err)
	assert.True(t, stored.IsVendor)

	_, err = svc.Create(ctx, nil, []byte(`{"name":"anon"}`))
	assertDenied(t, err, true)
}

func TestVendorService_DestroyCascadesProducts(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	svc := NewVendorService(store)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "v@example.com", false, true)
	vendor := testutil.CreateVendor(t, db, owner, "shop")
	testutil.CreateProduct(t, db, vendor, "shoe", "10.00", 5)
	hidden := testutil.CreateProduct(t, db, vendor, "boot", "10.00", 5)
	require.NoError(t, db.Model(hidden).Update("is_available", false).Error)

	require.NoError(t, svc.Destroy(ctx, owner, vendor.ID))
	products, err := store.Products.List(ctx, repository.ProductFilter{IncludeHidden: true})
	require.NoError(t, err)
	assert.Empty(t, products)
}

// ==================== CategoryService ====================

func TestCategoryService_NestedCreateAndCycle(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCategoryService(repository.NewStore(db))
	ctx := context.Background()

	admin := testutil.CreateUser(t, db, "admin@example.com", true, false)
	user := testutil.CreateUser(t, db, "u@example.com", false, false)

	_, err := svc.Create(ctx, user, []byte(`{"name":"Clothes"}`))
	assertDenied(t, err, false)

	root, err := svc.Create(ctx, admin, []byte(`{"name":"Clothes","sub_categories":[{"name":"Shoes","sub_categories":[{"name":"Boots"}]}]}`))
	require.NoError(t, err)

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree[root.ID], 1)
	shoes := tree[root.ID][0]
	require.Len(t, tree[shoes.ID], 1)
	boots := tree[shoes.ID][0]

	_, err = svc.Update(ctx, admin, root.ID, []byte(`{"parent":`+itoa(boots.ID)+`}`), true)
	assert.Equal(t, MsgCategoryCycle, validationFields(t, err)["parent"])

	_, err = svc.Update(ctx, admin, root.ID, []byte(`{"parent":9999}`), true)
	assertNotFound(t, err, "parent")

	roots, err := svc.List(ctx, nil, ListQuery{RootOnly: true})
	require.NoError(t, err)
	assert.Len(t, roots, 1)
}

// ==================== ProductService / SizeService ====================

func TestProductService_CreateRequiresOwnVendor(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProductService(repository.NewStore(db))
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "v@example.com", false, true)
	intruder := testutil.CreateUser(t, db, "x@example.com", false, true)
	buyer := testutil.CreateUser(t, db, "b@example.com", false, false)
	vendor := testutil.CreateVendor(t, db, owner, "shop")
	body := []byte(`{"vendor":` + itoa(vendor.ID) + `,"name":"shoe","price":"19.99"}`)

	_, err := svc.Create(ctx, nil, body)
	assertDenied(t, err, true)
	_, err = svc.Create(ctx, buyer, body)
	assertDenied(t, err, false)
	_, err = svc.Create(ctx, intruder, body)
	assertDenied(t, err, false)

	p, err := svc.Create(ctx, owner, body)
	require.NoError(t, err)
	assert.True(t, p.IsAvailable)
	assert.Equal(t, 1, p.Quantity)

	_, err = svc.Create(ctx, owner, []byte(`{"vendor":9999,"name":"shoe","price":"1.00"}`))
	assertNotFound(t, err, "vendor")
}

func TestSizeService_Inventory(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	sizes := NewSizeService(store)
	products := NewProductService(store)
	ctx := context.Background()

	testutil.SeedSizes(t, db, "M", "L")
	owner := testutil.CreateUser(t, db, "v@example.com", false, true)
	product := testutil.CreateProduct(t, db, testutil.CreateVendor(t, db, owner, "shop"), "shoe", "10.00", 10)
	pid := itoa(product.ID)

	_, err := sizes.Create(ctx, owner, []byte(`{"product":`+pid+`,"size":"XXXL","quantity":1}`))
	assert.Equal(t, "Invalid value for size", validationFields(t, err)["size"])

	m, err := sizes.Create(ctx, owner, []byte(`{"product":`+pid+`,"size":"M","quantity":6}`))
	require.NoError(t, err)

	_, err = sizes.Create(ctx, owner, []byte(`{"product":`+pid+`,"size":"L","quantity":5}`))
	assert.Contains(t, validationFields(t, err), apperr.NonFieldErrors)

	_, err = sizes.Create(ctx, owner, []byte(`{"product":`+pid+`,"size":"L","quantity":4}`))
	require.NoError(t, err)

	_, err = sizes.Update(ctx, owner, m.ID, []byte(`{"quantity":7}`), true)
	assert.Contains(t, validationFields(t, err), apperr.NonFieldErrors)

	// 失败的写入不改变数据
	total, err := store.Sizes.SumQuantity(ctx, product.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	_, err = products.Update(ctx, owner, product.ID, []byte(`{"quantity":9}`), true)
	assert.Contains(t, validationFields(t, err), "quantity")

	_, err = products.Update(ctx, owner, product.ID, []byte(`{"quantity":12}`), true)
	require.NoError(t, err)
	_, err = sizes.Update(ctx, owner, m.ID, []byte(`{"quantity":8}`), true)
	require.NoError(t, err)
}

// 加载尺码之后、加锁之前另一个请求已提交写入，更新不能把旧值写回
func TestSizeService_UpdateKeepsConcurrentWrite(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	sizes := NewSizeService(store)
	ctx := context.Background()

	testutil.SeedSizes(t, db, "M")
	owner := testutil.CreateUser(t, db, "v@example.com", false, true)
	product := testutil.CreateProduct(t, db, testutil.CreateVendor(t, db, owner, "shop"), "shoe", "10.00", 10)
	m, err := sizes.Create(ctx, owner, []byte(`{"product":`+itoa(product.ID)+`,"size":"M","quantity":6,"is_available":true}`))
	require.NoError(t, err)

	var fired atomic.Bool
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:interleaved_write", func(tx *gorm.DB) {
		if tx.Statement.Table != "sizes" || fired.Swap(true) {
			return
		}
		err := tx.Session(&gorm.Session{NewDB: true}).Exec("UPDATE sizes SET quantity = ? WHERE id = ?", 0, m.ID).Error
		assert.NoError(t, err)
	}))

	updated, err := sizes.Update(ctx, owner, m.ID, []byte(`{"is_available":false}`), true)
	require.NoError(t, err)
	require.True(t, fired.Load())
	assert.Equal(t, 0, updated.Quantity)
	assert.False(t, updated.IsAvailable)

	var stored model.Size
	require.NoError(t, db.First(&stored, m.ID).Error)
	assert.Equal(t, 0, stored.Quantity)
	assert.False(t, stored.IsAvailable)
}

func TestSizeService_OtherVendorDenied(t *testing.T) {
	db := testutil.NewDB(t)
	sizes := NewSizeService(repository.NewStore(db))
	ctx := context.Background()

	testutil.SeedSizes(t, db, "M")
	owner := testutil.CreateUser(t, db, "v@example.com", false, true)
	intruder := testutil.CreateUser(t, db, "x@example.com", false, true)
	product := testutil.CreateProduct(t, db, testutil.CreateVendor(t, db, owner, "shop"), "shoe", "10.00", 10)

	_, err := sizes.Create(ctx, intruder, []byte(`{"product":`+itoa(product.ID)+`,"size":"M","quantity":1}`))
	assertDenied(t, err, false)

	list, err := sizes.List(ctx, nil, ListQuery{ProductID: product.ID})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ==================== Order 流程 ====================

func TestOrderFlow_SnapshotCustomersAndReview(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	items := NewOrderItemService(store)
	carts := NewCartService(store)
	orders := NewOrderService(store)
	reviews := NewReviewService(store)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "v@example.com", false, true)
	buyer := testutil.CreateUser(t, db, "b@example.com", false, false)
	stranger := testutil.CreateUser(t, db, "s@example.com", false, false)
	product := testutil.CreateProduct(t, db, testutil.CreateVendor(t, db, owner, "shop"), "shoe", "19.99", 10)
	pid := itoa(product.ID)

	_, err := reviews.Create(ctx, buyer, []byte(`{"product":`+pid+`,"stars":5}`))
	assertDenied(t, err, false)

	_, err = items.Create(ctx, buyer, []byte(`{"product":9999}`))
	assertNotFound(t, err, "product")

	item, err := items.Create(ctx, buyer, []byte(`{"product":`+pid+`,"quantity":2}`))
	require.NoError(t, err)
	require.NotNil(t, item.Product)
	assert.Equal(t, buyer.ID, item.UserID)

	_, err = carts.Create(ctx, stranger, []byte(`{"items":[`+itoa(item.ID)+`]}`))
	assertNotFound(t, err, "items")

	cart, err := carts.Create(ctx, buyer, []byte(`{"items":[`+itoa(item.ID)+`]}`))
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	_, err = orders.Create(ctx, stranger, []byte(`{"cart":`+itoa(cart.ID)+`}`))
	assertNotFound(t, err, "cart")

	order, err := orders.Create(ctx, buyer, []byte(`{"cart":`+itoa(cart.ID)+`}`))
	require.NoError(t, err)
	assert.Equal(t, "39.98", order.Total.StringFixed(2))
	require.NotNil(t, order.Cart)

	ok, err := store.Products.IsCustomer(ctx, product.ID, buyer.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	review, err := reviews.Create(ctx, buyer, []byte(`{"product":`+pid+`,"stars":4,"comment":"nice"}`))
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, review.UserID)

	// 订单只对所有者和管理员可见
	_, err = orders.Retrieve(ctx, stranger, order.ID)
	assertDenied(t, err, false)
	mine, err := orders.List(ctx, stranger, ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, mine)

	err = carts.Destroy(ctx, buyer, cart.ID)
	assert.Contains(t, validationFields(t, err), apperr.NonFieldErrors)
}

func TestOrderService_EmptyCart(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	ctx := context.Background()

	buyer := testutil.CreateUser(t, db, "b@example.com", false, false)
	cart, err := NewCartService(store).Create(ctx, buyer, []byte(`{}`))
	require.NoError(t, err)

	_, err = NewOrderService(store).Create(ctx, buyer, []byte(`{"cart":`+itoa(cart.ID)+`}`))
	assert.Equal(t, MsgEmptyCart, validationFields(t, err)["cart"])
}

// ==================== ImageService ====================

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestImageService_UploadAndDestroy(t *testing.T) {
	db := testutil.NewDB(t)
	dir := t.TempDir()
	storage, err := NewLocalStorage(StorageConfig{LocalDir: dir, BasePath: "images"})
	require.NoError(t, err)
	svc := NewImageService(repository.NewStore(db), storage)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "v@example.com", false, true)
	product := testutil.CreateProduct(t, db, testutil.CreateVendor(t, db, owner, "shop"), "shoe", "10.00", 10)

	_, err = svc.Upload(ctx, owner, product.ID, "a.txt", []byte("plain text"))
	assert.Equal(t, MsgUploadNotAnImage, validationFields(t, err)["file"])

	img, err := svc.Upload(ctx, owner, product.ID, "a.png", pngHeader)
	require.NoError(t, err)
	assert.Contains(t, img.URL, "/media/images/")
	stored := filepath.Join(dir, filepath.FromSlash(img.StorageKey))
	_, err = os.Stat(stored)
	require.NoError(t, err)

	require.NoError(t, svc.Destroy(ctx, owner, img.ID))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))
}

// ==================== SizeChartService ====================

func TestSizeChartService_Seed(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewSizeChartService(repository.NewStore(db))
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "sizes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sizes:\n  - S\n  - M\n  - \" M \"\n  - \"40\"\n"), 0o644))

	n, err := svc.Seed(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(all))
	for _, s := range all {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"S", "M", "40"}, names)

	_, err = svc.Seed(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
