package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/internal/apperr"
	"storefront_api/internal/model"
	"storefront_api/internal/testutil"
)

func TestUserRepository_InactiveHidden(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "a@example.com", false, false)
	require.NoError(t, store.Users.UpdateFields(ctx, u.ID, map[string]interface{}{"is_active": false}))

	_, err := store.Users.GetByID(ctx, u.ID, false)
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf))

	got, err := store.Users.GetByID(ctx, u.ID, true)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	active, err := store.Users.List(ctx, UserFilter{})
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := store.Users.List(ctx, UserFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTokenRepository(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "a@example.com", false, false)

	require.NoError(t, store.Tokens.Save(ctx, &model.AuthToken{Key: "k1", UserID: u.ID, ExpiresAt: time.Now().Add(-time.Hour)}))
	// 覆盖保存
	require.NoError(t, store.Tokens.Save(ctx, &model.AuthToken{Key: "k2", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}))

	tok, err := store.Tokens.GetByKey(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, tok)

	tok, err = store.Tokens.GetByKey(ctx, "k2")
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, "a@example.com", tok.User.Email)

	n, err := store.Tokens.DeleteExpired(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSizeRepository_SumQuantity(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "v@example.com", false, true)
	vendor := testutil.CreateVendor(t, db, owner, "shop")
	product := testutil.CreateProduct(t, db, vendor, "shoe", "10.00", 10)

	s1 := &model.Size{ProductID: product.ID, Size: "M", Quantity: 3, IsAvailable: true}
	s2 := &model.Size{ProductID: product.ID, Size: "L", Quantity: 4, IsAvailable: true}
	require.NoError(t, store.Sizes.Create(ctx, s1))
	require.NoError(t, store.Sizes.Create(ctx, s2))

	total, err := store.Sizes.SumQuantity(ctx, product.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, total)

	total, err = store.Sizes.SumQuantity(ctx, product.ID, s1.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	got, err := store.Sizes.GetByID(ctx, s1.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Product)
	assert.Equal(t, owner.ID, got.OwnedBy())
}

func TestProductRepository_LockAndCustomers(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "v@example.com", false, true)
	buyer := testutil.CreateUser(t, db, "b@example.com", false, false)
	product := testutil.CreateProduct(t, db, testutil.CreateVendor(t, db, owner, "shop"), "shoe", "10.00", 10)

	err := store.Transaction(ctx, func(tx *Store) error {
		p, err := tx.Products.GetForUpdate(ctx, product.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, owner.ID, p.OwnedBy())
		return tx.Products.AddCustomer(ctx, p.ID, buyer.ID)
	})
	require.NoError(t, err)

	// 重复添加无副作用
	require.NoError(t, store.Products.AddCustomer(ctx, product.ID, buyer.ID))

	ok, err := store.Products.IsCustomer(ctx, product.ID, buyer.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Products.IsCustomer(ctx, product.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Products.GetForUpdate(ctx, 999)
	var nf *apperr.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestTransaction_Rollback(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "v@example.com", false, false)

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx *Store) error {
		if err := tx.Vendors.Create(ctx, &model.Vendor{OwnerID: owner.ID, Name: "shop"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	vendors, err := store.Vendors.List(ctx, VendorFilter{})
	require.NoError(t, err)
	assert.Empty(t, vendors)
}

func TestSizeChartRepository_Upsert(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	ctx := context.Background()

	n, err := store.SizeCharts.Upsert(ctx, []string{"S", "M"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = store.SizeCharts.Upsert(ctx, []string{"M", "L"})
	require.NoError(t, err)

	all, err := store.SizeCharts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ok, err := store.SizeCharts.Exists(ctx, "L")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.SizeCharts.Exists(ctx, "XXXL")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartAndOrderItems(t *testing.T) {
	db := testutil.NewDB(t)
	store := NewStore(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "v@example.com", false, true)
	buyer := testutil.CreateUser(t, db, "b@example.com", false, false)
	product := testutil.CreateProduct(t, db, testutil.CreateVendor(t, db, owner, "shop"), "shoe", "10.00", 10)

	cart := &model.Cart{UserID: buyer.ID}
	require.NoError(t, store.Carts.Create(ctx, cart))

	item := &model.OrderItem{UserID: buyer.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, store.OrderItems.Create(ctx, item))
	foreign := &model.OrderItem{UserID: owner.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, store.OrderItems.Create(ctx, foreign))

	owned, err := store.OrderItems.ListByIDs(ctx, []int64{item.ID, foreign.ID}, buyer.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)

	require.NoError(t, store.OrderItems.SetCart(ctx, cart.ID, []int64{item.ID}, true))

	got, err := store.Carts.GetByID(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.NotNil(t, got.Items[0].Product)
	assert.Equal(t, "shoe", got.Items[0].Product.Name)

	mine, err := store.OrderItems.List(ctx, OwnerFilter{UserID: buyer.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	everyone, err := store.OrderItems.List(ctx, OwnerFilter{})
	require.NoError(t, err)
	assert.Len(t, everyone, 2)
}
