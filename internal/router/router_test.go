package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront_api/internal/middleware"
	"storefront_api/internal/model"
	"storefront_api/internal/repository"
	"storefront_api/internal/service"
	"storefront_api/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

type testApp struct {
	r     *gin.Engine
	store *repository.Store
	media string
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	db := testutil.NewDB(t)
	middleware.RegisterAuditCallbacks(db)
	store := repository.NewStore(db)
	testutil.SeedSizes(t, db, "S", "M", "L")

	media := t.TempDir()
	storage, err := service.NewLocalStorage(service.StorageConfig{
		LocalDir:  media,
		BasePath:  "images",
		PublicURL: "/media",
	})
	require.NoError(t, err)

	r := New(Options{
		Tokens:   store.Tokens,
		MediaDir: media,
		MediaURL: "/media",
	}, NewControllers(store, storage, bcrypt.MinCost))
	return &testApp{r: r, store: store, media: media}
}

// tokenFor 直接签发令牌
func (a *testApp) tokenFor(t *testing.T, u *model.User) string {
	t.Helper()
	key, expiresAt, err := middleware.GenerateToken(u.ID, u.Email)
	require.NoError(t, err)
	require.NoError(t, a.store.Tokens.Save(t.Context(), &model.AuthToken{Key: key, UserID: u.ID, ExpiresAt: expiresAt}))
	return key
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func idOf(t *testing.T, w *httptest.ResponseRecorder) int64 {
	t.Helper()
	body := decode[map[string]any](t, w)
	id, ok := body["id"].(float64)
	require.True(t, ok, w.Body.String())
	return int64(id)
}

func path(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}

// ==================== 匿名访问 ====================

func TestAnonymousAccess(t *testing.T) {
	app := setupApp(t)
	owner := testutil.CreateUser(t, app.store.DB(), "v@example.com", false, true)
	vendor := testutil.CreateVendor(t, app.store.DB(), owner, "shop")
	product := testutil.CreateProduct(t, app.store.DB(), vendor, "tee", "9.99", 10)

	readable := []string{
		"/api/products", path("/api/products", product.ID),
		"/api/categories", "/api/sizes", "/api/images", "/api/vendors",
		path("/api/vendors", vendor.ID), "/api/reviews", "/api/size-chart",
	}
	for _, p := range readable {
		assert.Equal(t, http.StatusOK, app.do(http.MethodGet, p, "", nil).Code, p)
	}

	denied := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/order-items"},
		{http.MethodGet, "/api/carts"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, path("/api/users", owner.ID)},
		{http.MethodPost, "/api/products"},
		{http.MethodPost, "/api/vendors"},
		{http.MethodPost, "/api/categories"},
		{http.MethodDelete, path("/api/products", product.ID)},
	}
	for _, d := range denied {
		w := app.do(d.method, d.path, "", map[string]any{})
		assert.Equal(t, http.StatusUnauthorized, w.Code, d.method+" "+d.path)
	}

	// 匿名可以注册
	w := app.do(http.MethodPost, "/api/users", "", map[string]any{"email": "new@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestUnknownRouteAndMethod(t *testing.T) {
	app := setupApp(t)

	w := app.do(http.MethodGet, "/api/nothing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, w.Body.String())

	w = app.do(http.MethodGet, "/api/products/abc", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodDelete, "/api/size-chart", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSwaggerDoc(t *testing.T) {
	app := setupApp(t)

	w := app.do(http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Storefront API")
	assert.Contains(t, w.Body.String(), "/api/orders/{id}")
}

// ==================== 用户 ====================

func TestRegisterLoginAndSoftDelete(t *testing.T) {
	app := setupApp(t)
	admin := testutil.CreateUser(t, app.store.DB(), "admin@example.com", true, false)
	adminToken := app.tokenFor(t, admin)

	w := app.do(http.MethodPost, "/api/users", "", map[string]any{
		"email": "a@example.com", "password": "secret123", "is_staff": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	assert.Equal(t, false, created["is_staff"])
	assert.NotContains(t, created, "password")
	token, _ := created["auth_token"].(string)
	require.NotEmpty(t, token)
	userID := int64(created["id"].(float64))

	// 重复邮箱
	w = app.do(http.MethodPost, "/api/users", "", map[string]any{"email": "a@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"email":"user with this email already exists."}`, w.Body.String())

	// 登录复用未过期令牌
	w = app.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "a@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, token, decode[map[string]any](t, w)["token"])

	w = app.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "a@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"non_field_errors":"Unable to log in with provided credentials."}`, w.Body.String())

	// 本人删除即停用
	assert.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, path("/api/users", userID), token, nil).Code)

	w = app.do(http.MethodGet, path("/api/users", userID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode[map[string]any](t, w)["is_active"])
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/api/products", token, nil).Code)

	other := testutil.CreateUser(t, app.store.DB(), "b@example.com", false, false)
	w = app.do(http.MethodGet, path("/api/users", userID), app.tokenFor(t, other), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "a@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ==================== 店铺与商品 ====================

func TestHiddenProducts(t *testing.T) {
	app := setupApp(t)
	db := app.store.DB()
	owner := testutil.CreateUser(t, db, "v@example.com", false, true)
	vendor := testutil.CreateVendor(t, db, owner, "shop")
	shown := testutil.CreateProduct(t, db, vendor, "shown", "5.00", 1)
	hidden := testutil.CreateProduct(t, db, vendor, "hidden", "5.00", 1)
	require.NoError(t, db.Model(hidden).Update("is_available", false).Error)

	ownerToken := app.tokenFor(t, owner)
	otherToken := app.tokenFor(t, testutil.CreateUser(t, db, "x@example.com", false, true))
	adminToken := app.tokenFor(t, testutil.CreateUser(t, db, "admin@example.com", true, false))

	names := func(w *httptest.ResponseRecorder) []string {
		t.Helper()
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var out []string
		for _, p := range decode[[]map[string]any](t, w) {
			out = append(out, p["name"].(string))
		}
		return out
	}

	// 匿名和其他用户看不到下架商品
	assert.Equal(t, []string{"shown"}, names(app.do(http.MethodGet, "/api/products", "", nil)))
	assert.Equal(t, []string{"shown"}, names(app.do(http.MethodGet, "/api/products", otherToken, nil)))
	assert.Empty(t, names(app.do(http.MethodGet, "/api/products?is_available=false", "", nil)))
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, path("/api/products", hidden.ID), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, path("/api/products", hidden.ID), otherToken, nil).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, path("/api/products", shown.ID), "", nil).Code)

	// 店主和管理员可见
	assert.Equal(t, []string{"shown", "hidden"}, names(app.do(http.MethodGet, "/api/products", ownerToken, nil)))
	assert.Equal(t, []string{"hidden"}, names(app.do(http.MethodGet, "/api/products?is_available=false", ownerToken, nil)))
	assert.Equal(t, []string{"shown", "hidden"}, names(app.do(http.MethodGet, "/api/products", adminToken, nil)))
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, path("/api/products", hidden.ID), adminToken, nil).Code)

	// 店主重新上架
	w := app.do(http.MethodPatch, path("/api/products", hidden.ID), ownerToken, map[string]any{"is_available": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"shown", "hidden"}, names(app.do(http.MethodGet, "/api/products", "", nil)))
}

func TestVendorPromotionAndProductFields(t *testing.T) {
	app := setupApp(t)
	u := testutil.CreateUser(t, app.store.DB(), "a@example.com", false, false)
	token := app.tokenFor(t, u)

	w := app.do(http.MethodPost, "/api/vendors", token, map[string]any{"name": "shop"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	vendorID := idOf(t, w)

	w = app.do(http.MethodGet, path("/api/users", u.ID), token, nil)
	assert.Equal(t, true, decode[map[string]any](t, w)["is_vendor"])

	// 已是商家时再开店不报错
	w = app.do(http.MethodPost, "/api/vendors", token, map[string]any{"name": "second"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = app.do(http.MethodPost, "/api/products", token, map[string]any{
		"vendor": vendorID, "name": "tee", "brand": "acme", "price": "19.99",
		"quantity": 10, "description": "cotton", "is_available": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	productID := idOf(t, w)
	product := decode[map[string]any](t, w)
	assert.NotContains(t, product, "description")
	assert.NotContains(t, product, "quantity")
	assert.Equal(t, "19.99", product["price"])

	w = app.do(http.MethodGet, path("/api/products", productID)+"?fields=id,name", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":`+strconv.FormatInt(productID, 10)+`,"name":"tee"}`, w.Body.String())

	w = app.do(http.MethodGet, "/api/products?fields=name&vendor="+strconv.FormatInt(vendorID, 10), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"tee"}]`, w.Body.String())

	// 他人不能在别人的店铺下建商品
	other := testutil.CreateUser(t, app.store.DB(), "b@example.com", false, true)
	w = app.do(http.MethodPost, "/api/products", app.tokenFor(t, other), map[string]any{
		"vendor": vendorID, "name": "x", "price": "1.00", "quantity": 1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodPost, "/api/products", token, map[string]any{
		"vendor": 9999, "name": "x", "price": "1.00", "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"vendor":"Invalid pk \"9999\" - object does not exist."}`, w.Body.String())
}

func TestSizeInventory(t *testing.T) {
	app := setupApp(t)
	owner := testutil.CreateUser(t, app.store.DB(), "v@example.com", false, true)
	vendor := testutil.CreateVendor(t, app.store.DB(), owner, "shop")
	product := testutil.CreateProduct(t, app.store.DB(), vendor, "tee", "9.99", 10)
	token := app.tokenFor(t, owner)

	w := app.do(http.MethodPost, "/api/sizes", token, map[string]any{"product": product.ID, "size": "S", "quantity": 6})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sizeID := idOf(t, w)

	w = app.do(http.MethodPost, "/api/sizes", token, map[string]any{"product": product.ID, "size": "M", "quantity": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w), "non_field_errors")

	w = app.do(http.MethodPost, "/api/sizes", token, map[string]any{"product": product.ID, "size": "XXXL", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w), "size")

	w = app.do(http.MethodPatch, path("/api/sizes", sizeID), token, map[string]any{"quantity": 10})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 商品库存不能低于尺码库存之和
	w = app.do(http.MethodPatch, path("/api/products", product.ID), token, map[string]any{"quantity": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodGet, "/api/sizes?product="+strconv.FormatInt(product.ID, 10), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
}

// ==================== 下单流程 ====================

func TestOrderFlow(t *testing.T) {
	app := setupApp(t)
	owner := testutil.CreateUser(t, app.store.DB(), "v@example.com", false, true)
	vendor := testutil.CreateVendor(t, app.store.DB(), owner, "shop")
	product := testutil.CreateProduct(t, app.store.DB(), vendor, "tee", "19.99", 10)
	buyer := testutil.CreateUser(t, app.store.DB(), "buyer@example.com", false, false)
	admin := testutil.CreateUser(t, app.store.DB(), "admin@example.com", true, false)
	token := app.tokenFor(t, buyer)

	// 购买前不能评价
	w := app.do(http.MethodPost, "/api/reviews", token, map[string]any{"product": product.ID, "stars": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodPost, "/api/order-items", token, map[string]any{"product": 9999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[map[string]string](t, w), "product")

	w = app.do(http.MethodPost, "/api/order-items", token, map[string]any{"product": product.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[map[string]any](t, w)
	itemID := int64(item["id"].(float64))
	nested, ok := item["product"].(map[string]any)
	require.True(t, ok, w.Body.String())
	assert.ElementsMatch(t, []string{"id", "name", "is_available", "brand", "price"}, keys(nested))

	w = app.do(http.MethodPost, "/api/carts", token, map[string]any{"items": []int64{itemID}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cartID := idOf(t, w)

	w = app.do(http.MethodPost, "/api/orders", token, map[string]any{"cart": cartID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode[map[string]any](t, w)
	orderID := int64(order["id"].(float64))
	assert.Equal(t, "39.98", order["total"])

	// 订单不可修改，任何人都是 405
	for _, tok := range []string{token, app.tokenFor(t, admin), ""} {
		for _, method := range []string{http.MethodPut, http.MethodPatch} {
			w = app.do(method, path("/api/orders", orderID), tok, map[string]any{"cart": cartID})
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.JSONEq(t, `{"detail":"Method \"`+method+`\" not allowed."}`, w.Body.String())
		}
	}

	// 已下单的购物车不能删除
	w = app.do(http.MethodDelete, path("/api/carts", cartID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 他人看不到订单
	stranger := testutil.CreateUser(t, app.store.DB(), "s@example.com", false, false)
	w = app.do(http.MethodGet, "/api/orders", app.tokenFor(t, stranger), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]map[string]any](t, w))

	w = app.do(http.MethodPost, "/api/reviews", token, map[string]any{"product": product.ID, "stars": 5, "comment": "nice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "buyer@example.com", decode[map[string]any](t, w)["user"])
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// ==================== 图片上传 ====================

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestImageUpload(t *testing.T) {
	app := setupApp(t)
	owner := testutil.CreateUser(t, app.store.DB(), "v@example.com", false, true)
	vendor := testutil.CreateVendor(t, app.store.DB(), owner, "shop")
	product := testutil.CreateProduct(t, app.store.DB(), vendor, "tee", "9.99", 10)
	token := app.tokenFor(t, owner)

	upload := func(data []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("product", strconv.FormatInt(product.ID, 10)))
		fw, err := mw.CreateFormFile("file", "photo.png")
		require.NoError(t, err)
		_, _ = fw.Write(data)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/images/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Token "+token)
		w := httptest.NewRecorder()
		app.r.ServeHTTP(w, req)
		return w
	}

	w := upload([]byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w), "file")

	w = upload(pngHeader)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	url, _ := decode[map[string]any](t, w)["url"].(string)
	require.NotEmpty(t, url)

	// 本地存储通过 /media 访问
	get := httptest.NewRecorder()
	app.r.ServeHTTP(get, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, pngHeader, get.Body.Bytes())
}

// ==================== 登录限流 ====================

func TestLoginThrottle(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	r := New(Options{Tokens: store.Tokens, LoginThrottle: time.Minute}, NewControllers(store, nil, bcrypt.MinCost))
	testutil.CreateUser(t, db, "a@example.com", false, false)

	login := func() int {
		body, _ := json.Marshal(map[string]string{"email": "a@example.com", "password": testutil.Password})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body)))
		return w.Code
	}
	assert.Equal(t, http.StatusOK, login())
	assert.Equal(t, http.StatusTooManyRequests, login())
}

// ==================== 端到端 ====================

func TestEndToEnd_Resty(t *testing.T) {
	app := setupApp(t)
	srv := httptest.NewServer(app.r)
	defer srv.Close()

	client := resty.New().SetBaseURL(srv.URL).SetTimeout(5 * time.Second)

	var user map[string]any
	resp, err := client.R().
		SetBody(map[string]string{"email": "e2e@example.com", "password": "secret123"}).
		SetResult(&user).
		Post("/api/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	token := user["auth_token"].(string)

	var vendor map[string]any
	resp, err = client.R().
		SetHeader("Authorization", "Token "+token).
		SetBody(map[string]string{"name": "e2e shop"}).
		SetResult(&vendor).
		Post("/api/vendors")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())

	var products []map[string]any
	resp, err = client.R().
		SetQueryParam("vendor", strconv.FormatInt(int64(vendor["id"].(float64)), 10)).
		SetResult(&products).
		Get("/api/products")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Empty(t, products)

	resp, err = client.R().SetHeader("Authorization", "Token bogus").Get("/api/products")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Equal(t, "Token", resp.Header().Get("WWW-Authenticate"))
}
