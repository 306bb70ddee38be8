package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/djordjeivanovic11/ladimood-back/internal/config"
	"github.com/djordjeivanovic11/ladimood-back/internal/handler"
	"github.com/djordjeivanovic11/ladimood-back/internal/hashid"
	gormrepo "github.com/djordjeivanovic11/ladimood-back/internal/infra/repository"
	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
	"github.com/djordjeivanovic11/ladimood-back/internal/metrics"
	"github.com/djordjeivanovic11/ladimood-back/internal/notification"
	"github.com/djordjeivanovic11/ladimood-back/internal/orderfeed"
	"github.com/djordjeivanovic11/ladimood-back/internal/testutil"
	"github.com/djordjeivanovic11/ladimood-back/internal/usecase"
	auth "github.com/djordjeivanovic11/ladimood-back/internal/usecase/auth_usecase"
)

type app struct {
	e      *echo.Echo
	tokens *auth.TokenService
}

// 本番と同じ組み立てをsqliteで行う
func newApp(t *testing.T) (*app, func(email string) string) {
	t.Helper()
	gdb := testutil.NewDB(t)
	log := logger.Nop()

	ids, err := hashid.New(hashid.DefaultSalt, hashid.DefaultMinLength)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:     "test-secret",
		Algorithm:  "HS256",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
		ResetTTL:   time.Minute,
	}, auth.SystemClock{})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	users := gormrepo.NewUserGormRepository(gdb)
	products := gormrepo.NewProductGormRepository(gdb)
	orders := gormrepo.NewOrderGormRepository(gdb)
	tx := gormrepo.NewTxManagerGorm(gdb)
	notifier := notification.NewNotifier(notification.NewLogMailer(log), "", "http://localhost:3000")
	feed := orderfeed.NewHub("http://localhost:3000", log)
	t.Cleanup(feed.Close)

	hasher := auth.NewBcryptPasswordHasher(bcrypt.MinCost)
	verifier := auth.NewBcryptPasswordVerifier()
	productUC := usecase.NewProductUsecase(products, gormrepo.NewCategoryGormRepository(gdb))

	e := New(Options{
		Log:           log,
		Metrics:       m,
		MetricsRoute:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Authenticator: auth.NewAuthenticator(tokens, users),
		RateLimit:     config.RateLimitConfig{Window: time.Minute, LoginLimit: 10, AccountLimit: 5},
	}, Handlers{
		Auth: handler.NewAuthHandler(
			auth.NewRegisterUserUsecase(users, gormrepo.NewRoleGormRepository(gdb), hasher),
			auth.NewLoginUsecase(users, verifier, tokens),
			auth.NewRefreshUsecase(users, tokens),
			auth.NewChangePasswordUsecase(users, hasher, verifier),
			auth.NewForgotPasswordUsecase(users, tokens, notifier, log, "http://localhost:3000"),
			auth.NewResetPasswordUsecase(users, tokens, hasher),
		),
		Account: handler.NewAccountHandler(usecase.NewAccountUsecase(users, gormrepo.NewNewsletterGormRepository(gdb), notifier, m, log)),
		Address: handler.NewAddressHandler(usecase.NewAddressUsecase(gormrepo.NewAddressGormRepository(gdb))),
		Cart: handler.NewCartHandler(
			usecase.NewCartUsecase(gormrepo.NewCartGormRepository(gdb), products),
			usecase.NewWishlistUsecase(gormrepo.NewWishlistGormRepository(gdb), products),
		),
		Order:   handler.NewOrderHandler(usecase.NewOrderUsecase(tx, orders, ids, notifier, feed, m, log)),
		Product: handler.NewProductHandler(productUC),
		AdminOrder: handler.NewAdminOrderHandler(
			usecase.NewAdminOrderUsecase(tx, orders, gormrepo.NewSalesGormRepository(gdb), gormrepo.NewAuditLogGormRepository(gdb), ids),
			feed,
		),
		AdminProduct: handler.NewAdminProductHandler(productUC),
	})

	a := &app{e: e, tokens: tokens}
	seed := func(email string) string {
		testutil.CreateAdmin(t, gdb, email)
		tok, err := tokens.IssueKind(email, auth.TokenAccess)
		require.NoError(t, err)
		return tok
	}
	testutil.CreateProduct(t, gdb, "Ladimood Tee", "29.99")
	return a, seed
}

func (a *app) do(method, path, contentType string, body io.Reader, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *app) json(method, path, body, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return a.do(method, path, echo.MIMEApplicationJSON, r, token)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	return string(decode[handler.ErrorResponse](t, rec).Code)
}

func (a *app) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	rec := a.json(http.MethodPost, "/api/auth/register",
		fmt.Sprintf(`{"email":%q,"password":"secret-pass","full_name":"Mila Petrovic"}`, email), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	form := url.Values{"username": {email}, "password": {"secret-pass"}}
	rec = a.do(http.MethodPost, "/api/auth/login", echo.MIMEApplicationForm, strings.NewReader(form.Encode()), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	pair := decode[auth.TokenPair](t, rec)
	assert.Equal(t, "bearer", strings.ToLower(pair.TokenType))
	require.NotEmpty(t, pair.AccessToken)
	return pair.AccessToken
}

func TestHealthAndMetrics(t *testing.T) {
	a, _ := newApp(t)

	rec := a.json(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = a.json(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestAuthFlow(t *testing.T) {
	a, _ := newApp(t)
	token := a.registerAndLogin(t, "mila@example.com")

	rec := a.json(http.MethodPost, "/api/auth/register",
		`{"email":"mila@example.com","password":"secret-pass","full_name":"Mila"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, rec))

	form := url.Values{"username": {"mila@example.com"}, "password": {"wrong-pass"}}
	rec = a.do(http.MethodPost, "/api/auth/login", echo.MIMEApplicationForm, strings.NewReader(form.Encode()), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	rec = a.json(http.MethodGet, "/api/account/details", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := decode[handler.UserResponse](t, rec)
	assert.Equal(t, "mila@example.com", me.Email)

	rec = a.json(http.MethodPost, "/api/auth/forgot-password", `{"email":"nobody@example.com"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, auth.ForgotPasswordMessage, decode[handler.MessageResponse](t, rec).Message)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a, _ := newApp(t)

	rec := a.json(http.MethodGet, "/api/account/orders", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, rec))

	rec = a.json(http.MethodGet, "/api/account/orders", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 商品一覧は公開
	rec = a.json(http.MethodGet, "/api/account/products", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderLifecycle(t *testing.T) {
	a, seedAdmin := newApp(t)
	token := a.registerAndLogin(t, "mila@example.com")
	adminToken := seedAdmin("admin@example.com")

	rec := a.json(http.MethodGet, "/api/account/orders", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]usecase.OrderView](t, rec))

	rec = a.json(http.MethodPost, "/api/account/orders", `{"status":"PENDING","items":[]}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ARGUMENT", errorCode(t, rec))

	body := `{"status":"PENDING","total_price":"59.98","items":[
		{"product_id":1,"quantity":2,"color":"black","size":"M","price":"29.99"}]}`
	rec = a.json(http.MethodPost, "/api/account/orders", body, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[usecase.CreatedOrder](t, rec)
	assert.True(t, created.ConfirmationSent)
	assert.Equal(t, "59.98", created.TotalPrice.String())
	require.NotEmpty(t, created.ID)

	rec = a.json(http.MethodGet, "/api/account/orders/"+created.ID, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[usecase.OrderView](t, rec).Items, 1)

	// 他人からは見えない
	other := a.registerAndLogin(t, "other@example.com")
	rec = a.json(http.MethodGet, "/api/account/orders/"+created.ID, "", other)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// 一般ユーザーは管理画面に入れない
	rec = a.json(http.MethodGet, "/api/management/orders", "", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec))

	rec = a.json(http.MethodGet, "/api/management/orders", "", adminToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	list := decode[[]usecase.AdminOrderView](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].Ref)

	path := fmt.Sprintf("/api/management/orders/%d/status", list[0].ID)
	rec = a.json(http.MethodPut, path, `{"status":"LOST"}`, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.json(http.MethodPut, path, `{"status":"SHIPPED"}`, adminToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// 発送後は取り消せない
	rec = a.json(http.MethodDelete, "/api/account/order/"+created.ID, "", token)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_STATE", errorCode(t, rec))
}

func TestCancelPendingOrder(t *testing.T) {
	a, _ := newApp(t)
	token := a.registerAndLogin(t, "mila@example.com")

	body := `{"status":"PENDING","items":[{"product_id":1,"quantity":1,"color":"white","size":"L","price":"29.99"}]}`
	rec := a.json(http.MethodPost, "/api/account/orders", body, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := decode[usecase.CreatedOrder](t, rec).ID

	rec = a.json(http.MethodDelete, "/api/account/order/"+id, "", token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.json(http.MethodGet, "/api/account/orders/"+id, "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAndWishlist(t *testing.T) {
	a, _ := newApp(t)
	token := a.registerAndLogin(t, "mila@example.com")

	rec := a.json(http.MethodPost, "/api/account/cart", `{"product_id":1,"quantity":2,"color":"black","size":"S"}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.json(http.MethodPost, "/api/account/cart", `{"product_id":1,"quantity":1,"color":"black","size":"XXXL"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.json(http.MethodPost, "/api/account/cart", `{"product_id":999,"quantity":1,"color":"black","size":"S"}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.json(http.MethodDelete, "/api/account/cart/clear", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.json(http.MethodPost, "/api/account/wishlist", `{"product_id":1,"color":"white","size":"M"}`, token)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestNewsletterAndContactArePublic(t *testing.T) {
	a, _ := newApp(t)

	rec := a.json(http.MethodPost, "/api/account/add-to-newsletter", `{"email":"fan@example.com"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.json(http.MethodPost, "/api/account/add-to-newsletter", `{"email":"fan@example.com"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.json(http.MethodPost, "/api/management/contact",
		`{"name":"Ana","email":"ana@example.com","phone":"+38160000000","inquiry_type":"order","message":"Where is my tee?"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
