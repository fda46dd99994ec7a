package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"foodshare/configs"
	"foodshare/entity"
	"foodshare/pkg/geo"
	"foodshare/repository"
	"foodshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubGeo struct{}

func (stubGeo) Coordinates(_ context.Context, address string) (geo.Coordinates, error) {
	if address == "nowhere" {
		return geo.Coordinates{}, geo.ErrNoResult
	}
	return geo.Coordinates{float64(len(address)), 0}, nil
}

func (stubGeo) Autocomplete(_ context.Context, text string) (map[string]geo.Coordinates, error) {
	return map[string]geo.Coordinates{text + " Road": {1, 2}}, nil
}

func (stubGeo) WalkingDistance(_ context.Context, from, to geo.Coordinates) (float64, error) {
	return (to[0] - from[0]) * (to[0] - from[0]), nil
}

type mailbox struct {
	mu   sync.Mutex
	sent []string
}

func (m *mailbox) Notify(_ context.Context, templateID, recipient string, _ map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, templateID+":"+recipient)
	return nil
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	store  *repository.Store
	mail   *mailbox
	cfg    *configs.Config
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, configs.SetupDatabase(db))

	cfg := &configs.Config{
		JWTSecret:      "routes-secret",
		JWTTTL:         time.Hour,
		BaseURL:        "http://foodshare.test",
		UploadsDir:     filepath.Join(dir, "uploads"),
		RequestTimeout: 5 * time.Second,
		SupportEmail:   "support@foodshare.test",
	}
	api := &testAPI{t: t, router: gin.New(), store: repository.NewStore(db), mail: &mailbox{}, cfg: cfg}
	RegisterRoutes(api.router, Deps{Config: cfg, Store: api.store, Geo: stubGeo{}, Notifier: api.mail})
	return api
}

type envelope struct {
	OK      bool            `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (a *testAPI) do(method, path, token string, form url.Values) (int, envelope) {
	a.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (a *testAPI) register(email, first, address string) string {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/auth/register", "", url.Values{
		"fname": {first}, "lname": {"Test"}, "email": {email},
		"address": {address}, "password": {"pw123"}, "repassword": {"pw123"},
	})
	require.Equal(a.t, http.StatusCreated, code, env.Error)

	code, env = a.do(http.MethodPost, "/auth/login", "", url.Values{"email": {email}, "password": {"pw123"}})
	require.Equal(a.t, http.StatusOK, code, env.Error)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))
	return out.Token
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	code, env := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.OK)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	api := newTestAPI(t)
	code, env := api.do(http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized", env.Error)

	code, _ = api.do(http.MethodGet, "/cart", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdminRoutesNeedAdminRole(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("bea@test.io", "Bea", "1 Main St")

	code, _ := api.do(http.MethodGet, "/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	adminToken, err := utils.GenerateToken(999, entity.RoleAdmin, api.cfg.JWTSecret, time.Minute)
	require.NoError(t, err)
	code, env := api.do(http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	users := decode[[]entity.User](t, env)
	assert.Len(t, users, 1)
}

func TestRegisterErrors(t *testing.T) {
	api := newTestAPI(t)
	api.register("bea@test.io", "Bea", "1 Main St")

	code, _ := api.do(http.MethodPost, "/auth/register", "", url.Values{
		"fname": {"Bea"}, "lname": {"T"}, "email": {"bea@test.io"},
		"address": {"1 Main St"}, "password": {"a"}, "repassword": {"a"},
	})
	assert.Equal(t, http.StatusConflict, code)

	code, env := api.do(http.MethodPost, "/auth/register", "", url.Values{
		"fname": {"Al"}, "lname": {"T"}, "email": {"al@test.io"},
		"address": {"nowhere"}, "password": {"a"}, "repassword": {"a"},
	})
	assert.Equal(t, http.StatusBadGateway, code)
	assert.NotContains(t, env.Error, "nowhere")

	code, _ = api.do(http.MethodPost, "/auth/login", "", url.Values{"email": {"bea@test.io"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAutocompleteNeedsAddress(t *testing.T) {
	api := newTestAPI(t)
	code, _ := api.do(http.MethodGet, "/autocomplete/address", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := api.do(http.MethodGet, "/autocomplete/address?address=Baker", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, decode[map[string][]float64](t, env), "Baker Road")
}

func TestOrderFlowOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	buyer := api.register("bea@test.io", "Bea", "1 Main St")
	seller := api.register("sam@test.io", "Sam", "22 High Street")

	// ร้าน + เมนู
	code, env := api.do(http.MethodPost, "/seller/restaurant", seller, url.Values{"name": {"Noodle Bar"}, "address": {"22 High Street"}})
	require.Equal(t, http.StatusCreated, code, env.Error)
	rest := decode[entity.Restaurant](t, env)

	code, _ = api.do(http.MethodPost, "/seller/open", seller, url.Values{"toggle": {"true"}})
	require.Equal(t, http.StatusOK, code)

	addItem := func(name, price string) uint {
		code, env := api.do(http.MethodPost, "/seller/items", seller, url.Values{
			"name": {name}, "price": {price}, "inmenu": {"true"}, "restrictions": {"vegan, halal"},
		})
		require.Equal(t, http.StatusCreated, code, env.Error)
		return decode[entity.FoodItem](t, env).ID
	}
	padThai := addItem("Pad Thai", "5.00")
	roll := addItem("Spring Roll", "2.50")

	code, env = api.do(http.MethodGet, "/restaurants", buyer, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	// ตะกร้า
	update := func(action string, item uint) (int, envelope) {
		return api.do(http.MethodPost, "/cart/update", buyer, url.Values{
			"action": {action}, "itemid": {strconv.FormatUint(uint64(item), 10)},
		})
	}
	for _, it := range []uint{padThai, padThai, roll} {
		code, env = update("increment", it)
		require.Equal(t, http.StatusOK, code, env.Error)
		assert.Equal(t, "Successful", env.Message)
	}
	code, _ = update("decrement", 9999)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = update("explode", padThai)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = api.do(http.MethodGet, "/restaurants/"+strconv.FormatUint(uint64(rest.ID), 10), buyer, nil)
	require.Equal(t, http.StatusOK, code)
	detail := decode[struct {
		Menu []map[string]any `json:"menu"`
		Cart map[string]int   `json:"cart"`
	}](t, env)
	assert.Len(t, detail.Menu, 2)
	assert.Equal(t, 2, detail.Cart[strconv.FormatUint(uint64(padThai), 10)])

	// checkout
	code, env = api.do(http.MethodPost, "/cart/checkout", buyer, nil)
	require.Equal(t, http.StatusCreated, code, env.Error)
	order := decode[entity.Order](t, env)
	assert.Equal(t, "12.50", order.Amount.StringFixed(2))
	assert.Equal(t, entity.OrderPlaced, order.Status)

	code, _ = api.do(http.MethodPost, "/cart/checkout", buyer, nil)
	assert.Equal(t, http.StatusConflict, code)

	orderForm := url.Values{"orderid": {strconv.FormatUint(uint64(order.ID), 10)}}

	// ผู้ซื้อกด ready ไม่ได้
	code, env = api.do(http.MethodPost, "/orders/ready", buyer, orderForm)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized", env.Error)

	code, env = api.do(http.MethodPost, "/orders/ready", seller, orderForm)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, "Successful", env.Message)
	code, _ = api.do(http.MethodPost, "/orders/ready", seller, orderForm)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = api.do(http.MethodPost, "/orders/collected", seller, orderForm)
	require.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodPost, "/orders/cancel", buyer, orderForm)
	assert.Equal(t, http.StatusConflict, code)

	// review
	code, env = api.do(http.MethodPost, "/reviews", buyer, url.Values{
		"orderid": orderForm["orderid"], "stars": {"4"}, "title": {"Great"}, "description": {"Hot and fast"},
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	code, _ = api.do(http.MethodPost, "/reviews", buyer, url.Values{"orderid": orderForm["orderid"], "stars": {"5"}})
	assert.Equal(t, http.StatusConflict, code)

	code, env = api.do(http.MethodGet, "/buyer/orders", buyer, nil)
	require.Equal(t, http.StatusOK, code)
	history := decode[[]struct {
		Status entity.OrderStatus `json:"status"`
		Review *int               `json:"review"`
	}](t, env)
	require.Len(t, history, 1)
	assert.Equal(t, entity.OrderCollected, history[0].Status)
	require.NotNil(t, history[0].Review)
	assert.Equal(t, 4, *history[0].Review)

	code, env = api.do(http.MethodGet, "/seller/dashboard", seller, nil)
	require.Equal(t, http.StatusOK, code)
	dash := decode[struct {
		Restaurant entity.Restaurant `json:"restaurant"`
	}](t, env)
	assert.Equal(t, "4.00", dash.Restaurant.AvgReview.StringFixed(2))
	assert.Equal(t, 1, dash.Restaurant.NumReviews)

	code, _ = api.do(http.MethodGet, "/orders/"+orderForm.Get("orderid")+"/invoice", buyer, nil)
	assert.Equal(t, http.StatusOK, code)

	api.mail.mu.Lock()
	defer api.mail.mu.Unlock()
	assert.Contains(t, api.mail.sent, "order_confirm_buyer:bea@test.io")
	assert.Contains(t, api.mail.sent, "order_confirm_seller:sam@test.io")
	assert.Contains(t, api.mail.sent, "order_ready:bea@test.io")
}

func TestContactForm(t *testing.T) {
	api := newTestAPI(t)
	code, env := api.do(http.MethodPost, "/contact", "", url.Values{
		"fname": {"Kim"}, "lname": {"Lee"}, "email": {"kim@test.io"}, "nature": {"Feedback"}, "message": {"Nice"},
	})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, _ = api.do(http.MethodPost, "/contact", "", url.Values{"fname": {"Kim"}})
	assert.Equal(t, http.StatusBadRequest, code)

	api.mail.mu.Lock()
	defer api.mail.mu.Unlock()
	assert.Equal(t, []string{"contact_us:support@foodshare.test"}, api.mail.sent)
}
