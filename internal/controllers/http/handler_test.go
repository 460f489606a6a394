package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"icafe-booking/internal/domain"
	"icafe-booking/internal/infra"
	"icafe-booking/internal/mocks"
	"icafe-booking/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const secret = "handler-secret"

var clock = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type fixture struct {
	router  *gin.Engine
	orders  *mocks.MockOrderRepository
	catalog *mocks.MockCatalogRepository
	gateway *mocks.MockPaymentGateway
	admins  *mocks.MockAdminRepository
	creds   *mocks.MockCredentialRepository
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		orders:  new(mocks.MockOrderRepository),
		catalog: new(mocks.MockCatalogRepository),
		gateway: new(mocks.MockPaymentGateway),
		admins:  new(mocks.MockAdminRepository),
		creds:   new(mocks.MockCredentialRepository),
	}

	orderSvc := services.NewOrderService(f.orders, f.catalog, f.gateway, nil, new(mocks.ManualScheduler))
	orderSvc.SetClock(func() time.Time { return clock })

	h := NewHandler(
		orderSvc,
		services.NewAdminService(f.admins),
		services.NewAuthService(f.creds, secret, time.Hour),
		services.NewComputerService(f.catalog),
	)
	f.router = gin.New()
	h.RegisterRoutes(f.router)
	return f
}

func token(t *testing.T, userID string, role domain.Role) string {
	t.Helper()
	email := "budi@example.com"
	if role == domain.RoleAdmin {
		email = "admin@example.com"
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func (f *fixture) do(method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func pendingOrder() *domain.Order {
	o := domain.NewOrder(
		domain.CustomerSnapshot{FirstName: "Budi", Email: "budi@example.com"},
		domain.ComputerSnapshot{Name: "Station 7", Code: "VIP-07", Category: domain.CategoryVIP},
		domain.PriceSnapshot{ID: "price-1", Price: decimal.NewFromInt(15000), IsActive: true},
		"cust-1", "pc-1", 2, clock.Add(time.Hour), clock,
	)
	o.ID = "order-1"
	return o
}

func TestHandler_Healthz(t *testing.T) {
	w := newFixture().do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_RequiresToken(t *testing.T) {
	f := newFixture()

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/orders/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/orders/me", "garbage", nil).Code)
}

func TestHandler_AdminRoutesRejectCustomers(t *testing.T) {
	f := newFixture()
	w := f.do(http.MethodGet, "/api/orders", token(t, "cust-1", domain.RoleCustomer), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	f.orders.AssertNotCalled(t, "FindAll", mock.Anything)
}

func TestHandler_CreateOrder(t *testing.T) {
	f := newFixture()
	f.catalog.On("FindCustomerByID", mock.Anything, "cust-1").Return(&domain.Customer{ID: "cust-1", FirstName: "Budi"}, nil)
	f.catalog.On("FindComputerByID", mock.Anything, "pc-1").Return(&domain.Computer{
		ID: "pc-1", Code: "VIP-07", Status: domain.ComputerAvailable, TypeID: "type-vip",
	}, nil)
	f.catalog.On("FindActivePriceByTypeID", mock.Anything, "type-vip").
		Return(&domain.TypePrice{ID: "price-1", Price: decimal.NewFromInt(15000), IsActive: true}, nil)
	f.orders.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	f.gateway.On("RequestTransaction", mock.Anything, mock.Anything).
		Return(&infra.PaymentResponse{Token: "snap-token", RedirectURL: "https://pay.example"}, nil)

	w := f.do(http.MethodPost, "/api/orders", token(t, "cust-1", domain.RoleCustomer), gin.H{
		"customerId":  "cust-1",
		"computerId":  "pc-1",
		"duration":    2,
		"bookingDate": "2026-03-14T10:00:00.000Z",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp infra.PaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "snap-token", resp.Token)
}

func TestHandler_CreateOrder_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		body   gin.H
		want   int
	}{
		{
			name:   "someone else's booking",
			userID: "cust-2",
			body:   gin.H{"customerId": "cust-1", "computerId": "pc-1", "duration": 1, "bookingDate": "2026-03-14T10:00:00.000Z"},
			want:   http.StatusForbidden,
		},
		{
			name:   "past booking date",
			userID: "cust-1",
			body:   gin.H{"customerId": "cust-1", "computerId": "pc-1", "duration": 1, "bookingDate": "2026-03-13T10:00:00.000Z"},
			want:   http.StatusBadRequest,
		},
		{
			name:   "unparseable date",
			userID: "cust-1",
			body:   gin.H{"customerId": "cust-1", "computerId": "pc-1", "duration": 1, "bookingDate": "tomorrow"},
			want:   http.StatusBadRequest,
		},
		{
			name:   "missing computer id",
			userID: "cust-1",
			body:   gin.H{"customerId": "cust-1", "duration": 1, "bookingDate": "2026-03-14T10:00:00.000Z"},
			want:   http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			w := f.do(http.MethodPost, "/api/orders", token(t, tt.userID, domain.RoleCustomer), tt.body)
			assert.Equal(t, tt.want, w.Code)
			f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_GetOrder(t *testing.T) {
	f := newFixture()
	f.orders.On("FindByID", mock.Anything, "order-1").Return(pendingOrder(), nil)
	f.orders.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	w := f.do(http.MethodGet, "/api/orders/order-1", token(t, "cust-1", domain.RoleCustomer), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp services.OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VIP-07", resp.ComputerCode)
	assert.True(t, decimal.NewFromInt(30000).Equal(resp.Price))

	w = f.do(http.MethodGet, "/api/orders/order-1", token(t, "cust-2", domain.RoleCustomer), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(http.MethodGet, "/api/orders/missing", token(t, "cust-1", domain.RoleCustomer), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_PaymentNotification(t *testing.T) {
	f := newFixture()
	order := pendingOrder()
	f.orders.On("FindByID", mock.Anything, "order-1").Return(order, nil)
	f.gateway.On("GetTransactionStatus", mock.Anything, "order-1").
		Return(&infra.TransactionStatus{OrderID: "order-1", TransactionStatus: "settlement", Raw: json.RawMessage(`{}`)}, nil)
	f.orders.On("SettleOrder", mock.Anything, "order-1", "pc-1").Return(true, nil)

	w := f.do(http.MethodPost, "/api/payments/notification", "", gin.H{"order_id": "order-1", "transaction_status": "settlement"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StatusSuccess, order.Status)
	f.orders.AssertExpectations(t)
}

func TestHandler_CheckOrderStatus_ReturnsGatewayPayload(t *testing.T) {
	f := newFixture()
	f.orders.On("FindByID", mock.Anything, "order-1").Return(pendingOrder(), nil)
	f.gateway.On("GetTransactionStatus", mock.Anything, "order-1").Return(&infra.TransactionStatus{
		OrderID: "order-1", TransactionStatus: "pending",
		Raw: json.RawMessage(`{"order_id":"order-1","transaction_status":"pending"}`),
	}, nil)

	w := f.do(http.MethodGet, "/api/orders/order-1/status", token(t, "cust-1", domain.RoleCustomer), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"order_id":"order-1","transaction_status":"pending"}`, w.Body.String())
}

func TestHandler_UpdateAdmin_Conflict(t *testing.T) {
	f := newFixture()
	me := &domain.Admin{ID: "admin-1", Email: "admin@example.com"}
	f.admins.On("FindByEmail", mock.Anything, "admin@example.com").Return(me, nil)
	f.admins.On("FindByID", mock.Anything, "admin-1").Return(me, nil)
	f.admins.On("FindByPhoneNumber", mock.Anything, "0833").Return(&domain.Admin{ID: "admin-2"}, nil)

	w := f.do(http.MethodPut, "/api/admins", token(t, "admin-1", domain.RoleAdmin), gin.H{
		"adminId": "admin-1", "fullName": "X", "phoneNumber": "0833",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_DeleteAdmin(t *testing.T) {
	f := newFixture()
	me := &domain.Admin{ID: "admin-1", Email: "admin@example.com"}
	f.admins.On("FindByEmail", mock.Anything, "admin@example.com").Return(me, nil)
	f.admins.On("FindByID", mock.Anything, "admin-1").Return(me, nil)
	f.admins.On("DeleteAndDeactivate", mock.Anything, me).Return(nil)

	assert.Equal(t, http.StatusForbidden,
		f.do(http.MethodDelete, "/api/admins/admin-2", token(t, "admin-1", domain.RoleAdmin), nil).Code)
	assert.Equal(t, http.StatusNoContent,
		f.do(http.MethodDelete, "/api/admins/admin-1", token(t, "admin-1", domain.RoleAdmin), nil).Code)
}

func TestHandler_Login_Unauthorized(t *testing.T) {
	f := newFixture()
	f.creds.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	w := f.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@example.com", "password": "x"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestParseBookingDate(t *testing.T) {
	got, err := parseBookingDate("2026-03-14T10:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), got)

	got, err = parseBookingDate("2026-03-14 10:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local), got)

	_, err = parseBookingDate("14/03/2026")
	assert.Error(t, err)
}

func TestHandler_ListComputers(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListComputers", mock.Anything).Return([]domain.Computer{
		{ID: "pc-1", Code: "VIP-07", Status: domain.ComputerAvailable},
	}, nil)

	w := f.do(http.MethodGet, "/api/computers", token(t, "cust-1", domain.RoleCustomer), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got []domain.Computer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "VIP-07", got[0].Code)
}
