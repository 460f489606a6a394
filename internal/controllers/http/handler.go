package http

import (
	"errors"
	"log/slog"
	"net/http"

	"icafe-booking/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	orders    *services.OrderService
	admins    *services.AdminService
	auth      *services.AuthService
	computers *services.ComputerService
}

func NewHandler(o *services.OrderService, a *services.AdminService, auth *services.AuthService, c *services.ComputerService) *Handler {
	return &Handler{orders: o, admins: a, auth: auth, computers: c}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/payments/notification", h.PaymentNotification)

	authed := api.Group("", Authenticate(h.auth))
	authed.GET("/computers", h.ListComputers)
	authed.POST("/orders", h.CreateOrder)
	authed.GET("/orders/me", h.GetMyOrders)
	authed.GET("/orders/:id", h.GetOrder)
	authed.GET("/orders/:id/status", h.CheckOrderStatus)

	admin := authed.Group("", RequireAdmin())
	admin.GET("/orders", h.GetAllOrders)
	admin.POST("/admins", h.CreateAdmin)
	admin.GET("/admins/me", h.GetCurrentAdmin)
	admin.GET("/admins/:id", h.GetAdmin)
	admin.PUT("/admins", h.UpdateAdmin)
	admin.DELETE("/admins/:id", h.DeleteAdmin)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.auth.RegisterCustomer(c.Request.Context(), services.RegisterCustomerRequest{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (h *Handler) ListComputers(c *gin.Context) {
	computers, err := h.computers.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, computers)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := parseBookingDate(req.BookingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.orders.CreateOrder(c.Request.Context(), identity(c), services.CreateOrderRequest{
		CustomerID:  req.CustomerID,
		ComputerID:  req.ComputerID,
		Duration:    req.Duration,
		BookingDate: start,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *Handler) GetMyOrders(c *gin.Context) {
	caller := identity(c)
	orders, err := h.orders.GetAll(c.Request.Context(), &caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetAllOrders(c *gin.Context) {
	orders, err := h.orders.GetAll(c.Request.Context(), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CheckOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.orders.GetOrder(ctx, identity(c), id); err != nil {
		respondError(c, err)
		return
	}

	raw, err := h.orders.UpdateStatus(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *Handler) PaymentNotification(c *gin.Context) {
	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.orders.UpdateStatus(c.Request.Context(), req.OrderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) CreateAdmin(c *gin.Context) {
	var req RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.auth.RegisterAdmin(c.Request.Context(), services.RegisterAdminRequest{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, services.NewAdminResponse(admin))
}

func (h *Handler) GetCurrentAdmin(c *gin.Context) {
	admin, err := h.admins.Authenticate(c.Request.Context(), identity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (h *Handler) GetAdmin(c *gin.Context) {
	admin, err := h.admins.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (h *Handler) UpdateAdmin(c *gin.Context) {
	var req UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.admins.Update(c.Request.Context(), identity(c), services.UpdateAdminRequest{
		AdminID:     req.AdminID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (h *Handler) DeleteAdmin(c *gin.Context) {
	if err := h.admins.Delete(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
