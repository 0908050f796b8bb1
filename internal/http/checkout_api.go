package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/domain"
	"storefront/internal/games"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// displayLocation is the timezone order timestamps are rendered in.
var displayLocation = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		return time.UTC
	}
	return loc
}()

const displayTimeFormat = "02/01/2006 15:04:05"

// CheckoutHandler wires the checkout REST routes to domain services.
type CheckoutHandler struct {
	products service.ProductService
	users    service.UserService
	orders   service.OrderService
	games    games.Client
	tokens   *auth.TokenManager
}

// NewCheckoutHandler builds the handler; tokens may be nil, in which
// case login is unavailable and no route is gated. A nil games client
// leaves the proxy routes unregistered.
func NewCheckoutHandler(products service.ProductService, users service.UserService, orders service.OrderService, gamesClient games.Client, tokens *auth.TokenManager) *CheckoutHandler {
	return &CheckoutHandler{
		products: products,
		users:    users,
		orders:   orders,
		games:    gamesClient,
		tokens:   tokens,
	}
}

func (h *CheckoutHandler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestIDMiddleware())

	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)
	router.POST("/products", h.createProduct)
	router.PUT("/products/:id", h.replaceProduct)
	router.PATCH("/products/:id", h.patchProduct)
	router.DELETE("/products/:id", h.deleteProduct)

	router.GET("/users", h.listUsers)
	router.GET("/users/:id", h.getUser)
	router.POST("/users", h.createUser)
	router.PUT("/users/:id", h.replaceUser)
	router.PATCH("/users/:id", h.patchUser)

	orderWrites := []gin.HandlerFunc{h.createOrder}
	if h.tokens != nil {
		router.POST("/login", h.login)
		orderWrites = append([]gin.HandlerFunc{requireAuth(h.tokens)}, orderWrites...)
	}
	router.POST("/orders", orderWrites...)
	router.GET("/orders", h.listOrders)
	router.GET("/orders/:id", h.getOrder)

	if h.games != nil {
		router.GET("/f2p-games", h.listGames)
		router.GET("/f2p-games/:id", h.getGame)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// pathID rejects only non-numeric ids; any numeric id becomes a lookup
// and unknown ones surface as 404.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// --- products ---

type productRequest struct {
	Name  string  `json:"name" binding:"required"`
	About string  `json:"about" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

type productPatchRequest struct {
	Name  *string  `json:"name"`
	About *string  `json:"about"`
	Price *float64 `json:"price"`
}

func (h *CheckoutHandler) listProducts(c *gin.Context) {
	filter := repository.ProductFilter{
		Name:  c.Query("name"),
		About: c.Query("about"),
	}
	if raw := c.Query("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price parameter"})
			return
		}
		filter.MaxPrice = &price
	}

	products, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products", "details": err.Error()})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *CheckoutHandler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.renderProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CheckoutHandler) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.Create(c.Request.Context(), domain.Product{
		Name:  req.Name,
		About: req.About,
		Price: req.Price,
	})
	if err != nil {
		h.renderProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CheckoutHandler) replaceProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.Replace(c.Request.Context(), domain.Product{
		ID:    id,
		Name:  req.Name,
		About: req.About,
		Price: req.Price,
	})
	if err != nil {
		h.renderProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CheckoutHandler) patchProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req productPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.Patch(c.Request.Context(), id, repository.ProductPatch{
		Name:  req.Name,
		About: req.About,
		Price: req.Price,
	})
	if err != nil {
		h.renderProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CheckoutHandler) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.products.Delete(c.Request.Context(), id)
	if err != nil {
		h.renderProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CheckoutHandler) renderProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidProduct), errors.Is(err, service.ErrEmptyPatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product storage failure", "details": err.Error()})
	}
}

// --- users ---

type userRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type userPatchRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (h *CheckoutHandler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users", "details": err.Error()})
		return
	}
	if users == nil {
		users = []domain.PublicUser{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *CheckoutHandler) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.renderUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *CheckoutHandler) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), service.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.renderUserError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *CheckoutHandler) replaceUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Replace(c.Request.Context(), id, service.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.renderUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *CheckoutHandler) patchUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req userPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Patch(c.Request.Context(), id, service.UserPatchInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.renderUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *CheckoutHandler) renderUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidUser), errors.Is(err, service.ErrEmptyPatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user storage failure", "details": err.Error()})
	}
}

// --- auth ---

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *CheckoutHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failure", "details": err.Error()})
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failure", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// --- orders ---

type createOrderRequest struct {
	UserID     int64   `json:"userId"`
	ProductIDs []int64 `json:"productIds"`
}

// OrderResponse renders an order joined with its user and products;
// timestamps are formatted in the display timezone.
type OrderResponse struct {
	ID        int64             `json:"id"`
	Total     float64           `json:"total"`
	Payment   bool              `json:"payment"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
	User      domain.PublicUser `json:"user"`
	Products  []domain.Product  `json:"products"`
}

func orderToResponse(detail domain.OrderDetail) OrderResponse {
	products := detail.Products
	if products == nil {
		products = []domain.Product{}
	}
	return OrderResponse{
		ID:        detail.ID,
		Total:     detail.Total,
		Payment:   detail.Payment,
		CreatedAt: detail.CreatedAt.In(displayLocation).Format(displayTimeFormat),
		UpdatedAt: detail.UpdatedAt.In(displayLocation).Format(displayTimeFormat),
		User:      detail.User,
		Products:  products,
	}
}

func (h *CheckoutHandler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), req.UserID, req.ProductIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder),
			errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, service.ErrUnknownProducts):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *CheckoutHandler) listOrders(c *gin.Context) {
	details, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders", "details": err.Error()})
		return
	}

	resp := make([]OrderResponse, len(details))
	for i := range details {
		resp[i] = orderToResponse(details[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orderToResponse(*detail))
}

// --- free-to-play games proxy ---

func (h *CheckoutHandler) listGames(c *gin.Context) {
	data, err := h.games.ListGames(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch games", "details": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *CheckoutHandler) getGame(c *gin.Context) {
	data, err := h.games.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, games.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch game", "details": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
