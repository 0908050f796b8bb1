package soap

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// Handler exposes the legacy envelope protocol over the checkout
// product store. PatchProduct and DeleteProduct are acknowledged stubs:
// they answer with a well-formed envelope and never touch storage.
type Handler struct {
	products repository.ProductRepository
	logger   *logrus.Logger
}

func NewHandler(products repository.ProductRepository, logger *logrus.Logger) *Handler {
	return &Handler{
		products: products,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/wsdl", h.serveWSDL)
	router.POST("/wsdl", h.dispatch)
}

func (h *Handler) serveWSDL(c *gin.Context) {
	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(productsServiceWSDL))
}

func (h *Handler) dispatch(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.writeFault(c, FaultClient, "unreadable request body")
		return
	}

	var envelope requestEnvelope
	if err := xml.Unmarshal(raw, &envelope); err != nil {
		h.writeFault(c, FaultClient, fmt.Sprintf("malformed envelope: %v", err))
		return
	}

	ctx := c.Request.Context()
	body := envelope.Body
	switch {
	case body.CreateProduct != nil:
		h.createProduct(c, ctx, body.CreateProduct)
	case body.GetProduct != nil:
		h.getProduct(c, ctx, body.GetProduct)
	case body.PatchProduct != nil:
		h.writeSuccess(c, patchProductResponse{Result: "PatchProduct is not implemented yet."})
	case body.DeleteProduct != nil:
		h.writeSuccess(c, deleteProductResponse{Result: "DeleteProduct is not implemented yet."})
	default:
		h.writeFault(c, FaultClient, "unknown operation")
	}
}

func (h *Handler) createProduct(c *gin.Context, ctx context.Context, args *createProductArgs) {
	if strings.TrimSpace(args.Name) == "" || strings.TrimSpace(args.About) == "" {
		h.writeFault(c, FaultClient, "name and about are required")
		return
	}
	if args.Price <= 0 {
		h.writeFault(c, FaultClient, "price must be positive")
		return
	}

	product := &domain.Product{
		Name:  args.Name,
		About: args.About,
		Price: args.Price,
	}
	if _, err := h.products.Create(ctx, product); err != nil {
		h.logger.Warnf("soap create product: %v", err)
		h.writeFault(c, FaultServer, fmt.Sprintf("failed to create product: %v", err))
		return
	}

	h.writeSuccess(c, createProductResponse{
		Result: fmt.Sprintf("Product %s created with id %d.", product.Name, product.ID),
	})
}

func (h *Handler) getProduct(c *gin.Context, ctx context.Context, args *getProductArgs) {
	id, err := strconv.ParseInt(args.ID, 10, 64)
	if err != nil || id <= 0 {
		h.writeFault(c, FaultClient, "invalid product id")
		return
	}

	product, err := h.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeFault(c, FaultClient, fmt.Sprintf("product %d not found", id))
			return
		}
		h.logger.Warnf("soap get product: %v", err)
		h.writeFault(c, FaultServer, fmt.Sprintf("failed to fetch product: %v", err))
		return
	}

	h.writeSuccess(c, getProductResponse{
		ID:    product.ID,
		Name:  product.Name,
		About: product.About,
		Price: product.Price,
	})
}

func (h *Handler) writeSuccess(c *gin.Context, payload any) {
	c.XML(http.StatusOK, successEnvelope(payload))
}

// writeFault answers 500 with a fault envelope, per SOAP 1.1.
func (h *Handler) writeFault(c *gin.Context, code, message string) {
	c.XML(http.StatusInternalServerError, faultEnvelope(code, message))
}
