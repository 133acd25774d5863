package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/billdesk/internal/catalog/domain"
)

func (s *Server) ListProducts(c *gin.Context) {
	products, err := s.catalogSvc.List(c.Request.Context(), catalogdomain.ListRequest{
		Category: c.Query("category"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req catalogdomain.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.catalogSvc.Add(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": product})
}

func (s *Server) GetProductByID(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	product, err := s.catalogSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

type purchaseStockRequest struct {
	Qty int `json:"qty"`
}

// PurchaseStock records an inbound stock purchase for a product.
func (s *Server) PurchaseStock(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req purchaseStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Qty <= 0 {
		AbortWithError(c, newValidationError("qty", "invalid_qty", "qty must be positive"))
		return
	}

	if err := s.catalogSvc.AdjustStock(c.Request.Context(), id, req.Qty); err != nil {
		AbortWithError(c, err)
		return
	}

	product, err := s.catalogSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

// DeleteProduct removes a product and drops any cart line holding it.
// The line's reservation is written off rather than released, since the
// product no longer exists to receive the stock back.
func (s *Server) DeleteProduct(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.catalogSvc.Remove(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	s.cartSvc.Evict(c.Request.Context(), id)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": id}})
}

func (s *Server) ClearProducts(c *gin.Context) {
	for _, line := range s.cartSvc.Lines() {
		s.cartSvc.Evict(c.Request.Context(), line.ProductID)
	}
	if err := s.catalogSvc.Clear(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cleared": true}})
}

func (s *Server) ListCategories(c *gin.Context) {
	categories, err := s.catalogSvc.Categories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func parseProductID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, newValidationError("id", "invalid_id", "invalid product id")
	}
	return id, nil
}
