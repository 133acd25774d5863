package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	cartdomain "github.com/smallbiznis/billdesk/internal/cart/domain"
)

type cartResponse struct {
	Items      []cartdomain.Line `json:"items"`
	Subtotal   float64           `json:"subtotal"`
	TotalBonus float64           `json:"totalBv"`
	Basis      string            `json:"basis"`
}

func (s *Server) GetCart(c *gin.Context) {
	basis, err := s.resolveBasis(c.Query("basis"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	lines := s.cartSvc.Lines()
	if lines == nil {
		lines = []cartdomain.Line{}
	}
	c.JSON(http.StatusOK, gin.H{"data": cartResponse{
		Items:      lines,
		Subtotal:   s.cartSvc.Subtotal(basis),
		TotalBonus: s.cartSvc.TotalBonus(),
		Basis:      string(basis),
	}})
}

type addCartItemRequest struct {
	ProductID int64 `json:"productId"`
}

func (s *Server) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.ProductID <= 0 {
		AbortWithError(c, newValidationError("productId", "invalid_product_id", "invalid product id"))
		return
	}

	if err := s.cartSvc.Add(c.Request.Context(), req.ProductID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.cartSvc.Lines()})
}

type updateCartItemRequest struct {
	Qty int `json:"qty"`
}

func (s *Server) UpdateCartItem(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.cartSvc.SetQuantity(c.Request.Context(), id, req.Qty); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.cartSvc.Lines()})
}

func (s *Server) RemoveCartItem(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.cartSvc.Remove(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.cartSvc.Lines()})
}

func (s *Server) ClearCart(c *gin.Context) {
	if err := s.cartSvc.Clear(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cleared": true}})
}

// resolveBasis falls back to the business profile's default when the
// request does not name a price basis.
func (s *Server) resolveBasis(raw string) (cartdomain.PriceBasis, error) {
	switch raw {
	case "":
		if s.profile.Get().DefaultPriceBasis == string(cartdomain.BasisMRP) {
			return cartdomain.BasisMRP, nil
		}
		return cartdomain.BasisDP, nil
	case string(cartdomain.BasisDP):
		return cartdomain.BasisDP, nil
	case string(cartdomain.BasisMRP):
		return cartdomain.BasisMRP, nil
	default:
		return "", newValidationError("basis", "invalid_basis", "basis must be dp or mrp")
	}
}
