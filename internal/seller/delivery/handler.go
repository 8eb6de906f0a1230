package delivery

import (
	"net/http"

	sellerdomain "interest-registry/internal/seller/domain"
	"interest-registry/internal/seller/repository"

	"github.com/gin-gonic/gin"
)

// SellerHandler exposes seller registration to operators
type SellerHandler struct {
	sellerRepo repository.SellerRepository
}

func NewSellerHandler(sellerRepo repository.SellerRepository) *SellerHandler {
	return &SellerHandler{sellerRepo: sellerRepo}
}

type CreateSellerRequest struct {
	Name  string `json:"name" binding:"required"`
	Token string `json:"token" binding:"required"`
}

// CreateSeller registers a seller and the token its clients present
// POST /api/admin/sellers
func (h *SellerHandler) CreateSeller(c *gin.Context) {
	var req CreateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.sellerRepo.FindByToken(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "seller token already registered"})
		return
	}

	seller := &sellerdomain.Seller{Name: req.Name, Token: req.Token}
	if err := h.sellerRepo.Create(c.Request.Context(), seller); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, seller)
}
