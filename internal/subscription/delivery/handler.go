package delivery

import (
	"errors"
	"net/http"

	"interest-registry/internal/subscription/domain"
	"interest-registry/internal/subscription/dto"
	"interest-registry/internal/subscription/usecase"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler handles subscribe/unsubscribe HTTP requests
type SubscriptionHandler struct {
	subscriptionUsecase usecase.SubscriptionUsecase
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionUsecase usecase.SubscriptionUsecase) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUsecase: subscriptionUsecase,
	}
}

// Subscribe registers an expo token for the seller's interest
// POST /subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	token, err := h.subscriptionUsecase.Subscribe(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubscribeResponse{
		Status:    "succeeded",
		ExpoToken: token,
	})
}

// Unsubscribe removes one or all expo tokens for the seller's interest
// POST /unsubscribe
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	var req dto.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	deleted, err := h.subscriptionUsecase.Unsubscribe(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnsubscribeResponse{Deleted: deleted})
}

// ListSubscriptions returns the subscriptions stored for an interest
// GET /api/admin/interests/:interest/subscriptions
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	interest := domain.Interest(c.Param("interest"))

	subs, err := h.subscriptionUsecase.ListSubscriptions(c.Request.Context(), interest)
	if err != nil {
		respondError(c, err)
		return
	}

	// Return empty array instead of null
	if subs == nil {
		subs = []domain.Subscription{}
	}

	c.JSON(http.StatusOK, dto.SubscriptionListResponse{
		Interest:      interest,
		Subscriptions: subs,
		Count:         len(subs),
	})
}

// bindError reports malformed bodies as validation failures
func bindError(err error) error {
	return &domain.ValidationError{Fields: []domain.FieldError{{Message: "invalid request body: " + err.Error()}}}
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := dto.ErrorBody{Message: err.Error()}

	var (
		verr *domain.ValidationError
		nerr *domain.NotFoundError
		cerr *domain.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		for _, f := range verr.Fields {
			if f.Field != "" {
				body.Fields = append(body.Fields, f)
			}
		}
	case errors.As(err, &nerr):
		status = http.StatusNotFound
	case errors.As(err, &cerr):
		status = http.StatusConflict
	}

	c.JSON(status, dto.ErrorResponse{
		Status: "failed",
		Error:  body,
	})
}
