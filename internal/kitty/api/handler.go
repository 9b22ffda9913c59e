package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kittybank/backend/internal/kitty/domain"
	"github.com/kittybank/backend/internal/kitty/service"
)

// KittyHandler exposes the account and transaction services over HTTP.
type KittyHandler struct {
	accounts     *service.AccountService
	transactions *service.TransactionService
}

func NewKittyHandler(accounts *service.AccountService, transactions *service.TransactionService) *KittyHandler {
	return &KittyHandler{
		accounts:     accounts,
		transactions: transactions,
	}
}

// RegisterRoutes mounts the kitty endpoints on the given group.
func (h *KittyHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/accounts", h.CreateAccount)
	r.GET("/accounts", h.GetAccount)
	r.GET("/accounts/:id/transactions", h.ListTransactions)
	r.GET("/accounts/:id/available", h.IsAvailable)
	r.POST("/transactions", h.MakeTransaction)
}

// respondError maps domain error kinds to HTTP statuses. Anything else is a
// store-level fault and stays opaque to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// CreateAccount handles POST /accounts.
func (h *KittyHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var balance float64
	if req.Balance != nil {
		balance = *req.Balance
	}

	account, err := h.accounts.CreateAccount(c.Request.Context(), req.Name, balance)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// GetAccount handles GET /accounts?id=&name=.
func (h *KittyHandler) GetAccount(c *gin.Context) {
	var id int64
	if raw := c.Query("id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id: " + raw})
			return
		}
		id = parsed
	}

	account, err := h.accounts.GetAccount(c.Request.Context(), id, c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// MakeTransaction handles POST /transactions.
func (h *KittyHandler) MakeTransaction(c *gin.Context) {
	var req MakeTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	tx, err := h.transactions.MakeTransaction(c.Request.Context(), req.AccountID, *req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// ListTransactions handles GET /accounts/:id/transactions.
func (h *KittyHandler) ListTransactions(c *gin.Context) {
	id, ok := accountIDParam(c)
	if !ok {
		return
	}
	transactions, err := h.transactions.ListTransactions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	c.JSON(http.StatusOK, transactions)
}

// IsAvailable handles GET /accounts/:id/available.
func (h *KittyHandler) IsAvailable(c *gin.Context) {
	id, ok := accountIDParam(c)
	if !ok {
		return
	}
	available, err := h.transactions.IsAvailable(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

func accountIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id: " + c.Param("id")})
		return 0, false
	}
	return id, true
}
