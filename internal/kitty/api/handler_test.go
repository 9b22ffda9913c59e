package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittybank/backend/internal/kitty/adapter/repo"
	"github.com/kittybank/backend/internal/kitty/domain"
	"github.com/kittybank/backend/internal/kitty/service"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := repo.NewMemoryStore()
	accountSvc := service.NewAccountService(store)
	txSvc := service.NewTransactionService(store, store.Transactions())
	h := NewKittyHandler(accountSvc, txSvc)

	r := gin.New()
	v1 := r.Group("/api/v1")
	h.RegisterRoutes(v1)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAccountEndpoint(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/accounts", `{"name":"Alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var account domain.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))
	assert.NotZero(t, account.ID)
	assert.Equal(t, "Alice", account.Name)
	assert.Equal(t, 0.0, account.Balance)

	// Explicit starting balance.
	w = doJSON(r, http.MethodPost, "/api/v1/accounts", `{"name":"Bob","balance":12.5}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))
	assert.Equal(t, 12.5, account.Balance)
}

func TestCreateAccountEndpoint_Errors(t *testing.T) {
	r := newTestRouter()

	// Missing name fails binding.
	w := doJSON(r, http.MethodPost, "/api/v1/accounts", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Blank and comma-bearing names fail domain validation.
	w = doJSON(r, http.MethodPost, "/api/v1/accounts", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(r, http.MethodPost, "/api/v1/accounts", `{"name":"a,b"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate name conflicts.
	w = doJSON(r, http.MethodPost, "/api/v1/accounts", `{"name":"Alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/api/v1/accounts", `{"name":"Alice"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetAccountEndpoint(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/accounts", `{"name":"Alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/accounts?name=Alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	var account domain.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))

	w = doJSON(r, http.MethodGet, "/api/v1/accounts?id=1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/accounts", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/accounts?id=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/accounts?name=nobody", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMakeTransactionEndpoint(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/accounts", `{"name":"Alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/transactions", `{"account_id":1,"amount":5}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var tx domain.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tx))
	assert.Equal(t, int64(1), tx.AccountID)
	assert.Equal(t, 5.0, tx.Amount)

	// Missing amount fails binding.
	w = doJSON(r, http.MethodPost, "/api/v1/transactions", `{"account_id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing account id fails binding.
	w = doJSON(r, http.MethodPost, "/api/v1/transactions", `{"amount":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown account.
	w = doJSON(r, http.MethodPost, "/api/v1/transactions", `{"account_id":99,"amount":5}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTransactionsEndpoint(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/accounts", `{"name":"Alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/accounts/1/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	for _, body := range []string{
		`{"account_id":1,"amount":5}`,
		`{"account_id":1,"amount":-2}`,
	} {
		w = doJSON(r, http.MethodPost, "/api/v1/transactions", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/v1/accounts/1/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var transactions []domain.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &transactions))
	require.Len(t, transactions, 2)
	assert.Equal(t, 5.0, transactions[0].Amount)
	assert.Equal(t, -2.0, transactions[1].Amount)

	w = doJSON(r, http.MethodGet, "/api/v1/accounts/abc/transactions", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/accounts/99/transactions", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIsAvailableEndpoint(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/accounts", `{"name":"Alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	check := func(want bool) {
		t.Helper()
		w := doJSON(r, http.MethodGet, "/api/v1/accounts/1/available", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Available bool `json:"available"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, want, resp.Available)
	}

	check(false)

	for _, body := range []string{
		`{"account_id":1,"amount":5}`,
		`{"account_id":1,"amount":4}`,
		`{"account_id":1,"amount":2}`,
	} {
		w = doJSON(r, http.MethodPost, "/api/v1/transactions", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	check(true)

	w = doJSON(r, http.MethodPost, "/api/v1/transactions", `{"account_id":1,"amount":-2}`)
	require.Equal(t, http.StatusCreated, w.Code)
	check(false)

	w = doJSON(r, http.MethodGet, "/api/v1/accounts/99/available", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
