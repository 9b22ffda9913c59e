package api

// CreateAccountReq is the JSON body for POST /accounts. Balance is a pointer
// so "absent" is distinguishable from an explicit 0; absent defaults to 0.
type CreateAccountReq struct {
	Name    string   `json:"name" binding:"required"`
	Balance *float64 `json:"balance"`
}

// MakeTransactionReq is the JSON body for POST /transactions. Both fields are
// required; Amount is a pointer so an explicit 0 still passes binding.
type MakeTransactionReq struct {
	AccountID int64    `json:"account_id" binding:"required"`
	Amount    *float64 `json:"amount" binding:"required"`
}
