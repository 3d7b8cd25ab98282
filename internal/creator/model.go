package creator

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type WithdrawRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	BankDetails json.RawMessage `json:"bank_details" binding:"required"`
}

type WithdrawResult struct {
	PayoutID        string          `json:"payout_id"`
	TransactionID   int             `json:"transaction_id"`
	ProcessedAmount decimal.Decimal `json:"processed_amount"`
}

type KYCRequest struct {
	KYCStatus   string          `json:"kyc_status" binding:"required,oneof=pending verified rejected"`
	BankDetails json.RawMessage `json:"bank_details" binding:"required"`
}
