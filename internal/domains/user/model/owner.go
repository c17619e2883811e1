package model

import "dormhub/shared/model"

const (
	OwnerTableName  = "dorm_owners"
	OwnerEntityName = "dorm_owner"

	OwnerFieldID        = "id"
	OwnerFieldUserID    = "user_id"
	OwnerFieldBankToken = "bank_token"
)

// Owner links a user account to dorm ownership. BankToken holds the
// payout token registered with the payment provider, never raw bank data.
type Owner struct {
	ID        int64   `db:"id"`
	UserID    int64   `db:"user_id"`
	BankToken *string `db:"bank_token"`
	model.Metadata
}
