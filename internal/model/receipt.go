package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt is a purchased wish list ready to be written to disk.
type Receipt struct {
	ID       uuid.UUID
	Username string
	// File name under the receipts directory, derived from Username.
	FileName string
	// Catalog-format records of the purchased parts.
	Records [][]string
	Total   decimal.Decimal
	Units   int
}
