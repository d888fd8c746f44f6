package catalog

import (
	"context"

	"mylib/internal/inventory"
)

// Store is the read-only slice of the inventory store the query service
// composes with the pagination engine.
type Store interface {
	CountBooks(ctx context.Context) (int, error)
	ListBooks(ctx context.Context, offset, limit int) ([]inventory.Book, error)
	CountActiveLoans(ctx context.Context, userID int64) (int, error)
	ListActiveLoans(ctx context.Context, userID int64, offset, limit int) ([]inventory.LoanDetail, error)
	CountHistoryLoans(ctx context.Context, userID int64) (int, error)
	ListHistoryLoans(ctx context.Context, userID int64, offset, limit int) ([]inventory.LoanDetail, error)
	CountAllLoans(ctx context.Context) (int, error)
	ListAllLoans(ctx context.Context, offset, limit int) ([]inventory.LoanDetail, error)
}

// BookPage is one page of the catalog plus the totals callers need to render
// pagination controls without a second request.
type BookPage struct {
	Books      []inventory.Book `json:"books"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
}

// LoanPage is one page of a loan listing plus totals.
type LoanPage struct {
	Loans      []inventory.LoanDetail `json:"loans"`
	Total      int                    `json:"total"`
	TotalPages int                    `json:"total_pages"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
}
