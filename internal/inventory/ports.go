package inventory

import (
	"context"
	"time"
)

// Store is the contract for persisted book and loan state. It is the only
// place that mutates Book.Qty or loan rows; every mutating operation is
// atomic, so callers never observe a loan row without its matching quantity
// change.
type Store interface {
	CountBooks(ctx context.Context) (int, error)
	ListBooks(ctx context.Context, offset, limit int) ([]Book, error)
	FindByISBN(ctx context.Context, isbn string) (Book, error)

	// TryClaimUnit takes one copy of the book if any is free; it reports
	// whether a copy was taken. ReleaseUnit puts one copy back.
	TryClaimUnit(ctx context.Context, bookID int64) (bool, error)
	ReleaseUnit(ctx context.Context, bookID int64) error

	// BorrowBook claims one copy and inserts the loan row in a single
	// transaction. It returns the new loan id, or ErrNotAvailable when no
	// copy is free.
	BorrowBook(ctx context.Context, bookID, userID int64, start, end time.Time) (int64, error)

	// ReturnBook closes the oldest active loan for the (book, user) pair and
	// releases the copy, atomically. It reports false when no active loan
	// existed; that is a no-op, not an error.
	ReturnBook(ctx context.Context, bookID, userID int64) (bool, error)

	// RenewLoan extends an active, not-yet-renewed loan by extension and
	// marks it renewed. It returns the new due date, or ErrRenewNotEligible.
	RenewLoan(ctx context.Context, loanID, bookID, userID int64, extension time.Duration) (time.Time, error)

	CountActiveLoans(ctx context.Context, userID int64) (int, error)
	ListActiveLoans(ctx context.Context, userID int64, offset, limit int) ([]LoanDetail, error)
	CountHistoryLoans(ctx context.Context, userID int64) (int, error)
	ListHistoryLoans(ctx context.Context, userID int64, offset, limit int) ([]LoanDetail, error)
	CountAllLoans(ctx context.Context) (int, error)
	ListAllLoans(ctx context.Context, offset, limit int) ([]LoanDetail, error)
}
