package lending

import (
	"context"
	"errors"
	"time"

	"mylib/internal/inventory"
	"mylib/internal/user"
)

// ErrBorrowLimitReached is returned when a user already holds the maximum
// number of simultaneous active loans.
var ErrBorrowLimitReached = errors.New("maximum limit of borrowed books reached")

const (
	// BorrowLimit is the maximum number of simultaneous active loans per user.
	BorrowLimit = 10

	// LoanPeriod is the initial loan duration.
	LoanPeriod = 30 * 24 * time.Hour

	// RenewExtension is added to the due date on a successful renewal.
	RenewExtension = 30 * 24 * time.Hour
)

// Inventory is the slice of the inventory store the lending service mutates
// through. All methods are atomic in the store.
type Inventory interface {
	FindByISBN(ctx context.Context, isbn string) (inventory.Book, error)
	CountActiveLoans(ctx context.Context, userID int64) (int, error)
	BorrowBook(ctx context.Context, bookID, userID int64, start, end time.Time) (int64, error)
	ReturnBook(ctx context.Context, bookID, userID int64) (bool, error)
	RenewLoan(ctx context.Context, loanID, bookID, userID int64, extension time.Duration) (time.Time, error)
}

// UserResolver resolves usernames to user records. Identity itself (tokens,
// passwords) lives elsewhere; the lending service only needs the id.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

// Receipt acknowledges a successful borrow.
type Receipt struct {
	LoanID  int64     `json:"loan_id"`
	BookID  int64     `json:"book_id"`
	UserID  int64     `json:"user_id"`
	DueDate time.Time `json:"due_date"`
}
