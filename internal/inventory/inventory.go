package inventory

import (
	"errors"
	"time"
)

// ErrBookNotFound is returned when a book cannot be resolved.
var ErrBookNotFound = errors.New("book not found")

// ErrNotAvailable is returned when a borrow attempt finds no free copy. The
// claim and the availability check are one conditional update, so two callers
// racing for the last copy cannot both succeed.
var ErrNotAvailable = errors.New("book not available")

// ErrRenewNotEligible is returned when a loan is already returned or already
// renewed once.
var ErrRenewNotEligible = errors.New("loan not eligible for renewal")

// Book is a catalog entry. Qty is the number of copies currently available
// for borrowing and never goes below zero. ReturnDate is informational only:
// for a book with no free copies it carries the earliest due date across its
// active loans.
type Book struct {
	ID         int64      `json:"id"`
	ISBN       string     `json:"isbn"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	Qty        int        `json:"qty"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

// Loan is one borrow record. A loan is active while ReturnDate is nil.
// HasRenew flips false to true at most once, and only while active.
// Loans are never deleted; returned ones form the borrow history.
type Loan struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"book_id"`
	UserID     int64      `json:"user_id"`
	HasRenew   bool       `json:"has_renew"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

// LoanDetail is a loan joined with the display fields listings need.
type LoanDetail struct {
	Loan
	Book     Book   `json:"book"`
	Username string `json:"username"`
}
