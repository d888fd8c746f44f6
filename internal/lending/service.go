package lending

import (
	"context"
	"time"
)

// Service enforces the borrow, return and renew rules. It is the only caller
// of the inventory store's mutating operations.
type Service struct {
	store Inventory
	users UserResolver
	now   func() time.Time
}

func NewService(store Inventory, users UserResolver) *Service {
	return &Service{store: store, users: users, now: time.Now}
}

// RegisterBorrow lends one copy of the book identified by isbn to the named
// user. The borrow-limit check runs first; the stock check is the atomic
// claim inside BorrowBook itself, never a separate availability probe, so two
// users racing for the last copy cannot both win.
func (s *Service) RegisterBorrow(ctx context.Context, isbn, username string) (Receipt, error) {
	book, err := s.store.FindByISBN(ctx, isbn)
	if err != nil {
		return Receipt{}, err
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return Receipt{}, err
	}

	active, err := s.store.CountActiveLoans(ctx, u.ID)
	if err != nil {
		return Receipt{}, err
	}
	if active >= BorrowLimit {
		return Receipt{}, ErrBorrowLimitReached
	}

	start := s.now()
	end := start.Add(LoanPeriod)
	loanID, err := s.store.BorrowBook(ctx, book.ID, u.ID, start, end)
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{LoanID: loanID, BookID: book.ID, UserID: u.ID, DueDate: end}, nil
}

// ReturnBorrow closes the named user's oldest active loan of the book.
// Returning a book that is not on loan is idempotent: the call succeeds and
// reports returned=false, and no quantity changes.
func (s *Service) ReturnBorrow(ctx context.Context, isbn, username string) (bool, error) {
	book, err := s.store.FindByISBN(ctx, isbn)
	if err != nil {
		return false, err
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return s.store.ReturnBook(ctx, book.ID, u.ID)
}

// RenewBorrow extends an active, not-yet-renewed loan once and returns the
// new due date. Already-returned or already-renewed loans report
// inventory.ErrRenewNotEligible.
func (s *Service) RenewBorrow(ctx context.Context, loanID, bookID, userID int64) (time.Time, error) {
	return s.store.RenewLoan(ctx, loanID, bookID, userID, RenewExtension)
}
