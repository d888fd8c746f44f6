package catalog

import (
	"context"

	"mylib/internal/inventory"
	"mylib/internal/pagination"
)

// Service provides the read-only listing views. Every view follows the same
// protocol: count, compute the page window, fetch the rows for that window.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListAvailableBooks(ctx context.Context, page, pageSize int) (BookPage, error) {
	total, err := s.store.CountBooks(ctx)
	if err != nil {
		return BookPage{}, err
	}
	w := pagination.Compute(total, page, pageSize)
	books, err := s.store.ListBooks(ctx, w.LowerBound, w.PageSize)
	if err != nil {
		return BookPage{}, err
	}
	if books == nil {
		books = []inventory.Book{}
	}
	return BookPage{Books: books, Total: total, TotalPages: w.TotalPages, Page: w.Page, PageSize: w.PageSize}, nil
}

func (s *Service) ListActiveLoans(ctx context.Context, userID int64, page, pageSize int) (LoanPage, error) {
	return s.loanPage(ctx, page, pageSize,
		func(ctx context.Context) (int, error) { return s.store.CountActiveLoans(ctx, userID) },
		func(ctx context.Context, offset, limit int) ([]inventory.LoanDetail, error) {
			return s.store.ListActiveLoans(ctx, userID, offset, limit)
		})
}

func (s *Service) ListLoanHistory(ctx context.Context, userID int64, page, pageSize int) (LoanPage, error) {
	return s.loanPage(ctx, page, pageSize,
		func(ctx context.Context) (int, error) { return s.store.CountHistoryLoans(ctx, userID) },
		func(ctx context.Context, offset, limit int) ([]inventory.LoanDetail, error) {
			return s.store.ListHistoryLoans(ctx, userID, offset, limit)
		})
}

func (s *Service) ListAllLoans(ctx context.Context, page, pageSize int) (LoanPage, error) {
	return s.loanPage(ctx, page, pageSize, s.store.CountAllLoans, s.store.ListAllLoans)
}

func (s *Service) loanPage(
	ctx context.Context,
	page, pageSize int,
	count func(context.Context) (int, error),
	list func(context.Context, int, int) ([]inventory.LoanDetail, error),
) (LoanPage, error) {
	total, err := count(ctx)
	if err != nil {
		return LoanPage{}, err
	}
	w := pagination.Compute(total, page, pageSize)
	loans, err := list(ctx, w.LowerBound, w.PageSize)
	if err != nil {
		return LoanPage{}, err
	}
	if loans == nil {
		loans = []inventory.LoanDetail{}
	}
	return LoanPage{Loans: loans, Total: total, TotalPages: w.TotalPages, Page: w.Page, PageSize: w.PageSize}, nil
}
