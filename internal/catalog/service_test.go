package catalog

import (
	"context"
	"errors"
	"testing"

	"mylib/internal/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CountBooks(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) ListBooks(ctx context.Context, offset, limit int) ([]inventory.Book, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Book), args.Error(1)
}

func (m *mockStore) CountActiveLoans(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) ListActiveLoans(ctx context.Context, userID int64, offset, limit int) ([]inventory.LoanDetail, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.LoanDetail), args.Error(1)
}

func (m *mockStore) CountHistoryLoans(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) ListHistoryLoans(ctx context.Context, userID int64, offset, limit int) ([]inventory.LoanDetail, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.LoanDetail), args.Error(1)
}

func (m *mockStore) CountAllLoans(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) ListAllLoans(ctx context.Context, offset, limit int) ([]inventory.LoanDetail, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.LoanDetail), args.Error(1)
}

func TestListAvailableBooks_WindowsTheStoreFetch(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)
	ctx := context.Background()

	books := []inventory.Book{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}
	store.On("CountBooks", ctx).Return(95, nil)
	// page 5 of 95 rows at size 20 starts at offset 80
	store.On("ListBooks", ctx, 80, 20).Return(books, nil)

	page, err := svc.ListAvailableBooks(ctx, 5, 20)

	assert.NoError(t, err)
	assert.Equal(t, 95, page.Total)
	assert.Equal(t, 5, page.TotalPages)
	assert.Equal(t, 5, page.Page)
	assert.Equal(t, books, page.Books)
	store.AssertExpectations(t)
}

func TestListAvailableBooks_EmptyCatalog(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)
	ctx := context.Background()

	store.On("CountBooks", ctx).Return(0, nil)
	store.On("ListBooks", ctx, 0, 20).Return(nil, nil)

	page, err := svc.ListAvailableBooks(ctx, 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Books)
	assert.Empty(t, page.Books)
}

func TestListAvailableBooks_PageSizeLargerThanData(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)
	ctx := context.Background()

	books := []inventory.Book{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	store.On("CountBooks", ctx).Return(5, nil)
	// size clamps to the total and the page clamps back to 1
	store.On("ListBooks", ctx, 0, 5).Return(books, nil)

	page, err := svc.ListAvailableBooks(ctx, 3, 20)

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.PageSize)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListAvailableBooks_CountErrorPropagates(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)
	ctx := context.Background()

	infraErr := errors.New("db down")
	store.On("CountBooks", ctx).Return(0, infraErr)

	_, err := svc.ListAvailableBooks(ctx, 1, 20)

	assert.ErrorIs(t, err, infraErr)
	store.AssertNotCalled(t, "ListBooks", mock.Anything, mock.Anything, mock.Anything)
}

func TestListActiveLoans(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)
	ctx := context.Background()

	loans := []inventory.LoanDetail{{Username: "alice"}}
	store.On("CountActiveLoans", ctx, int64(42)).Return(1, nil)
	store.On("ListActiveLoans", ctx, int64(42), 0, 1).Return(loans, nil)

	page, err := svc.ListActiveLoans(ctx, 42, 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, loans, page.Loans)
}

func TestListLoanHistory(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)
	ctx := context.Background()

	store.On("CountHistoryLoans", ctx, int64(42)).Return(30, nil)
	store.On("ListHistoryLoans", ctx, int64(42), 10, 10).Return([]inventory.LoanDetail{}, nil)

	page, err := svc.ListLoanHistory(ctx, 42, 2, 10)

	assert.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
}

func TestListAllLoans(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)
	ctx := context.Background()

	store.On("CountAllLoans", ctx).Return(0, nil)
	store.On("ListAllLoans", ctx, 0, 20).Return(nil, nil)

	page, err := svc.ListAllLoans(ctx, 1, 20)

	assert.NoError(t, err)
	assert.Empty(t, page.Loans)
	assert.Equal(t, 0, page.TotalPages)
}
