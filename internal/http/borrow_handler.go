package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"mylib/internal/httpx"
	"mylib/internal/inventory"
	"mylib/internal/lending"
	"mylib/internal/user"
)

// LendingService is what the borrow endpoints need from internal/lending.
type LendingService interface {
	RegisterBorrow(ctx context.Context, isbn, username string) (lending.Receipt, error)
	ReturnBorrow(ctx context.Context, isbn, username string) (bool, error)
	RenewBorrow(ctx context.Context, loanID, bookID, userID int64) (time.Time, error)
}

type BorrowHandler struct {
	svc LendingService
}

func NewBorrowHandler(svc LendingService) *BorrowHandler {
	return &BorrowHandler{svc: svc}
}

type borrowRequest struct {
	ISBN     string `json:"isbn" validate:"required,isbn"`
	Username string `json:"username" validate:"required,min=3"`
}

type renewRequest struct {
	LoanID int64 `json:"id" validate:"required,gt=0"`
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}

func (h *BorrowHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	receipt, err := h.svc.RegisterBorrow(r.Context(), req.ISBN, req.Username)
	if err != nil {
		writeLendingError(w, r, err)
		return
	}
	JSONSuccessCreated(w, receipt)
}

func (h *BorrowHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	returned, err := h.svc.ReturnBorrow(r.Context(), req.ISBN, req.Username)
	if err != nil {
		writeLendingError(w, r, err)
		return
	}
	// Returning a book that is not on loan still answers 200; the flag tells
	// the caller whether anything changed.
	JSONSuccess(w, map[string]any{"returned": returned}, nil)
}

func (h *BorrowHandler) Renew(w http.ResponseWriter, r *http.Request) {
	var req renewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	// Renewal is always on the caller's own loan.
	userID := httpx.UserIDFrom(r)
	due, err := h.svc.RenewBorrow(r.Context(), req.LoanID, req.BookID, userID)
	if err != nil {
		writeLendingError(w, r, err)
		return
	}
	JSONSuccess(w, map[string]any{"due_date": due}, nil)
}

// writeLendingError maps the typed lending outcomes onto client responses.
// Business failures are expected and never logged as faults; anything else is
// an infrastructure failure.
func writeLendingError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, inventory.ErrBookNotFound):
		JSONError(w, http.StatusNotFound, "BOOK_NOT_FOUND", "Book not found", nil)
	case errors.Is(err, user.ErrNotFound):
		JSONError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
	case errors.Is(err, lending.ErrBorrowLimitReached):
		JSONError(w, http.StatusBadRequest, "BORROW_LIMIT_REACHED", "Maximum limit of borrowed books reached", nil)
	case errors.Is(err, inventory.ErrNotAvailable):
		JSONError(w, http.StatusBadRequest, "BOOK_NOT_AVAILABLE", "Book not available", nil)
	case errors.Is(err, inventory.ErrRenewNotEligible):
		JSONError(w, http.StatusBadRequest, "RENEW_NOT_ELIGIBLE", "Loan already returned or already renewed", nil)
	default:
		log.Printf("lending error: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error", nil)
	}
}
