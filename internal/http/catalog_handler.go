package http

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"mylib/internal/catalog"
	"mylib/internal/httpx"
)

// CatalogService is what the listing endpoints need from internal/catalog.
type CatalogService interface {
	ListAvailableBooks(ctx context.Context, page, pageSize int) (catalog.BookPage, error)
	ListActiveLoans(ctx context.Context, userID int64, page, pageSize int) (catalog.LoanPage, error)
	ListLoanHistory(ctx context.Context, userID int64, page, pageSize int) (catalog.LoanPage, error)
	ListAllLoans(ctx context.Context, page, pageSize int) (catalog.LoanPage, error)
}

type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// Totals ride on response headers as well as the meta object, so pagination
// controls can be rendered without a second request.
func setTotalHeaders(w http.ResponseWriter, total, totalPages int) {
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	w.Header().Set("X-Total-Page", strconv.Itoa(totalPages))
}

func pageMeta(page, pageSize, total, totalPages int) map[string]any {
	return map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": totalPages,
	}
}

func (h *CatalogHandler) ListAvailableBooks(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	result, err := h.svc.ListAvailableBooks(r.Context(), page, pageSize)
	if err != nil {
		writeListingError(w, r, err)
		return
	}
	setTotalHeaders(w, result.Total, result.TotalPages)
	JSONSuccess(w, result.Books, pageMeta(result.Page, result.PageSize, result.Total, result.TotalPages))
}

func (h *CatalogHandler) ListCurrentBorrows(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	result, err := h.svc.ListActiveLoans(r.Context(), httpx.UserIDFrom(r), page, pageSize)
	if err != nil {
		writeListingError(w, r, err)
		return
	}
	setTotalHeaders(w, result.Total, result.TotalPages)
	JSONSuccess(w, result.Loans, pageMeta(result.Page, result.PageSize, result.Total, result.TotalPages))
}

func (h *CatalogHandler) ListBorrowHistory(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	result, err := h.svc.ListLoanHistory(r.Context(), httpx.UserIDFrom(r), page, pageSize)
	if err != nil {
		writeListingError(w, r, err)
		return
	}
	setTotalHeaders(w, result.Total, result.TotalPages)
	JSONSuccess(w, result.Loans, pageMeta(result.Page, result.PageSize, result.Total, result.TotalPages))
}

func (h *CatalogHandler) ListAllBorrows(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	result, err := h.svc.ListAllLoans(r.Context(), page, pageSize)
	if err != nil {
		writeListingError(w, r, err)
		return
	}
	setTotalHeaders(w, result.Total, result.TotalPages)
	JSONSuccess(w, result.Loans, pageMeta(result.Page, result.PageSize, result.Total, result.TotalPages))
}

func writeListingError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("listing error: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
	JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error", nil)
}
