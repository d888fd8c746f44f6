package pagination

// Window is the computed row window for one page of a listing. LowerBound and
// UpperBound are 0-based row offsets; PageSize is the effective page size
// after clamping, which is what should be passed as the SQL LIMIT.
type Window struct {
	Total      int
	Page       int
	PageSize   int
	LowerBound int
	UpperBound int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// Compute turns a requested page/size against a known total into a safe,
// clamped window. A page size below 1, or larger than the data, collapses to
// "one page for everything". Out-of-range page numbers are clamped into
// [1, TotalPages]. A negative total is a programming error on the caller's
// side; Compute does not try to recover from it.
func Compute(total, page, size int) Window {
	if total > 0 && (size < 1 || size > total) {
		size = total
	}
	if size < 0 {
		size = 0
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + size - 1) / size
	}

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	lower := (page - 1) * size
	upper := page * size
	if upper > total {
		upper = total
	}

	return Window{
		Total:      total,
		Page:       page,
		PageSize:   size,
		LowerBound: lower,
		UpperBound: upper,
		TotalPages: totalPages,
		HasNext:    total > upper,
		HasPrev:    lower > 0,
	}
}
