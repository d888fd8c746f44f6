package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	return &PostgresStore{db: db, timeout: timeout}
}

func (s *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *PostgresStore) CountBooks(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(id) FROM books`
	var total int
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.db.QueryRow(timeoutCtx, query).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// ListBooks returns a page of the catalog ordered by title. Books with no
// free copy carry the earliest due date among their active loans, so the
// caller can show when a copy is expected back.
func (s *PostgresStore) ListBooks(ctx context.Context, offset, limit int) ([]Book, error) {
	const query = `
	SELECT b.id, b.isbn, b.title, b.author, b.qty,
	       CASE WHEN b.qty < 1 THEN nd.end_date END AS return_date
	FROM books b
	LEFT JOIN LATERAL (
		SELECT end_date
		FROM borrow_records
		WHERE book_id = b.id AND return_date IS NULL
		ORDER BY end_date
		LIMIT 1
	) nd ON true
	ORDER BY b.title
	OFFSET $1 LIMIT $2
	`
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.Query(timeoutCtx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Qty, &b.ReturnDate); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (s *PostgresStore) FindByISBN(ctx context.Context, isbn string) (Book, error) {
	const query = `
	SELECT id, isbn, title, author, qty
	FROM books
	WHERE isbn = $1
	LIMIT 1
	`
	var b Book
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	err := s.db.QueryRow(timeoutCtx, query, isbn).Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrBookNotFound
		}
		return Book{}, err
	}
	return b, nil
}

// claimSQL checks availability and decrements in one statement; the qty > 0
// guard makes the claim safe under concurrent borrows of the last copy.
const claimSQL = `UPDATE books SET qty = qty - 1 WHERE id = $1 AND qty > 0`

const releaseSQL = `UPDATE books SET qty = qty + 1 WHERE id = $1`

// TryClaimUnit atomically takes one copy of the book if any is free.
func (s *PostgresStore) TryClaimUnit(ctx context.Context, bookID int64) (bool, error) {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	tag, err := s.db.Exec(timeoutCtx, claimSQL, bookID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ReleaseUnit puts one copy of the book back into circulation.
func (s *PostgresStore) ReleaseUnit(ctx context.Context, bookID int64) error {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.db.Exec(timeoutCtx, releaseSQL, bookID)
	return err
}

func (s *PostgresStore) BorrowBook(ctx context.Context, bookID, userID int64, start, end time.Time) (int64, error) {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.Begin(timeoutCtx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(timeoutCtx)

	tag, err := tx.Exec(timeoutCtx, claimSQL, bookID)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNotAvailable
	}

	const insertSQL = `
	INSERT INTO borrow_records (book_id, user_id, has_renew, start_date, end_date)
	VALUES ($1, $2, false, $3, $4)
	RETURNING id
	`
	var loanID int64
	if err := tx.QueryRow(timeoutCtx, insertSQL, bookID, userID, start, end).Scan(&loanID); err != nil {
		return 0, err
	}

	if err := tx.Commit(timeoutCtx); err != nil {
		return 0, err
	}
	return loanID, nil
}

func (s *PostgresStore) ReturnBook(ctx context.Context, bookID, userID int64) (bool, error) {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.Begin(timeoutCtx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(timeoutCtx)

	// Close the oldest active loan only; the copy is released in the same
	// transaction, and only when a loan was actually closed. The outer
	// return_date IS NULL repeats the subquery condition on purpose: under
	// READ COMMITTED a blocked concurrent return re-checks only the outer
	// WHERE after the winner commits, so without it the loser would close
	// the same loan again and release a second copy.
	const returnSQL = `
	UPDATE borrow_records SET return_date = now()
	WHERE return_date IS NULL AND id = (
		SELECT id
		FROM borrow_records
		WHERE book_id = $1 AND user_id = $2 AND return_date IS NULL
		ORDER BY start_date
		LIMIT 1
	)
	`
	tag, err := tx.Exec(timeoutCtx, returnSQL, bookID, userID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, tx.Commit(timeoutCtx)
	}

	if _, err := tx.Exec(timeoutCtx, releaseSQL, bookID); err != nil {
		return false, err
	}

	if err := tx.Commit(timeoutCtx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostgresStore) RenewLoan(ctx context.Context, loanID, bookID, userID int64, extension time.Duration) (time.Time, error) {
	// Eligibility and mutation are one conditional update, so has_renew can
	// flip at most once no matter how calls interleave.
	const query = `
	UPDATE borrow_records
	SET has_renew = true, end_date = end_date + make_interval(secs => $4)
	WHERE id = $1 AND book_id = $2 AND user_id = $3
	  AND return_date IS NULL AND has_renew = false
	RETURNING end_date
	`
	var due time.Time
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	err := s.db.QueryRow(timeoutCtx, query, loanID, bookID, userID, extension.Seconds()).Scan(&due)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, ErrRenewNotEligible
		}
		return time.Time{}, err
	}
	return due, nil
}

func (s *PostgresStore) CountActiveLoans(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COUNT(id) FROM borrow_records WHERE user_id = $1 AND return_date IS NULL`
	return s.countLoans(ctx, query, userID)
}

func (s *PostgresStore) CountHistoryLoans(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COUNT(id) FROM borrow_records WHERE user_id = $1 AND return_date IS NOT NULL`
	return s.countLoans(ctx, query, userID)
}

func (s *PostgresStore) CountAllLoans(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(id) FROM borrow_records`
	return s.countLoans(ctx, query)
}

func (s *PostgresStore) countLoans(ctx context.Context, query string, args ...any) (int, error) {
	var total int
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.db.QueryRow(timeoutCtx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

const loanDetailColumns = `
	bb.id, bb.book_id, bb.user_id, bb.has_renew, bb.start_date, bb.end_date, bb.return_date,
	b.isbn, b.title, b.author, b.qty, u.username
`

func (s *PostgresStore) ListActiveLoans(ctx context.Context, userID int64, offset, limit int) ([]LoanDetail, error) {
	const query = `
	SELECT ` + loanDetailColumns + `
	FROM borrow_records bb
	JOIN books b ON bb.book_id = b.id
	JOIN users u ON bb.user_id = u.id
	WHERE bb.user_id = $1 AND bb.return_date IS NULL
	ORDER BY bb.start_date
	OFFSET $2 LIMIT $3
	`
	return s.listLoans(ctx, query, userID, offset, limit)
}

func (s *PostgresStore) ListHistoryLoans(ctx context.Context, userID int64, offset, limit int) ([]LoanDetail, error) {
	const query = `
	SELECT ` + loanDetailColumns + `
	FROM borrow_records bb
	JOIN books b ON bb.book_id = b.id
	JOIN users u ON bb.user_id = u.id
	WHERE bb.user_id = $1 AND bb.return_date IS NOT NULL
	ORDER BY bb.start_date
	OFFSET $2 LIMIT $3
	`
	return s.listLoans(ctx, query, userID, offset, limit)
}

func (s *PostgresStore) ListAllLoans(ctx context.Context, offset, limit int) ([]LoanDetail, error) {
	const query = `
	SELECT ` + loanDetailColumns + `
	FROM borrow_records bb
	JOIN books b ON bb.book_id = b.id
	JOIN users u ON bb.user_id = u.id
	ORDER BY bb.start_date
	OFFSET $1 LIMIT $2
	`
	return s.listLoans(ctx, query, offset, limit)
}

func (s *PostgresStore) listLoans(ctx context.Context, query string, args ...any) ([]LoanDetail, error) {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []LoanDetail
	for rows.Next() {
		var d LoanDetail
		if err := rows.Scan(
			&d.ID, &d.BookID, &d.UserID, &d.HasRenew, &d.StartDate, &d.EndDate, &d.ReturnDate,
			&d.Book.ISBN, &d.Book.Title, &d.Book.Author, &d.Book.Qty, &d.Username,
		); err != nil {
			return nil, err
		}
		d.Book.ID = d.BookID
		loans = append(loans, d)
	}
	return loans, rows.Err()
}
