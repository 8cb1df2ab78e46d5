package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"cupcake-backend/domain/buyer"
	pkgerrors "cupcake-backend/pkg/errors"
)

const buyerColumns = `id, first_name, last_name, email, phone, street, zip_code, city, balance, is_guest, is_admin`

// BuyerRepository stores buyer identities, password hashes and balances.
type BuyerRepository struct {
	db *sql.DB
}

// NewBuyerRepository creates a new buyer repository
func NewBuyerRepository(db *sql.DB) *BuyerRepository {
	return &BuyerRepository{db: db}
}

func (r *BuyerRepository) GetByID(ctx context.Context, id int64) (buyer.Buyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM buyers WHERE id = $1`
	return r.scanBuyer(
		GetRunner(ctx, r.db).QueryRowContext(ctx, query, id),
		fmt.Sprintf("buyer %d not found", id),
	)
}

func (r *BuyerRepository) GetByEmail(ctx context.Context, email string) (buyer.Buyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM buyers WHERE email = $1`
	return r.scanBuyer(
		GetRunner(ctx, r.db).QueryRowContext(ctx, query, email),
		fmt.Sprintf("no buyer with email %s", email),
	)
}

func (r *BuyerRepository) GetCredentials(ctx context.Context, email string) (buyer.Buyer, string, error) {
	query := `SELECT ` + buyerColumns + `, COALESCE(password_hash, '') FROM buyers WHERE email = $1`

	var b buyer.Buyer
	var hash string
	err := GetRunner(ctx, r.db).QueryRowContext(ctx, query, email).Scan(
		&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.Phone,
		&b.Street, &b.ZipCode, &b.City, &b.Balance, &b.IsGuest, &b.IsAdmin,
		&hash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return buyer.Buyer{}, "", pkgerrors.NewNotFoundError(fmt.Sprintf("no buyer with email %s", email))
	}
	if err != nil {
		return buyer.Buyer{}, "", pkgerrors.NewPersistenceError("get credentials", err)
	}
	return b, hash, nil
}

func (r *BuyerRepository) CreateRegistered(ctx context.Context, p buyer.Profile, passwordHash string) (buyer.Buyer, error) {
	return r.create(ctx, p, sql.NullString{String: passwordHash, Valid: true}, false)
}

func (r *BuyerRepository) CreateGuest(ctx context.Context, p buyer.Profile) (buyer.Buyer, error) {
	return r.create(ctx, p, sql.NullString{}, true)
}

func (r *BuyerRepository) create(ctx context.Context, p buyer.Profile, hash sql.NullString, isGuest bool) (buyer.Buyer, error) {
	query := `
		INSERT INTO buyers (first_name, last_name, email, phone, street, zip_code, city, password_hash, is_guest)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	b := buyer.Buyer{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Street:    p.Street,
		ZipCode:   p.ZipCode,
		City:      p.City,
		Balance:   decimal.Zero,
		IsGuest:   isGuest,
	}
	err := GetRunner(ctx, r.db).QueryRowContext(ctx, query,
		p.FirstName, p.LastName, p.Email, p.Phone, p.Street, p.ZipCode, p.City, hash, isGuest,
	).Scan(&b.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return buyer.Buyer{}, pkgerrors.NewConflictError(fmt.Sprintf("a buyer with email %s already exists", p.Email))
		}
		return buyer.Buyer{}, pkgerrors.NewPersistenceError("create buyer", err)
	}
	return b, nil
}

func (r *BuyerRepository) ListCustomers(ctx context.Context) ([]buyer.Buyer, error) {
	query := `SELECT ` + buyerColumns + ` FROM buyers WHERE is_admin = FALSE ORDER BY last_name, first_name`

	rows, err := GetRunner(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, pkgerrors.NewPersistenceError("list customers", err)
	}
	defer rows.Close()

	var buyers []buyer.Buyer
	for rows.Next() {
		var b buyer.Buyer
		if err := rows.Scan(
			&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.Phone,
			&b.Street, &b.ZipCode, &b.City, &b.Balance, &b.IsGuest, &b.IsAdmin,
		); err != nil {
			return nil, pkgerrors.NewPersistenceError("scan customer", err)
		}
		buyers = append(buyers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.NewPersistenceError("iterate customers", err)
	}
	return buyers, nil
}

// DebitBalance subtracts amount only when the row's current balance
// covers it. The check runs in the UPDATE itself, so two concurrent
// debits against the same buyer cannot both pass on a stale read.
func (r *BuyerRepository) DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) error {
	query := `
		UPDATE buyers
		SET balance = balance - $1
		WHERE id = $2 AND is_guest = FALSE AND balance >= $1`

	res, err := GetRunner(ctx, r.db).ExecContext(ctx, query, amount, id)
	if err != nil {
		return pkgerrors.NewPersistenceError("debit balance", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pkgerrors.NewPersistenceError("rows affected", err)
	}
	if n == 0 {
		return pkgerrors.NewValidationError("the balance no longer covers the order total")
	}
	return nil
}

// CreditBalance adds amount to a registered buyer's balance. Crediting a
// guest is a no-op rather than an error; guests hold no balance.
func (r *BuyerRepository) CreditBalance(ctx context.Context, id int64, amount decimal.Decimal) error {
	query := `
		UPDATE buyers
		SET balance = balance + $1
		WHERE id = $2 AND is_guest = FALSE`

	if _, err := GetRunner(ctx, r.db).ExecContext(ctx, query, amount, id); err != nil {
		return pkgerrors.NewPersistenceError("credit balance", err)
	}
	return nil
}

func (r *BuyerRepository) scanBuyer(row *sql.Row, notFound string) (buyer.Buyer, error) {
	var b buyer.Buyer
	err := row.Scan(
		&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.Phone,
		&b.Street, &b.ZipCode, &b.City, &b.Balance, &b.IsGuest, &b.IsAdmin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return buyer.Buyer{}, pkgerrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return buyer.Buyer{}, pkgerrors.NewPersistenceError("scan buyer", err)
	}
	return b, nil
}
