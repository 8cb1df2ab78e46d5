package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"cupcake-backend/domain/catalog"
	pkgerrors "cupcake-backend/pkg/errors"
)

// CatalogRepository stores bottom and topping flavors in two tables
// sharing the same shape.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListBottoms(ctx context.Context) ([]catalog.Bottom, error) {
	rows, err := r.listFlavors(ctx, "bottoms")
	if err != nil {
		return nil, err
	}
	bottoms := make([]catalog.Bottom, len(rows))
	for i, f := range rows {
		bottoms[i] = catalog.Bottom(f)
	}
	return bottoms, nil
}

func (r *CatalogRepository) ListToppings(ctx context.Context) ([]catalog.Topping, error) {
	rows, err := r.listFlavors(ctx, "toppings")
	if err != nil {
		return nil, err
	}
	toppings := make([]catalog.Topping, len(rows))
	for i, f := range rows {
		toppings[i] = catalog.Topping(f)
	}
	return toppings, nil
}

func (r *CatalogRepository) GetBottom(ctx context.Context, id int64) (catalog.Bottom, error) {
	f, err := r.getFlavor(ctx, "bottoms", "bottom flavor", id)
	return catalog.Bottom(f), err
}

func (r *CatalogRepository) GetTopping(ctx context.Context, id int64) (catalog.Topping, error) {
	f, err := r.getFlavor(ctx, "toppings", "topping flavor", id)
	return catalog.Topping(f), err
}

func (r *CatalogRepository) CreateBottom(ctx context.Context, name string, price decimal.Decimal) (catalog.Bottom, error) {
	f, err := r.createFlavor(ctx, "bottoms", "bottom flavor", name, price)
	return catalog.Bottom(f), err
}

func (r *CatalogRepository) CreateTopping(ctx context.Context, name string, price decimal.Decimal) (catalog.Topping, error) {
	f, err := r.createFlavor(ctx, "toppings", "topping flavor", name, price)
	return catalog.Topping(f), err
}

func (r *CatalogRepository) UpdateBottom(ctx context.Context, b catalog.Bottom) error {
	return r.updateFlavor(ctx, "bottoms", "bottom flavor", flavorRow(b))
}

func (r *CatalogRepository) UpdateTopping(ctx context.Context, t catalog.Topping) error {
	return r.updateFlavor(ctx, "toppings", "topping flavor", flavorRow(t))
}

func (r *CatalogRepository) DeleteBottom(ctx context.Context, id int64) error {
	return r.deleteFlavor(ctx, "bottoms", "bottom flavor", id)
}

func (r *CatalogRepository) DeleteTopping(ctx context.Context, id int64) error {
	return r.deleteFlavor(ctx, "toppings", "topping flavor", id)
}

// flavorRow is the shared row shape of the two flavor tables.
type flavorRow struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

func (r *CatalogRepository) listFlavors(ctx context.Context, table string) ([]flavorRow, error) {
	query := fmt.Sprintf(`SELECT id, flavor_name, price FROM %s ORDER BY flavor_name`, table)

	rows, err := GetRunner(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, pkgerrors.NewPersistenceError("list "+table, err)
	}
	defer rows.Close()

	var flavors []flavorRow
	for rows.Next() {
		var f flavorRow
		if err := rows.Scan(&f.ID, &f.Name, &f.Price); err != nil {
			return nil, pkgerrors.NewPersistenceError("scan "+table, err)
		}
		flavors = append(flavors, f)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.NewPersistenceError("iterate "+table, err)
	}
	return flavors, nil
}

func (r *CatalogRepository) getFlavor(ctx context.Context, table, kind string, id int64) (flavorRow, error) {
	query := fmt.Sprintf(`SELECT id, flavor_name, price FROM %s WHERE id = $1`, table)

	var f flavorRow
	err := GetRunner(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Name, &f.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return flavorRow{}, pkgerrors.NewNotFoundError(fmt.Sprintf("%s %d not found", kind, id))
	}
	if err != nil {
		return flavorRow{}, pkgerrors.NewPersistenceError("get "+kind, err)
	}
	return f, nil
}

func (r *CatalogRepository) createFlavor(ctx context.Context, table, kind, name string, price decimal.Decimal) (flavorRow, error) {
	query := fmt.Sprintf(`INSERT INTO %s (flavor_name, price) VALUES ($1, $2) RETURNING id`, table)

	f := flavorRow{Name: name, Price: price}
	err := GetRunner(ctx, r.db).QueryRowContext(ctx, query, name, price).Scan(&f.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return flavorRow{}, pkgerrors.NewConflictError(fmt.Sprintf("a %s named %q already exists", kind, name))
		}
		return flavorRow{}, pkgerrors.NewPersistenceError("create "+kind, err)
	}
	return f, nil
}

func (r *CatalogRepository) updateFlavor(ctx context.Context, table, kind string, f flavorRow) error {
	query := fmt.Sprintf(`UPDATE %s SET flavor_name = $1, price = $2 WHERE id = $3`, table)

	res, err := GetRunner(ctx, r.db).ExecContext(ctx, query, f.Name, f.Price, f.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return pkgerrors.NewConflictError(fmt.Sprintf("a %s named %q already exists", kind, f.Name))
		}
		return pkgerrors.NewPersistenceError("update "+kind, err)
	}
	return requireRow(res, kind, f.ID)
}

func (r *CatalogRepository) deleteFlavor(ctx context.Context, table, kind string, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)

	res, err := GetRunner(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return pkgerrors.NewPersistenceError("delete "+kind, err)
	}
	return requireRow(res, kind, id)
}

func requireRow(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return pkgerrors.NewPersistenceError("rows affected", err)
	}
	if n == 0 {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("%s %d not found", kind, id))
	}
	return nil
}
