package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"cupcake-backend/domain/cart"
	"cupcake-backend/domain/order"
	pkgerrors "cupcake-backend/pkg/errors"
)

// OrderRepository stores order headers and their lines. Line prices and
// flavor names are written denormalized, so a later catalog change never
// alters what a historical order shows.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order header and all of its lines through the
// runner bound to ctx. Called inside a transaction, the whole write
// shares its fate.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	run := GetRunner(ctx, r.db)

	headerQuery := `
		INSERT INTO orders (buyer_id, order_date, pickup_date, paid, delivery_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := run.QueryRowContext(ctx, headerQuery,
		o.Buyer.ID, o.OrderDate, o.PickupDate, o.Paid, o.DeliveryPrice, o.TotalPrice,
	).Scan(&o.ID)
	if err != nil {
		return pkgerrors.NewPersistenceError("insert order", err)
	}

	lineQuery := `
		INSERT INTO order_lines
			(order_id, bottom_id, bottom_name, bottom_price, topping_id, topping_name, topping_price, quantity, line_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	for i := range o.Lines {
		line := &o.Lines[i]
		err := run.QueryRowContext(ctx, lineQuery,
			o.ID,
			line.Cupcake.Bottom.ID, line.Cupcake.Bottom.Name, line.Cupcake.Bottom.Price,
			line.Cupcake.Topping.ID, line.Cupcake.Topping.Name, line.Cupcake.Topping.Price,
			line.Quantity, line.LinePrice(),
		).Scan(&line.ID)
		if err != nil {
			return pkgerrors.NewPersistenceError("insert order line", err)
		}
	}
	return nil
}

const orderSelect = `
	SELECT o.id, o.buyer_id, b.first_name, b.last_name, b.email,
	       o.order_date, o.pickup_date, o.paid, o.delivery_price, o.total_price
	FROM orders o
	JOIN buyers b ON b.id = o.buyer_id`

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (order.Order, error) {
	run := GetRunner(ctx, r.db)

	var o order.Order
	err := run.QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id).Scan(
		&o.ID, &o.Buyer.ID, &o.Buyer.FirstName, &o.Buyer.LastName, &o.Buyer.Email,
		&o.OrderDate, &o.PickupDate, &o.Paid, &o.DeliveryPrice, &o.TotalPrice,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return order.Order{}, pkgerrors.NewNotFoundError(fmt.Sprintf("order %d not found", id))
	}
	if err != nil {
		return order.Order{}, pkgerrors.NewPersistenceError("get order", err)
	}

	lines, err := r.linesFor(ctx, []int64{o.ID})
	if err != nil {
		return order.Order{}, err
	}
	o.Lines = lines[o.ID]
	return o, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]order.Order, error) {
	return r.list(ctx, orderSelect+` ORDER BY o.order_date DESC`)
}

func (r *OrderRepository) ListByPaid(ctx context.Context, paid bool) ([]order.Order, error) {
	return r.list(ctx, orderSelect+` WHERE o.paid = $1 ORDER BY o.order_date DESC`, paid)
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]order.Order, error) {
	return r.list(ctx, orderSelect+` WHERE o.buyer_id = $1 ORDER BY o.order_date DESC`, buyerID)
}

func (r *OrderRepository) SetPaid(ctx context.Context, id int64, paid bool) error {
	query := `UPDATE orders SET paid = $1 WHERE id = $2`

	res, err := GetRunner(ctx, r.db).ExecContext(ctx, query, paid, id)
	if err != nil {
		return pkgerrors.NewPersistenceError("set paid", err)
	}
	return requireRow(res, "order", id)
}

// Delete removes the order; its lines go with it through the foreign-key
// cascade.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM orders WHERE id = $1`

	res, err := GetRunner(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return pkgerrors.NewPersistenceError("delete order", err)
	}
	return requireRow(res, "order", id)
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]order.Order, error) {
	rows, err := GetRunner(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.NewPersistenceError("list orders", err)
	}
	defer rows.Close()

	var orders []order.Order
	var ids []int64
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(
			&o.ID, &o.Buyer.ID, &o.Buyer.FirstName, &o.Buyer.LastName, &o.Buyer.Email,
			&o.OrderDate, &o.PickupDate, &o.Paid, &o.DeliveryPrice, &o.TotalPrice,
		); err != nil {
			return nil, pkgerrors.NewPersistenceError("scan order", err)
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.NewPersistenceError("iterate orders", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID]
	}
	return orders, nil
}

func (r *OrderRepository) linesFor(ctx context.Context, orderIDs []int64) (map[int64][]cart.OrderLine, error) {
	query := `
		SELECT order_id, id, bottom_id, bottom_name, bottom_price,
		       topping_id, topping_name, topping_price, quantity
		FROM order_lines
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`

	rows, err := GetRunner(ctx, r.db).QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		return nil, pkgerrors.NewPersistenceError("list order lines", err)
	}
	defer rows.Close()

	lines := make(map[int64][]cart.OrderLine, len(orderIDs))
	for rows.Next() {
		var orderID int64
		var line cart.OrderLine
		if err := rows.Scan(
			&orderID, &line.ID,
			&line.Cupcake.Bottom.ID, &line.Cupcake.Bottom.Name, &line.Cupcake.Bottom.Price,
			&line.Cupcake.Topping.ID, &line.Cupcake.Topping.Name, &line.Cupcake.Topping.Price,
			&line.Quantity,
		); err != nil {
			return nil, pkgerrors.NewPersistenceError("scan order line", err)
		}
		line.Cupcake.Price = line.Cupcake.Bottom.Price.Add(line.Cupcake.Topping.Price)
		lines[orderID] = append(lines[orderID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.NewPersistenceError("iterate order lines", err)
	}
	return lines, nil
}
