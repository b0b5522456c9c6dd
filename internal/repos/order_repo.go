package repos

import (
	"fmt"

	"farmgate/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id,user_id,status,total_amount,delivery_address,contact_phone,notes,created_at,updated_at`

// StockError reports a line that could not be reserved. Oversell policy is
// reject, never backorder.
type StockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (need %d, have %d)", e.ProductID, e.Requested, e.Available)
}

type NewOrder struct {
	UserID          *int64
	TotalAmount     decimal.Decimal
	DeliveryAddress string
	ContactPhone    string
	Notes           string
	Items           []NewOrderItem
}

type NewOrderItem struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateWithItems persists the order header, reserves stock, and inserts all
// line items in one transaction. Any failure rolls the whole order back.
func (r *OrderRepo) CreateWithItems(o NewOrder) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	ts := now()
	res, err := tx.Exec(`
		INSERT INTO orders(user_id,status,total_amount,delivery_address,contact_phone,notes,created_at,updated_at)
		VALUES(?,'pending',?,?,?,?,?,?)
	`, o.UserID, o.TotalAmount, o.DeliveryAddress, o.ContactPhone, o.Notes, ts, ts)
	if err != nil {
		return 0, mapErr(err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, it := range o.Items {
		// Reserve stock; the guard makes the decrement atomic per line.
		res, err := tx.Exec(`
			UPDATE products SET stock = stock - ?, updated_at = ?
			WHERE id = ? AND stock >= ?
		`, it.Quantity, ts, it.ProductID, it.Quantity)
		if err != nil {
			return 0, mapErr(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			var avail int
			if err := tx.Get(&avail, `SELECT stock FROM products WHERE id=?`, it.ProductID); err != nil {
				return 0, mapErr(err)
			}
			return 0, &StockError{ProductID: it.ProductID, Requested: it.Quantity, Available: avail}
		}
		if _, err := tx.Exec(`
			INSERT INTO order_items(order_id,product_id,quantity,unit_price)
			VALUES(?,?,?,?)
		`, orderID, it.ProductID, it.Quantity, it.UnitPrice); err != nil {
			return 0, mapErr(err)
		}
	}

	return orderID, tx.Commit()
}

func (r *OrderRepo) Get(id int64) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id=?`, id); err != nil {
		return domain.Order{}, nil, mapErr(err)
	}
	items := []domain.OrderItem{}
	if err := r.db.Select(&items, `
		SELECT id,order_id,product_id,quantity,unit_price
		FROM order_items WHERE order_id=? ORDER BY id
	`, id); err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC`)
	return out, err
}

func (r *OrderRepo) ListByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders WHERE status=? ORDER BY created_at DESC
	`, status)
	return out, err
}

func (r *OrderRepo) ListByUser(userID int64) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders WHERE user_id=? ORDER BY created_at DESC
	`, userID)
	return out, err
}

// UpdateStatus moves an order to next only if it is still in the expected
// current status, guarding against concurrent admin updates.
func (r *OrderRepo) UpdateStatus(id int64, current, next domain.OrderStatus) error {
	res, err := r.db.Exec(`
		UPDATE orders SET status=?, updated_at=? WHERE id=? AND status=?
	`, next, now(), id, current)
	if err != nil {
		return mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
