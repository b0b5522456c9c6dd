package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"farmgate/internal/domain"
	"farmgate/internal/repos"
	"farmgate/internal/validate"
)

// totalTolerance absorbs client-side float rounding when comparing the
// submitted total against the server-derived one.
var totalTolerance = decimal.RequireFromString("0.01")

type OrderService struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
}

func NewOrderService(orders *repos.OrderRepo, prods *repos.ProductRepo) *OrderService {
	return &OrderService{Orders: orders, Prods: prods}
}

type CheckoutInput struct {
	TotalAmount     decimal.Decimal `json:"totalAmount" validate:"gt=0"`
	DeliveryAddress string          `json:"deliveryAddress" validate:"required,min=5"`
	ContactPhone    string          `json:"contactPhone" validate:"required,min=10"`
	Notes           string          `json:"notes"`
	Items           []CheckoutItem  `json:"items" validate:"required,min=1,dive"`
}

type CheckoutItem struct {
	ProductID int64           `json:"productId" validate:"gt=0"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gt=0"`
}

// Checkout converts a submitted cart into a persisted order plus line items.
// Unit prices are re-derived from the persisted products; the client-supplied
// unitPrice is accepted in the payload but never trusted for persistence.
// Order, items, and stock reservation commit in one transaction.
func (s *OrderService) Checkout(userID int64, in CheckoutInput) (domain.Order, []domain.OrderItem, error) {
	if fields := validate.Payload(in); fields != nil {
		return domain.Order{}, nil, &ValidationError{Fields: fields}
	}

	lines := make([]repos.NewOrderItem, 0, len(in.Items))
	serverTotal := decimal.Zero
	var fields []validate.FieldError
	for i, it := range in.Items {
		p, err := s.Prods.Get(it.ProductID)
		if err != nil {
			if errors.Is(err, repos.ErrNotFound) {
				fields = append(fields, validate.FieldError{
					Field:   fmt.Sprintf("items[%d].productId", i),
					Message: "references an unknown product",
				})
				continue
			}
			return domain.Order{}, nil, err
		}
		lines = append(lines, repos.NewOrderItem{
			ProductID: p.ID,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
		})
		serverTotal = serverTotal.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	if fields != nil {
		return domain.Order{}, nil, &ValidationError{Fields: fields}
	}

	if serverTotal.Sub(in.TotalAmount).Abs().GreaterThan(totalTolerance) {
		return domain.Order{}, nil, &ValidationError{Fields: []validate.FieldError{{
			Field:   "totalAmount",
			Message: fmt.Sprintf("does not match the order total %s", serverTotal),
		}}}
	}

	orderID, err := s.Orders.CreateWithItems(repos.NewOrder{
		UserID:          &userID,
		TotalAmount:     serverTotal,
		DeliveryAddress: in.DeliveryAddress,
		ContactPhone:    in.ContactPhone,
		Notes:           in.Notes,
		Items:           lines,
	})
	if err != nil {
		return domain.Order{}, nil, err
	}
	return s.Orders.Get(orderID)
}

func (s *OrderService) Get(id int64) (domain.Order, []domain.OrderItem, error) {
	return s.Orders.Get(id)
}

func (s *OrderService) ListByUser(userID int64) ([]domain.Order, error) {
	return s.Orders.ListByUser(userID)
}

func (s *OrderService) ListAll() ([]domain.Order, error) {
	return s.Orders.ListAll()
}

func (s *OrderService) ListByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	if !status.Valid() {
		return nil, &InvalidStatusError{Status: status}
	}
	return s.Orders.ListByStatus(status)
}

// UpdateStatus moves an order along the enforced state machine and refreshes
// updated_at. Illegal edges are rejected, including no-op same-status sets.
func (s *OrderService) UpdateStatus(id int64, next domain.OrderStatus) (domain.Order, error) {
	if !next.Valid() {
		return domain.Order{}, &InvalidStatusError{Status: next}
	}
	o, _, err := s.Orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	if !o.Status.CanTransitionTo(next) {
		return domain.Order{}, &InvalidTransitionError{From: o.Status, To: next}
	}
	if err := s.Orders.UpdateStatus(id, o.Status, next); err != nil {
		return domain.Order{}, err
	}
	o, _, err = s.Orders.Get(id)
	return o, err
}
