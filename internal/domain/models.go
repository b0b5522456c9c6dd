package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
}

type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description,omitempty"`
	Price       decimal.Decimal `db:"price" json:"price"`
	ImageURL    string          `db:"image_url" json:"imageUrl,omitempty"`
	Stock       int             `db:"stock" json:"stock"`
	CategoryID  *int64          `db:"category_id" json:"categoryId"`
	CreatedAt   string          `db:"created_at" json:"createdAt"`
	UpdatedAt   string          `db:"updated_at" json:"updatedAt"`
}

type Order struct {
	ID              int64           `db:"id" json:"id"`
	UserID          *int64          `db:"user_id" json:"userId"`
	Status          OrderStatus     `db:"status" json:"status"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"totalAmount"`
	DeliveryAddress string          `db:"delivery_address" json:"deliveryAddress"`
	ContactPhone    string          `db:"contact_phone" json:"contactPhone"`
	Notes           string          `db:"notes" json:"notes,omitempty"`
	CreatedAt       string          `db:"created_at" json:"createdAt"`
	UpdatedAt       string          `db:"updated_at" json:"updatedAt"`
}

// OrderItem carries the unit price snapshotted at order time; it is never
// recomputed from the live product price.
type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   int64           `db:"order_id" json:"orderId"`
	ProductID int64           `db:"product_id" json:"productId"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`
}

type FarmEvent struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description,omitempty"`
	EventDate   string `db:"event_date" json:"eventDate"`
	StartTime   string `db:"start_time" json:"startTime"`
	EndTime     string `db:"end_time" json:"endTime"`
	Location    string `db:"location" json:"location"`
	ImageURL    string `db:"image_url" json:"imageUrl,omitempty"`
	Category    string `db:"category" json:"category"` // workshop, tour, market, ...
	CreatedAt   string `db:"created_at" json:"createdAt"`
	UpdatedAt   string `db:"updated_at" json:"updatedAt"`
}

type Subscription struct {
	ID        int64  `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	Active    bool   `db:"active" json:"active"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
