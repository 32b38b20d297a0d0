package restaurant

// Collection names used in the document store.
const (
	CollectionMenu         = "menu"
	CollectionReviews      = "reviews"
	CollectionReservations = "reservations"
	CollectionOrders       = "orders"
	CollectionSales        = "sales"
)

// Reservation statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// OrderStatusOrdered is the status every new order starts in.
const OrderStatusOrdered = "ordered"

const (
	DefaultCategory     = "Specials"
	DefaultReviewerName = "Anonymous"
	DefaultMenuImage    = "https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&w=400&q=60"
	unknownItemName     = "Unknown"
)

// Timestamps on every record are Unix seconds.

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Available   bool    `json:"available"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

// MenuItemFields carries the writable attributes of a menu item. Nil fields
// are left unchanged on update and defaulted on create.
type MenuItemFields struct {
	ID          string   `json:"id,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Available   *bool    `json:"available,omitempty"`
}

type MenuFilter struct {
	Category string
	Search   string
}

type Review struct {
	ID           string `json:"id"`
	ItemID       string `json:"item_id"`
	ItemName     string `json:"item_name"`
	Rating       int    `json:"rating"`
	ReviewerName string `json:"reviewer_name"`
	Text         string `json:"text"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
}

type Reservation struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Guests    int    `json:"guests"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type ReservationFilter struct {
	Status string
	Date   string
}

type OrderItem struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id,omitempty"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	CreatedAt     int64       `json:"created_at"`
	UpdatedAt     int64       `json:"updated_at"`
}

type OrderFilter struct {
	UserID string
	Status string
}

// Sale is one order line recorded for analytics.
type Sale struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	ItemID    string  `json:"item_id,omitempty"`
	ItemName  string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

// SalesFilter bounds sales by creation time, inclusive. Zero values are open.
type SalesFilter struct {
	Start int64
	End   int64
}

type ItemSummary struct {
	ItemID        string  `json:"item_id,omitempty"`
	ItemName      string  `json:"item_name"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
}

type DaySummary struct {
	Date          string  `json:"date"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
}

// Notification types.
const (
	NotifyReservationConfirmation = "reservation_confirmation"
	NotifyReservationStatusUpdate = "reservation_status_update"
	NotifyOrderConfirmation       = "order_confirmation"
	NotifyWelcome                 = "welcome"
)

// Notification is an email request queued for the notification worker.
type Notification struct {
	Type string         `json:"type"`
	To   string         `json:"to"`
	Data map[string]any `json:"data,omitempty"`
}
