package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductVariant struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	Price             Money     `json:"price"`
	StockQuantity     int       `json:"stock_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ProductCreateRequest struct {
	Name        string                 `json:"name"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Variants    []VariantCreateRequest `json:"variants"`
}

type ProductUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

type VariantCreateRequest struct {
	SKU               string `json:"sku"`
	Name              string `json:"name"`
	Price             Money  `json:"price"`
	InitialStock      int    `json:"initial_stock"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

type StockUpdateRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason,omitempty"`
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CustomerCreateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type Staff struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// StaffAccount is an internal persistence model for auth credentials.
type StaffAccount struct {
	ID        string
	Username  string
	Password  string
	FullName  string
	Role      string
	Active    bool
	CreatedAt time.Time
}

type StaffCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string
	Role     string
}

type Transaction struct {
	ID                string            `json:"id"`
	TransactionNumber string            `json:"transaction_number"`
	CashierID         string            `json:"cashier_id"`
	CustomerID        string            `json:"customer_id,omitempty"`
	Subtotal          Money             `json:"subtotal"`
	DiscountAmount    Money             `json:"discount_amount"`
	TaxAmount         Money             `json:"tax_amount"`
	TotalAmount       Money             `json:"total_amount"`
	PaymentMethod     string            `json:"payment_method"`
	PaymentAmount     Money             `json:"payment_amount"`
	ChangeAmount      Money             `json:"change_amount"`
	Status            string            `json:"status"`
	Notes             string            `json:"notes,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	Items             []TransactionItem `json:"items,omitempty"`
}

type TransactionItem struct {
	ID             string `json:"id"`
	TransactionID  string `json:"transaction_id"`
	VariantID      string `json:"variant_id"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPrice      Money  `json:"unit_price"`
	DiscountAmount Money  `json:"discount_amount"`
	TotalPrice     Money  `json:"total_price"`
}

type TransactionItemRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	// UnitPrice is optional; when supplied it must match the catalog price.
	// The charged price always comes from the catalog.
	UnitPrice      Money `json:"unit_price,omitempty"`
	DiscountAmount Money `json:"discount_amount"`
}

type TransactionCreateRequest struct {
	CustomerID     string                   `json:"customer_id,omitempty"`
	Items          []TransactionItemRequest `json:"items"`
	DiscountAmount Money                    `json:"discount_amount"`
	TaxAmount      Money                    `json:"tax_amount"`
	PaymentMethod  string                   `json:"payment_method"`
	PaymentAmount  Money                    `json:"payment_amount"`
	Notes          string                   `json:"notes"`
}

type TransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

type TransactionListResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type Shift struct {
	ID               string     `json:"id"`
	CashierID        string     `json:"cashier_id"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	OpeningCash      Money      `json:"opening_cash"`
	ClosingCash      *Money     `json:"closing_cash,omitempty"`
	ExpectedCash     *Money     `json:"expected_cash,omitempty"`
	TotalSales       Money      `json:"total_sales"`
	TransactionCount int        `json:"transaction_count"`
	Notes            string     `json:"notes,omitempty"`
}

type ShiftStartRequest struct {
	OpeningCash Money `json:"opening_cash"`
}

type ShiftEndRequest struct {
	ClosingCash Money  `json:"closing_cash"`
	Notes       string `json:"notes"`
}

type ShiftResponse struct {
	Shift Shift `json:"shift"`
}

type ShiftListResponse struct {
	Shifts []Shift `json:"shifts"`
}

type LowStockVariant struct {
	Variant     ProductVariant `json:"variant"`
	ProductName string         `json:"product_name"`
}

type DailyReportPayment struct {
	PaymentMethod string `json:"payment_method"`
	Transactions  int64  `json:"transactions"`
	Total         Money  `json:"total"`
}

type DailyReport struct {
	Date         string               `json:"date"`
	Transactions int64                `json:"transactions"`
	GrossSales   Money                `json:"gross_sales"`
	Refunds      Money                `json:"refunds"`
	NetSales     Money                `json:"net_sales"`
	ByPayment    []DailyReportPayment `json:"by_payment"`
}

type ReceiptResponse struct {
	TransactionID string `json:"transaction_id"`
	Text          string `json:"text"`
}

type AuditLog struct {
	ID            string    `json:"id"`
	ActorUsername string    `json:"actor_username"`
	ActorRole     string    `json:"actor_role"`
	Action        string    `json:"action"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	Detail        string    `json:"detail"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"
	TxStatusCancelled = "cancelled"
	TxStatusRefunded  = "refunded"
)

const (
	PaymentMethodCash    = "cash"
	PaymentMethodCard    = "card"
	PaymentMethodQRCode  = "qr_code"
	PaymentMethodEWallet = "e_wallet"
)

const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodQRCode, PaymentMethodEWallet:
		return true
	}
	return false
}
