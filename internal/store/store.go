package store

import (
	"context"
	"errors"
	"time"

	"retailpos/backend/internal/domain"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrAlreadyRefunded     = errors.New("transaction already refunded")
	ErrShiftAlreadyActive  = errors.New("shift already active")
	ErrShiftAlreadyEnded   = errors.New("shift already ended")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("forbidden")
)

type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product, variants []domain.ProductVariant) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	ListVariantsByProduct(ctx context.Context, productID string) ([]domain.ProductVariant, error)
	GetVariantByID(ctx context.Context, id string) (*domain.ProductVariant, error)
	GetVariantBySKU(ctx context.Context, sku string) (*domain.ProductVariant, error)
	AdjustStock(ctx context.Context, variantID string, delta int) (*domain.ProductVariant, error)
	ListLowStockVariants(ctx context.Context) ([]domain.LowStockVariant, error)

	CreateTransaction(ctx context.Context, tx domain.Transaction, items []domain.TransactionItemRequest) (*domain.Transaction, error)
	RefundTransaction(ctx context.Context, id string, at time.Time) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error)
	GetTransactionItems(ctx context.Context, transactionID string) ([]domain.TransactionItem, error)
	GetDailyReport(ctx context.Context, from time.Time, to time.Time) (domain.DailyReport, error)

	CreateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error)
	CloseShift(ctx context.Context, shiftID string, closingCash domain.Money, notes string, closedAt time.Time) (*domain.Shift, error)
	GetOpenShiftByCashier(ctx context.Context, cashierID string) (*domain.Shift, error)
	GetShiftByID(ctx context.Context, id string) (*domain.Shift, error)
	ListShifts(ctx context.Context, cashierID string, limit int, offset int) ([]domain.Shift, error)

	CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	CreateStaff(ctx context.Context, account domain.StaffAccount) error
	GetStaffByUsername(ctx context.Context, username string) (*domain.StaffAccount, error)
	ListStaff(ctx context.Context) ([]domain.StaffAccount, error)
	UpdateStaffPassword(ctx context.Context, username string, password string) error

	CreateAuditLog(ctx context.Context, entry domain.AuditLog) error
	ListAuditLogs(ctx context.Context, from time.Time, to time.Time, limit int) ([]domain.AuditLog, error)
}
