package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"retailpos/backend/internal/cache"
	"retailpos/backend/internal/domain"
	"retailpos/backend/internal/store"
	"retailpos/backend/internal/xid"
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

type Service struct {
	repo      store.Repository
	reports   cache.ReportCache
	logger    *zap.Logger
	reportTTL time.Duration
}

func New(repo store.Repository, reports cache.ReportCache, logger *zap.Logger, reportTTL time.Duration) *Service {
	if reports == nil {
		reports = cache.NoopReportCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if reportTTL < time.Second {
		reportTTL = time.Minute
	}

	return &Service{
		repo:      repo,
		reports:   reports,
		logger:    logger,
		reportTTL: reportTTL,
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, []domain.ProductVariant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, nil, store.ErrInvalidInput
	}
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, nil, err
	}
	variants, err := s.repo.ListVariantsByProduct(ctx, id)
	if err != nil {
		return domain.Product{}, nil, err
	}
	return *product, variants, nil
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return domain.Product{}, fmt.Errorf("%w: admin role required", store.ErrForbidden)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if req.Name == "" || req.Category == "" {
		return domain.Product{}, store.ErrInvalidInput
	}

	variants := make([]domain.ProductVariant, 0, len(req.Variants))
	for _, vr := range req.Variants {
		sku := strings.ToUpper(strings.TrimSpace(vr.SKU))
		name := strings.TrimSpace(vr.Name)
		if sku == "" || vr.Price < 1 || vr.InitialStock < 0 || vr.LowStockThreshold < 0 {
			return domain.Product{}, store.ErrInvalidInput
		}
		variants = append(variants, domain.ProductVariant{
			SKU:               sku,
			Name:              name,
			Price:             vr.Price,
			StockQuantity:     vr.InitialStock,
			LowStockThreshold: vr.LowStockThreshold,
		})
	}

	product := domain.Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Active:      true,
	}
	created, err := s.repo.CreateProduct(ctx, product, variants)
	if err != nil {
		return domain.Product{}, err
	}

	s.logAudit(ctx, "product_create", "product", created.ID, fmt.Sprintf("name=%s,variants=%d", created.Name, len(variants)))
	s.logger.Info("product created",
		zap.String("product_id", created.ID),
		zap.Int("variants", len(variants)))

	return *created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, req domain.ProductUpdateRequest) (domain.Product, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return domain.Product{}, fmt.Errorf("%w: admin role required", store.ErrForbidden)
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, store.ErrInvalidInput
	}

	existing, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Product{}, store.ErrInvalidInput
		}
		updated.Name = name
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return domain.Product{}, store.ErrInvalidInput
		}
		updated.Category = category
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	saved, err := s.repo.UpdateProduct(ctx, updated)
	if err != nil {
		return domain.Product{}, err
	}

	s.logAudit(ctx, "product_update", "product", saved.ID, fmt.Sprintf("active=%t", saved.Active))
	return *saved, nil
}

func (s *Service) GetVariantBySKU(ctx context.Context, sku string) (domain.ProductVariant, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return domain.ProductVariant{}, store.ErrInvalidInput
	}
	variant, err := s.repo.GetVariantBySKU(ctx, sku)
	if err != nil {
		return domain.ProductVariant{}, err
	}
	return *variant, nil
}

// UpdateStock applies a signed delta to a variant's stock. The resulting
// quantity must stay non-negative.
func (s *Service) UpdateStock(ctx context.Context, variantID string, req domain.StockUpdateRequest) (domain.ProductVariant, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return domain.ProductVariant{}, fmt.Errorf("%w: admin role required", store.ErrForbidden)
	}

	variantID = strings.TrimSpace(variantID)
	if variantID == "" || req.Delta == 0 {
		return domain.ProductVariant{}, store.ErrInvalidInput
	}

	updated, err := s.repo.AdjustStock(ctx, variantID, req.Delta)
	if err != nil {
		return domain.ProductVariant{}, err
	}

	s.logAudit(ctx, "stock_update", "variant", updated.ID, fmt.Sprintf("delta=%d,stock=%d,reason=%s", req.Delta, updated.StockQuantity, req.Reason))
	s.logger.Info("stock adjusted",
		zap.String("variant_id", updated.ID),
		zap.Int("delta", req.Delta),
		zap.Int("stock", updated.StockQuantity))

	return *updated, nil
}

// LowStockVariants returns variants at or below their threshold; equality
// counts, so a variant sold down to a zero threshold still appears.
func (s *Service) LowStockVariants(ctx context.Context) ([]domain.LowStockVariant, error) {
	return s.repo.ListLowStockVariants(ctx)
}

func (s *Service) CreateTransaction(ctx context.Context, req domain.TransactionCreateRequest) (domain.TransactionResponse, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return domain.TransactionResponse{}, store.ErrUnauthenticated
	}

	req.PaymentMethod = strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return domain.TransactionResponse{}, fmt.Errorf("%w: unsupported payment method %q", store.ErrInvalidInput, req.PaymentMethod)
	}
	if len(req.Items) == 0 {
		return domain.TransactionResponse{}, fmt.Errorf("%w: transaction needs at least one item", store.ErrInvalidInput)
	}
	if req.DiscountAmount < 0 || req.TaxAmount < 0 || req.PaymentAmount < 1 {
		return domain.TransactionResponse{}, store.ErrInvalidInput
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.VariantID) == "" || item.Quantity < 1 || item.DiscountAmount < 0 {
			return domain.TransactionResponse{}, store.ErrInvalidInput
		}
	}

	cashier, err := s.repo.GetStaffByUsername(ctx, actor.Username)
	if err != nil {
		return domain.TransactionResponse{}, fmt.Errorf("resolve cashier: %w", err)
	}

	if req.CustomerID != "" {
		if _, err := s.repo.GetCustomerByID(ctx, req.CustomerID); err != nil {
			return domain.TransactionResponse{}, fmt.Errorf("resolve customer: %w", err)
		}
	}

	now := time.Now().UTC()
	tx := domain.Transaction{
		ID:                xid.New("trx"),
		TransactionNumber: newTransactionNumber(now),
		CashierID:         cashier.ID,
		CustomerID:        strings.TrimSpace(req.CustomerID),
		DiscountAmount:    req.DiscountAmount,
		TaxAmount:         req.TaxAmount,
		PaymentMethod:     req.PaymentMethod,
		PaymentAmount:     req.PaymentAmount,
		Notes:             strings.TrimSpace(req.Notes),
		CreatedAt:         now,
	}

	created, err := s.repo.CreateTransaction(ctx, tx, req.Items)
	if err != nil {
		return domain.TransactionResponse{}, err
	}

	s.invalidateReport(ctx, created.CreatedAt)
	s.logAudit(ctx, "transaction_create", "transaction", created.ID,
		fmt.Sprintf("number=%s,total=%s,payment=%s", created.TransactionNumber, created.TotalAmount, created.PaymentMethod))
	s.logger.Info("transaction settled",
		zap.String("transaction_id", created.ID),
		zap.String("number", created.TransactionNumber),
		zap.String("total", created.TotalAmount.String()),
		zap.String("payment_method", created.PaymentMethod))

	return domain.TransactionResponse{Transaction: *created}, nil
}

func (s *Service) RefundTransaction(ctx context.Context, transactionID string) (domain.TransactionResponse, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return domain.TransactionResponse{}, fmt.Errorf("%w: admin role required", store.ErrForbidden)
	}

	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return domain.TransactionResponse{}, store.ErrInvalidInput
	}

	refunded, err := s.repo.RefundTransaction(ctx, transactionID, time.Now().UTC())
	if err != nil {
		return domain.TransactionResponse{}, err
	}

	s.invalidateReport(ctx, refunded.CreatedAt)
	s.logAudit(ctx, "transaction_refund", "transaction", refunded.ID, fmt.Sprintf("total=%s", refunded.TotalAmount))
	s.logger.Info("transaction refunded",
		zap.String("transaction_id", refunded.ID),
		zap.String("total", refunded.TotalAmount.String()))

	return domain.TransactionResponse{Transaction: *refunded}, nil
}

func (s *Service) GetTransaction(ctx context.Context, id string) (domain.TransactionResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.TransactionResponse{}, store.ErrInvalidInput
	}
	tx, err := s.repo.GetTransactionByID(ctx, id)
	if err != nil {
		return domain.TransactionResponse{}, err
	}
	return domain.TransactionResponse{Transaction: *tx}, nil
}

func (s *Service) ListTransactions(ctx context.Context, limit int, offset int) (domain.TransactionListResponse, error) {
	transactions, err := s.repo.ListTransactions(ctx, limit, offset)
	if err != nil {
		return domain.TransactionListResponse{}, err
	}
	return domain.TransactionListResponse{Transactions: transactions}, nil
}

func (s *Service) GetTransactionItems(ctx context.Context, transactionID string) ([]domain.TransactionItem, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, store.ErrInvalidInput
	}
	return s.repo.GetTransactionItems(ctx, transactionID)
}

func (s *Service) StartShift(ctx context.Context, req domain.ShiftStartRequest) (domain.ShiftResponse, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return domain.ShiftResponse{}, store.ErrUnauthenticated
	}
	if req.OpeningCash < 0 {
		return domain.ShiftResponse{}, store.ErrInvalidInput
	}

	cashier, err := s.repo.GetStaffByUsername(ctx, actor.Username)
	if err != nil {
		return domain.ShiftResponse{}, fmt.Errorf("resolve cashier: %w", err)
	}

	shift := domain.Shift{
		ID:          xid.New("shf"),
		CashierID:   cashier.ID,
		StartTime:   time.Now().UTC(),
		OpeningCash: req.OpeningCash,
	}
	saved, err := s.repo.CreateShift(ctx, shift)
	if err != nil {
		return domain.ShiftResponse{}, err
	}

	s.logAudit(ctx, "shift_start", "shift", saved.ID, fmt.Sprintf("opening_cash=%s", req.OpeningCash))
	s.logger.Info("shift started",
		zap.String("shift_id", saved.ID),
		zap.String("cashier_id", saved.CashierID))

	return domain.ShiftResponse{Shift: *saved}, nil
}

func (s *Service) EndShift(ctx context.Context, shiftID string, req domain.ShiftEndRequest) (domain.ShiftResponse, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return domain.ShiftResponse{}, store.ErrUnauthenticated
	}
	shiftID = strings.TrimSpace(shiftID)
	if shiftID == "" || req.ClosingCash < 0 {
		return domain.ShiftResponse{}, store.ErrInvalidInput
	}

	shift, err := s.repo.GetShiftByID(ctx, shiftID)
	if err != nil {
		return domain.ShiftResponse{}, err
	}
	if actor.Role != domain.RoleAdmin {
		cashier, err := s.repo.GetStaffByUsername(ctx, actor.Username)
		if err != nil {
			return domain.ShiftResponse{}, fmt.Errorf("resolve cashier: %w", err)
		}
		if shift.CashierID != cashier.ID {
			return domain.ShiftResponse{}, fmt.Errorf("%w: cannot close another cashier's shift", store.ErrForbidden)
		}
	}

	closed, err := s.repo.CloseShift(ctx, shiftID, req.ClosingCash, strings.TrimSpace(req.Notes), time.Now().UTC())
	if err != nil {
		return domain.ShiftResponse{}, err
	}

	s.logAudit(ctx, "shift_end", "shift", closed.ID,
		fmt.Sprintf("closing_cash=%s,total_sales=%s,transactions=%d", req.ClosingCash, closed.TotalSales, closed.TransactionCount))
	s.logger.Info("shift closed",
		zap.String("shift_id", closed.ID),
		zap.String("total_sales", closed.TotalSales.String()),
		zap.Int("transactions", closed.TransactionCount))

	return domain.ShiftResponse{Shift: *closed}, nil
}

func (s *Service) GetCurrentShift(ctx context.Context) (domain.ShiftResponse, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return domain.ShiftResponse{}, store.ErrUnauthenticated
	}
	cashier, err := s.repo.GetStaffByUsername(ctx, actor.Username)
	if err != nil {
		return domain.ShiftResponse{}, fmt.Errorf("resolve cashier: %w", err)
	}
	shift, err := s.repo.GetOpenShiftByCashier(ctx, cashier.ID)
	if err != nil {
		return domain.ShiftResponse{}, err
	}
	return domain.ShiftResponse{Shift: *shift}, nil
}

// GetShiftHistory lists shifts newest first, optionally filtered to one
// cashier.
func (s *Service) GetShiftHistory(ctx context.Context, cashierID string, limit int, offset int) (domain.ShiftListResponse, error) {
	shifts, err := s.repo.ListShifts(ctx, strings.TrimSpace(cashierID), limit, offset)
	if err != nil {
		return domain.ShiftListResponse{}, err
	}
	return domain.ShiftListResponse{Shifts: shifts}, nil
}

func (s *Service) CreateCustomer(ctx context.Context, req domain.CustomerCreateRequest) (domain.Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return domain.Customer{}, store.ErrInvalidInput
	}

	customer := domain.Customer{
		ID:        xid.New("cus"),
		Name:      req.Name,
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		CreatedAt: time.Now().UTC(),
	}
	saved, err := s.repo.CreateCustomer(ctx, customer)
	if err != nil {
		return domain.Customer{}, err
	}
	s.logAudit(ctx, "customer_create", "customer", saved.ID, fmt.Sprintf("name=%s", saved.Name))
	return *saved, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Customer{}, store.ErrInvalidInput
	}
	customer, err := s.repo.GetCustomerByID(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	return *customer, nil
}

func (s *Service) CreateStaff(ctx context.Context, req domain.StaffCreateRequest) (domain.Staff, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return domain.Staff{}, fmt.Errorf("%w: admin role required", store.ErrForbidden)
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if req.Username == "" || len(req.Password) < 8 {
		return domain.Staff{}, fmt.Errorf("%w: username required and password must be at least 8 characters", store.ErrInvalidInput)
	}
	if req.Role == "" {
		req.Role = domain.RoleCashier
	}
	if req.Role != domain.RoleAdmin && req.Role != domain.RoleCashier {
		return domain.Staff{}, store.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Staff{}, err
	}

	account := domain.StaffAccount{
		ID:        xid.New("stf"),
		Username:  req.Username,
		Password:  string(hash),
		FullName:  strings.TrimSpace(req.FullName),
		Role:      req.Role,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateStaff(ctx, account); err != nil {
		return domain.Staff{}, err
	}

	s.logAudit(ctx, "staff_create", "staff", account.ID, fmt.Sprintf("username=%s,role=%s", account.Username, account.Role))
	return domain.Staff{
		ID:        account.ID,
		Username:  account.Username,
		FullName:  account.FullName,
		Role:      account.Role,
		Active:    account.Active,
		CreatedAt: account.CreatedAt,
	}, nil
}

func (s *Service) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", store.ErrForbidden)
	}

	accounts, err := s.repo.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Staff, 0, len(accounts))
	for _, account := range accounts {
		result = append(result, domain.Staff{
			ID:        account.ID,
			Username:  account.Username,
			FullName:  account.FullName,
			Role:      account.Role,
			Active:    account.Active,
			CreatedAt: account.CreatedAt,
		})
	}
	return result, nil
}

func (s *Service) DailyReport(ctx context.Context, date string) (domain.DailyReport, error) {
	var day time.Time
	if strings.TrimSpace(date) == "" {
		now := time.Now().UTC()
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return domain.DailyReport{}, store.ErrInvalidInput
		}
		day = parsed.UTC()
	}
	from := day
	to := from.Add(24 * time.Hour)
	key := reportCacheKey(from)

	if cached, hit, err := s.reports.Get(ctx, key); err == nil && hit {
		return *cached, nil
	} else if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
	}

	report, err := s.repo.GetDailyReport(ctx, from, to)
	if err != nil {
		return domain.DailyReport{}, err
	}

	if err := s.reports.Set(ctx, key, &report, s.reportTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
	return report, nil
}

// BuildReceipt renders a plain-text receipt for a settled transaction.
func (s *Service) BuildReceipt(ctx context.Context, transactionID string) (domain.ReceiptResponse, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return domain.ReceiptResponse{}, store.ErrInvalidInput
	}
	tx, err := s.repo.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return domain.ReceiptResponse{}, err
	}

	lines := []string{
		"RetailPOS",
		"========================",
		"No: " + tx.TransactionNumber,
		"Date: " + tx.CreatedAt.Format("2006-01-02 15:04:05"),
		"------------------------",
	}
	for _, item := range tx.Items {
		lines = append(lines, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
		if item.DiscountAmount > 0 {
			lines = append(lines, fmt.Sprintf("  %s (disc %s)", item.TotalPrice, item.DiscountAmount))
		} else {
			lines = append(lines, fmt.Sprintf("  %s", item.TotalPrice))
		}
	}
	lines = append(lines,
		"------------------------",
		fmt.Sprintf("Subtotal : %s", tx.Subtotal),
		fmt.Sprintf("Discount : %s", tx.DiscountAmount),
		fmt.Sprintf("Tax      : %s", tx.TaxAmount),
		fmt.Sprintf("Total    : %s", tx.TotalAmount),
		fmt.Sprintf("Paid     : %s", tx.PaymentAmount),
		fmt.Sprintf("Change   : %s", tx.ChangeAmount),
		"========================",
		"Thank you",
		"",
	)

	return domain.ReceiptResponse{
		TransactionID: tx.ID,
		Text:          strings.Join(lines, "\n"),
	}, nil
}

func (s *Service) ListAuditLogs(ctx context.Context, date string, limit int) ([]domain.AuditLog, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", store.ErrForbidden)
	}
	if limit < 1 {
		limit = 100
	}

	var from time.Time
	if strings.TrimSpace(date) == "" {
		from = time.Now().UTC().Add(-24 * time.Hour)
	} else {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, store.ErrInvalidInput
		}
		from = parsed.UTC()
	}
	to := from.Add(24 * time.Hour)

	return s.repo.ListAuditLogs(ctx, from, to, limit)
}

func (s *Service) invalidateReport(ctx context.Context, at time.Time) {
	day := time.Date(at.UTC().Year(), at.UTC().Month(), at.UTC().Day(), 0, 0, 0, 0, time.UTC)
	if err := s.reports.Invalidate(ctx, reportCacheKey(day)); err != nil {
		s.logger.Warn("report cache invalidate failed", zap.Error(err))
	}
}

func (s *Service) logAudit(ctx context.Context, action string, entityType string, entityID string, detail string) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		actor = domain.Actor{Username: "system", Role: "system"}
	}

	if err := s.repo.CreateAuditLog(ctx, domain.AuditLog{
		ID:            xid.New("audit"),
		ActorUsername: actor.Username,
		ActorRole:     actor.Role,
		Action:        action,
		EntityType:    entityType,
		EntityID:      entityID,
		Detail:        detail,
		CreatedAt:     time.Now().UTC(),
	}); err != nil {
		s.logger.Warn("audit write failed",
			zap.String("action", action),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}

func reportCacheKey(day time.Time) string {
	return "report:daily:" + day.Format("2006-01-02")
}

// newTransactionNumber builds a unique, human-scannable receipt number. The
// unique index on transaction_number is the final arbiter.
func newTransactionNumber(at time.Time) string {
	return fmt.Sprintf("TRX-%d-%s", at.UnixMilli(), strings.ToUpper(uuid.NewString()[:8]))
}

// IsNotFound reports whether err is the repository's not-found kind.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
