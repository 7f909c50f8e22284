package memory

import (
	"context"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"retailpos/backend/internal/domain"
	"retailpos/backend/internal/store"
	"retailpos/backend/internal/xid"
)

type Store struct {
	mu                 sync.RWMutex
	products           map[string]domain.Product
	variantsByID       map[string]domain.ProductVariant
	variantIDBySKU     map[string]string
	transactionsByID   map[string]*domain.Transaction
	transactionNumbers map[string]struct{}
	shiftsByID         map[string]domain.Shift
	openShiftByCashier map[string]string
	customersByID      map[string]domain.Customer
	staffByUsername    map[string]domain.StaffAccount
	auditLogs          []domain.AuditLog
}

// seedStaff builds the initial accounts for dev/demo mode. Credentials come
// from SEED_ADMIN_PASSWORD and SEED_CASHIER_PASSWORD; hardcoded dev defaults
// are used with a warning when unset. Production runs against PostgreSQL
// (DATABASE_URL set) and never touches these.
func seedStaff() map[string]domain.StaffAccount {
	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin123")
	cashierPwd := envOr("SEED_CASHIER_PASSWORD", "cashier123")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_CASHIER_PASSWORD") == "" {
		log.Println("[memory-store] WARNING: using default dev credentials. Set SEED_ADMIN_PASSWORD and SEED_CASHIER_PASSWORD to override.")
	}

	now := time.Now().UTC()
	accounts := map[string]domain.StaffAccount{}
	for _, u := range []struct {
		username string
		password string
		fullName string
		role     string
	}{
		{"admin", adminPwd, "Store Admin", domain.RoleAdmin},
		{"cashier", cashierPwd, "Front Cashier", domain.RoleCashier},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] failed to hash seed password for %s: %v", u.username, err)
		}
		accounts[u.username] = domain.StaffAccount{
			ID:        xid.New("stf"),
			Username:  u.username,
			Password:  string(hash),
			FullName:  u.fullName,
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		}
	}
	return accounts
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func NewSeeded() *Store {
	now := time.Now().UTC()
	type seedVariant struct {
		sku       string
		name      string
		price     domain.Money
		stock     int
		threshold int
	}
	seeds := []struct {
		name     string
		category string
		variants []seedVariant
	}{
		{"Drip Coffee", "beverage", []seedVariant{
			{"COF-REG-12", "Regular 12oz", 350, 120, 20},
			{"COF-REG-16", "Regular 16oz", 450, 120, 20},
		}},
		{"Bottled Water", "beverage", []seedVariant{
			{"WTR-500", "500ml", 150, 200, 40},
		}},
		{"Club Sandwich", "food", []seedVariant{
			{"SND-CLB", "Classic", 899, 30, 8},
		}},
		{"Potato Chips", "snack", []seedVariant{
			{"CHP-SALT", "Salted", 249, 80, 15},
			{"CHP-BBQ", "Barbecue", 249, 80, 15},
		}},
		{"Chocolate Bar", "snack", []seedVariant{
			{"CHO-MILK", "Milk", 199, 90, 15},
		}},
		{"Notebook", "stationery", []seedVariant{
			{"NTB-A5", "A5 Ruled", 399, 40, 10},
		}},
	}

	products := make(map[string]domain.Product, len(seeds))
	variants := make(map[string]domain.ProductVariant, 16)
	skuIndex := make(map[string]string, 16)
	for _, seed := range seeds {
		p := domain.Product{
			ID:        xid.New("prd"),
			Name:      seed.name,
			Category:  seed.category,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		products[p.ID] = p
		for _, sv := range seed.variants {
			v := domain.ProductVariant{
				ID:                xid.New("var"),
				ProductID:         p.ID,
				SKU:               sv.sku,
				Name:              sv.name,
				Price:             sv.price,
				StockQuantity:     sv.stock,
				LowStockThreshold: sv.threshold,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			variants[v.ID] = v
			skuIndex[v.SKU] = v.ID
		}
	}

	return &Store{
		products:           products,
		variantsByID:       variants,
		variantIDBySKU:     skuIndex,
		transactionsByID:   make(map[string]*domain.Transaction),
		transactionNumbers: make(map[string]struct{}),
		shiftsByID:         make(map[string]domain.Shift),
		openShiftByCashier: make(map[string]string),
		customersByID:      make(map[string]domain.Customer),
		staffByUsername:    seedStaff(),
		auditLogs:          make([]domain.AuditLog, 0, 128),
	}
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if !p.Active {
			continue
		}
		products = append(products, p)
	}

	slices.SortFunc(products, func(a, b domain.Product) int {
		if a.Category == b.Category {
			return cmpString(a.Name, b.Name)
		}
		return cmpString(a.Category, b.Category)
	})

	return products, nil
}

func (s *Store) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.products[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyProduct := p
	return &copyProduct, nil
}

func (s *Store) CreateProduct(_ context.Context, product domain.Product, variants []domain.ProductVariant) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.Name == "" || product.Category == "" {
		return nil, store.ErrInvalidInput
	}
	for _, v := range variants {
		if v.SKU == "" || v.Price < 1 || v.StockQuantity < 0 || v.LowStockThreshold < 0 {
			return nil, store.ErrInvalidInput
		}
		if _, exists := s.variantIDBySKU[v.SKU]; exists {
			return nil, fmt.Errorf("%w: sku %s already exists", store.ErrInvalidInput, v.SKU)
		}
	}

	now := time.Now().UTC()
	if product.ID == "" {
		product.ID = xid.New("prd")
	}
	product.Active = true
	product.CreatedAt = now
	product.UpdatedAt = now
	s.products[product.ID] = product

	for _, v := range variants {
		if v.ID == "" {
			v.ID = xid.New("var")
		}
		v.ProductID = product.ID
		v.CreatedAt = now
		v.UpdatedAt = now
		s.variantsByID[v.ID] = v
		s.variantIDBySKU[v.SKU] = v.ID
	}

	created := product
	return &created, nil
}

func (s *Store) UpdateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == "" || product.Name == "" || product.Category == "" {
		return nil, store.ErrInvalidInput
	}
	existing, exists := s.products[product.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	s.products[product.ID] = product
	updated := product
	return &updated, nil
}

func (s *Store) ListVariantsByProduct(_ context.Context, productID string) ([]domain.ProductVariant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	variants := make([]domain.ProductVariant, 0, 8)
	for _, v := range s.variantsByID {
		if v.ProductID != productID {
			continue
		}
		variants = append(variants, v)
	}
	slices.SortFunc(variants, func(a, b domain.ProductVariant) int {
		return cmpString(a.SKU, b.SKU)
	})
	return variants, nil
}

func (s *Store) GetVariantByID(_ context.Context, id string) (*domain.ProductVariant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, exists := s.variantsByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyVariant := v
	return &copyVariant, nil
}

func (s *Store) GetVariantBySKU(_ context.Context, sku string) (*domain.ProductVariant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.variantIDBySKU[sku]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyVariant := s.variantsByID[id]
	return &copyVariant, nil
}

func (s *Store) AdjustStock(_ context.Context, variantID string, delta int) (*domain.ProductVariant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.variantsByID[variantID]
	if !exists {
		return nil, store.ErrNotFound
	}
	next := v.StockQuantity + delta
	if next < 0 {
		return nil, fmt.Errorf("%w: variant %s has %d, requested %d",
			store.ErrInsufficientStock, variantID, v.StockQuantity, -delta)
	}
	v.StockQuantity = next
	v.UpdatedAt = time.Now().UTC()
	s.variantsByID[variantID] = v
	copyVariant := v
	return &copyVariant, nil
}

func (s *Store) ListLowStockVariants(_ context.Context) ([]domain.LowStockVariant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.LowStockVariant, 0, 16)
	for _, v := range s.variantsByID {
		product, exists := s.products[v.ProductID]
		if !exists || !product.Active {
			continue
		}
		if v.StockQuantity > v.LowStockThreshold {
			continue
		}
		result = append(result, domain.LowStockVariant{Variant: v, ProductName: product.Name})
	}
	slices.SortFunc(result, func(a, b domain.LowStockVariant) int {
		if a.Variant.StockQuantity == b.Variant.StockQuantity {
			return cmpString(a.Variant.SKU, b.Variant.SKU)
		}
		return a.Variant.StockQuantity - b.Variant.StockQuantity
	})
	return result, nil
}

func (s *Store) CreateTransaction(_ context.Context, tx domain.Transaction, reqItems []domain.TransactionItemRequest) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(reqItems) == 0 {
		return nil, fmt.Errorf("%w: transaction needs at least one item", store.ErrInvalidInput)
	}
	if _, taken := s.transactionNumbers[tx.TransactionNumber]; taken {
		return nil, fmt.Errorf("%w: duplicate transaction number", store.ErrInvalidInput)
	}

	// Preconditions checked in request order before any write. Stock is
	// tracked cumulatively so repeated variants cannot overdraw together.
	var subtotal domain.Money
	remaining := make(map[string]int, len(reqItems))
	for _, item := range reqItems {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be positive", store.ErrInvalidInput)
		}
		if item.DiscountAmount < 0 {
			return nil, fmt.Errorf("%w: negative item discount", store.ErrInvalidInput)
		}
		v, exists := s.variantsByID[item.VariantID]
		if !exists {
			return nil, fmt.Errorf("%w: variant %s", store.ErrNotFound, item.VariantID)
		}
		if item.UnitPrice != 0 && item.UnitPrice != v.Price {
			return nil, fmt.Errorf("%w: unit price %s does not match catalog price %s for %s",
				store.ErrInvalidInput, item.UnitPrice, v.Price, v.SKU)
		}
		avail, seen := remaining[item.VariantID]
		if !seen {
			avail = v.StockQuantity
		}
		if avail < item.Quantity {
			return nil, fmt.Errorf("%w: variant %s has %d, requested %d",
				store.ErrInsufficientStock, item.VariantID, avail, item.Quantity)
		}
		remaining[item.VariantID] = avail - item.Quantity
		subtotal += v.Price*domain.Money(item.Quantity) - item.DiscountAmount
	}

	if tx.DiscountAmount < 0 || tx.DiscountAmount > subtotal {
		return nil, fmt.Errorf("%w: discount exceeds subtotal", store.ErrInvalidInput)
	}
	if tx.TaxAmount < 0 {
		return nil, fmt.Errorf("%w: negative tax", store.ErrInvalidInput)
	}
	total := subtotal - tx.DiscountAmount + tx.TaxAmount
	if tx.PaymentAmount < total {
		return nil, fmt.Errorf("%w: total %s, paid %s",
			store.ErrInsufficientPayment, total, tx.PaymentAmount)
	}

	if tx.ID == "" {
		tx.ID = xid.New("trx")
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	tx.Subtotal = subtotal
	tx.TotalAmount = total
	tx.ChangeAmount = tx.PaymentAmount - total
	tx.Status = domain.TxStatusCompleted

	items := make([]domain.TransactionItem, 0, len(reqItems))
	for _, item := range reqItems {
		v := s.variantsByID[item.VariantID]
		v.StockQuantity -= item.Quantity
		v.UpdatedAt = tx.CreatedAt
		s.variantsByID[item.VariantID] = v

		items = append(items, domain.TransactionItem{
			ID:             xid.New("txi"),
			TransactionID:  tx.ID,
			VariantID:      item.VariantID,
			SKU:            v.SKU,
			Name:           v.Name,
			Quantity:       item.Quantity,
			UnitPrice:      v.Price,
			DiscountAmount: item.DiscountAmount,
			TotalPrice:     v.Price*domain.Money(item.Quantity) - item.DiscountAmount,
		})
	}
	tx.Items = items

	if shiftID, open := s.openShiftByCashier[tx.CashierID]; open {
		shift := s.shiftsByID[shiftID]
		shift.TotalSales += tx.TotalAmount
		shift.TransactionCount++
		s.shiftsByID[shiftID] = shift
	}

	saved := cloneTransaction(tx)
	s.transactionsByID[tx.ID] = &saved
	s.transactionNumbers[tx.TransactionNumber] = struct{}{}
	result := cloneTransaction(saved)
	return &result, nil
}

func (s *Store) RefundTransaction(_ context.Context, id string, at time.Time) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, exists := s.transactionsByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	if tx.Status == domain.TxStatusRefunded {
		return nil, store.ErrAlreadyRefunded
	}
	if tx.Status != domain.TxStatusCompleted {
		return nil, fmt.Errorf("%w: cannot refund a %s transaction", store.ErrInvalidInput, tx.Status)
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	for _, item := range tx.Items {
		v, ok := s.variantsByID[item.VariantID]
		if !ok {
			continue
		}
		v.StockQuantity += item.Quantity
		v.UpdatedAt = at
		s.variantsByID[item.VariantID] = v
	}

	tx.Status = domain.TxStatusRefunded

	if shiftID, open := s.openShiftByCashier[tx.CashierID]; open {
		shift := s.shiftsByID[shiftID]
		shift.TotalSales -= tx.TotalAmount
		if shift.TransactionCount > 0 {
			shift.TransactionCount--
		}
		s.shiftsByID[shiftID] = shift
	}

	result := cloneTransaction(*tx)
	return &result, nil
}

func (s *Store) GetTransactionByID(_ context.Context, id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, exists := s.transactionsByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	result := cloneTransaction(*tx)
	return &result, nil
}

func (s *Store) ListTransactions(_ context.Context, limit int, offset int) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit < 1 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	all := make([]domain.Transaction, 0, len(s.transactionsByID))
	for _, tx := range s.transactionsByID {
		all = append(all, cloneTransaction(*tx))
	}
	slices.SortFunc(all, func(a, b domain.Transaction) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})

	if offset >= len(all) {
		return []domain.Transaction{}, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *Store) GetTransactionItems(_ context.Context, transactionID string) ([]domain.TransactionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, exists := s.transactionsByID[transactionID]
	if !exists {
		return nil, store.ErrNotFound
	}
	items := make([]domain.TransactionItem, len(tx.Items))
	copy(items, tx.Items)
	return items, nil
}

func (s *Store) GetDailyReport(_ context.Context, from time.Time, to time.Time) (domain.DailyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := domain.DailyReport{
		Date:      from.UTC().Format("2006-01-02"),
		ByPayment: make([]domain.DailyReportPayment, 0, 4),
	}

	byPayment := map[string]*domain.DailyReportPayment{}
	for _, tx := range s.transactionsByID {
		if tx.CreatedAt.Before(from) || !tx.CreatedAt.Before(to) {
			continue
		}
		switch tx.Status {
		case domain.TxStatusCompleted:
			report.Transactions++
			report.GrossSales += tx.TotalAmount
			row := byPayment[tx.PaymentMethod]
			if row == nil {
				row = &domain.DailyReportPayment{PaymentMethod: tx.PaymentMethod}
				byPayment[tx.PaymentMethod] = row
			}
			row.Transactions++
			row.Total += tx.TotalAmount
		case domain.TxStatusRefunded:
			report.Transactions++
			report.GrossSales += tx.TotalAmount
			report.Refunds += tx.TotalAmount
		}
	}
	report.NetSales = report.GrossSales - report.Refunds

	methods := make([]string, 0, len(byPayment))
	for method := range byPayment {
		methods = append(methods, method)
	}
	slices.Sort(methods)
	for _, method := range methods {
		report.ByPayment = append(report.ByPayment, *byPayment[method])
	}
	return report, nil
}

func (s *Store) CreateShift(_ context.Context, shift domain.Shift) (*domain.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(shift.CashierID) == "" {
		return nil, store.ErrInvalidInput
	}
	if _, open := s.openShiftByCashier[shift.CashierID]; open {
		return nil, store.ErrShiftAlreadyActive
	}
	if shift.ID == "" {
		shift.ID = xid.New("shf")
	}
	if shift.StartTime.IsZero() {
		shift.StartTime = time.Now().UTC()
	}
	shift.EndTime = nil
	shift.ClosingCash = nil
	shift.ExpectedCash = nil
	shift.TotalSales = 0
	shift.TransactionCount = 0

	s.shiftsByID[shift.ID] = shift
	s.openShiftByCashier[shift.CashierID] = shift.ID
	saved := shift
	return &saved, nil
}

func (s *Store) CloseShift(_ context.Context, shiftID string, closingCash domain.Money, notes string, closedAt time.Time) (*domain.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shift, exists := s.shiftsByID[shiftID]
	if !exists {
		return nil, store.ErrNotFound
	}
	if shift.EndTime != nil {
		return nil, store.ErrShiftAlreadyEnded
	}
	if closedAt.IsZero() {
		closedAt = time.Now().UTC()
	}

	// Recompute from the transaction log; the incremental counters only
	// serve live display and are not trusted here.
	var totalSales domain.Money
	var cashSales domain.Money
	count := 0
	for _, tx := range s.transactionsByID {
		if tx.CashierID != shift.CashierID || tx.Status != domain.TxStatusCompleted {
			continue
		}
		if tx.CreatedAt.Before(shift.StartTime) || tx.CreatedAt.After(closedAt) {
			continue
		}
		totalSales += tx.TotalAmount
		count++
		if tx.PaymentMethod == domain.PaymentMethodCash {
			cashSales += tx.TotalAmount
		}
	}

	closed := closedAt.UTC()
	expected := shift.OpeningCash + cashSales
	closing := closingCash
	shift.EndTime = &closed
	shift.ClosingCash = &closing
	shift.ExpectedCash = &expected
	shift.TotalSales = totalSales
	shift.TransactionCount = count
	if notes != "" {
		shift.Notes = notes
	}

	s.shiftsByID[shiftID] = shift
	delete(s.openShiftByCashier, shift.CashierID)
	saved := shift
	return &saved, nil
}

func (s *Store) GetOpenShiftByCashier(_ context.Context, cashierID string) (*domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shiftID, open := s.openShiftByCashier[cashierID]
	if !open {
		return nil, store.ErrNotFound
	}
	shift := s.shiftsByID[shiftID]
	copyShift := shift
	return &copyShift, nil
}

func (s *Store) GetShiftByID(_ context.Context, id string) (*domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shift, exists := s.shiftsByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyShift := shift
	return &copyShift, nil
}

func (s *Store) ListShifts(_ context.Context, cashierID string, limit int, offset int) ([]domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit < 1 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	shifts := make([]domain.Shift, 0, len(s.shiftsByID))
	for _, shift := range s.shiftsByID {
		if cashierID != "" && shift.CashierID != cashierID {
			continue
		}
		shifts = append(shifts, shift)
	}
	slices.SortFunc(shifts, func(a, b domain.Shift) int {
		if a.StartTime.Equal(b.StartTime) {
			return cmpString(b.ID, a.ID)
		}
		if a.StartTime.After(b.StartTime) {
			return -1
		}
		return 1
	})

	if offset >= len(shifts) {
		return []domain.Shift{}, nil
	}
	shifts = shifts[offset:]
	if len(shifts) > limit {
		shifts = shifts[:limit]
	}
	return shifts, nil
}

func (s *Store) CreateCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return nil, store.ErrInvalidInput
	}
	if customer.ID == "" {
		customer.ID = xid.New("cus")
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now().UTC()
	}
	s.customersByID[customer.ID] = customer
	saved := customer
	return &saved, nil
}

func (s *Store) GetCustomerByID(_ context.Context, id string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, exists := s.customersByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyCustomer := customer
	return &copyCustomer, nil
}

func (s *Store) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]domain.Customer, 0, len(s.customersByID))
	for _, c := range s.customersByID {
		customers = append(customers, c)
	}
	slices.SortFunc(customers, func(a, b domain.Customer) int {
		return cmpString(a.Name, b.Name)
	})
	return customers, nil
}

func (s *Store) CreateStaff(_ context.Context, account domain.StaffAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account.Username = strings.ToLower(strings.TrimSpace(account.Username))
	if account.Username == "" || strings.TrimSpace(account.Password) == "" {
		return store.ErrInvalidInput
	}
	if _, exists := s.staffByUsername[account.Username]; exists {
		return store.ErrInvalidInput
	}
	if account.ID == "" {
		account.ID = xid.New("stf")
	}
	if account.Role == "" {
		account.Role = domain.RoleCashier
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	s.staffByUsername[account.Username] = account
	return nil
}

func (s *Store) GetStaffByUsername(_ context.Context, username string) (*domain.StaffAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.staffByUsername[strings.ToLower(strings.TrimSpace(username))]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyAccount := account
	return &copyAccount, nil
}

func (s *Store) ListStaff(_ context.Context) ([]domain.StaffAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]domain.StaffAccount, 0, len(s.staffByUsername))
	for _, account := range s.staffByUsername {
		accounts = append(accounts, account)
	}
	slices.SortFunc(accounts, func(a, b domain.StaffAccount) int {
		return cmpString(a.Username, b.Username)
	})
	return accounts, nil
}

func (s *Store) UpdateStaffPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.TrimSpace(password) == "" {
		return store.ErrInvalidInput
	}
	account, exists := s.staffByUsername[username]
	if !exists {
		return store.ErrNotFound
	}
	account.Password = password
	s.staffByUsername[username] = account
	return nil
}

func (s *Store) CreateAuditLog(_ context.Context, entry domain.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = xid.New("audit")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.auditLogs = append(s.auditLogs, entry)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, from time.Time, to time.Time, limit int) ([]domain.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit < 1 {
		limit = 100
	}
	logs := make([]domain.AuditLog, 0, limit)
	for _, entry := range s.auditLogs {
		if entry.CreatedAt.Before(from) || !entry.CreatedAt.Before(to) {
			continue
		}
		logs = append(logs, entry)
	}
	slices.SortFunc(logs, func(a, b domain.AuditLog) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func cloneTransaction(tx domain.Transaction) domain.Transaction {
	items := make([]domain.TransactionItem, len(tx.Items))
	copy(items, tx.Items)
	tx.Items = items
	return tx
}

func cmpString(a, b string) int {
	return strings.Compare(a, b)
}
