package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"retailpos/backend/internal/domain"
	"retailpos/backend/internal/store"
	"retailpos/backend/internal/xid"
)

// Store is the Postgres-backed repository. Schema and indexes (including the
// partial unique index that keeps one open shift per cashier) live in
// schema.sql next to this file.
type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, COALESCE(description,''), active, created_at, updated_at
		FROM products
		WHERE active = true
		ORDER BY category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 128)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt = p.CreatedAt.UTC()
		p.UpdatedAt = p.UpdatedAt.UTC()
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (s *Store) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, COALESCE(description,''), active, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, product domain.Product, variants []domain.ProductVariant) (*domain.Product, error) {
	if product.Name == "" || product.Category == "" {
		return nil, store.ErrInvalidInput
	}
	if product.ID == "" {
		product.ID = xid.New("prd")
	}
	now := time.Now().UTC()
	product.Active = true
	product.CreatedAt = now
	product.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, name, category, description, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, product.ID, product.Name, product.Category, nullIfEmpty(product.Description), product.Active, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	for i := range variants {
		v := &variants[i]
		if v.SKU == "" || v.Price < 1 || v.StockQuantity < 0 || v.LowStockThreshold < 0 {
			return nil, store.ErrInvalidInput
		}
		if v.ID == "" {
			v.ID = xid.New("var")
		}
		v.ProductID = product.ID
		v.CreatedAt = now
		v.UpdatedAt = now
		_, err = tx.ExecContext(ctx, `
			INSERT INTO product_variants (
				id, product_id, sku, name, price_cents, stock_quantity,
				low_stock_threshold, created_at, updated_at
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, v.ID, v.ProductID, v.SKU, v.Name, int64(v.Price), v.StockQuantity, v.LowStockThreshold, v.CreatedAt, v.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("%w: sku %s already exists", store.ErrInvalidInput, v.SKU)
			}
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	created := product
	return &created, nil
}

func (s *Store) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID == "" || product.Name == "" || product.Category == "" {
		return nil, store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, category = $3, description = $4, active = $5, updated_at = now()
		WHERE id = $1
	`, product.ID, product.Name, product.Category, nullIfEmpty(product.Description), product.Active)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := product
	return &updated, nil
}

func (s *Store) ListVariantsByProduct(ctx context.Context, productID string) ([]domain.ProductVariant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, sku, name, price_cents, stock_quantity,
			low_stock_threshold, created_at, updated_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY sku
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variants := make([]domain.ProductVariant, 0, 8)
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return variants, nil
}

func (s *Store) GetVariantByID(ctx context.Context, id string) (*domain.ProductVariant, error) {
	return s.getVariant(ctx, "id", id)
}

func (s *Store) GetVariantBySKU(ctx context.Context, sku string) (*domain.ProductVariant, error) {
	return s.getVariant(ctx, "sku", sku)
}

func (s *Store) getVariant(ctx context.Context, column string, value string) (*domain.ProductVariant, error) {
	if column != "id" && column != "sku" {
		return nil, fmt.Errorf("unsupported lookup column")
	}

	var v domain.ProductVariant
	query := fmt.Sprintf(`
		SELECT id, product_id, sku, name, price_cents, stock_quantity,
			low_stock_threshold, created_at, updated_at
		FROM product_variants
		WHERE %s = $1
	`, column)
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Price, &v.StockQuantity,
		&v.LowStockThreshold, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return &v, nil
}

// AdjustStock applies a signed delta. The conditional UPDATE keeps the
// quantity non-negative even under concurrent writers.
func (s *Store) AdjustStock(ctx context.Context, variantID string, delta int) (*domain.ProductVariant, error) {
	var v domain.ProductVariant
	err := s.db.QueryRowContext(ctx, `
		UPDATE product_variants
		SET stock_quantity = stock_quantity + $2, updated_at = now()
		WHERE id = $1 AND stock_quantity + $2 >= 0
		RETURNING id, product_id, sku, name, price_cents, stock_quantity,
			low_stock_threshold, created_at, updated_at
	`, variantID, delta).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Price, &v.StockQuantity,
		&v.LowStockThreshold, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			existing, lookupErr := s.GetVariantByID(ctx, variantID)
			if lookupErr != nil {
				if errors.Is(lookupErr, store.ErrNotFound) {
					return nil, store.ErrNotFound
				}
				return nil, lookupErr
			}
			return nil, fmt.Errorf("%w: variant %s has %d, requested %d",
				store.ErrInsufficientStock, variantID, existing.StockQuantity, -delta)
		}
		return nil, err
	}
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return &v, nil
}

func (s *Store) ListLowStockVariants(ctx context.Context) ([]domain.LowStockVariant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.product_id, v.sku, v.name, v.price_cents, v.stock_quantity,
			v.low_stock_threshold, v.created_at, v.updated_at, p.name
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		WHERE p.active = true AND v.stock_quantity <= v.low_stock_threshold
		ORDER BY v.stock_quantity ASC, v.sku
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.LowStockVariant, 0, 16)
	for rows.Next() {
		var entry domain.LowStockVariant
		v := &entry.Variant
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Price, &v.StockQuantity,
			&v.LowStockThreshold, &v.CreatedAt, &v.UpdatedAt, &entry.ProductName,
		); err != nil {
			return nil, err
		}
		v.CreatedAt = v.CreatedAt.UTC()
		v.UpdatedAt = v.UpdatedAt.UTC()
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateTransaction settles a sale in one serializable transaction: variant
// rows are locked, preconditions checked in request order, stock decremented,
// the transaction and its items inserted, and the cashier's open shift
// counters bumped when one exists.
func (s *Store) CreateTransaction(ctx context.Context, tx domain.Transaction, reqItems []domain.TransactionItemRequest) (*domain.Transaction, error) {
	if len(reqItems) == 0 {
		return nil, fmt.Errorf("%w: transaction needs at least one item", store.ErrInvalidInput)
	}

	pgTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() { _ = pgTx.Rollback() }()

	ids := uniqueVariantIDs(reqItems)
	variantRows, err := pgTx.QueryContext(ctx, `
		SELECT id, sku, name, price_cents, stock_quantity
		FROM product_variants
		WHERE id = ANY($1)
		FOR UPDATE
	`, ids)
	if err != nil {
		return nil, err
	}
	type variantState struct {
		sku   string
		name  string
		price domain.Money
		stock int
	}
	variantMap := make(map[string]variantState, len(ids))
	for variantRows.Next() {
		var id string
		var vs variantState
		if err := variantRows.Scan(&id, &vs.sku, &vs.name, &vs.price, &vs.stock); err != nil {
			_ = variantRows.Close()
			return nil, err
		}
		variantMap[id] = vs
	}
	if err := variantRows.Err(); err != nil {
		_ = variantRows.Close()
		return nil, err
	}
	_ = variantRows.Close()

	var subtotal domain.Money
	items := make([]domain.TransactionItem, 0, len(reqItems))
	for _, item := range reqItems {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be positive", store.ErrInvalidInput)
		}
		if item.DiscountAmount < 0 {
			return nil, fmt.Errorf("%w: negative item discount", store.ErrInvalidInput)
		}

		vs, exists := variantMap[item.VariantID]
		if !exists {
			return nil, fmt.Errorf("%w: variant %s", store.ErrNotFound, item.VariantID)
		}
		if item.UnitPrice != 0 && item.UnitPrice != vs.price {
			return nil, fmt.Errorf("%w: unit price %s does not match catalog price %s for %s",
				store.ErrInvalidInput, item.UnitPrice, vs.price, vs.sku)
		}
		if vs.stock < item.Quantity {
			return nil, fmt.Errorf("%w: variant %s has %d, requested %d",
				store.ErrInsufficientStock, item.VariantID, vs.stock, item.Quantity)
		}

		_, err = pgTx.ExecContext(ctx, `
			UPDATE product_variants
			SET stock_quantity = stock_quantity - $1, updated_at = now()
			WHERE id = $2
		`, item.Quantity, item.VariantID)
		if err != nil {
			return nil, err
		}
		vs.stock -= item.Quantity
		variantMap[item.VariantID] = vs

		lineTotal := vs.price*domain.Money(item.Quantity) - item.DiscountAmount
		items = append(items, domain.TransactionItem{
			ID:             xid.New("txi"),
			TransactionID:  tx.ID,
			VariantID:      item.VariantID,
			SKU:            vs.sku,
			Name:           vs.name,
			Quantity:       item.Quantity,
			UnitPrice:      vs.price,
			DiscountAmount: item.DiscountAmount,
			TotalPrice:     lineTotal,
		})
		subtotal += lineTotal
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

	tx.Subtotal = subtotal
	tx.TotalAmount = total
	tx.ChangeAmount = tx.PaymentAmount - total
	tx.Status = domain.TxStatusCompleted
	if tx.ID == "" {
		tx.ID = xid.New("trx")
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	for i := range items {
		items[i].TransactionID = tx.ID
	}
	tx.Items = items

	_, err = pgTx.ExecContext(ctx, `
		INSERT INTO transactions (
			id, transaction_number, cashier_id, customer_id, subtotal_cents,
			discount_cents, tax_cents, total_cents, payment_method,
			payment_cents, change_cents, status, notes, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`, tx.ID, tx.TransactionNumber, tx.CashierID, nullIfEmpty(tx.CustomerID),
		int64(tx.Subtotal), int64(tx.DiscountAmount), int64(tx.TaxAmount), int64(tx.TotalAmount),
		tx.PaymentMethod, int64(tx.PaymentAmount), int64(tx.ChangeAmount), tx.Status,
		nullIfEmpty(tx.Notes), tx.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: duplicate transaction number", store.ErrInvalidInput)
		}
		return nil, err
	}

	for _, item := range tx.Items {
		_, err := pgTx.ExecContext(ctx, `
			INSERT INTO transaction_items (
				id, transaction_id, variant_id, sku, name, qty,
				unit_price_cents, discount_cents, total_price_cents
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, item.ID, item.TransactionID, item.VariantID, item.SKU, item.Name,
			item.Quantity, int64(item.UnitPrice), int64(item.DiscountAmount), int64(item.TotalPrice))
		if err != nil {
			return nil, err
		}
	}

	// No-op when the cashier has no open shift.
	_, err = pgTx.ExecContext(ctx, `
		UPDATE shifts
		SET total_sales_cents = total_sales_cents + $2, transaction_count = transaction_count + 1
		WHERE cashier_id = $1 AND end_time IS NULL
	`, tx.CashierID, int64(tx.TotalAmount))
	if err != nil {
		return nil, err
	}

	if err := pgTx.Commit(); err != nil {
		return nil, err
	}

	return &tx, nil
}

func (s *Store) RefundTransaction(ctx context.Context, id string, at time.Time) (*domain.Transaction, error) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	pgTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() { _ = pgTx.Rollback() }()

	var tx domain.Transaction
	err = pgTx.QueryRowContext(ctx, `
		SELECT id, cashier_id, total_cents, status
		FROM transactions
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&tx.ID, &tx.CashierID, &tx.TotalAmount, &tx.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if tx.Status == domain.TxStatusRefunded {
		return nil, store.ErrAlreadyRefunded
	}
	if tx.Status != domain.TxStatusCompleted {
		return nil, fmt.Errorf("%w: cannot refund a %s transaction", store.ErrInvalidInput, tx.Status)
	}

	itemRows, err := pgTx.QueryContext(ctx, `
		SELECT variant_id, qty
		FROM transaction_items
		WHERE transaction_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	type restock struct {
		variantID string
		qty       int
	}
	restocks := make([]restock, 0, 8)
	for itemRows.Next() {
		var r restock
		if err := itemRows.Scan(&r.variantID, &r.qty); err != nil {
			_ = itemRows.Close()
			return nil, err
		}
		restocks = append(restocks, r)
	}
	if err := itemRows.Err(); err != nil {
		_ = itemRows.Close()
		return nil, err
	}
	_ = itemRows.Close()

	for _, r := range restocks {
		_, err := pgTx.ExecContext(ctx, `
			UPDATE product_variants
			SET stock_quantity = stock_quantity + $1, updated_at = now()
			WHERE id = $2
		`, r.qty, r.variantID)
		if err != nil {
			return nil, err
		}
	}

	_, err = pgTx.ExecContext(ctx, `
		UPDATE transactions
		SET status = $2
		WHERE id = $1
	`, id, domain.TxStatusRefunded)
	if err != nil {
		return nil, err
	}

	_, err = pgTx.ExecContext(ctx, `
		UPDATE shifts
		SET total_sales_cents = total_sales_cents - $2,
			transaction_count = GREATEST(transaction_count - 1, 0)
		WHERE cashier_id = $1 AND end_time IS NULL
	`, tx.CashierID, int64(tx.TotalAmount))
	if err != nil {
		return nil, err
	}

	if err := pgTx.Commit(); err != nil {
		return nil, err
	}

	// Re-read so callers get the complete refunded row, items included.
	return s.GetTransactionByID(ctx, id)
}

func (s *Store) GetTransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var tx domain.Transaction
	var customerID sql.NullString
	var notes sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, transaction_number, cashier_id, customer_id, subtotal_cents,
			discount_cents, tax_cents, total_cents, payment_method,
			payment_cents, change_cents, status, notes, created_at
		FROM transactions
		WHERE id = $1
	`, id).Scan(
		&tx.ID, &tx.TransactionNumber, &tx.CashierID, &customerID, &tx.Subtotal,
		&tx.DiscountAmount, &tx.TaxAmount, &tx.TotalAmount, &tx.PaymentMethod,
		&tx.PaymentAmount, &tx.ChangeAmount, &tx.Status, &notes, &tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if customerID.Valid {
		tx.CustomerID = customerID.String
	}
	if notes.Valid {
		tx.Notes = notes.String
	}
	tx.CreatedAt = tx.CreatedAt.UTC()

	items, err := s.GetTransactionItems(ctx, tx.ID)
	if err != nil {
		return nil, err
	}
	tx.Items = items
	return &tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	if limit < 1 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, transaction_number, cashier_id, customer_id, subtotal_cents,
			discount_cents, tax_cents, total_cents, payment_method,
			payment_cents, change_cents, status, notes, created_at
		FROM transactions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		var tx domain.Transaction
		var customerID sql.NullString
		var notes sql.NullString
		if err := rows.Scan(
			&tx.ID, &tx.TransactionNumber, &tx.CashierID, &customerID, &tx.Subtotal,
			&tx.DiscountAmount, &tx.TaxAmount, &tx.TotalAmount, &tx.PaymentMethod,
			&tx.PaymentAmount, &tx.ChangeAmount, &tx.Status, &notes, &tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		if customerID.Valid {
			tx.CustomerID = customerID.String
		}
		if notes.Valid {
			tx.Notes = notes.String
		}
		tx.CreatedAt = tx.CreatedAt.UTC()
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *Store) GetTransactionItems(ctx context.Context, transactionID string) ([]domain.TransactionItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, transaction_id, variant_id, sku, name, qty,
			unit_price_cents, discount_cents, total_price_cents
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY id ASC
	`, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.TransactionItem, 0, 8)
	for rows.Next() {
		var item domain.TransactionItem
		if err := rows.Scan(
			&item.ID, &item.TransactionID, &item.VariantID, &item.SKU, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.DiscountAmount, &item.TotalPrice,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetDailyReport(ctx context.Context, from time.Time, to time.Time) (domain.DailyReport, error) {
	report := domain.DailyReport{
		Date:      from.UTC().Format("2006-01-02"),
		ByPayment: make([]domain.DailyReportPayment, 0, 4),
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*)::bigint,
			COALESCE(SUM(total_cents),0)::bigint,
			COALESCE(SUM(CASE WHEN status = $4 THEN total_cents ELSE 0 END),0)::bigint
		FROM transactions
		WHERE created_at >= $1
			AND created_at < $2
			AND status IN ($3, $4)
	`, from, to, domain.TxStatusCompleted, domain.TxStatusRefunded).Scan(
		&report.Transactions,
		&report.GrossSales,
		&report.Refunds,
	)
	if err != nil {
		return report, err
	}
	report.NetSales = report.GrossSales - report.Refunds

	paymentRows, err := s.db.QueryContext(ctx, `
		SELECT payment_method, COUNT(*)::bigint, COALESCE(SUM(total_cents),0)::bigint
		FROM transactions
		WHERE created_at >= $1
			AND created_at < $2
			AND status = $3
		GROUP BY payment_method
		ORDER BY payment_method
	`, from, to, domain.TxStatusCompleted)
	if err != nil {
		return report, err
	}
	defer paymentRows.Close()

	for paymentRows.Next() {
		var row domain.DailyReportPayment
		if err := paymentRows.Scan(&row.PaymentMethod, &row.Transactions, &row.Total); err != nil {
			return report, err
		}
		report.ByPayment = append(report.ByPayment, row)
	}
	if err := paymentRows.Err(); err != nil {
		return report, err
	}

	return report, nil
}

func (s *Store) CreateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error) {
	if strings.TrimSpace(shift.CashierID) == "" {
		return nil, store.ErrInvalidInput
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shifts (
			id, cashier_id, start_time, end_time, opening_cash_cents,
			closing_cash_cents, expected_cash_cents, total_sales_cents,
			transaction_count, notes
		)
		VALUES ($1,$2,$3,NULL,$4,NULL,NULL,0,0,$5)
	`, shift.ID, shift.CashierID, shift.StartTime, int64(shift.OpeningCash), nullIfEmpty(shift.Notes))
	if err != nil {
		// The partial unique index on open shifts fires here.
		if isUniqueViolation(err) {
			return nil, store.ErrShiftAlreadyActive
		}
		return nil, err
	}
	saved := shift
	return &saved, nil
}

// CloseShift recomputes the shift totals from completed transactions inside
// the closing window. The incremental counters are ignored on purpose.
func (s *Store) CloseShift(ctx context.Context, shiftID string, closingCash domain.Money, notes string, closedAt time.Time) (*domain.Shift, error) {
	if closedAt.IsZero() {
		closedAt = time.Now().UTC()
	}

	pgTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() { _ = pgTx.Rollback() }()

	var shift domain.Shift
	var endTime sql.NullTime
	err = pgTx.QueryRowContext(ctx, `
		SELECT id, cashier_id, start_time, end_time, opening_cash_cents, COALESCE(notes,'')
		FROM shifts
		WHERE id = $1
		FOR UPDATE
	`, shiftID).Scan(&shift.ID, &shift.CashierID, &shift.StartTime, &endTime, &shift.OpeningCash, &shift.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if endTime.Valid {
		return nil, store.ErrShiftAlreadyEnded
	}
	shift.StartTime = shift.StartTime.UTC()

	var totalSales int64
	var txCount int64
	var cashSales int64
	err = pgTx.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(total_cents),0)::bigint,
			COUNT(*)::bigint,
			COALESCE(SUM(CASE WHEN payment_method = $4 THEN total_cents ELSE 0 END),0)::bigint
		FROM transactions
		WHERE cashier_id = $1
			AND status = $5
			AND created_at >= $2
			AND created_at <= $3
	`, shift.CashierID, shift.StartTime, closedAt, domain.PaymentMethodCash, domain.TxStatusCompleted).Scan(
		&totalSales, &txCount, &cashSales,
	)
	if err != nil {
		return nil, err
	}

	expectedCash := int64(shift.OpeningCash) + cashSales
	if notes == "" {
		notes = shift.Notes
	}

	_, err = pgTx.ExecContext(ctx, `
		UPDATE shifts
		SET end_time = $2, closing_cash_cents = $3, expected_cash_cents = $4,
			total_sales_cents = $5, transaction_count = $6, notes = $7
		WHERE id = $1
	`, shiftID, closedAt, int64(closingCash), expectedCash, totalSales, txCount, nullIfEmpty(notes))
	if err != nil {
		return nil, err
	}

	if err := pgTx.Commit(); err != nil {
		return nil, err
	}

	closed := closedAt.UTC()
	expected := domain.Money(expectedCash)
	closing := closingCash
	shift.EndTime = &closed
	shift.ClosingCash = &closing
	shift.ExpectedCash = &expected
	shift.TotalSales = domain.Money(totalSales)
	shift.TransactionCount = int(txCount)
	shift.Notes = notes
	return &shift, nil
}

func (s *Store) GetOpenShiftByCashier(ctx context.Context, cashierID string) (*domain.Shift, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, cashier_id, start_time, end_time, opening_cash_cents,
			closing_cash_cents, expected_cash_cents, total_sales_cents,
			transaction_count, COALESCE(notes,'')
		FROM shifts
		WHERE cashier_id = $1 AND end_time IS NULL
	`, cashierID)
	return scanShiftRow(row)
}

func (s *Store) GetShiftByID(ctx context.Context, id string) (*domain.Shift, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, cashier_id, start_time, end_time, opening_cash_cents,
			closing_cash_cents, expected_cash_cents, total_sales_cents,
			transaction_count, COALESCE(notes,'')
		FROM shifts
		WHERE id = $1
	`, id)
	return scanShiftRow(row)
}

func (s *Store) ListShifts(ctx context.Context, cashierID string, limit int, offset int) ([]domain.Shift, error) {
	if limit < 1 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, cashier_id, start_time, end_time, opening_cash_cents,
			closing_cash_cents, expected_cash_cents, total_sales_cents,
			transaction_count, COALESCE(notes,'')
		FROM shifts
		WHERE $1 = '' OR cashier_id = $1
		ORDER BY start_time DESC
		LIMIT $2 OFFSET $3
	`, cashierID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]domain.Shift, 0, limit)
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *shift)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (s *Store) CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, phone, email, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, customer.ID, customer.Name, nullIfEmpty(customer.Phone), nullIfEmpty(customer.Email), customer.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}
	saved := customer
	return &saved, nil
}

func (s *Store) GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(phone,''), COALESCE(email,''), created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(phone,''), COALESCE(email,''), created_at
		FROM customers
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0, 64)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *Store) CreateStaff(ctx context.Context, account domain.StaffAccount) error {
	account.Username = strings.ToLower(strings.TrimSpace(account.Username))
	if account.Username == "" || strings.TrimSpace(account.Password) == "" {
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO staff (id, username, password, full_name, role, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,now())
	`, account.ID, account.Username, account.Password, account.FullName, account.Role, account.Active, account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (s *Store) GetStaffByUsername(ctx context.Context, username string) (*domain.StaffAccount, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var account domain.StaffAccount
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password, COALESCE(full_name,''), role, active, created_at
		FROM staff
		WHERE username = $1
	`, username).Scan(&account.ID, &account.Username, &account.Password, &account.FullName, &account.Role, &account.Active, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	account.CreatedAt = account.CreatedAt.UTC()
	return &account, nil
}

func (s *Store) ListStaff(ctx context.Context) ([]domain.StaffAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, password, COALESCE(full_name,''), role, active, created_at
		FROM staff
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]domain.StaffAccount, 0, 16)
	for rows.Next() {
		var account domain.StaffAccount
		if err := rows.Scan(&account.ID, &account.Username, &account.Password, &account.FullName, &account.Role, &account.Active, &account.CreatedAt); err != nil {
			return nil, err
		}
		account.CreatedAt = account.CreatedAt.UTC()
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *Store) UpdateStaffPassword(ctx context.Context, username string, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.TrimSpace(password) == "" {
		return store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE staff
		SET password = $2, updated_at = now()
		WHERE username = $1
	`, username, password)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateAuditLog(ctx context.Context, entry domain.AuditLog) error {
	if entry.ID == "" {
		entry.ID = xid.New("audit")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_logs (
			id, actor_username, actor_role, action, entity_type, entity_id, detail, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, entry.ID, entry.ActorUsername, entry.ActorRole, entry.Action, entry.EntityType, entry.EntityID, entry.Detail, entry.CreatedAt)
	return err
}

func (s *Store) ListAuditLogs(ctx context.Context, from time.Time, to time.Time, limit int) ([]domain.AuditLog, error) {
	if limit < 1 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, actor_username, actor_role, action, entity_type, entity_id, detail, created_at
		FROM audit_logs
		WHERE created_at >= $1
			AND created_at < $2
		ORDER BY created_at DESC
		LIMIT $3
	`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]domain.AuditLog, 0, limit)
	for rows.Next() {
		var entry domain.AuditLog
		if err := rows.Scan(&entry.ID, &entry.ActorUsername, &entry.ActorRole, &entry.Action, &entry.EntityType, &entry.EntityID, &entry.Detail, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.CreatedAt = entry.CreatedAt.UTC()
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVariant(rs rowScanner) (domain.ProductVariant, error) {
	var v domain.ProductVariant
	err := rs.Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Price, &v.StockQuantity,
		&v.LowStockThreshold, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return v, err
	}
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return v, nil
}

func scanShiftRow(row *sql.Row) (*domain.Shift, error) {
	shift, err := scanShift(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return shift, nil
}

func scanShift(rs rowScanner) (*domain.Shift, error) {
	var shift domain.Shift
	var endTime sql.NullTime
	var closingCash sql.NullInt64
	var expectedCash sql.NullInt64
	err := rs.Scan(
		&shift.ID, &shift.CashierID, &shift.StartTime, &endTime, &shift.OpeningCash,
		&closingCash, &expectedCash, &shift.TotalSales, &shift.TransactionCount, &shift.Notes,
	)
	if err != nil {
		return nil, err
	}
	shift.StartTime = shift.StartTime.UTC()
	if endTime.Valid {
		at := endTime.Time.UTC()
		shift.EndTime = &at
	}
	if closingCash.Valid {
		m := domain.Money(closingCash.Int64)
		shift.ClosingCash = &m
	}
	if expectedCash.Valid {
		m := domain.Money(expectedCash.Int64)
		shift.ExpectedCash = &m
	}
	return &shift, nil
}

func uniqueVariantIDs(items []domain.TransactionItemRequest) []string {
	set := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.VariantID == "" {
			continue
		}
		if _, ok := set[item.VariantID]; ok {
			continue
		}
		set[item.VariantID] = struct{}{}
		ids = append(ids, item.VariantID)
	}
	return ids
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func nullIfEmpty(val string) any {
	if val == "" {
		return nil
	}
	return val
}
