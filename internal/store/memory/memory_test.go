package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"retailpos/backend/internal/domain"
	"retailpos/backend/internal/store"
)

func seededVariantBySKU(t *testing.T, s *Store, sku string) domain.ProductVariant {
	t.Helper()
	v, err := s.GetVariantBySKU(context.Background(), sku)
	if err != nil {
		t.Fatalf("variant %s: %v", sku, err)
	}
	return *v
}

func mustSell(t *testing.T, s *Store, cashierID string, variantID string, qty int, method string, at time.Time) *domain.Transaction {
	t.Helper()
	tx, err := s.CreateTransaction(context.Background(), domain.Transaction{
		TransactionNumber: "TRX-" + at.Format("20060102-150405.000000000"),
		CashierID:         cashierID,
		PaymentMethod:     method,
		PaymentAmount:     1000000,
		CreatedAt:         at,
	}, []domain.TransactionItemRequest{
		{VariantID: variantID, Quantity: qty},
	})
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	return tx
}

func cashierID(t *testing.T, s *Store) string {
	t.Helper()
	account, err := s.GetStaffByUsername(context.Background(), "cashier")
	if err != nil {
		t.Fatalf("seed cashier: %v", err)
	}
	return account.ID
}

func TestCloseShiftIgnoresTransactionsOutsideWindow(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()
	cashier := cashierID(t, s)
	variant := seededVariantBySKU(t, s, "WTR-500")

	start := time.Now().UTC()

	// Sold before the shift opened; must not count.
	mustSell(t, s, cashier, variant.ID, 1, domain.PaymentMethodCash, start.Add(-time.Hour))

	shift, err := s.CreateShift(ctx, domain.Shift{
		CashierID:   cashier,
		StartTime:   start,
		OpeningCash: 2000,
	})
	if err != nil {
		t.Fatalf("create shift: %v", err)
	}

	mustSell(t, s, cashier, variant.ID, 2, domain.PaymentMethodCash, start.Add(time.Minute))
	mustSell(t, s, cashier, variant.ID, 1, domain.PaymentMethodCard, start.Add(2*time.Minute))

	closed, err := s.CloseShift(ctx, shift.ID, 2300, "", start.Add(time.Hour))
	if err != nil {
		t.Fatalf("close shift: %v", err)
	}
	if closed.TransactionCount != 2 {
		t.Fatalf("count = %d, want 2", closed.TransactionCount)
	}
	if closed.TotalSales != 450 {
		t.Fatalf("total sales = %s, want 4.50", closed.TotalSales)
	}
	// Only the cash sale feeds the expected drawer amount.
	if closed.ExpectedCash == nil || *closed.ExpectedCash != 2300 {
		t.Fatalf("expected cash = %v, want 23.00", closed.ExpectedCash)
	}
}

func TestDailyReportWindowIsHalfOpen(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()
	cashier := cashierID(t, s)
	variant := seededVariantBySKU(t, s, "CHO-MILK")

	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	next := day.Add(24 * time.Hour)

	mustSell(t, s, cashier, variant.ID, 1, domain.PaymentMethodCash, day)                   // included
	mustSell(t, s, cashier, variant.ID, 1, domain.PaymentMethodCash, next.Add(-time.Second)) // included
	mustSell(t, s, cashier, variant.ID, 1, domain.PaymentMethodCash, next)                   // excluded

	report, err := s.GetDailyReport(ctx, day, next)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Transactions != 2 {
		t.Fatalf("transactions = %d, want 2", report.Transactions)
	}
	if report.GrossSales != 398 {
		t.Fatalf("gross = %s, want 3.98", report.GrossSales)
	}
	if report.Date != "2026-08-29" {
		t.Fatalf("date = %s", report.Date)
	}
}

func TestListTransactionsPagination(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()
	cashier := cashierID(t, s)
	variant := seededVariantBySKU(t, s, "NTB-A5")

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		mustSell(t, s, cashier, variant.ID, 1, domain.PaymentMethodCash, base.Add(time.Duration(i)*time.Second))
	}

	page, err := s.ListTransactions(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
	if !page[0].CreatedAt.After(page[1].CreatedAt) {
		t.Fatalf("expected newest first, got %v then %v", page[0].CreatedAt, page[1].CreatedAt)
	}

	rest, err := s.ListTransactions(ctx, 10, 4)
	if err != nil {
		t.Fatalf("list offset: %v", err)
	}
	if len(rest) != 1 {
		t.Fatalf("remaining = %d, want 1", len(rest))
	}

	empty, err := s.ListTransactions(ctx, 10, 50)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty page, got %d (%v)", len(empty), err)
	}
}

func TestAdjustStockFloorsAtZero(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()
	variant := seededVariantBySKU(t, s, "SND-CLB")

	if _, err := s.AdjustStock(ctx, variant.ID, -(variant.StockQuantity + 1)); !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	updated, err := s.AdjustStock(ctx, variant.ID, -variant.StockQuantity)
	if err != nil {
		t.Fatalf("adjust to zero: %v", err)
	}
	if updated.StockQuantity != 0 {
		t.Fatalf("stock = %d, want 0", updated.StockQuantity)
	}

	// Zero stock is at or below any threshold, so the variant shows up as low.
	low, err := s.ListLowStockVariants(ctx)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	found := false
	for _, entry := range low {
		if entry.Variant.ID == variant.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("sold-out variant missing from low-stock list")
	}
}

func TestCreateShiftRejectsSecondOpen(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()
	cashier := cashierID(t, s)

	first, err := s.CreateShift(ctx, domain.Shift{CashierID: cashier, OpeningCash: 100})
	if err != nil {
		t.Fatalf("first shift: %v", err)
	}
	if _, err := s.CreateShift(ctx, domain.Shift{CashierID: cashier, OpeningCash: 100}); !errors.Is(err, store.ErrShiftAlreadyActive) {
		t.Fatalf("err = %v, want ErrShiftAlreadyActive", err)
	}

	if _, err := s.CloseShift(ctx, first.ID, 100, "", time.Now().UTC()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := s.CloseShift(ctx, first.ID, 100, "", time.Now().UTC()); !errors.Is(err, store.ErrShiftAlreadyEnded) {
		t.Fatalf("err = %v, want ErrShiftAlreadyEnded", err)
	}

	// A new shift may open once the previous one is closed.
	if _, err := s.CreateShift(ctx, domain.Shift{CashierID: cashier, OpeningCash: 100}); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}
