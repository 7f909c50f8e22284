package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"retailpos/backend/internal/cache"
	"retailpos/backend/internal/domain"
	"retailpos/backend/internal/store"
	"retailpos/backend/internal/store/memory"
)

func newTestService() *Service {
	return New(memory.NewSeeded(), cache.NoopReportCache{}, nil, time.Minute)
}

func adminContext() context.Context {
	return WithActor(context.Background(), domain.Actor{Username: "admin", Role: domain.RoleAdmin})
}

func cashierContext() context.Context {
	return WithActor(context.Background(), domain.Actor{Username: "cashier", Role: domain.RoleCashier})
}

func mustVariant(t *testing.T, svc *Service, sku string) domain.ProductVariant {
	t.Helper()
	variant, err := svc.GetVariantBySKU(context.Background(), sku)
	if err != nil {
		t.Fatalf("variant %s: %v", sku, err)
	}
	return variant
}

func TestCreateTransactionComputesTotals(t *testing.T) {
	svc := newTestService()
	ctx := adminContext()

	product, err := svc.CreateProduct(ctx, domain.ProductCreateRequest{
		Name:     "Deli Salad",
		Category: "food",
		Variants: []domain.VariantCreateRequest{
			{SKU: "SAL-LRG", Name: "Large", Price: 1599, InitialStock: 10, LowStockThreshold: 2},
		},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	_, variants, err := svc.GetProduct(ctx, product.ID)
	if err != nil || len(variants) != 1 {
		t.Fatalf("get product: %v (%d variants)", err, len(variants))
	}
	variant := variants[0]

	resp, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items: []domain.TransactionItemRequest{
			{VariantID: variant.ID, Quantity: 3, DiscountAmount: 100},
		},
		DiscountAmount: 200,
		PaymentMethod:  "cash",
		PaymentAmount:  5000,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	tx := resp.Transaction
	if tx.Subtotal != 4697 {
		t.Fatalf("subtotal = %s, want 46.97", tx.Subtotal)
	}
	if tx.TotalAmount != 4497 {
		t.Fatalf("total = %s, want 44.97", tx.TotalAmount)
	}
	if tx.ChangeAmount != 503 {
		t.Fatalf("change = %s, want 5.03", tx.ChangeAmount)
	}
	if tx.Status != domain.TxStatusCompleted {
		t.Fatalf("status = %s, want completed", tx.Status)
	}
	if !strings.HasPrefix(tx.TransactionNumber, "TRX-") {
		t.Fatalf("unexpected transaction number %q", tx.TransactionNumber)
	}

	after := mustVariant(t, svc, "SAL-LRG")
	if after.StockQuantity != 7 {
		t.Fatalf("stock after sale = %d, want 7", after.StockQuantity)
	}
}

func TestCreateTransactionRejectsUnderpayment(t *testing.T) {
	svc := newTestService()
	variant := mustVariant(t, svc, "SND-CLB")

	_, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items: []domain.TransactionItemRequest{
			{VariantID: variant.ID, Quantity: 2},
		},
		PaymentMethod: "cash",
		PaymentAmount: 1000,
	})
	if !errors.Is(err, store.ErrInsufficientPayment) {
		t.Fatalf("err = %v, want ErrInsufficientPayment", err)
	}

	after := mustVariant(t, svc, "SND-CLB")
	if after.StockQuantity != variant.StockQuantity {
		t.Fatalf("stock changed on rejected payment: %d -> %d", variant.StockQuantity, after.StockQuantity)
	}
}

func TestCreateTransactionChecksItemsInOrder(t *testing.T) {
	svc := newTestService()
	variant := mustVariant(t, svc, "WTR-500")

	// An unknown variant earlier in the request wins over a stock shortage later.
	_, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items: []domain.TransactionItemRequest{
			{VariantID: "var-missing", Quantity: 1},
			{VariantID: variant.ID, Quantity: variant.StockQuantity + 1},
		},
		PaymentMethod: "cash",
		PaymentAmount: 1000000,
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	_, err = svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items: []domain.TransactionItemRequest{
			{VariantID: variant.ID, Quantity: variant.StockQuantity + 1},
		},
		PaymentMethod: "cash",
		PaymentAmount: 1000000,
	})
	if !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if !strings.Contains(err.Error(), "has 200, requested 201") {
		t.Fatalf("stock error should report available vs requested, got %q", err)
	}
}

func TestCreateTransactionSumsDuplicateItemsAgainstStock(t *testing.T) {
	svc := newTestService()
	variant := mustVariant(t, svc, "SND-CLB") // stock 30

	// Two lines for the same variant must be checked against stock together.
	_, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items: []domain.TransactionItemRequest{
			{VariantID: variant.ID, Quantity: 20},
			{VariantID: variant.ID, Quantity: 20},
		},
		PaymentMethod: "cash",
		PaymentAmount: 1000000,
	})
	if !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if !strings.Contains(err.Error(), "has 10, requested 20") {
		t.Fatalf("stock error should report remaining vs requested, got %q", err)
	}
	if after := mustVariant(t, svc, "SND-CLB"); after.StockQuantity != 30 {
		t.Fatalf("stock = %d, want untouched 30", after.StockQuantity)
	}

	resp, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items: []domain.TransactionItemRequest{
			{VariantID: variant.ID, Quantity: 20},
			{VariantID: variant.ID, Quantity: 10},
		},
		PaymentMethod: "cash",
		PaymentAmount: 1000000,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if resp.Transaction.Subtotal != 899*30 {
		t.Fatalf("subtotal = %s, want 269.70", resp.Transaction.Subtotal)
	}
	if after := mustVariant(t, svc, "SND-CLB"); after.StockQuantity != 0 {
		t.Fatalf("stock = %d, want 0", after.StockQuantity)
	}
}

func TestCreateTransactionValidatesClientUnitPrice(t *testing.T) {
	svc := newTestService()
	variant := mustVariant(t, svc, "CHP-SALT")

	_, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items: []domain.TransactionItemRequest{
			{VariantID: variant.ID, Quantity: 1, UnitPrice: variant.Price + 1},
		},
		PaymentMethod: "cash",
		PaymentAmount: 1000,
	})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput for price mismatch", err)
	}

	resp, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items: []domain.TransactionItemRequest{
			{VariantID: variant.ID, Quantity: 1, UnitPrice: variant.Price},
		},
		PaymentMethod: "cash",
		PaymentAmount: 1000,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if resp.Transaction.TotalAmount != variant.Price {
		t.Fatalf("total = %s, want %s", resp.Transaction.TotalAmount, variant.Price)
	}
}

func TestCreateTransactionRejectsUnknownPaymentMethod(t *testing.T) {
	svc := newTestService()
	variant := mustVariant(t, svc, "CHO-MILK")

	_, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items: []domain.TransactionItemRequest{
			{VariantID: variant.ID, Quantity: 1},
		},
		PaymentMethod: "cheque",
		PaymentAmount: 500,
	})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCreateTransactionWithoutOpenShiftStillSettles(t *testing.T) {
	svc := newTestService()
	variant := mustVariant(t, svc, "NTB-A5")

	resp, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items: []domain.TransactionItemRequest{
			{VariantID: variant.ID, Quantity: 1},
		},
		PaymentMethod: "card",
		PaymentAmount: 399,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if resp.Transaction.ChangeAmount != 0 {
		t.Fatalf("change = %s, want 0.00", resp.Transaction.ChangeAmount)
	}

	_, err = svc.GetCurrentShift(cashierContext())
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected no open shift, got %v", err)
	}
}

func TestRefundRestoresStockAndGuardsDoubleRefund(t *testing.T) {
	svc := newTestService()
	before := mustVariant(t, svc, "CHP-SALT")

	resp, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items: []domain.TransactionItemRequest{
			{VariantID: before.ID, Quantity: 5},
		},
		PaymentMethod: "qr_code",
		PaymentAmount: 2000,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if _, err := svc.RefundTransaction(cashierContext(), resp.Transaction.ID); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	refunded, err := svc.RefundTransaction(adminContext(), resp.Transaction.ID)
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if refunded.Transaction.Status != domain.TxStatusRefunded {
		t.Fatalf("status = %s, want refunded", refunded.Transaction.Status)
	}
	if refunded.Transaction.TransactionNumber != resp.Transaction.TransactionNumber ||
		refunded.Transaction.CreatedAt.IsZero() {
		t.Fatalf("refund should return the full transaction, got %+v", refunded.Transaction)
	}

	after := mustVariant(t, svc, "CHP-SALT")
	if after.StockQuantity != before.StockQuantity {
		t.Fatalf("stock not restored: %d, want %d", after.StockQuantity, before.StockQuantity)
	}

	_, err = svc.RefundTransaction(adminContext(), resp.Transaction.ID)
	if !errors.Is(err, store.ErrAlreadyRefunded) {
		t.Fatalf("err = %v, want ErrAlreadyRefunded", err)
	}
}

func TestShiftLifecycle(t *testing.T) {
	svc := newTestService()
	ctx := cashierContext()

	opened, err := svc.StartShift(ctx, domain.ShiftStartRequest{OpeningCash: 10000})
	if err != nil {
		t.Fatalf("start shift: %v", err)
	}

	_, err = svc.StartShift(ctx, domain.ShiftStartRequest{OpeningCash: 500})
	if !errors.Is(err, store.ErrShiftAlreadyActive) {
		t.Fatalf("err = %v, want ErrShiftAlreadyActive", err)
	}

	water := mustVariant(t, svc, "WTR-500")
	sandwich := mustVariant(t, svc, "SND-CLB")

	if _, err := svc.CreateTransaction(ctx, domain.TransactionCreateRequest{
		Items:         []domain.TransactionItemRequest{{VariantID: water.ID, Quantity: 2}},
		PaymentMethod: "cash",
		PaymentAmount: 300,
	}); err != nil {
		t.Fatalf("cash sale: %v", err)
	}
	if _, err := svc.CreateTransaction(ctx, domain.TransactionCreateRequest{
		Items:         []domain.TransactionItemRequest{{VariantID: sandwich.ID, Quantity: 1}},
		PaymentMethod: "card",
		PaymentAmount: 899,
	}); err != nil {
		t.Fatalf("card sale: %v", err)
	}

	current, err := svc.GetCurrentShift(ctx)
	if err != nil {
		t.Fatalf("current shift: %v", err)
	}
	if current.Shift.ID != opened.Shift.ID {
		t.Fatalf("current shift = %s, want %s", current.Shift.ID, opened.Shift.ID)
	}

	closed, err := svc.EndShift(ctx, opened.Shift.ID, domain.ShiftEndRequest{ClosingCash: 10300})
	if err != nil {
		t.Fatalf("end shift: %v", err)
	}
	if closed.Shift.TotalSales != 1199 {
		t.Fatalf("total sales = %s, want 11.99", closed.Shift.TotalSales)
	}
	if closed.Shift.TransactionCount != 2 {
		t.Fatalf("transaction count = %d, want 2", closed.Shift.TransactionCount)
	}
	if closed.Shift.ExpectedCash == nil || *closed.Shift.ExpectedCash != 10300 {
		t.Fatalf("expected cash = %v, want 103.00", closed.Shift.ExpectedCash)
	}
	if closed.Shift.EndTime == nil {
		t.Fatal("end time not set")
	}

	_, err = svc.EndShift(ctx, opened.Shift.ID, domain.ShiftEndRequest{ClosingCash: 10300})
	if !errors.Is(err, store.ErrShiftAlreadyEnded) {
		t.Fatalf("err = %v, want ErrShiftAlreadyEnded", err)
	}

	history, err := svc.GetShiftHistory(ctx, "", 10, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history.Shifts) != 1 || history.Shifts[0].ID != opened.Shift.ID {
		t.Fatalf("unexpected history: %+v", history.Shifts)
	}

	filtered, err := svc.GetShiftHistory(ctx, closed.Shift.CashierID, 10, 0)
	if err != nil {
		t.Fatalf("filtered history: %v", err)
	}
	if len(filtered.Shifts) != 1 {
		t.Fatalf("filtered history = %d shifts, want 1", len(filtered.Shifts))
	}
	none, err := svc.GetShiftHistory(ctx, "no-such-cashier", 10, 0)
	if err != nil {
		t.Fatalf("filtered history: %v", err)
	}
	if len(none.Shifts) != 0 {
		t.Fatalf("history for unknown cashier = %d shifts, want 0", len(none.Shifts))
	}
}

func TestEndShiftRecomputeOverridesCounterDrift(t *testing.T) {
	svc := newTestService()
	ctx := cashierContext()
	variant := mustVariant(t, svc, "WTR-500")

	first, err := svc.StartShift(ctx, domain.ShiftStartRequest{OpeningCash: 1000})
	if err != nil {
		t.Fatalf("start first shift: %v", err)
	}
	sale, err := svc.CreateTransaction(ctx, domain.TransactionCreateRequest{
		Items:         []domain.TransactionItemRequest{{VariantID: variant.ID, Quantity: 2}},
		PaymentMethod: "cash",
		PaymentAmount: 300,
	})
	if err != nil {
		t.Fatalf("first sale: %v", err)
	}
	if _, err := svc.EndShift(ctx, first.Shift.ID, domain.ShiftEndRequest{ClosingCash: 1300}); err != nil {
		t.Fatalf("end first shift: %v", err)
	}

	second, err := svc.StartShift(ctx, domain.ShiftStartRequest{OpeningCash: 2000})
	if err != nil {
		t.Fatalf("start second shift: %v", err)
	}

	// Refunding a sale from the closed shift drifts the open shift's
	// incremental counters below reality.
	if _, err := svc.RefundTransaction(adminContext(), sale.Transaction.ID); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if _, err := svc.CreateTransaction(ctx, domain.TransactionCreateRequest{
		Items:         []domain.TransactionItemRequest{{VariantID: variant.ID, Quantity: 1}},
		PaymentMethod: "cash",
		PaymentAmount: 150,
	}); err != nil {
		t.Fatalf("second sale: %v", err)
	}

	live, err := svc.GetCurrentShift(ctx)
	if err != nil {
		t.Fatalf("current shift: %v", err)
	}
	if live.Shift.TotalSales == 150 {
		t.Fatal("expected drifted live counters, got the true total")
	}

	closed, err := svc.EndShift(ctx, second.Shift.ID, domain.ShiftEndRequest{ClosingCash: 2150})
	if err != nil {
		t.Fatalf("end second shift: %v", err)
	}
	if closed.Shift.TotalSales != 150 {
		t.Fatalf("total sales = %s, want recomputed 1.50", closed.Shift.TotalSales)
	}
	if closed.Shift.TransactionCount != 1 {
		t.Fatalf("transaction count = %d, want 1", closed.Shift.TransactionCount)
	}
	if closed.Shift.ExpectedCash == nil || *closed.Shift.ExpectedCash != 2150 {
		t.Fatalf("expected cash = %v, want 21.50", closed.Shift.ExpectedCash)
	}
}

func TestEndShiftOwnership(t *testing.T) {
	svc := newTestService()

	opened, err := svc.StartShift(cashierContext(), domain.ShiftStartRequest{OpeningCash: 5000})
	if err != nil {
		t.Fatalf("start shift: %v", err)
	}

	if _, err := svc.CreateStaff(adminContext(), domain.StaffCreateRequest{
		Username: "other",
		Password: "other-secret-1",
		FullName: "Other Cashier",
		Role:     domain.RoleCashier,
	}); err != nil {
		t.Fatalf("create staff: %v", err)
	}
	otherCtx := WithActor(context.Background(), domain.Actor{Username: "other", Role: domain.RoleCashier})

	if _, err := svc.EndShift(otherCtx, opened.Shift.ID, domain.ShiftEndRequest{ClosingCash: 5000}); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// Admins may close any shift.
	if _, err := svc.EndShift(adminContext(), opened.Shift.ID, domain.ShiftEndRequest{ClosingCash: 5000}); err != nil {
		t.Fatalf("admin close: %v", err)
	}
}

func TestUpdateStockAndLowStockReport(t *testing.T) {
	svc := newTestService()
	variant := mustVariant(t, svc, "NTB-A5")

	if _, err := svc.UpdateStock(cashierContext(), variant.ID, domain.StockUpdateRequest{Delta: -1}); err == nil {
		t.Fatal("cashier stock update should be rejected")
	}

	_, err := svc.UpdateStock(adminContext(), variant.ID, domain.StockUpdateRequest{Delta: -(variant.StockQuantity + 1), Reason: "shrinkage"})
	if !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	// Bring the variant exactly to its threshold; equality counts as low.
	updated, err := svc.UpdateStock(adminContext(), variant.ID, domain.StockUpdateRequest{
		Delta:  variant.LowStockThreshold - variant.StockQuantity,
		Reason: "cycle count",
	})
	if err != nil {
		t.Fatalf("update stock: %v", err)
	}
	if updated.StockQuantity != variant.LowStockThreshold {
		t.Fatalf("stock = %d, want %d", updated.StockQuantity, variant.LowStockThreshold)
	}

	low, err := svc.LowStockVariants(context.Background())
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	found := false
	for _, entry := range low {
		if entry.Variant.SKU == "NTB-A5" {
			found = true
			if entry.ProductName != "Notebook" {
				t.Fatalf("product name = %s, want Notebook", entry.ProductName)
			}
		}
	}
	if !found {
		t.Fatal("variant at threshold missing from low-stock report")
	}
}

func TestDailyReportAggregates(t *testing.T) {
	svc := newTestService()
	variant := mustVariant(t, svc, "COF-REG-12")

	first, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items:         []domain.TransactionItemRequest{{VariantID: variant.ID, Quantity: 2}},
		PaymentMethod: "cash",
		PaymentAmount: 700,
	})
	if err != nil {
		t.Fatalf("first sale: %v", err)
	}
	if _, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items:         []domain.TransactionItemRequest{{VariantID: variant.ID, Quantity: 1}},
		PaymentMethod: "e_wallet",
		PaymentAmount: 350,
	}); err != nil {
		t.Fatalf("second sale: %v", err)
	}
	if _, err := svc.RefundTransaction(adminContext(), first.Transaction.ID); err != nil {
		t.Fatalf("refund: %v", err)
	}

	report, err := svc.DailyReport(context.Background(), "")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Transactions != 2 {
		t.Fatalf("transactions = %d, want 2", report.Transactions)
	}
	if report.GrossSales != 1050 {
		t.Fatalf("gross = %s, want 10.50", report.GrossSales)
	}
	if report.Refunds != 700 {
		t.Fatalf("refunds = %s, want 7.00", report.Refunds)
	}
	if report.NetSales != 350 {
		t.Fatalf("net = %s, want 3.50", report.NetSales)
	}
	if len(report.ByPayment) != 1 || report.ByPayment[0].PaymentMethod != "e_wallet" {
		t.Fatalf("unexpected payment breakdown: %+v", report.ByPayment)
	}
}

func TestBuildReceipt(t *testing.T) {
	svc := newTestService()
	variant := mustVariant(t, svc, "CHP-BBQ")

	resp, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		Items:         []domain.TransactionItemRequest{{VariantID: variant.ID, Quantity: 2, DiscountAmount: 49}},
		PaymentMethod: "cash",
		PaymentAmount: 500,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	receipt, err := svc.BuildReceipt(context.Background(), resp.Transaction.ID)
	if err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if receipt.TransactionID != resp.Transaction.ID {
		t.Fatalf("receipt transaction id = %s", receipt.TransactionID)
	}
	for _, want := range []string{resp.Transaction.TransactionNumber, "Barbecue x2", "Total    : 4.49", "Change   : 0.51"} {
		if !strings.Contains(receipt.Text, want) {
			t.Fatalf("receipt missing %q:\n%s", want, receipt.Text)
		}
	}
}

func TestStaffManagementRequiresAdmin(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateStaff(cashierContext(), domain.StaffCreateRequest{
		Username: "newbie",
		Password: "long-enough-1",
	})
	if err == nil {
		t.Fatal("cashier staff creation should be rejected")
	}

	_, err = svc.CreateStaff(adminContext(), domain.StaffCreateRequest{
		Username: "newbie",
		Password: "short",
	})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	created, err := svc.CreateStaff(adminContext(), domain.StaffCreateRequest{
		Username: "Newbie",
		Password: "long-enough-1",
		FullName: "New Cashier",
	})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
	if created.Username != "newbie" || created.Role != domain.RoleCashier {
		t.Fatalf("unexpected staff: %+v", created)
	}

	staff, err := svc.ListStaff(adminContext())
	if err != nil {
		t.Fatalf("list staff: %v", err)
	}
	if len(staff) != 3 {
		t.Fatalf("staff count = %d, want 3", len(staff))
	}
}

func TestCustomersAttachToTransactions(t *testing.T) {
	svc := newTestService()
	variant := mustVariant(t, svc, "COF-REG-16")

	customer, err := svc.CreateCustomer(cashierContext(), domain.CustomerCreateRequest{
		Name:  "Dana Field",
		Email: "Dana@Example.com",
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if customer.Email != "dana@example.com" {
		t.Fatalf("email not normalized: %s", customer.Email)
	}

	resp, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		CustomerID:    customer.ID,
		Items:         []domain.TransactionItemRequest{{VariantID: variant.ID, Quantity: 1}},
		PaymentMethod: "cash",
		PaymentAmount: 450,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if resp.Transaction.CustomerID != customer.ID {
		t.Fatalf("customer id = %s, want %s", resp.Transaction.CustomerID, customer.ID)
	}

	_, err = svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
		CustomerID:    "cus-unknown",
		Items:         []domain.TransactionItemRequest{{VariantID: variant.ID, Quantity: 1}},
		PaymentMethod: "cash",
		PaymentAmount: 450,
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListTransactionsNewestFirst(t *testing.T) {
	svc := newTestService()
	variant := mustVariant(t, svc, "WTR-500")

	var lastID string
	for i := 0; i < 3; i++ {
		resp, err := svc.CreateTransaction(cashierContext(), domain.TransactionCreateRequest{
			Items:         []domain.TransactionItemRequest{{VariantID: variant.ID, Quantity: 1}},
			PaymentMethod: "cash",
			PaymentAmount: 150,
		})
		if err != nil {
			t.Fatalf("sale %d: %v", i, err)
		}
		lastID = resp.Transaction.ID
		time.Sleep(2 * time.Millisecond)
	}

	list, err := svc.ListTransactions(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Transactions) != 3 {
		t.Fatalf("count = %d, want 3", len(list.Transactions))
	}
	if list.Transactions[0].ID != lastID {
		t.Fatalf("first entry = %s, want most recent %s", list.Transactions[0].ID, lastID)
	}

	items, err := svc.GetTransactionItems(context.Background(), lastID)
	if err != nil || len(items) != 1 {
		t.Fatalf("items: %v (%d)", err, len(items))
	}
	if items[0].TotalPrice != 150 {
		t.Fatalf("item total = %s, want 1.50", items[0].TotalPrice)
	}
}
