package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"canteen-orders/config"
	"canteen-orders/db"
	"canteen-orders/models"
)

// Integration tests (require DB). Skip in -short mode or when no
// database is reachable.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	pool, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		t.Skipf("skipping integration test: no database: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	email := fmt.Sprintf("it-%d@example.com", time.Now().UnixNano())
	user, err := NewUserStore(pool).CreateUser(context.Background(), email, "secret", "member", nil)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func createTestMenuItem(t *testing.T, pool *pgxpool.Pool, name string, price float64, proportions map[string]float64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{Name: name, Price: price, Proportions: proportions, Available: true}
	if err := NewCatalogStore(pool).CreateMenuItem(context.Background(), item); err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	return item
}

func TestSaveOrderAtomic_Integration(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	user := createTestUser(t, pool)
	pizza := createTestMenuItem(t, pool, "Pizza", 12.0, nil)
	soup := createTestMenuItem(t, pool, "Soup", 10.0, map[string]float64{"large": 1.5})

	catalog := NewCatalogStore(pool)
	orders := NewOrderStore(pool)

	priced, err := PriceOrder(ctx, catalog, user.ID, []models.OrderLine{
		{MenuItemID: pizza.ID, Quantity: 3},
		{MenuItemID: soup.ID, ProportionName: strPtr("large"), Quantity: 2},
	})
	if err != nil {
		t.Fatalf("PriceOrder: %v", err)
	}
	if priced.TotalPrice != 66.0 {
		t.Fatalf("TotalPrice = %v, want 66.0", priced.TotalPrice)
	}

	stored, err := orders.SaveOrderAtomic(ctx, priced)
	if err != nil {
		t.Fatalf("SaveOrderAtomic: %v", err)
	}
	if stored.ID == 0 {
		t.Error("order id not assigned")
	}
	if stored.CreatedAt.IsZero() {
		t.Error("created_at not assigned")
	}
	for i, item := range stored.Items {
		if item.ID == 0 || item.OrderID != stored.ID {
			t.Errorf("item %d: id=%d order_id=%d, want assigned ids", i, item.ID, item.OrderID)
		}
	}

	got, err := orders.GetOrder(ctx, stored.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.TotalPrice != 66.0 || got.Status != OrderStatusPending {
		t.Errorf("round trip: total=%v status=%q, want 66.0 Pending", got.TotalPrice, got.Status)
	}
	if len(got.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(got.Items))
	}
	// Line order must match request order.
	if got.Items[0].MenuItemID != pizza.ID || got.Items[1].MenuItemID != soup.ID {
		t.Errorf("line order = [%d %d], want [%d %d]",
			got.Items[0].MenuItemID, got.Items[1].MenuItemID, pizza.ID, soup.ID)
	}
	if got.Items[1].PriceAtOrder != 15.0 {
		t.Errorf("proportion snapshot = %v, want 15.0", got.Items[1].PriceAtOrder)
	}
}

func TestSaveOrderAtomic_MissingUserFails(t *testing.T) {
	pool := testPool(t)
	orders := NewOrderStore(pool)

	_, err := orders.SaveOrderAtomic(context.Background(), &models.Order{
		UserID: 999999999,
		Status: OrderStatusPending,
	})
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("err = %v, want ErrInvalidReference", err)
	}
}

func TestSaveOrderAtomic_DuplicateRequestsMakeDistinctOrders(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	user := createTestUser(t, pool)
	item := createTestMenuItem(t, pool, "Tea", 2.0, nil)

	catalog := NewCatalogStore(pool)
	orders := NewOrderStore(pool)
	lines := []models.OrderLine{{MenuItemID: item.ID, Quantity: 1}}

	var ids []int64
	for i := 0; i < 2; i++ {
		priced, err := PriceOrder(ctx, catalog, user.ID, lines)
		if err != nil {
			t.Fatalf("PriceOrder: %v", err)
		}
		stored, err := orders.SaveOrderAtomic(ctx, priced)
		if err != nil {
			t.Fatalf("SaveOrderAtomic: %v", err)
		}
		ids = append(ids, stored.ID)
	}
	if ids[0] == ids[1] {
		t.Errorf("duplicate requests shared id %d, want distinct orders", ids[0])
	}
}

func TestSaveOrderAtomic_ConcurrentOrdersIndependent(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	userA := createTestUser(t, pool)
	userB := createTestUser(t, pool)
	pizza := createTestMenuItem(t, pool, "Pizza", 12.0, nil)
	tea := createTestMenuItem(t, pool, "Tea", 2.0, nil)

	catalog := NewCatalogStore(pool)
	orders := NewOrderStore(pool)

	type result struct {
		order *models.Order
		err   error
	}
	run := func(userID int64, lines []models.OrderLine, out *result, wg *sync.WaitGroup) {
		defer wg.Done()
		priced, err := PriceOrder(ctx, catalog, userID, lines)
		if err != nil {
			out.err = err
			return
		}
		out.order, out.err = orders.SaveOrderAtomic(ctx, priced)
	}

	var wg sync.WaitGroup
	var resA, resB result
	wg.Add(2)
	go run(userA.ID, []models.OrderLine{{MenuItemID: pizza.ID, Quantity: 2}}, &resA, &wg)
	go run(userB.ID, []models.OrderLine{{MenuItemID: tea.ID, Quantity: 5}}, &resB, &wg)
	wg.Wait()

	if resA.err != nil || resB.err != nil {
		t.Fatalf("concurrent creates: %v / %v", resA.err, resB.err)
	}
	if resA.order.ID == resB.order.ID {
		t.Error("concurrent orders shared an id")
	}
	if resA.order.TotalPrice != 24.0 {
		t.Errorf("order A total = %v, want 24.0", resA.order.TotalPrice)
	}
	if resB.order.TotalPrice != 10.0 {
		t.Errorf("order B total = %v, want 10.0", resB.order.TotalPrice)
	}
}

func TestUpdateOrderStatus_Integration(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	user := createTestUser(t, pool)
	orders := NewOrderStore(pool)

	stored, err := orders.SaveOrderAtomic(ctx, &models.Order{UserID: user.ID, Status: OrderStatusPending})
	if err != nil {
		t.Fatalf("SaveOrderAtomic: %v", err)
	}

	if err := orders.UpdateOrderStatus(ctx, stored.ID, OrderStatusPreparing); err != nil {
		t.Fatalf("Pending -> Preparing: %v", err)
	}
	err = orders.UpdateOrderStatus(ctx, stored.ID, OrderStatusPending)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Preparing -> Pending: err = %v, want ErrInvalidTransition", err)
	}
	err = orders.UpdateOrderStatus(ctx, 999999999, OrderStatusPreparing)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing order: err = %v, want ErrNotFound", err)
	}
}

func TestSnapshotSurvivesMenuEdit_Integration(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	user := createTestUser(t, pool)
	item := createTestMenuItem(t, pool, "Cake", 4.0, nil)

	catalog := NewCatalogStore(pool)
	orders := NewOrderStore(pool)

	priced, err := PriceOrder(ctx, catalog, user.ID, []models.OrderLine{{MenuItemID: item.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("PriceOrder: %v", err)
	}
	stored, err := orders.SaveOrderAtomic(ctx, priced)
	if err != nil {
		t.Fatalf("SaveOrderAtomic: %v", err)
	}

	item.Name = "Fancy Cake"
	item.Price = 9.0
	if err := catalog.UpdateMenuItem(ctx, item); err != nil {
		t.Fatalf("UpdateMenuItem: %v", err)
	}

	got, err := orders.GetOrder(ctx, stored.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.Items[0].PriceAtOrder != 4.0 || got.Items[0].NameAtOrder != "Cake" {
		t.Errorf("snapshot = %v %q, want 4.0 Cake after menu edit",
			got.Items[0].PriceAtOrder, got.Items[0].NameAtOrder)
	}
}
