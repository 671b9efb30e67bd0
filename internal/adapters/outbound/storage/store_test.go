package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/abdidvp/rackmap/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "rackmap.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func product(model string, qty, floor int, pos string) domain.Product {
	return domain.Product{Model: model, Quantity: qty, FloorNumber: floor, Position: pos}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "rackmap.db")
	s, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	defer s.Close()
	assert.FileExists(t, path)
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rackmap.db")

	s, err := Open(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveFloor(ctx, domain.Floor{Number: 1, LeftColumns: 3, RightColumns: 4}))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path, nil)
	require.NoError(t, err)
	defer s.Close()
	f, err := s.GetFloor(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, 4, f.RightColumns)
}

func TestFloors_SaveReplacesByNumber(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.SaveFloor(ctx, domain.Floor{Number: 1, LeftColumns: 5, RightColumns: 5}))
	require.NoError(t, s.SaveFloor(ctx, domain.Floor{Number: 1, LeftColumns: 2, RightColumns: 9}))

	floors, err := s.ListFloors(ctx)
	require.NoError(t, err)
	require.Len(t, floors, 1)
	assert.Equal(t, domain.Floor{Number: 1, LeftColumns: 2, RightColumns: 9}, floors[0])
}

func TestFloors_OrderedByNumber(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	for _, n := range []int{3, 1, 2} {
		require.NoError(t, s.SaveFloor(ctx, domain.Floor{Number: n, LeftColumns: 1, RightColumns: 1}))
	}

	floors, err := s.ListFloors(ctx)
	require.NoError(t, err)
	require.Len(t, floors, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{floors[0].Number, floors[1].Number, floors[2].Number})

	n, err := s.CountFloors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestFloors_GetMissingReturnsNil(t *testing.T) {
	s := openTestStore(t)
	f, err := s.GetFloor(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, f)
}

func TestFloors_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.SaveFloor(ctx, domain.Floor{Number: 1, LeftColumns: 5, RightColumns: 5}))
	require.NoError(t, s.SaveFloor(ctx, domain.Floor{Number: 2, LeftColumns: 5, RightColumns: 5}))

	require.NoError(t, s.UpdateFloor(ctx, domain.Floor{Number: 1, LeftColumns: 7, RightColumns: 8}))
	f, err := s.GetFloor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, f.LeftColumns)

	// Updating a missing floor is a silent no-op.
	require.NoError(t, s.UpdateFloor(ctx, domain.Floor{Number: 9, LeftColumns: 1, RightColumns: 1}))
	n, _ := s.CountFloors(ctx)
	assert.Equal(t, 2, n)

	require.NoError(t, s.DeleteFloor(ctx, 1))
	n, _ = s.CountFloors(ctx)
	assert.Equal(t, 1, n)

	require.NoError(t, s.DeleteAllFloors(ctx))
	n, _ = s.CountFloors(ctx)
	assert.Equal(t, 0, n)
}

func TestProducts_SaveAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id1, err := s.SaveProduct(ctx, product("A1234", 1, 1, "L1-1"))
	require.NoError(t, err)
	id2, err := s.SaveProduct(ctx, product("B1234", 1, 1, "L1-1"))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	require.NoError(t, s.DeleteProduct(ctx, id2))
	id3, err := s.SaveProduct(ctx, product("C1234", 1, 1, "L1-1"))
	require.NoError(t, err)
	assert.Greater(t, id3, id2, "ids are never reused")
}

func TestProducts_SaveWithIDReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.SaveProduct(ctx, product("A1234", 1, 1, "L1-1"))
	require.NoError(t, err)

	p := product("A1234", 30, 2, "R2-2")
	p.ID = id
	got, err := s.SaveProduct(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	all, err := s.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, p, all[0])
}

func TestProducts_ListOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	for _, p := range []domain.Product{
		product("B1234", 1, 2, "L1-1"),
		product("A1234", 2, 1, "R1-1"),
		product("A1234", 3, 1, "L1-1"),
		product("C1234", 4, 1, "L1-1"),
	} {
		_, err := s.SaveProduct(ctx, p)
		require.NoError(t, err)
	}

	all, err := s.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "A1234", all[0].Model)
	assert.Equal(t, "L1-1", all[0].Position)
	assert.Equal(t, "C1234", all[1].Model)
	assert.Equal(t, "R1-1", all[2].Position)
	assert.Equal(t, 2, all[3].FloorNumber)

	byModel, err := s.ListProducts(ctx, domain.ProductFilter{Model: "A1234"})
	require.NoError(t, err)
	assert.Len(t, byModel, 2)

	byFloor, err := s.ListProducts(ctx, domain.ProductFilter{FloorNumber: 2})
	require.NoError(t, err)
	assert.Len(t, byFloor, 1)

	at, err := s.ListProducts(ctx, domain.ProductFilter{FloorNumber: 1, Position: "L1-1"})
	require.NoError(t, err)
	assert.Len(t, at, 2)

	none, err := s.ListProducts(ctx, domain.ProductFilter{Model: "Z9999"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProducts_UpdateQuantityOnlyTouchesQuantity(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	id, err := s.SaveProduct(ctx, product("A1234", 5, 1, "L1-1"))
	require.NoError(t, err)

	require.NoError(t, s.UpdateQuantity(ctx, id, 99))
	require.NoError(t, s.UpdateQuantity(ctx, id+100, 1))

	all, err := s.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 99, all[0].Quantity)
	assert.Equal(t, "L1-1", all[0].Position)
}

func TestProducts_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	id, err := s.SaveProduct(ctx, product("A1234", 5, 1, "L1-1"))
	require.NoError(t, err)

	p := product("A1234", 6, 3, "R4-2")
	p.ID = id
	require.NoError(t, s.UpdateProduct(ctx, p))

	all, err := s.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{p}, all)
}

func TestProducts_DeleteAt(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	for _, p := range []domain.Product{
		product("A1234", 1, 1, "L1-1"),
		product("A1234", 2, 1, "L1-1"),
		product("A1234", 3, 1, "L1-2"),
		product("B1234", 4, 1, "L1-1"),
	} {
		_, err := s.SaveProduct(ctx, p)
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteProductAt(ctx, 1, "L1-1", "A1234"))

	all, err := s.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "L1-1", all[0].Position)
	assert.Equal(t, "B1234", all[0].Model)
	assert.Equal(t, "L1-2", all[1].Position)
	assert.Equal(t, "A1234", all[1].Model)

	require.NoError(t, s.DeleteAllProducts(ctx))
	all, err = s.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReset_ClearsBothTables(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.SaveFloor(ctx, domain.Floor{Number: 1, LeftColumns: 5, RightColumns: 5}))
	_, err := s.SaveProduct(ctx, product("A1234", 1, 1, "L1-1"))
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))

	n, err := s.CountFloors(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	all, err := s.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReset_RollsBackWhenFloorDeleteFails(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.SaveFloor(ctx, domain.Floor{Number: 1, LeftColumns: 5, RightColumns: 5}))
	_, err := s.SaveProduct(ctx, product("A1234", 1, 1, "L1-1"))
	require.NoError(t, err)

	cause := errors.New("floors are locked")
	require.NoError(t, s.db.Callback().Delete().Before("gorm:delete").Register("fail_floor_delete", func(db *gorm.DB) {
		if db.Statement.Table == "floors" {
			_ = db.AddError(cause)
		}
	}))

	err = s.Reset(ctx)
	require.Error(t, err)
	assert.True(t, domain.IsStorageError(err))
	assert.ErrorIs(t, err, cause)

	all, err := s.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1, "products deleted before the failure are restored")
	n, err := s.CountFloors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	got, err := s.GetProduct(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err := s.SaveProduct(ctx, product("A1234", 3, 1, "L1-1"))
	require.NoError(t, err)
	got, err = s.GetProduct(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A1234", got.Model)
	assert.Equal(t, 3, got.Quantity)
}

func TestClosedStore_ReturnsStorageError(t *testing.T) {
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "rackmap.db"), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.ListFloors(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsStorageError(err))
}

// waitFor reads snapshots until match accepts one or the deadline passes.
func waitFor[T any](t *testing.T, ch <-chan []T, match func([]T) bool) []T {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case snap, ok := <-ch:
			require.True(t, ok, "channel closed before a matching snapshot")
			if match(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
			return nil
		}
	}
}

func waitClosed[T any](t *testing.T, ch <-chan []T) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for channel to close")
		}
	}
}

func TestWatchFloors_InitialSnapshotThenUpdates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := openTestStore(t)
	require.NoError(t, s.SaveFloor(ctx, domain.Floor{Number: 1, LeftColumns: 5, RightColumns: 5}))

	ch, err := s.WatchFloors(ctx)
	require.NoError(t, err)

	first := waitFor(t, ch, func([]domain.Floor) bool { return true })
	assert.Len(t, first, 1)

	require.NoError(t, s.SaveFloor(ctx, domain.Floor{Number: 2, LeftColumns: 5, RightColumns: 5}))
	waitFor(t, ch, func(f []domain.Floor) bool { return len(f) == 2 })

	require.NoError(t, s.Reset(ctx))
	waitFor(t, ch, func(f []domain.Floor) bool { return len(f) == 0 })
}

func TestWatchProducts_FilterAppliesToEverySnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := openTestStore(t)

	ch, err := s.WatchProducts(ctx, domain.ProductFilter{FloorNumber: 1})
	require.NoError(t, err)
	assert.Empty(t, waitFor(t, ch, func([]domain.Product) bool { return true }))

	_, err = s.SaveProduct(ctx, product("A1234", 1, 2, "L1-1"))
	require.NoError(t, err)
	_, err = s.SaveProduct(ctx, product("B1234", 1, 1, "L1-1"))
	require.NoError(t, err)

	snap := waitFor(t, ch, func(p []domain.Product) bool { return len(p) > 0 })
	require.Len(t, snap, 1)
	assert.Equal(t, "B1234", snap[0].Model)
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := openTestStore(t)

	ch, err := s.WatchProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	cancel()
	waitClosed(t, ch)

	require.Eventually(t, func() bool { return s.hub.size() == 0 }, 3*time.Second, 10*time.Millisecond)
}

func TestWatch_ClosesOnStoreClose(t *testing.T) {
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "rackmap.db"), nil)
	require.NoError(t, err)

	ch, err := s.WatchFloors(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Close())
	waitClosed(t, ch)
}

func TestWatch_ProductWritesDoNotWakeFloorWatchers(t *testing.T) {
	h := newHub()
	_, floorWake := h.subscribe(floorsTable)
	_, productWake := h.subscribe(productsTable)

	h.publish(productsTable)
	h.publish(productsTable)

	assert.Len(t, productWake, 1, "wakes coalesce")
	assert.Len(t, floorWake, 0)
}

func TestDeliver_KeepsNewest(t *testing.T) {
	out := make(chan []int, 1)
	deliver(out, []int{1})
	deliver(out, []int{2})
	deliver(out, []int{3})
	assert.Equal(t, []int{3}, <-out)
	assert.Len(t, out, 0)
}
