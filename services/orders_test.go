package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hostel-shop-api/models"
	"hostel-shop-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRecorder struct{ calls int }

func (f *failingRecorder) TrackEvent(context.Context, string, models.EventType) error {
	f.calls++
	return errors.New("event store unavailable")
}

func newOrderFixture(t *testing.T) (*OrderService, store.Store, *fakeClock) {
	t.Helper()
	st := newTestStore(t)
	clock := newFakeClock()
	analytics := NewAnalyticsService(st)
	analytics.now = clock.Now
	svc := NewOrderService(st, analytics)
	svc.now = clock.Now
	return svc, st, clock
}

func sampleOrder() CreateOrderInput {
	return CreateOrderInput{
		GuestName:          "Maria",
		RoomNumber:         "12",
		Phone:              "+5521999990000",
		DeliveryPreference: "door",
		Items: []OrderItemInput{
			{ProductID: "p1", Name: "Água", Price: 5, Quantity: 2},
			{ProductID: "p2", Name: "Chips", Price: 3, Quantity: 1},
		},
		Total: 13,
	}
}

func TestCreateOrder_OneEventPerLineItem(t *testing.T) {
	svc, st, _ := newOrderFixture(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 13.0, order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "p1", order.Items[0].ProductID)

	n, err := st.Count(ctx, models.AnalyticsEventsCollection, store.Where(store.Eq("event_type", "order")))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	p1, err := st.Count(ctx, models.AnalyticsEventsCollection, store.Where(store.Eq("product_id", "p1")))
	require.NoError(t, err)
	assert.Equal(t, int64(1), p1)
}

func TestCreateOrder_TotalIsNotRecomputed(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	in := sampleOrder()
	in.Total = 18 // includes a delivery fee the items do not show

	order, err := svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 18.0, order.Total)
}

func TestCreateOrder_Validation(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	ctx := context.Background()

	empty := sampleOrder()
	empty.Items = nil
	_, err := svc.CreateOrder(ctx, empty)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)

	zero := sampleOrder()
	zero.Items[1].Quantity = 0
	_, err = svc.CreateOrder(ctx, zero)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items[1].quantity", verr.Field)

	noRoom := sampleOrder()
	noRoom.RoomNumber = ""
	_, err = svc.CreateOrder(ctx, noRoom)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "room_number", verr.Field)
}

func TestCreateOrder_EventFailureKeepsOrder(t *testing.T) {
	st := newTestStore(t)
	recorder := &failingRecorder{}
	svc := NewOrderService(st, recorder)

	order, err := svc.CreateOrder(context.Background(), sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, 2, recorder.calls)

	got, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestListOrders_NewestFirstAndStatusFilter(t *testing.T) {
	svc, _, clock := newOrderFixture(t)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)
	clock.Advance(time.Hour)
	second, err := svc.CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)
	clock.Advance(time.Hour)
	third, err := svc.CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, second.ID, models.StatusConfirmed)
	require.NoError(t, err)

	all, err := svc.ListOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	pending, err := svc.ListOrders(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, third.ID, pending[0].ID)
}

func TestUpdateStatus_Permissive(t *testing.T) {
	svc, _, clock := newOrderFixture(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)

	clock.Advance(time.Minute)
	completed, err := svc.UpdateStatus(ctx, order.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	assert.True(t, completed.UpdatedAt.After(order.UpdatedAt))

	// completed is terminal in the lifecycle table, but the write still goes through.
	reopened, err := svc.UpdateStatus(ctx, order.ID, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, reopened.Status)
	assert.Equal(t, order.Items, reopened.Items)
}

func TestUpdateStatus_Errors(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, "missing", models.StatusConfirmed)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Order", nf.Entity)

	order, err := svc.CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, order.ID, "shipped")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}
