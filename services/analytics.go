package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"hostel-shop-api/models"
	"hostel-shop-api/store"

	"github.com/google/uuid"
)

const (
	recentOrdersWindow   = 7 * 24 * time.Hour
	popularCategoryLimit = 5
)

// AnalyticsService computes every report from raw events, products and
// orders on each call; nothing is precomputed.
type AnalyticsService struct {
	store store.Store
	now   func() time.Time
}

func NewAnalyticsService(st store.Store) *AnalyticsService {
	return &AnalyticsService{store: st, now: time.Now}
}

// TrackEvent appends an event as given. Neither the product id nor the event
// type is checked.
func (s *AnalyticsService) TrackEvent(ctx context.Context, productID string, eventType models.EventType) error {
	event := models.AnalyticsEvent{
		ID:        uuid.NewString(),
		ProductID: productID,
		EventType: eventType,
		Timestamp: stamp(s.now),
	}
	if err := s.store.Insert(ctx, models.AnalyticsEventsCollection, &event); err != nil {
		return fmt.Errorf("failed to track event: %w", err)
	}
	return nil
}

func (s *AnalyticsService) countEvents(ctx context.Context, productID string, eventType models.EventType) (int64, error) {
	return s.store.Count(ctx, models.AnalyticsEventsCollection,
		store.Where(store.Eq("product_id", productID), store.Eq("event_type", string(eventType))))
}

// conversionRate is orders per 100 views, rounded to two decimals; 0 without views.
func conversionRate(views, orders int64) float64 {
	if views == 0 {
		return 0
	}
	rate := float64(orders) / float64(views) * 100
	return math.Round(rate*100) / 100
}

// ProductAnalytics returns funnel counts for every current product, most
// ordered first. Revenue is order events times current price, not paid totals.
func (s *AnalyticsService) ProductAnalytics(ctx context.Context) ([]models.ProductMetrics, error) {
	products := []models.Product{}
	if err := s.store.Find(ctx, models.ProductsCollection, nil, store.FindOptions{}, &products); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	metrics := make([]models.ProductMetrics, 0, len(products))
	for _, p := range products {
		views, err := s.countEvents(ctx, p.ID, models.EventView)
		if err != nil {
			return nil, fmt.Errorf("failed to count views: %w", err)
		}
		carts, err := s.countEvents(ctx, p.ID, models.EventAddToCart)
		if err != nil {
			return nil, fmt.Errorf("failed to count add_to_cart: %w", err)
		}
		orders, err := s.countEvents(ctx, p.ID, models.EventOrder)
		if err != nil {
			return nil, fmt.Errorf("failed to count orders: %w", err)
		}
		metrics = append(metrics, models.ProductMetrics{
			ProductID:      p.ID,
			NamePT:         p.NamePT,
			NameEN:         p.NameEN,
			NameES:         p.NameES,
			Category:       p.Category,
			Price:          p.Price,
			Views:          views,
			AddToCart:      carts,
			Orders:         orders,
			ConversionRate: conversionRate(views, orders),
			Revenue:        float64(orders) * p.Price,
		})
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].Orders > metrics[j].Orders
	})
	return metrics, nil
}

// Summary builds the dashboard figures. TotalRevenue only sums the first
// store.MaxScan completed orders.
func (s *AnalyticsService) Summary(ctx context.Context) (*models.Summary, error) {
	summary := &models.Summary{PopularCategories: []models.CategoryCount{}}
	var err error

	if summary.TotalOrders, err = s.store.Count(ctx, models.OrdersCollection, nil); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if summary.PendingOrders, err = s.countByStatus(ctx, models.StatusPending); err != nil {
		return nil, err
	}
	if summary.CompletedOrders, err = s.countByStatus(ctx, models.StatusCompleted); err != nil {
		return nil, err
	}

	completed := []models.Order{}
	err = s.store.Find(ctx, models.OrdersCollection,
		store.Where(store.Eq("status", string(models.StatusCompleted))), store.FindOptions{}, &completed)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed orders: %w", err)
	}
	for _, o := range completed {
		summary.TotalRevenue += o.Total
	}

	since := stamp(s.now).Add(-recentOrdersWindow)
	if summary.RecentOrders, err = s.store.Count(ctx, models.OrdersCollection,
		store.Where(store.Gte("created_at", since))); err != nil {
		return nil, fmt.Errorf("failed to count recent orders: %w", err)
	}

	if summary.PopularCategories, err = s.popularCategories(ctx); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *AnalyticsService) countByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	n, err := s.store.Count(ctx, models.OrdersCollection, store.Where(store.Eq("status", string(status))))
	if err != nil {
		return 0, fmt.Errorf("failed to count %s orders: %w", status, err)
	}
	return n, nil
}

// popularCategories ranks categories by "order" events on the products that
// currently belong to them. Events for deleted products count for nothing.
// Ties keep the order in which categories were first seen. All order events
// are read in one scan and tallied in memory.
func (s *AnalyticsService) popularCategories(ctx context.Context) ([]models.CategoryCount, error) {
	products := []models.Product{}
	if err := s.store.Find(ctx, models.ProductsCollection, nil, store.FindOptions{}, &products); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	events := []models.AnalyticsEvent{}
	filter := store.Where(store.Eq("event_type", string(models.EventOrder)))
	if err := s.store.Find(ctx, models.AnalyticsEventsCollection, filter, store.FindOptions{Limit: store.NoLimit}, &events); err != nil {
		return nil, fmt.Errorf("failed to load order events: %w", err)
	}
	perProduct := make(map[string]int64, len(events))
	for _, e := range events {
		perProduct[e.ProductID]++
	}

	counts := []models.CategoryCount{}
	index := map[string]int{}
	for _, p := range products {
		orders := perProduct[p.ID]
		if orders == 0 {
			continue
		}
		i, ok := index[p.Category]
		if !ok {
			i = len(counts)
			index[p.Category] = i
			counts = append(counts, models.CategoryCount{Category: p.Category})
		}
		counts[i].Count += orders
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > popularCategoryLimit {
		counts = counts[:popularCategoryLimit]
	}
	return counts, nil
}
