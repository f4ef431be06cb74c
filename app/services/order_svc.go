package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/events"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/helpers"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/repositories"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/apperr"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/calc"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/metrics"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/pagination"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	orderNumberPrefix = "GC-"
	publishTimeout    = 5 * time.Second
)

var errOrderNumberTaken = errors.New("order number already taken")

// NewOrderNumber returns "GC-" followed by eight upper-case hex characters.
func NewOrderNumber() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return orderNumberPrefix + strings.ToUpper(hex[:8])
}

type OrderLine struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"gt=0,lte=100000"`
}

type ShippingAddress struct {
	FirstName    string `json:"shipping_first_name" validate:"required,max=50"`
	LastName     string `json:"shipping_last_name" validate:"required,max=50"`
	AddressLine1 string `json:"shipping_address_line1" validate:"required,max=255"`
	AddressLine2 string `json:"shipping_address_line2" validate:"max=255"`
	City         string `json:"shipping_city" validate:"required,max=100"`
	State        string `json:"shipping_state" validate:"required,max=100"`
	PostalCode   string `json:"shipping_postal_code" validate:"required,max=20"`
	Country      string `json:"shipping_country" validate:"required,max=100"`
}

type PlaceOrderInput struct {
	Items         []OrderLine `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string      `json:"payment_method" validate:"omitempty,oneof=stripe paypal"`
	ShippingAddress
}

type UpdateStatusInput struct {
	Status         models.OrderStatus `json:"status" validate:"required"`
	TrackingNumber string             `json:"tracking_number" validate:"max=100"`
}

type OrderServiceConfig struct {
	// Timeout bounds one PlaceOrder call including retries. Zero disables it.
	Timeout time.Duration
	// Attempts is the number of transactions tried when order numbers collide.
	Attempts int
	Pricing  calc.PricingPolicy
	// NewOrderNumber overrides the order number generator.
	NewOrderNumber func() string
}

type OrderService struct {
	db            *gorm.DB
	productRepo   repositories.ProductRepository
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	publisher     events.Publisher
	metrics       *metrics.Metrics
	log           *zap.Logger

	timeout        time.Duration
	attempts       uint64
	pricing        calc.PricingPolicy
	newOrderNumber func() string
}

func NewOrderService(
	db *gorm.DB,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
	cfg OrderServiceConfig,
) *OrderService {
	s := &OrderService{
		db:             db,
		productRepo:    productRepo,
		orderRepo:      orderRepo,
		orderItemRepo:  orderItemRepo,
		publisher:      publisher,
		metrics:        m,
		log:            log,
		timeout:        cfg.Timeout,
		attempts:       1,
		pricing:        cfg.Pricing,
		newOrderNumber: cfg.NewOrderNumber,
	}
	if cfg.Attempts > 1 {
		s.attempts = uint64(cfg.Attempts)
	}
	if s.pricing == nil {
		s.pricing = calc.NoCharges{}
	}
	if s.newOrderNumber == nil {
		s.newOrderNumber = NewOrderNumber
	}
	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	return s
}

// MaxLineQuantity caps the quantity of one product in an order, after merging.
const MaxLineQuantity = 100000

// mergeLines folds repeated products into one line, keeping first-seen order.
func mergeLines(lines []OrderLine) ([]OrderLine, error) {
	merged := make([]OrderLine, 0, len(lines))
	index := make(map[uint]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 || l.Quantity > MaxLineQuantity {
			return nil, apperr.Validation("quantity", "Quantity must be between 1 and %d", MaxLineQuantity)
		}
		if i, ok := index[l.ProductID]; ok {
			if merged[i].Quantity > MaxLineQuantity-l.Quantity {
				return nil, apperr.Validation("quantity",
					"Total quantity for product %d must not exceed %d", l.ProductID, MaxLineQuantity)
			}
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l)
	}
	return merged, nil
}

// PlaceOrder validates the request against current stock and commits the order,
// its items and the inventory decrements in one transaction. Nothing is written
// when any line fails.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID uint, in PlaceOrderInput) (*models.Order, error) {
	if err := helpers.ValidateStruct(in); err != nil {
		s.recordFailure(err)
		return nil, err
	}
	lines, err := mergeLines(in.Items)
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	backoff := retry.WithMaxRetries(s.attempts-1, retry.NewConstant(5*time.Millisecond))

	var order *models.Order
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		o, err := s.placeOnce(ctx, customerID, in, lines)
		if errors.Is(err, errOrderNumberTaken) {
			s.metrics.OrderRetries.Inc()
			s.log.Warn("order number collision, retrying", zap.Error(err))
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		err = classifyTxError(err)
		s.recordFailure(err)
		if apperr.KindOf(err) == apperr.KindInternal {
			s.log.Error("place order failed", zap.Uint("customer_id", customerID), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.OrdersPlaced.Inc()
	s.metrics.OrderValue.Observe(order.TotalAmount.InexactFloat64())
	s.log.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.Uint("customer_id", customerID),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.Int("lines", len(order.Items)))
	s.publish(ctx, events.TypeOrderPlaced, order)

	return order, nil
}

func (s *OrderService) placeOnce(ctx context.Context, customerID uint, in PlaceOrderInput, lines []OrderLine) (*models.Order, error) {
	var order *models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.ProductID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		locked, err := s.productRepo.LockForOrder(ctx, tx, ids)
		if err != nil {
			return fmt.Errorf("failed to lock products: %w", err)
		}
		products := make(map[uint]models.Product, len(locked))
		for _, p := range locked {
			products[p.ID] = p
		}

		items := make([]models.OrderItem, 0, len(lines))
		subtotal := decimal.Zero
		totalQty := 0
		for _, l := range lines {
			p, ok := products[l.ProductID]
			if !ok || !p.IsActive {
				return apperr.ProductNotFound(l.ProductID)
			}
			if !p.InStock(l.Quantity) {
				return apperr.InsufficientInventory(p.ID, p.Title, p.InventoryCount, l.Quantity)
			}

			lineTotal := p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			subtotal = subtotal.Add(lineTotal)
			totalQty += l.Quantity
			items = append(items, models.OrderItem{
				ProductID:    p.ID,
				Quantity:     l.Quantity,
				UnitPrice:    p.Price,
				TotalPrice:   lineTotal,
				ProductTitle: p.Title,
				ProductSku:   p.Sku,
			})
		}

		charges := s.pricing.Charges(subtotal, totalQty)
		paymentMethod := in.PaymentMethod
		if paymentMethod == "" {
			paymentMethod = models.PaymentMethodStripe
		}

		o := &models.Order{
			OrderNumber:          s.newOrderNumber(),
			CustomerID:           customerID,
			Subtotal:             subtotal,
			TaxAmount:            charges.Tax,
			ShippingAmount:       charges.Shipping,
			TotalAmount:          calc.CalculateTotal(subtotal, charges),
			Status:               models.OrderStatusPending,
			PaymentMethod:        paymentMethod,
			PaymentStatus:        models.PaymentStatusPending,
			ShippingFirstName:    in.FirstName,
			ShippingLastName:     in.LastName,
			ShippingAddressLine1: in.AddressLine1,
			ShippingAddressLine2: in.AddressLine2,
			ShippingCity:         in.City,
			ShippingState:        in.State,
			ShippingPostalCode:   in.PostalCode,
			ShippingCountry:      in.Country,
		}
		if err := s.orderRepo.Create(ctx, tx, o); err != nil {
			if repositories.IsDuplicateKey(err) {
				return fmt.Errorf("%w: %s", errOrderNumberTaken, o.OrderNumber)
			}
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = o.ID
		}
		if err := s.orderItemRepo.BulkCreate(ctx, tx, items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		// decrement in id order, matching the lock order
		for _, id := range ids {
			p := products[id]
			qty := quantityFor(lines, id)
			ok, err := s.productRepo.DecrementInventory(ctx, tx, id, qty)
			if err != nil {
				return fmt.Errorf("failed to decrement inventory for product %d: %w", id, err)
			}
			if !ok {
				return apperr.InsufficientInventory(id, p.Title, p.InventoryCount, qty)
			}
		}

		o.Items = items
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func quantityFor(lines []OrderLine, productID uint) int {
	for _, l := range lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

// classifyTxError maps storage contention and timeouts to a retryable error.
func classifyTxError(err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if repositories.IsTransient(err) || errors.Is(err, errOrderNumberTaken) {
		return apperr.Transient("The order could not be completed right now, please retry", err)
	}
	return fmt.Errorf("place order: %w", err)
}

func (s *OrderService) recordFailure(err error) {
	s.metrics.OrderFailures.WithLabelValues(apperr.KindOf(err).String()).Inc()
}

func (s *OrderService) ListOrders(ctx context.Context, customerID uint, page pagination.Params) (pagination.Page[models.Order], error) {
	orders, total, err := s.orderRepo.ListByCustomer(ctx, customerID, page)
	if err != nil {
		return pagination.Page[models.Order]{}, fmt.Errorf("failed to list orders: %w", err)
	}
	return pagination.NewPage(orders, total, page), nil
}

func (s *OrderService) ListAllOrders(ctx context.Context, status models.OrderStatus, page pagination.Params) (pagination.Page[models.Order], error) {
	if status != "" && !status.Valid() {
		return pagination.Page[models.Order]{}, apperr.Validation("status", "Unknown order status %q", status)
	}
	orders, total, err := s.orderRepo.ListAll(ctx, status, page)
	if err != nil {
		return pagination.Page[models.Order]{}, fmt.Errorf("failed to list orders: %w", err)
	}
	return pagination.NewPage(orders, total, page), nil
}

// GetOrder returns the order only when it belongs to the customer.
func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetForCustomer(ctx, orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("Order not found")
	}
	return order, nil
}

// UpdateStatus moves an order along its lifecycle. Cancelling returns every
// item's quantity to stock in the same transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, in UpdateStatusInput) (*models.Order, error) {
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	if !in.Status.Valid() {
		return nil, apperr.Validation("status", "Unknown order status %q", in.Status)
	}

	var changed bool
	var restored int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("failed to load order %d: %w", orderID, err)
		}
		if order == nil {
			return apperr.NotFound("Order not found")
		}
		changed, restored, err = s.transition(ctx, tx, order, in.Status, in.TrackingNumber, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.metrics.InventoryRestored.Add(float64(restored))
	return s.afterTransition(ctx, orderID, changed)
}

// transition applies next to a locked order and reports whether the status
// changed and how many units went back to stock. extra carries additional
// columns written in the same update.
func (s *OrderService) transition(ctx context.Context, tx *gorm.DB, order *models.Order, next models.OrderStatus, tracking string, extra map[string]any) (bool, int, error) {
	fields := map[string]any{}
	for k, v := range extra {
		fields[k] = v
	}

	if order.Status == next {
		if len(fields) == 0 {
			return false, 0, nil
		}
		return false, 0, s.orderRepo.UpdateFields(ctx, tx, order.ID, fields)
	}
	if !order.Status.CanTransitionTo(next) {
		return false, 0, apperr.Validation("status", "Cannot change order status from %s to %s", order.Status, next)
	}

	now := time.Now()
	restored := 0
	fields["status"] = next
	switch next {
	case models.OrderStatusShipped:
		fields["shipped_at"] = now
		if tracking != "" {
			fields["tracking_number"] = tracking
		}
	case models.OrderStatusDelivered:
		fields["delivered_at"] = now
	case models.OrderStatusCancelled:
		for _, it := range order.Items {
			if err := s.productRepo.IncrementInventory(ctx, tx, it.ProductID, it.Quantity); err != nil {
				return false, 0, fmt.Errorf("failed to restore inventory for product %d: %w", it.ProductID, err)
			}
			restored += it.Quantity
		}
	}

	if err := s.orderRepo.UpdateFields(ctx, tx, order.ID, fields); err != nil {
		return false, 0, fmt.Errorf("failed to update order %d: %w", order.ID, err)
	}
	return true, restored, nil
}

func (s *OrderService) afterTransition(ctx context.Context, orderID uint, changed bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("Order not found")
	}
	if changed {
		s.log.Info("order status changed", zap.String("order_number", order.OrderNumber), zap.String("status", string(order.Status)))
		eventType := events.TypeOrderStatus
		if order.Status == models.OrderStatusCancelled {
			eventType = events.TypeOrderCancelled
		}
		s.publish(ctx, eventType, order)
	}
	return order, nil
}

// publish is best effort: the order is already committed, so failures are only logged.
func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, events.NewOrderEvent(eventType, order)); err != nil {
		s.log.Warn("failed to publish order event",
			zap.String("type", eventType),
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}
}
