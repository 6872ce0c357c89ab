// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/gamestore-backend/internal/config"
	"github.com/your-org/gamestore-backend/internal/domain/cart"
	"github.com/your-org/gamestore-backend/internal/domain/library"
	"github.com/your-org/gamestore-backend/internal/domain/order"
)

// User-facing checkout messages (the shop ships in Spanish)
const (
	MsgLoginRequired     = "Debes iniciar sesión para realizar la compra"
	MsgEmptyCart         = "No hay juegos en el carrito"
	MsgPurchaseInFlight  = "Ya hay una compra en curso, espera a que termine"
	MsgPurchaseCompleted = "¡Compra realizada con éxito! Tus juegos ya están en la biblioteca"
	MsgServiceDown       = "No se pudo conectar con la tienda, inténtalo de nuevo"
	MsgServerFailed      = "La tienda no pudo procesar el pedido, inténtalo más tarde"
	MsgLibraryPending    = "Compra realizada, pero no se pudo actualizar la biblioteca todavía"
)

// ResultStatus classifies the outcome of a checkout attempt
type ResultStatus string

const (
	ResultCompleted      ResultStatus = "completed"
	ResultInvalid        ResultStatus = "invalid"         // precondition failed, no network call made
	ResultInProgress     ResultStatus = "in_progress"     // another checkout for this cart is outstanding
	ResultUnavailable    ResultStatus = "unavailable"     // transport failure or timeout, retryable
	ResultRejected       ResultStatus = "rejected"        // order service refused (4xx)
	ResultServerError    ResultStatus = "server_error"    // order service failed (5xx), retryable
	ResultLibraryPending ResultStatus = "library_pending" // order placed, library write failed
)

// Result is the explicit outcome of a checkout attempt. No error crosses
// the orchestrator boundary; every failure is converted into a Result.
type Result struct {
	Status       ResultStatus            `json:"status"`
	Message      string                  `json:"message"`
	OrderNumber  string                  `json:"order_number,omitempty"`
	Retryable    bool                    `json:"retryable"`
	PendingItems []library.PurchasedItem `json:"pending_items,omitempty"`
}

// Succeeded reports whether the order was placed, regardless of whether
// the library write also landed
func (r Result) Succeeded() bool {
	return r.Status == ResultCompleted || r.Status == ResultLibraryPending
}

// Input carries the checkout parameters from the caller
type Input struct {
	UserID          *uint
	RemoteUserID    *string
	PaymentMethod   string
	ShippingAddress string
}

// LibraryRecorder is the slice of the library recorder the orchestrator needs
type LibraryRecorder interface {
	AddPurchasedGames(ctx context.Context, userID uint, items []library.PurchasedItem) (int, error)
}

// recordTimeout bounds the library write that follows a successful order.
// It runs on a fresh context: the order is already committed server-side,
// so tearing down the initiating request must not abort the write.
const recordTimeout = 10 * time.Second

// Service drives order creation against the remote order service and, on
// success, populates the local library and clears the cart
type Service struct {
	orders      order.Client
	recorder    LibraryRecorder
	redisClient *redis.Client
	config      *config.Config
	logger      *logrus.Logger

	mu       sync.Mutex
	inFlight map[*cart.Store]struct{}
}

// NewService creates a new checkout service. redisClient may be nil; the
// cross-instance submission guard is then skipped.
func NewService(orders order.Client, recorder LibraryRecorder, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		orders:      orders,
		recorder:    recorder,
		redisClient: redisClient,
		config:      cfg,
		logger:      logger,
		inFlight:    make(map[*cart.Store]struct{}),
	}
}

// Execute runs one checkout for the given cart store. The cart snapshot is
// taken before the network call and is the only cart state the rest of the
// flow reads, so a concurrent cart edit cannot desync the order from the
// library records. On any failure the cart is left exactly as it was.
func (s *Service) Execute(ctx context.Context, store *cart.Store, input Input) Result {
	if input.UserID == nil {
		return Result{Status: ResultInvalid, Message: MsgLoginRequired}
	}

	snapshot := store.Snapshot()
	if snapshot.IsEmpty() {
		return Result{Status: ResultInvalid, Message: MsgEmptyCart}
	}

	if !s.acquire(store) {
		return Result{Status: ResultInProgress, Message: MsgPurchaseInFlight}
	}
	defer s.release(store)

	idempotencyKey := uuid.New().String()

	if busy := s.markSubmission(ctx, *input.UserID); busy {
		return Result{Status: ResultInProgress, Message: MsgPurchaseInFlight}
	}
	defer s.clearSubmission(*input.UserID)

	req := &order.Request{
		UserID:          *input.UserID,
		RemoteUserID:    input.RemoteUserID,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
		IdempotencyKey:  idempotencyKey,
	}
	for _, line := range snapshot.Lines {
		req.Lines = append(req.Lines, order.Line{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, s.config.OrderService.Timeout)
	defer cancel()

	confirmation, err := s.orders.CreateOrder(callCtx, req)
	if err != nil {
		return s.failureResult(err, *input.UserID)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      *input.UserID,
		"order_number": confirmation.OrderNumber,
		"lines":        len(snapshot.Lines),
		"total_qty":    snapshot.Totals.TotalQuantity,
	}).Info("Order placed")

	items := purchasedItems(snapshot)

	// The order exists server-side from here on: the cart is cleared even
	// if the library write fails, so the user cannot buy the same order
	// twice by retrying.
	store.Clear()

	recordCtx, recordCancel := context.WithTimeout(context.Background(), recordTimeout)
	defer recordCancel()

	if _, err := s.recorder.AddPurchasedGames(recordCtx, *input.UserID, items); err != nil {
		s.logger.WithError(err).WithField("user_id", *input.UserID).
			Error("Library recording failed after successful order")
		return Result{
			Status:       ResultLibraryPending,
			Message:      MsgLibraryPending,
			OrderNumber:  confirmation.OrderNumber,
			Retryable:    true,
			PendingItems: items,
		}
	}

	return Result{
		Status:      ResultCompleted,
		Message:     MsgPurchaseCompleted,
		OrderNumber: confirmation.OrderNumber,
	}
}

// RetryLibraryRecording re-runs the library write for an order whose
// recording step failed. Safe to call repeatedly; already-owned games are
// skipped by the recorder.
func (s *Service) RetryLibraryRecording(ctx context.Context, userID uint, items []library.PurchasedItem) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("no items to record")
	}
	return s.recorder.AddPurchasedGames(ctx, userID, items)
}

func (s *Service) failureResult(err error, userID uint) Result {
	entry := s.logger.WithError(err).WithField("user_id", userID)

	var rejected *order.RejectedError
	var serverErr *order.ServerError

	switch {
	case errors.As(err, &rejected):
		entry.Warn("Order rejected by order service")
		message := rejected.Detail
		if message == "" {
			message = MsgServerFailed
		}
		return Result{Status: ResultRejected, Message: message}

	case errors.As(err, &serverErr):
		entry.Warn("Order service reported an internal error")
		return Result{Status: ResultServerError, Message: MsgServerFailed, Retryable: true}

	case errors.Is(err, order.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		entry.Warn("Order service unreachable")
		return Result{Status: ResultUnavailable, Message: MsgServiceDown, Retryable: true}

	default:
		entry.Error("Order creation failed")
		return Result{Status: ResultUnavailable, Message: MsgServiceDown, Retryable: true}
	}
}

// acquire marks the store as having a checkout in flight. A second
// concurrent Execute for the same store is turned away instead of
// double-submitting the order.
func (s *Service) acquire(store *cart.Store) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[store]; busy {
		return false
	}
	s.inFlight[store] = struct{}{}
	return true
}

func (s *Service) release(store *cart.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, store)
}

// markSubmission sets a short-lived per-user marker in Redis so that two
// app instances cannot submit for the same user at once. Redis being down
// or absent falls back to the local guard only.
func (s *Service) markSubmission(ctx context.Context, userID uint) (busy bool) {
	if s.redisClient == nil {
		return false
	}
	key := fmt.Sprintf("checkout:inflight:%d", userID)
	ok, err := s.redisClient.SetNX(ctx, key, 1, s.config.OrderService.IdempotencyTTL).Result()
	if err != nil {
		return false
	}
	return !ok
}

func (s *Service) clearSubmission(userID uint) {
	if s.redisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	s.redisClient.Del(ctx, fmt.Sprintf("checkout:inflight:%d", userID))
}

func purchasedItems(snapshot cart.Snapshot) []library.PurchasedItem {
	items := make([]library.PurchasedItem, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		items = append(items, library.PurchasedItem{
			ProductID: line.ProductID,
			Title:     line.Title,
		})
	}
	return items
}
