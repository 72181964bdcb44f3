package orders

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/kafka"
	"github.com/Domenick1991/skybook/internal/repository"
	"github.com/Domenick1991/skybook/internal/service/flights"
)

type OrderUseCase interface {
	Create(ctx context.Context, identity domain.Identity, tickets []domain.TicketInput) (*domain.Order, error)
	List(ctx context.Context, identity domain.Identity, page domain.Page) ([]domain.Order, int, error)
	Get(ctx context.Context, identity domain.Identity, id int64) (*domain.Order, error)
	Delete(ctx context.Context, identity domain.Identity, id int64) error
	ETicket(ctx context.Context, identity domain.Identity, id int64) ([]byte, error)
}

type EventProducer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type OrderService struct {
	orders             repository.OrderRepository
	flights            repository.FlightRepository
	producer           EventProducer
	eventsTopic        string
	notificationsTopic string
	cache              flights.CacheInvalidator
}

type OrderServiceOption func(*OrderService)

func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

// WithCache drops cached flight lists whenever availability changes.
func WithCache(cache flights.CacheInvalidator) OrderServiceOption {
	return func(s *OrderService) {
		s.cache = cache
	}
}

func NewOrderService(
	orders repository.OrderRepository,
	flightRepo repository.FlightRepository,
	producer EventProducer,
	eventsTopic string,
	opts ...OrderServiceOption,
) *OrderService {
	service := &OrderService{
		orders:      orders,
		flights:     flightRepo,
		producer:    producer,
		eventsTopic: eventsTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create validates every ticket before anything is written, then stores the order
// and its tickets atomically.
func (s *OrderService) Create(ctx context.Context, identity domain.Identity, tickets []domain.TicketInput) (*domain.Order, error) {
	if err := s.validateTickets(ctx, tickets); err != nil {
		return nil, err
	}

	order := &domain.Order{UserID: identity.UserID, Tickets: make([]domain.Ticket, 0, len(tickets))}
	for _, t := range tickets {
		order.Tickets = append(order.Tickets, domain.Ticket{Row: t.Row, Seat: t.Seat, FlightID: t.FlightID})
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	flights.Invalidate(ctx, s.cache)
	s.publish(ctx, kafka.EventOrderCreated, identity, order)
	return order, nil
}

func (s *OrderService) validateTickets(ctx context.Context, tickets []domain.TicketInput) error {
	if len(tickets) == 0 {
		return domain.NewValidationError("tickets", "This list may not be empty.")
	}

	verr := &domain.ValidationError{}
	ids := make([]int64, 0, len(tickets))
	for i, t := range tickets {
		if t.FlightID <= 0 {
			verr.Add(ticketField(i, "flight"), "This field is required.")
			continue
		}
		ids = append(ids, t.FlightID)
	}

	grids, err := s.flights.SeatGrids(ctx, ids)
	if err != nil {
		return err
	}

	seen := make(map[domain.TicketInput]struct{}, len(tickets))
	for i, t := range tickets {
		if t.FlightID <= 0 {
			continue
		}
		airplane, ok := grids[t.FlightID]
		if !ok {
			verr.Add(ticketField(i, "flight"), fmt.Sprintf("Invalid pk %q - object does not exist.", strconv.FormatInt(t.FlightID, 10)))
			continue
		}
		if seatErr, ok := domain.AsValidation(domain.ValidateSeat(t.Row, t.Seat, airplane)); ok {
			for field, messages := range seatErr.Fields {
				for _, m := range messages {
					verr.Add(ticketField(i, field), m)
				}
			}
			continue
		}
		if _, dup := seen[t]; dup {
			verr.Add(domain.NonFieldErrors, "The fields flight, row, seat must make a unique set.")
			continue
		}
		seen[t] = struct{}{}
	}
	return verr.OrNil()
}

func ticketField(i int, field string) string {
	return fmt.Sprintf("tickets[%d].%s", i, field)
}

func (s *OrderService) List(ctx context.Context, identity domain.Identity, page domain.Page) ([]domain.Order, int, error) {
	return s.orders.ListByUser(ctx, identity.UserID, page)
}

func (s *OrderService) Get(ctx context.Context, identity domain.Identity, id int64) (*domain.Order, error) {
	return s.orders.GetForUser(ctx, identity.UserID, id)
}

// Delete removes the order and frees its seats.
func (s *OrderService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	order, err := s.orders.GetForUser(ctx, identity.UserID, id)
	if err != nil {
		return err
	}
	if err := s.orders.DeleteForUser(ctx, identity.UserID, id); err != nil {
		return err
	}

	flights.Invalidate(ctx, s.cache)
	s.publish(ctx, kafka.EventOrderDeleted, identity, order)
	return nil
}

func (s *OrderService) ETicket(ctx context.Context, identity domain.Identity, id int64) ([]byte, error) {
	order, err := s.orders.GetForUser(ctx, identity.UserID, id)
	if err != nil {
		return nil, err
	}
	return renderETicket(order, identity.Email)
}

// publish is best effort: the order is already committed.
func (s *OrderService) publish(ctx context.Context, eventType string, identity domain.Identity, order *domain.Order) {
	if s.producer == nil {
		return
	}

	event := kafka.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID,
		UserID:    identity.UserID,
		Email:     identity.Email,
		Tickets:   make([]kafka.TicketEvent, 0, len(order.Tickets)),
		CreatedAt: order.CreatedAt,
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.TicketEvent{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}

	key := strconv.FormatInt(order.ID, 10)
	if s.eventsTopic != "" {
		if err := s.producer.Publish(ctx, s.eventsTopic, key, event); err != nil {
			log.Printf("WARNING: failed to publish %s event for order %d: %v", eventType, order.ID, err)
		}
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for order %d: %v", eventType, order.ID, err)
		}
	}
}

var _ OrderUseCase = (*OrderService)(nil)
