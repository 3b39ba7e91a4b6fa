package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события бронирований во внешний диспетчер вебхуков.
// Публикация best-effort: доставка, повторы и подписки на стороне диспетчера
type Publisher struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewPublisher создает новый экземпляр публикатора событий
func NewPublisher(baseURL string, timeout time.Duration, log Logger) *Publisher {
	return &Publisher{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// PublishBookingCreated публикует событие создания бронирования
func (p *Publisher) PublishBookingCreated(ctx context.Context, tenantID uuid.UUID, booking *domain.Booking) error {
	return p.publish(ctx, buildEvent(eventBookingCreated, tenantID, booking))
}

// PublishBookingConfirmed публикует событие подтверждения бронирования
// (продвижение из листа ожидания)
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, tenantID uuid.UUID, booking *domain.Booking) error {
	return p.publish(ctx, buildEvent(eventBookingConfirmed, tenantID, booking))
}

// PublishBookingCancelled публикует событие отмены бронирования
func (p *Publisher) PublishBookingCancelled(ctx context.Context, tenantID uuid.UUID, booking *domain.Booking) error {
	return p.publish(ctx, buildEvent(eventBookingCancelled, tenantID, booking))
}

// PublishBookingCompleted публикует событие завершения посещения (чек-ин)
func (p *Publisher) PublishBookingCompleted(ctx context.Context, tenantID uuid.UUID, booking *domain.Booking) error {
	return p.publish(ctx, buildEvent(eventBookingCompleted, tenantID, booking))
}

// PublishBookingNoShow публикует событие неявки участника
func (p *Publisher) PublishBookingNoShow(ctx context.Context, tenantID uuid.UUID, booking *domain.Booking) error {
	return p.publish(ctx, buildEvent(eventBookingNoShow, tenantID, booking))
}

func (p *Publisher) publish(ctx context.Context, event *Event) error {
	url := fmt.Sprintf("%s/internal/webhooks/events", p.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}

func buildEvent(eventType string, tenantID uuid.UUID, booking *domain.Booking) *Event {
	return &Event{
		Type:       eventType,
		TenantID:   tenantID,
		OccurredAt: time.Now().UTC(),
		Payload: BookingPayload{
			BookingID:        booking.ID,
			SessionID:        booking.SessionID,
			MemberID:         booking.MemberID,
			Status:           string(booking.Status),
			WaitlistPosition: booking.WaitlistPosition,
			CreatedAt:        booking.CreatedAt,
			CancelledAt:      booking.CancelledAt,
			CheckedInAt:      booking.CheckedInAt,
		},
	}
}
