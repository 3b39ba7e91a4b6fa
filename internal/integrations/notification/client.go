package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/GymClassService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса уведомлений
// Все отправки best-effort: вызывающая сторона логирует ошибку и продолжает,
// сбой уведомления никогда не откатывает бронирование
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation уведомляет участника о подтвержденном бронировании
func (c *Client) SendBookingConfirmation(ctx context.Context, member *domain.Member, session *domain.Session, gymClass *domain.GymClass) error {
	return c.send(ctx, buildRequest(typeBookingConfirmation, member, session, gymClass, nil))
}

// SendWaitlistAdded уведомляет участника о постановке в лист ожидания
func (c *Client) SendWaitlistAdded(ctx context.Context, member *domain.Member, session *domain.Session, gymClass *domain.GymClass, position int) error {
	return c.send(ctx, buildRequest(typeWaitlistAdded, member, session, gymClass, &position))
}

// SendBookingCancellation уведомляет участника об отмене бронирования
func (c *Client) SendBookingCancellation(ctx context.Context, member *domain.Member, session *domain.Session, gymClass *domain.GymClass) error {
	return c.send(ctx, buildRequest(typeBookingCancellation, member, session, gymClass, nil))
}

// SendWaitlistPromotion уведомляет участника о продвижении из листа ожидания
func (c *Client) SendWaitlistPromotion(ctx context.Context, member *domain.Member, session *domain.Session, gymClass *domain.GymClass) error {
	return c.send(ctx, buildRequest(typeWaitlistPromotion, member, session, gymClass, nil))
}

func (c *Client) send(ctx context.Context, payload *Request) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
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

func buildRequest(notificationType string, member *domain.Member, session *domain.Session, gymClass *domain.GymClass, position *int) *Request {
	return &Request{
		Type:             notificationType,
		MemberID:         member.ID,
		SessionID:        session.ID,
		ClassNameEN:      gymClass.Name.EN,
		ClassNameAR:      gymClass.Name.AR,
		SessionDate:      session.SessionDate.Format(domain.DateFormat),
		StartTime:        session.StartTime.String(),
		WaitlistPosition: position,
	}
}
