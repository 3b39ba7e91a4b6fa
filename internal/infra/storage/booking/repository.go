package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
	"github.com/m04kA/GymClassService/pkg/dbmetrics"
	"github.com/m04kA/GymClassService/pkg/psqlbuilder"
)

// bookingColumns колонки таблицы class_bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"session_id",
	"member_id",
	"subscription_id",
	"status",
	"waitlist_position",
	"class_deducted",
	"notes",
	"booked_by",
	"cancellation_reason",
	"cancelled_at",
	"checked_in_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// ID генерируется на стороне приложения до вставки
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("class_bookings").
		Columns(
			"id",
			"session_id",
			"member_id",
			"subscription_id",
			"status",
			"waitlist_position",
			"class_deducted",
			"notes",
			"booked_by",
		).
		Values(
			booking.ID,
			booking.SessionID,
			booking.MemberID,
			booking.SubscriptionID,
			booking.Status,
			booking.WaitlistPosition,
			booking.ClassDeducted,
			booking.Notes,
			booking.BookedBy,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("class_bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBookingRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Update сохраняет изменяемые поля бронирования после перехода состояния
// Все мутации проходят через методы domain.Booking, репозиторий только персистит
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("class_bookings").
		Set("status", booking.Status).
		Set("waitlist_position", booking.WaitlistPosition).
		Set("class_deducted", booking.ClassDeducted).
		Set("cancellation_reason", booking.CancellationReason).
		Set("cancelled_at", booking.CancelledAt).
		Set("checked_in_at", booking.CheckedInAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateWaitlistPosition переносит бронирование на новую позицию в листе ожидания
// Используется при перенумерации после отмены или продвижения
func (r *Repository) UpdateWaitlistPosition(ctx context.Context, id uuid.UUID, position int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("class_bookings").
		Set("waitlist_position", position).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusWaitlisted}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateWaitlistPosition - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateWaitlistPosition - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateWaitlistPosition - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление, только для терминальных статусов -
// проверка на уровне сервиса)
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("class_bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ExistsActiveForSessionAndMember проверяет, есть ли у участника активное
// бронирование на занятие (инвариант уникальности)
func (r *Repository) ExistsActiveForSessionAndMember(
	ctx context.Context,
	sessionID, memberID uuid.UUID,
	statuses []domain.BookingStatus,
) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("1").
		From("class_bookings").
		Where(squirrel.Eq{
			"session_id": sessionID,
			"member_id":  memberID,
			"status":     statusStrings,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveForSessionAndMember - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveForSessionAndMember - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// GetWaitlistedBySessionOrderedByPosition получает лист ожидания занятия
// строго по возрастанию позиции. Внутри транзакции блокирует строки (FOR UPDATE),
// чтобы порядок продвижения не разъехался при конкурентных отменах
func (r *Repository) GetWaitlistedBySessionOrderedByPosition(ctx context.Context, sessionID uuid.UUID) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("class_bookings").
		Where(squirrel.Eq{
			"session_id": sessionID,
			"status":     domain.StatusWaitlisted,
		}).
		OrderBy("waitlist_position ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWaitlistedBySessionOrderedByPosition - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWaitlistedBySessionOrderedByPosition - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBySessionAndStatus получает бронирования занятия с указанным статусом
func (r *Repository) GetBySessionAndStatus(ctx context.Context, sessionID uuid.UUID, status domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("class_bookings").
		Where(squirrel.Eq{
			"session_id": sessionID,
			"status":     status,
		}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySessionAndStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySessionAndStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBySession получает все бронирования занятия
func (r *Repository) GetBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("class_bookings").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySession - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySession - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountBySessionAndStatus подсчитывает бронирования занятия в указанном статусе
func (r *Repository) CountBySessionAndStatus(ctx context.Context, sessionID uuid.UUID, status domain.BookingStatus) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("class_bookings").
		Where(squirrel.Eq{
			"session_id": sessionID,
			"status":     status,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountBySessionAndStatus - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBySessionAndStatus - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetActiveWithSessionsForMemberOnDate получает активные бронирования участника
// на дату вместе с их занятиями и классами
// Используется для проверки пересечений по времени перед созданием бронирования
func (r *Repository) GetActiveWithSessionsForMemberOnDate(
	ctx context.Context,
	memberID uuid.UUID,
	date time.Time,
) ([]*domain.BookingWithSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveBookingStatuses))
	for i, s := range domain.ActiveBookingStatuses {
		activeStatusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(
		"b.id", "b.session_id", "b.member_id", "b.subscription_id", "b.status",
		"b.waitlist_position", "b.class_deducted", "b.notes", "b.booked_by",
		"b.cancellation_reason", "b.cancelled_at", "b.checked_in_at",
		"b.created_at", "b.updated_at",
		"s.id", "s.gym_class_id", "s.location_id", "s.trainer_id",
		"s.session_date", "s.start_time", "s.end_time",
		"s.max_capacity", "s.current_bookings", "s.waitlist_count", "s.checked_in_count",
		"s.status", "s.created_at", "s.updated_at",
		"c.id", "c.name_en", "c.name_ar", "c.description_en", "c.description_ar",
		"c.location_id", "c.duration_minutes", "c.max_capacity",
		"c.waitlist_enabled", "c.max_waitlist_size",
		"c.requires_subscription", "c.deducts_class_from_plan",
		"c.cancellation_deadline_hours", "c.advance_booking_days",
		"c.status", "c.created_at", "c.updated_at",
	).
		From("class_bookings b").
		Join("class_sessions s ON s.id = b.session_id").
		Join("gym_classes c ON c.id = s.gym_class_id").
		Where(squirrel.Eq{
			"b.member_id":    memberID,
			"b.status":       activeStatusStrings,
			"s.session_date": date,
		}).
		OrderBy("s.start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveWithSessionsForMemberOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveWithSessionsForMemberOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	results := make([]*domain.BookingWithSession, 0)

	for rows.Next() {
		var (
			b                    domain.Booking
			s                    domain.Session
			c                    domain.GymClass
			bCreatedAt, bUpdated sql.NullTime
			sCreatedAt, sUpdated sql.NullTime
			cCreatedAt, cUpdated sql.NullTime
			descriptionEN        sql.NullString
			descriptionAR        sql.NullString
			nameAR               sql.NullString
		)

		err := rows.Scan(
			&b.ID, &b.SessionID, &b.MemberID, &b.SubscriptionID, &b.Status,
			&b.WaitlistPosition, &b.ClassDeducted, &b.Notes, &b.BookedBy,
			&b.CancellationReason, &b.CancelledAt, &b.CheckedInAt,
			&bCreatedAt, &bUpdated,
			&s.ID, &s.GymClassID, &s.LocationID, &s.TrainerID,
			&s.SessionDate, &s.StartTime, &s.EndTime,
			&s.MaxCapacity, &s.CurrentBookings, &s.WaitlistCount, &s.CheckedInCount,
			&s.Status, &sCreatedAt, &sUpdated,
			&c.ID, &c.Name.EN, &nameAR, &descriptionEN, &descriptionAR,
			&c.LocationID, &c.DurationMinutes, &c.MaxCapacity,
			&c.WaitlistEnabled, &c.MaxWaitlistSize,
			&c.RequiresSubscription, &c.DeductsClassFromPlan,
			&c.CancellationDeadlineHours, &c.AdvanceBookingDays,
			&c.Status, &cCreatedAt, &cUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveWithSessionsForMemberOnDate - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = bCreatedAt.Time
		b.UpdatedAt = bUpdated.Time
		s.CreatedAt = sCreatedAt.Time
		s.UpdatedAt = sUpdated.Time
		c.CreatedAt = cCreatedAt.Time
		c.UpdatedAt = cUpdated.Time
		c.Name.AR = nameAR.String
		c.Description.EN = descriptionEN.String
		c.Description.AR = descriptionAR.String

		results = append(results, &domain.BookingWithSession{
			Booking:  &b,
			Session:  &s,
			GymClass: &c,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveWithSessionsForMemberOnDate - rows error: %v", ErrScanRow, err)
	}

	return results, nil
}

// scanBookingRow сканирует одну строку бронирования
func scanBookingRow(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.SessionID,
		&booking.MemberID,
		&booking.SubscriptionID,
		&booking.Status,
		&booking.WaitlistPosition,
		&booking.ClassDeducted,
		&booking.Notes,
		&booking.BookedBy,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.CheckedInAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.SessionID,
			&booking.MemberID,
			&booking.SubscriptionID,
			&booking.Status,
			&booking.WaitlistPosition,
			&booking.ClassDeducted,
			&booking.Notes,
			&booking.BookedBy,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&booking.CheckedInAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
