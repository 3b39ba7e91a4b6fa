package gymclass

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
	"github.com/m04kA/GymClassService/pkg/dbmetrics"
	"github.com/m04kA/GymClassService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var gymClassColumns = []string{
	"id",
	"name_en",
	"name_ar",
	"description_en",
	"description_ar",
	"location_id",
	"duration_minutes",
	"max_capacity",
	"waitlist_enabled",
	"max_waitlist_size",
	"requires_subscription",
	"deducts_class_from_plan",
	"cancellation_deadline_hours",
	"advance_booking_days",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий классов (справочные данные, только чтение в booking flow)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория классов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый класс
func (r *Repository) Create(ctx context.Context, gymClass *domain.GymClass) (*domain.GymClass, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("gym_classes").
		Columns(
			"id",
			"name_en",
			"name_ar",
			"description_en",
			"description_ar",
			"location_id",
			"duration_minutes",
			"max_capacity",
			"waitlist_enabled",
			"max_waitlist_size",
			"requires_subscription",
			"deducts_class_from_plan",
			"cancellation_deadline_hours",
			"advance_booking_days",
			"status",
		).
		Values(
			gymClass.ID,
			gymClass.Name.EN,
			nullable(gymClass.Name.AR),
			nullable(gymClass.Description.EN),
			nullable(gymClass.Description.AR),
			gymClass.LocationID,
			gymClass.DurationMinutes,
			gymClass.MaxCapacity,
			gymClass.WaitlistEnabled,
			gymClass.MaxWaitlistSize,
			gymClass.RequiresSubscription,
			gymClass.DeductsClassFromPlan,
			gymClass.CancellationDeadlineHours,
			gymClass.AdvanceBookingDays,
			gymClass.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	gymClass.CreatedAt = createdAt.Time
	gymClass.UpdatedAt = updatedAt.Time

	return gymClass, nil
}

// GetByID получает класс по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.GymClass, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(gymClassColumns...).
		From("gym_classes").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var gymClass domain.GymClass
	var nameAR, descriptionEN, descriptionAR sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&gymClass.ID,
		&gymClass.Name.EN,
		&nameAR,
		&descriptionEN,
		&descriptionAR,
		&gymClass.LocationID,
		&gymClass.DurationMinutes,
		&gymClass.MaxCapacity,
		&gymClass.WaitlistEnabled,
		&gymClass.MaxWaitlistSize,
		&gymClass.RequiresSubscription,
		&gymClass.DeductsClassFromPlan,
		&gymClass.CancellationDeadlineHours,
		&gymClass.AdvanceBookingDays,
		&gymClass.Status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrGymClassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan gym class: %v", ErrScanRow, err)
	}

	gymClass.Name.AR = nameAR.String
	gymClass.Description.EN = descriptionEN.String
	gymClass.Description.AR = descriptionAR.String
	gymClass.CreatedAt = createdAt.Time
	gymClass.UpdatedAt = updatedAt.Time

	return &gymClass, nil
}

// nullable конвертирует пустую строку в NULL
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
