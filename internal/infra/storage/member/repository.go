package member

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

var memberColumns = []string{
	"id",
	"user_id",
	"first_name_en",
	"first_name_ar",
	"last_name_en",
	"last_name_ar",
	"email",
	"phone",
	"preferred_language",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий участников (только чтение - данные принадлежат
// membership контексту)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория участников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает участника по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByUserID получает участника по ID учетной записи
// Используется для авторизации отмены бронирования
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Member, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID}, "GetByUserID")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Member, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(memberColumns...).
		From("members").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var m domain.Member
	var firstNameAR, lastNameAR, preferredLanguage sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.UserID,
		&m.FirstName.EN,
		&firstNameAR,
		&m.LastName.EN,
		&lastNameAR,
		&m.Email,
		&m.Phone,
		&preferredLanguage,
		&m.Status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan member: %v", ErrScanRow, method, err)
	}

	m.FirstName.AR = firstNameAR.String
	m.LastName.AR = lastNameAR.String
	m.PreferredLanguage = preferredLanguage.String
	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}
