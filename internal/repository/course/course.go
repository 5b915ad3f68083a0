package courseRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	ports "github.com/MurderPatro1/vk-course-bot/internal/ports/repository"

	"log/slog"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
	"github.com/MurderPatro1/vk-course-bot/internal/ports/persistence"
)

type courseColumns struct {
	TableName   string
	ID          string
	Title       string
	Description string
	Price       string
	FilePath    string
	CreatedAt   string
	UpdatedAt   string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns courseColumns
}

// New создаёт новый репозиторий для работы с каталогом курсов
func New(db persistence.Persistence, log *slog.Logger) ports.ICourseRepo {
	cols := courseColumns{
		TableName:   "courses",
		ID:          "id",
		Title:       "title",
		Description: "description",
		Price:       "price",
		FilePath:    "file_path",
		CreatedAt:   "created_at",
		UpdatedAt:   "updated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (7 полей)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.Title,
		r.columns.Description,
		r.columns.Price,
		r.columns.FilePath,
		r.columns.CreatedAt,
		r.columns.UpdatedAt,
	)
}

// GetByID получает курс по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	var course domain.Course

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID,
	)

	err := r.db.Get(ctx, &course, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("course not found", "course_id", id)
			return nil, domain.ErrCourseNotFound
		}
		r.Log.Error("failed to get course",
			"error", err,
			"course_id", id,
		)
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	r.Log.Debug("course retrieved successfully", "course_id", id)
	return &course, nil
}

// List возвращает все курсы каталога в порядке добавления
func (r *Repository) List(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID,
	)

	err := r.db.Select(ctx, &courses, query)
	if err != nil {
		r.Log.Error("failed to list courses", "error", err)
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	r.Log.Debug("courses listed successfully", "count", len(courses))
	return courses, nil
}

// UpdatePrice обновляет цену курса
func (r *Repository) UpdatePrice(ctx context.Context, id int64, price int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		r.columns.TableName,
		r.columns.Price,
		r.columns.UpdatedAt,
		r.columns.ID,
	)

	affected, err := r.db.ExecWithResult(ctx, query, price, id)
	if err != nil {
		r.Log.Error("failed to update course price",
			"error", err,
			"course_id", id,
			"price", price,
		)
		return fmt.Errorf("failed to update course price: %w", err)
	}
	if affected == 0 {
		r.Log.Warn("course not found for price update", "course_id", id)
		return domain.ErrCourseNotFound
	}

	r.Log.Debug("course price updated successfully",
		"course_id", id,
		"price", price,
	)
	return nil
}
