package repository

import (
	"context"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
)

// ICourseRepo интерфейс для работы с каталогом курсов
type ICourseRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	UpdatePrice(ctx context.Context, id int64, price int64) error
}
