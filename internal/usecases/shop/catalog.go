package shop

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
)

const (
	catalogCacheKey = "shop:catalog"
	catalogCacheTTL = 5 * time.Minute
)

// ListCourses возвращает каталог курсов, при наличии Redis - через кеш.
// Кеш сбрасывается при изменении цены (InvalidateCatalog)
func (s *Service) ListCourses(ctx context.Context) ([]domain.Course, error) {
	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, catalogCacheKey)
		if err == nil && cached != "" {
			var courses []domain.Course
			if err := json.Unmarshal([]byte(cached), &courses); err == nil {
				s.Log.Debug("catalog served from cache", "count", len(courses))
				return courses, nil
			}
			s.Log.Warn("failed to unmarshal cached catalog, falling back to db", "error", err)
		}
	}

	courses, err := s.CourseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		data, err := json.Marshal(courses)
		if err == nil {
			if err := s.Cache.Set(ctx, catalogCacheKey, string(data), catalogCacheTTL); err != nil {
				s.Log.Warn("failed to cache catalog", "error", err)
			}
		}
	}

	return courses, nil
}

// InvalidateCatalog сбрасывает кеш каталога
func (s *Service) InvalidateCatalog(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, catalogCacheKey); err != nil {
		s.Log.Warn("failed to invalidate catalog cache", "error", err)
	}
}

// UpdateCoursePrice меняет цену курса и сбрасывает кеш каталога
func (s *Service) UpdateCoursePrice(ctx context.Context, courseID, price int64) error {
	if err := s.CourseRepo.UpdatePrice(ctx, courseID, price); err != nil {
		return err
	}
	s.InvalidateCatalog(ctx)

	s.Log.Info("course price updated",
		"course_id", courseID,
		"price", price,
	)
	return nil
}
