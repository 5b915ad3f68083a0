package storage

import "context"

// IS3Client интерфейс для работы с S3-совместимым хранилищем (MinIO),
// где лежат файлы курсов
type IS3Client interface {
	GetFile(ctx context.Context, path string) ([]byte, error)
}
