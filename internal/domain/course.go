package domain

import "time"

// Course цифровой курс в каталоге
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"`         // цена в рублях, целое число
	FilePath    string    `json:"file_path" db:"file_path"` // ключ файла курса в S3
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
