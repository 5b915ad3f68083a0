package vk

import "encoding/json"

// APIResponse базовая структура ответа VK API
type APIResponse struct {
	Response json.RawMessage `json:"response,omitempty"`
	Error    *APIError       `json:"error,omitempty"`
}

// APIError ошибка VK API
type APIError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}
