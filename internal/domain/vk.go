package domain

import "encoding/json"

// дока - https://dev.vk.com/ru/api/callback/getting-started

// Callback типы событий Callback API
const (
	CallbackTypeConfirmation = "confirmation"
	CallbackTypeMessageNew   = "message_new"
)

// CallbackEvent входящее событие от VK Callback API
type CallbackEvent struct {
	Type    string          `json:"type"`
	GroupID int64           `json:"group_id"`
	EventID string          `json:"event_id,omitempty"`
	Secret  string          `json:"secret,omitempty"`
	Object  json.RawMessage `json:"object,omitempty"`
}

// MessageNewObject объект события message_new
// VK присылает либо {"message": {...}}, либо (старые версии API) само сообщение
type MessageNewObject struct {
	Message *VKMessage `json:"message,omitempty"`
	// Поля плоского формата для старых версий Callback API
	VKMessage
}

// VKMessage сообщение пользователя сообществу
type VKMessage struct {
	ID      int64           `json:"id,omitempty"`
	PeerID  int64           `json:"peer_id,omitempty"`
	FromID  int64           `json:"from_id,omitempty"`
	UserID  int64           `json:"user_id,omitempty"`
	Date    int64           `json:"date,omitempty"`
	Text    string          `json:"text,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"` // у VK payload приходит строкой с JSON внутри
}

// Sender возвращает id отправителя (from_id, либо user_id, либо peer_id)
func (m *VKMessage) Sender() int64 {
	if m.FromID != 0 {
		return m.FromID
	}
	if m.UserID != 0 {
		return m.UserID
	}
	return m.PeerID
}

// Peer возвращает id диалога для ответа
func (m *VKMessage) Peer() int64 {
	if m.PeerID != 0 {
		return m.PeerID
	}
	return m.Sender()
}

// ButtonPayload payload кнопки клавиатуры
type ButtonPayload struct {
	Cmd      string `json:"cmd"`
	CourseID int64  `json:"course_id,omitempty"`
}

// Команды кнопок
const (
	CmdCatalog = "catalog"
	CmdBuy     = "buy"
	CmdBack    = "back"
)
