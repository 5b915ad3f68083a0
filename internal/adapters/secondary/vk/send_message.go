package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// SendMessageRequest запрос на отправку сообщения
type SendMessageRequest struct {
	PeerID     int64
	Text       string
	Keyboard   map[string]interface{} // VK keyboard JSON
	Attachment string                 // например, doc123_456
}

// SendMessage отправляет текстовое сообщение
func (c *Client) SendMessage(ctx context.Context, peerID int64, text string) error {
	return c.SendMessageWithRequest(ctx, SendMessageRequest{
		PeerID: peerID,
		Text:   text,
	})
}

// SendMessageWithKeyboard отправляет сообщение с клавиатурой
func (c *Client) SendMessageWithKeyboard(ctx context.Context, peerID int64, text string, keyboard map[string]interface{}) error {
	return c.SendMessageWithRequest(ctx, SendMessageRequest{
		PeerID:   peerID,
		Text:     text,
		Keyboard: keyboard,
	})
}

// SendMessageWithAttachment отправляет сообщение с вложением
func (c *Client) SendMessageWithAttachment(ctx context.Context, peerID int64, text string, attachment string) error {
	return c.SendMessageWithRequest(ctx, SendMessageRequest{
		PeerID:     peerID,
		Text:       text,
		Attachment: attachment,
	})
}

// SendMessageWithRequest выполняет messages.send
func (c *Client) SendMessageWithRequest(ctx context.Context, req SendMessageRequest) error {
	params := url.Values{}
	params.Set("peer_id", strconv.FormatInt(req.PeerID, 10))
	params.Set("message", req.Text)
	// random_id защищает от дублей при ретраях VK
	params.Set("random_id", strconv.FormatInt(randomID(), 10))

	if req.Attachment != "" {
		params.Set("attachment", req.Attachment)
	}

	if req.Keyboard != nil {
		keyboardJSON, err := json.Marshal(req.Keyboard)
		if err != nil {
			c.log.Error("failed to marshal keyboard",
				"error", err,
				"peer_id", req.PeerID,
			)
			return fmt.Errorf("failed to marshal keyboard: %w", err)
		}
		params.Set("keyboard", string(keyboardJSON))
	}

	if _, err := c.callMethod(ctx, "messages.send", params); err != nil {
		return fmt.Errorf("messages.send failed [peer_id=%d]: %w", req.PeerID, err)
	}

	c.log.Debug("message sent successfully",
		"peer_id", req.PeerID,
		"has_keyboard", req.Keyboard != nil,
		"has_attachment", req.Attachment != "",
	)

	return nil
}

// randomID генерирует положительный int31 для random_id
func randomID() int64 {
	u := uuid.New()
	v := int64(u[0])<<24 | int64(u[1])<<16 | int64(u[2])<<8 | int64(u[3])
	return v & 0x7FFFFFFF
}
