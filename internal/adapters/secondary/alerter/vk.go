package alerter

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/vk"
)

//согл, что чистота нарушена, но тут выбор в пользу делегирования ответственности другому адаптеру

// Client клиент для отправки алертов оператору через VK
type Client struct {
	vkClient *vk.Client
	peerID   int64
	log      *slog.Logger
}

// NewClient создаёт новый клиент для отправки алертов
func NewClient(cfg *Config, log *slog.Logger) *Client {
	if cfg == nil {
		return nil
	}

	vkClient := vk.NewClient(&vk.Config{
		Token:      cfg.Token,
		APIVersion: cfg.APIVersion,
	}, log)

	return &Client{
		vkClient: vkClient,
		peerID:   cfg.PeerID,
		log:      log,
	}
}

// SendAlert отправляет алерт в личку оператора (или беседу)
func (c *Client) SendAlert(ctx context.Context, message string) error {
	if c == nil || c.vkClient == nil {
		return fmt.Errorf("alerter client is not initialized")
	}

	if err := c.vkClient.SendMessage(ctx, c.peerID, message); err != nil {
		c.log.Warn("failed to send alert",
			"error", err,
			"peer_id", c.peerID,
		)
		return fmt.Errorf("failed to send alert: %w", err)
	}

	c.log.Debug("alert sent successfully",
		"peer_id", c.peerID,
	)

	return nil
}
