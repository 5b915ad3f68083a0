package alerter

// Config конфигурация отправки алертов оператору
type Config struct {
	Token      string `envconfig:"TOKEN"`                           // токен сообщества, от имени которого шлём алерты
	PeerID     int64  `envconfig:"PEER_ID"`                         // личка оператора или беседа
	APIVersion string `envconfig:"API_VERSION" default:"5.199"`
}

// IsConfigured алертер опциональный, включается только при заданных токене и адресате
func (c *Config) IsConfigured() bool {
	return c != nil && c.Token != "" && c.PeerID != 0
}
