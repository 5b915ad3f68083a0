package app

import (
	"time"

	server "github.com/MurderPatro1/vk-course-bot/internal/adapters/primary/http"
	alerterAdapter "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/kafka"
	"github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/payment/yoomoney"
	"github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/storage/s3"
	vkAdapter "github.com/MurderPatro1/vk-course-bot/internal/adapters/secondary/vk"
	"github.com/MurderPatro1/vk-course-bot/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Postgres *pg.Config             `envconfig:"POSTGRES"`
	Log      *logger.Config         `envconfig:"LOG"`
	Server   *server.Config         `envconfig:"APISERVER"`
	VK       *vkAdapter.Config      `envconfig:"VK"`
	YooMoney *yoomoney.Config       `envconfig:"YOOMONEY"`
	Redis    *redisAdapter.Config   `envconfig:"REDIS"`
	S3       *s3Adapter.Config      `envconfig:"S3"`
	Kafka    *kafkaAdapter.Config   `envconfig:"KAFKA"`
	Alerter  *alerterAdapter.Config `envconfig:"ALERTER"`
	Shop     *ShopConfig            `envconfig:"SHOP"`
}

// ShopConfig настройки магазина
type ShopConfig struct {
	// TTL pending-платежей для джобы-экспайрера. 0 - экспайрер выключен,
	// платежи живут бессрочно
	PendingPaymentTTL time.Duration `envconfig:"PENDING_PAYMENT_TTL" default:"0"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
