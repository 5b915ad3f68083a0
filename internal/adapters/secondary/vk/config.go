package vk

type Config struct {
	Token             string `envconfig:"TOKEN"`                       // токен сообщества
	ConfirmationToken string `envconfig:"CONFIRMATION_TOKEN"`          // строка-ответ на confirmation
	CallbackSecret    string `envconfig:"CALLBACK_SECRET"`             // secret из настроек Callback API
	APIVersion        string `envconfig:"API_VERSION" default:"5.199"` // версия VK API
}
