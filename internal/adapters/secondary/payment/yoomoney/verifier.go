package yoomoney

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"log/slog"
)

// requiredFields обязательный набор полей уведомления YooMoney
var requiredFields = []string{
	"notification_type",
	"operation_id",
	"amount",
	"currency",
	"datetime",
	"sender",
	"codepro",
	"label",
	"sha1_hash",
}

// Verifier проверяет подлинность уведомлений YooMoney об оплате.
//
// Схема подписи задана провайдером: SHA-1 от строки полей, соединённых "&",
// с секретом на восьмой позиции. Заменить дайджест на HMAC-SHA256 нельзя
// без потери совместимости с уведомлениями провайдера, поэтому SHA-1
// сохранён, а сравнение сделано константным по времени.
type Verifier struct {
	secret string
	log    *slog.Logger
}

// NewVerifier создаёт новый верификатор уведомлений
func NewVerifier(secret string, log *slog.Logger) *Verifier {
	return &Verifier{
		secret: secret,
		log:    log,
	}
}

// Verify проверяет подпись уведомления.
// Возвращает false при отсутствии любого обязательного поля или несовпадении
// подписи. Чистая функция: леджер не читает и не пишет, не паникует.
func (v *Verifier) Verify(fields map[string]string) bool {
	for _, key := range requiredFields {
		if _, ok := fields[key]; !ok {
			v.log.Warn("notification is missing required field",
				"field", key,
			)
			return false
		}
	}

	// Порядок полей фиксирован контрактом провайдера
	checkString := strings.Join([]string{
		fields["notification_type"],
		fields["operation_id"],
		fields["amount"],
		fields["currency"],
		fields["datetime"],
		fields["sender"],
		fields["codepro"],
		v.secret,
		fields["label"],
	}, "&")

	sum := sha1.Sum([]byte(checkString))
	expected := hex.EncodeToString(sum[:])
	provided := strings.ToLower(fields["sha1_hash"])

	if len(provided) != len(expected) {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
