package texts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
)

const (
	Greeting = "Привет! 👋\nЗдесь можно купить наши курсы и сразу получить материалы в личные сообщения.\nНажми «Каталог», чтобы посмотреть, что есть."

	CatalogHeader = "📚 Наши курсы:\n\n"
	CatalogEmpty  = "Каталог пока пуст, загляни чуть позже 🙌"

	PaymentUnavailable = "Оплата временно недоступна, попробуй позже 🙏"

	DeliverySuccess = "✅ Оплата прошла успешно! Вот ваш курс:"

	DeliveryFallback = "✅ Оплата прошла успешно!\nФайл не получилось отправить автоматически - менеджер пришлёт его вручную в ближайшее время 🙏"

	UnknownInput = "Не понял 🤔 Нажми «Каталог», чтобы посмотреть курсы."

	BuyButtonPrefix = "Купить: "
	PayButton       = "💳 Оплатить"
	BackButton      = "Назад"
	CatalogButton   = "Каталог"
)

// descriptionLimit максимальная длина описания курса в каталоге
const descriptionLimit = 180

// FormatCatalog форматирует список курсов каталога
func FormatCatalog(courses []domain.Course) string {
	var message strings.Builder
	message.WriteString(CatalogHeader)

	for _, course := range courses {
		message.WriteString(fmt.Sprintf("▪️ %s - %d руб.\n%s\n\n", course.Title, course.Price, TruncateDescription(course.Description)))
	}

	return strings.TrimRight(message.String(), "\n")
}

// TruncateDescription режет длинные описания, чтобы каталог оставался читаемым
func TruncateDescription(description string) string {
	runes := []rune(description)
	if len(runes) <= descriptionLimit {
		return description
	}
	return string(runes[:descriptionLimit-3]) + "..."
}

// FormatPaymentOffer форматирует сообщение со ссылкой на оплату.
// Сумма берётся из созданного платежа, а не из каталога: в сообщении
// должна стоять ровно та цена, которая будет списана
func FormatPaymentOffer(title string, amount int64, paymentURL string) string {
	return fmt.Sprintf("Курс «%s» - %d руб.\nОплати по кнопке ниже, после оплаты файл придёт сюда автоматически.\n\n%s",
		title, amount, paymentURL)
}

// BuyButtonLabel подписи кнопок у VK ограничены, длинные названия режем
func BuyButtonLabel(title string) string {
	label := BuyButtonPrefix + title
	runes := []rune(label)
	if len(runes) > 36 {
		label = string(runes[:33]) + "..."
	}
	return label
}

// MainKeyboard основная клавиатура с кнопкой каталога
func MainKeyboard() map[string]interface{} {
	return map[string]interface{}{
		"one_time": false,
		"buttons": [][]map[string]interface{}{
			{
				textButton(CatalogButton, "primary", domain.ButtonPayload{Cmd: domain.CmdCatalog}),
			},
		},
	}
}

// CatalogKeyboard клавиатура каталога: по кнопке покупки на курс + назад
func CatalogKeyboard(courses []domain.Course) map[string]interface{} {
	buttons := make([][]map[string]interface{}, 0, len(courses)+1)
	for _, course := range courses {
		buttons = append(buttons, []map[string]interface{}{
			textButton(BuyButtonLabel(course.Title), "positive", domain.ButtonPayload{Cmd: domain.CmdBuy, CourseID: course.ID}),
		})
	}
	buttons = append(buttons, []map[string]interface{}{
		textButton(BackButton, "secondary", domain.ButtonPayload{Cmd: domain.CmdBack}),
	})

	return map[string]interface{}{
		"one_time": false,
		"inline":   false,
		"buttons":  buttons,
	}
}

// PaymentKeyboard инлайн-клавиатура со ссылкой на оплату
func PaymentKeyboard(paymentURL string) map[string]interface{} {
	return map[string]interface{}{
		"inline": true,
		"buttons": [][]map[string]interface{}{
			{
				{
					"action": map[string]interface{}{
						"type":  "open_link",
						"link":  paymentURL,
						"label": PayButton,
					},
				},
			},
			{
				textButton(BackButton, "secondary", domain.ButtonPayload{Cmd: domain.CmdBack}),
			},
		},
	}
}

// textButton кнопка с текстовым действием, payload VK ждёт строкой с JSON внутри
func textButton(label, color string, payload domain.ButtonPayload) map[string]interface{} {
	payloadBytes, _ := json.Marshal(payload)
	return map[string]interface{}{
		"color": color,
		"action": map[string]interface{}{
			"type":    "text",
			"label":   label,
			"payload": string(payloadBytes),
		},
	}
}
