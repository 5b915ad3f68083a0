package texts

import (
	"strings"
	"testing"

	"github.com/MurderPatro1/vk-course-bot/internal/domain"
)

func TestTruncateDescription_Short(t *testing.T) {
	short := "Основы инвестирования"
	if got := TruncateDescription(short); got != short {
		t.Errorf("TruncateDescription(%q) = %q, want unchanged", short, got)
	}
}

func TestTruncateDescription_Long(t *testing.T) {
	long := strings.Repeat("ж", 400)
	got := TruncateDescription(long)

	runes := []rune(got)
	if len(runes) != 180 {
		t.Errorf("truncated length = %d runes, want 180", len(runes))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated description %q does not end with ellipsis", got)
	}
	if string(runes[:177]) != strings.Repeat("ж", 177) {
		t.Errorf("truncated description lost original prefix")
	}
}

func TestTruncateDescription_ExactLimit(t *testing.T) {
	exact := strings.Repeat("а", 180)
	if got := TruncateDescription(exact); got != exact {
		t.Errorf("description of exactly 180 runes must stay unchanged, got %d runes", len([]rune(got)))
	}
}

func TestFormatCatalog_TruncatesLongDescriptions(t *testing.T) {
	courses := []domain.Course{
		{ID: 1, Title: "Курс по инвестициям", Description: strings.Repeat("о", 400), Price: 1990},
	}

	catalog := FormatCatalog(courses)
	if strings.Contains(catalog, strings.Repeat("о", 181)) {
		t.Errorf("catalog renders the full description instead of truncating it")
	}
	if !strings.Contains(catalog, strings.Repeat("о", 177)+"...") {
		t.Errorf("catalog is missing the truncated description with ellipsis:\n%s", catalog)
	}
}
