package api

import (
	"strings"
	"time"

	"github.com/dthen/ai-football/internal/analysis"
	"github.com/dthen/ai-football/internal/models"
)

type pairView struct {
	Status analysis.Status  `json:"status"`
	Data   *models.Analysis `json:"data,omitempty"`

	// Localized summary for the UI; Error keeps the raw detail for the
	// collapsible diagnostics section.
	Error      string `json:"error,omitempty"`
	ErrorTitle string `json:"errorTitle,omitempty"`
	ErrorHint  string `json:"errorHint,omitempty"`
}

type batchResponse struct {
	ID        string                        `json:"id"`
	CreatedAt time.Time                     `json:"createdAt"`
	Settled   bool                          `json:"settled"`
	Fixtures  []models.Fixture              `json:"fixtures"`
	Providers []string                      `json:"providers"`
	Results   map[int64]map[string]pairView `json:"results"`
}

func batchView(b *analysis.Batch) batchResponse {
	table := b.Table()
	results := make(map[int64]map[string]pairView, len(table))
	for fid, row := range table {
		r := make(map[string]pairView, len(row))
		for pid, res := range row {
			v := pairView{Status: res.Status, Data: res.Data, Error: res.Error}
			if res.Status == analysis.StatusFailure {
				v.ErrorTitle, v.ErrorHint = classifyError(res.Error)
			}
			r[pid] = v
		}
		results[fid] = r
	}
	return batchResponse{
		ID:        b.ID,
		CreatedAt: b.CreatedAt,
		Settled:   b.Settled(),
		Fixtures:  b.Fixtures,
		Providers: b.Providers,
		Results:   results,
	}
}

// classifyError maps known backend failures onto user-facing titles and
// hints in the interface locale. Unknown failures get the generic pair.
func classifyError(detail string) (title, hint string) {
	lower := strings.ToLower(detail)
	switch {
	case strings.Contains(lower, "401"):
		return "Неверный API-ключ",
			"Предоставленный API-ключ недействителен или не имеет доступа к этому сервису. Пожалуйста, проверьте правильность ключа."
	case strings.Contains(lower, "402"), strings.Contains(lower, "insufficient balance"):
		return "Недостаточно средств",
			"На балансе вашего аккаунта для этого сервиса ИИ закончились средства. Пожалуйста, пополните баланс для продолжения работы."
	case strings.Contains(lower, "429"), strings.Contains(lower, "insufficient_quota"):
		return "Превышена квота",
			"Вы исчерпали лимит запросов, доступный по вашему тарифному плану. Пожалуйста, проверьте ваш план и биллинг в личном кабинете сервиса."
	case strings.Contains(lower, "400") && strings.Contains(lower, "not a valid model id"):
		return "Модель ИИ недоступна",
			"Выбранная модель временно недоступна или ее идентификатор устарел. Пожалуйста, попробуйте выбрать другую модель для анализа."
	default:
		return "Произошла ошибка",
			"Не удалось получить анализ от модели ИИ. Пожалуйста, попробуйте еще раз позже."
	}
}
