package save_admin_blocks

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модель запроса на сохранение блокировок
// Ключ - дата в форме YYYY-MM-DD, значение - полный новый набор
// заблокированных слотов этого дня. Пустой набор явно снимает все
// блокировки дня (в отличие от отсутствия дня в запросе)
type Request struct {
	Days map[string][]int
}

// DayResult итог обработки одного дня батча
type DayResult struct {
	Day           string
	Applied       []domain.Slot // Фактически записанный набор блокировок
	SkippedBooked []domain.Slot // Запрошены, но заняты клиентами - не записаны
	Rejected      string        // Причина отклонения всего дня (пусто = день принят)
}

// Summary итог обработки батча: каждый день отчитывается отдельно
type Summary struct {
	Results []DayResult
}

// HasRejections сообщает, был ли отклонен хотя бы один день
func (s *Summary) HasRejections() bool {
	for _, r := range s.Results {
		if r.Rejected != "" {
			return true
		}
	}
	return false
}
