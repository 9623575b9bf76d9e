package preview_slot

import (
	"time"

	"github.com/apptbook/appointment-service/internal/domain"
)

// Request модель запроса предпросмотра слота при перетаскивании
type Request struct {
	UserID int64
	// CellStart начало ячейки часа, над которой находится курсор
	CellStart time.Time
	// RawQuarter сырая позиция курсора внутри ячейки в четвертях часа (0.0..4.0)
	RawQuarter float64
	// DurationMinutes длительность размещаемой записи
	DurationMinutes int
	// ExcludeID исключает перетаскиваемую запись из проверки пересечений (0 - не исключать)
	ExcludeID int64
	// IgnoreWorkingHours пропускает проверку рабочих часов, но не проверку пересечений
	IgnoreWorkingHours bool
}

// ConflictInfo краткие данные пересекающейся записи
type ConflictInfo struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customerName"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
}

// Response результат предпросмотра
// Snapped=false означает, что позиция слишком далека от границы четверти
// и индикатор привязки не показывается
type Response struct {
	Snapped   bool           `json:"snapped"`
	StartTime *time.Time     `json:"startTime,omitempty"`
	EndTime   *time.Time     `json:"endTime,omitempty"`
	Available bool           `json:"available"`
	Reason    string         `json:"reason,omitempty"`
	Conflicts []ConflictInfo `json:"conflicts,omitempty"`
}

// toConflicts конвертирует пересекающиеся записи в краткую форму
func toConflicts(appointments []domain.Appointment) []ConflictInfo {
	conflicts := make([]ConflictInfo, 0, len(appointments))
	for _, a := range appointments {
		conflicts = append(conflicts, ConflictInfo{
			ID:           a.ID,
			CustomerName: a.CustomerName,
			StartTime:    a.StartTime,
			EndTime:      a.EndTime,
		})
	}
	return conflicts
}
