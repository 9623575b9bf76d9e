package preview_slot

import (
	"time"

	previewSlot "github.com/apptbook/appointment-service/internal/usecase/preview_slot"
)

// PreviewSlotRequest HTTP request model
type PreviewSlotRequest struct {
	CellStart string `json:"cellStart"` // RFC3339, начало ячейки часа
	// RawQuarter позиция курсора внутри ячейки в четвертях часа (0.0..4.0)
	RawQuarter      float64 `json:"rawQuarter"`
	DurationMinutes int     `json:"durationMinutes"`
	// ExcludeAppointmentID исключает перетаскиваемую запись из проверки (опционально)
	ExcludeAppointmentID int64 `json:"excludeAppointmentId,omitempty"`
	IgnoreWorkingHours   bool  `json:"ignoreWorkingHours,omitempty"`
}

// PreviewSlotResponse HTTP response model
type PreviewSlotResponse struct {
	Snapped   bool                         `json:"snapped"`
	StartTime *string                      `json:"startTime,omitempty"`
	EndTime   *string                      `json:"endTime,omitempty"`
	Available bool                         `json:"available"`
	Reason    string                       `json:"reason,omitempty"`
	Conflicts []previewSlot.ConflictInfo `json:"conflicts,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PreviewSlotRequest) ToUseCaseRequest(userID int64) (*previewSlot.Request, error) {
	cellStart, err := time.Parse(time.RFC3339, r.CellStart)
	if err != nil {
		return nil, err
	}

	return &previewSlot.Request{
		UserID:             userID,
		CellStart:          cellStart,
		RawQuarter:         r.RawQuarter,
		DurationMinutes:    r.DurationMinutes,
		ExcludeID:          r.ExcludeAppointmentID,
		IgnoreWorkingHours: r.IgnoreWorkingHours,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *previewSlot.Response) *PreviewSlotResponse {
	out := &PreviewSlotResponse{
		Snapped:   resp.Snapped,
		Available: resp.Available,
		Reason:    resp.Reason,
		Conflicts: resp.Conflicts,
	}

	if resp.StartTime != nil {
		s := resp.StartTime.Format(time.RFC3339)
		out.StartTime = &s
	}
	if resp.EndTime != nil {
		e := resp.EndTime.Format(time.RFC3339)
		out.EndTime = &e
	}

	return out
}
