package update_appointment_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // CONFIRMED | COMPLETED | CANCELLED | NO_SHOW
}
