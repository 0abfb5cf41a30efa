package booking

type CreateReservationRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Date    string `json:"date" binding:"required"`
	Slot    string `json:"slot" binding:"required"`
	Service string `json:"service" binding:"required"`
	Comment string `json:"comment"`
}

// SlotAvailability is one catalog slot with its current occupancy.
type SlotAvailability struct {
	Slot string `json:"slot"`
	Free bool   `json:"free"`
}
