package dto

type TicketRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type TicketStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_progress closed"`
}
