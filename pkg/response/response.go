package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// SubmitResponse is the public submission envelope: success plus a message
// the landing page shows verbatim, and the assigned id on 201s.
type SubmitResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	TicketID uint   `json:"ticket_id,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
