package ticket

// CreateTicketInput is the public submission payload. The phone rule is the
// custom "phone" validation registered at router setup.
type CreateTicketInput struct {
	Name        string  `json:"name" binding:"required,min=3,max=100"`
	Email       string  `json:"email" binding:"required,email,max=100"`
	Phone       string  `json:"phone" binding:"required,phone"`
	Message     *string `json:"message"`
	ProjectType *string `json:"projectType"`
}

// ListQuery narrows and pages the admin ticket listing.
type ListQuery struct {
	Skip   int
	Limit  int
	Status *Status
	Search string
}

// Stats is the dashboard aggregation: per-status counts, the grand total and
// the most recent submissions. Nothing here is persisted.
type Stats struct {
	ByStatus map[Status]int64
	Total    int64
	Recent   []Ticket
}
