package notification

type NotifyCommand struct {
	RecipientID   string
	Title         string
	Body          string
	Category      string
	RefID         string
	SourceEventID string
}

type NotificationResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	Category  string  `json:"category"`
	RefID     *string `json:"ref_id,omitempty"`
	Read      bool    `json:"read"`
	CreatedAt string  `json:"created_at"`
}
