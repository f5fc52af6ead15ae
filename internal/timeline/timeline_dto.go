package timeline

type RecordEventCommand struct {
	CompanyID  string
	EntityType string
	EntityID   string
	Action     string
	ActorID    string
	TargetID   string
	Message    string
	// SourceEventID makes recording idempotent for redelivered messages.
	SourceEventID string
}

type TimelineEventResponse struct {
	ID         string  `json:"id"`
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	Action     string  `json:"action"`
	ActorID    string  `json:"actor_id"`
	TargetID   *string `json:"target_id,omitempty"`
	Message    string  `json:"message"`
	CreatedAt  string  `json:"created_at"`
}
