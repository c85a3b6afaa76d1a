package templates

// SeatInput describes one seat of a template layout in a create or update
// request.
type SeatInput struct {
	Label   string `json:"label" binding:"required,max=20"`
	Row     string `json:"row" binding:"required,max=10"`
	Number  int    `json:"number" binding:"required,min=1"`
	Section string `json:"section" binding:"max=50"`
	Category string `json:"category" binding:"required,max=50"`
	Blocked bool   `json:"blocked"`
	PosX    int    `json:"pos_x"`
	PosY    int    `json:"pos_y"`
}

type CategoryPriceInput struct {
	Category string  `json:"category" binding:"required,max=50"`
	Price    float64 `json:"price" binding:"min=0"`
	Currency string  `json:"currency" binding:"omitempty,len=3"`
}

type CreateTemplateRequest struct {
	EventID       string               `json:"event_id" binding:"required,uuid"`
	Name          string               `json:"name" binding:"required,min=3,max=255"`
	StagePosition string               `json:"stage_position" binding:"omitempty,oneof=front back left right"`
	Seats         []SeatInput          `json:"seats" binding:"required,min=1,dive"`
	Categories    []CategoryPriceInput `json:"categories" binding:"required,min=1,dive"`
}

// UpdateTemplateRequest replaces the layout wholesale when Seats or
// Categories are present. Partial seat edits go through the same path; the
// client sends the full desired layout.
type UpdateTemplateRequest struct {
	Name          *string              `json:"name" binding:"omitempty,min=3,max=255"`
	StagePosition *string              `json:"stage_position" binding:"omitempty,oneof=front back left right"`
	Seats         []SeatInput          `json:"seats" binding:"omitempty,min=1,dive"`
	Categories    []CategoryPriceInput `json:"categories" binding:"omitempty,min=1,dive"`
}

type UpdateCategoryPriceRequest struct {
	Price    float64 `json:"price" binding:"min=0"`
	Currency string  `json:"currency" binding:"omitempty,len=3"`
}

// TemplateResponse mirrors the stored template plus derived seat counts.
type TemplateResponse struct {
	Template     *SeatTemplate `json:"template"`
	SellableSeat int           `json:"sellable_seats"`
	BlockedSeats int           `json:"blocked_seats"`
}

// PropagationResult summarizes what a template propagation changed across
// the event's future show instances.
type PropagationResult struct {
	ShowsUpdated  int `json:"shows_updated"`
	SeatsInserted int `json:"seats_inserted"`
	SeatsUpdated  int `json:"seats_updated"`
	SeatsDeleted  int `json:"seats_deleted"`
	SeatsSkipped  int `json:"seats_skipped"`
}

// Add merges another result into r.
func (r *PropagationResult) Add(other PropagationResult) {
	r.ShowsUpdated += other.ShowsUpdated
	r.SeatsInserted += other.SeatsInserted
	r.SeatsUpdated += other.SeatsUpdated
	r.SeatsDeleted += other.SeatsDeleted
	r.SeatsSkipped += other.SeatsSkipped
}
