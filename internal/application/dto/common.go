package dto

// ErrorResponse HTTP error body. Contract tests read the message field.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// MessageResponse plain confirmation body ("logout successful", ...).
type MessageResponse struct {
	Message string `json:"message"`
}

// PageRequest pagination for listings.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage applies defaults when Page/Limit are unset.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
}

// Offset converts the 1-based page into a row offset.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}
