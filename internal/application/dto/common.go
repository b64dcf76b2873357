package dto

// PageRequest carries paging for list endpoints.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage applies defaults when Limit/Offset are unset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse is the HTTP error body: a stable machine code plus a
// human-readable message, never internal detail.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
