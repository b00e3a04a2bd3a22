package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateNewsRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	EventID *uint  `json:"event_id,omitempty"`
}

func (req *CreateNewsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 150)),
		validation.Field(&req.Content, validation.Required),
	)
}
