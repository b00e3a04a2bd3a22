package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTopicRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (req *CreateTopicRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 150)),
		validation.Field(&req.Content, validation.Required, validation.Length(1, 5000)),
	)
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

func (req *CreatePostRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Content, validation.Required, validation.Length(1, 5000)),
	)
}
