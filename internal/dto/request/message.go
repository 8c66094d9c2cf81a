package request

type StartConversationRequest struct {
	RecipientID   string  `json:"recipient_id" validate:"required,uuid4"`
	RelatedJobID  *string `json:"related_job_id,omitempty" validate:"omitempty,uuid4"`
	ApplicationID *string `json:"application_id,omitempty" validate:"omitempty,uuid4"`
	Content       string  `json:"content" validate:"required,min=1,max=5000"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}
