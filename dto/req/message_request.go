package req

type SendMessageRequest struct {
	Type      string `json:"type" validate:"required,oneof=text image video file system"`
	Content   string `json:"content,omitempty" validate:"omitempty,max=10000"`
	FileURL   string `json:"fileUrl,omitempty"`
	ReplyToID string `json:"replyToId,omitempty" validate:"omitempty,uuid"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}
