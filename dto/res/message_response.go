package res

type MessageResponse struct {
	MessageID string `json:"messageId"`
	SenderID  string `json:"senderId"`
	Type      string `json:"type"`
	Content   string `json:"content,omitempty"`
	FileURL   string `json:"fileUrl,omitempty"`
	ReplyToID string `json:"replyToId,omitempty"`
	IsEdited  bool   `json:"isEdited"`
	CreatedAt string `json:"createdAt"`
}

type MessagePageResponse struct {
	Messages   []MessageResponse `json:"messages"`
	NextCursor string            `json:"nextCursor,omitempty"`
}
