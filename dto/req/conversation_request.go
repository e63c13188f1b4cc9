package req

type CreateDirectConversationRequest struct {
	RecipientID string `json:"recipientId" validate:"required,uuid"`
}

type CreateGroupConversationRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=100"`
	MemberIDs []string `json:"memberIds" validate:"required,min=1,dive,uuid"`
}

type AddParticipantRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

type MarkReadRequest struct {
	MessageID string `json:"messageId" validate:"required,uuid"`
}
