package req

type SendFriendRequest struct {
	RecipientID string `json:"recipientId" validate:"required,uuid"`
	Message     string `json:"message,omitempty" validate:"omitempty,max=500"`
}
