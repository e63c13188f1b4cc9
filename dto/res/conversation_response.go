package res

type GroupInfo struct {
	Name      string `json:"name"`
	CreatedBy string `json:"createdBy"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type LastMessageInfo struct {
	MessageID string `json:"messageId"`
	SenderID  string `json:"senderId"`
	Content   string `json:"content,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type ParticipantInfo struct {
	UserID      string `json:"userId"`
	UnreadCount int    `json:"unreadCount"`
	JoinedAt    string `json:"joinedAt"`
}

type ConversationResponse struct {
	ConversationID string            `json:"conversationId"`
	Type           string            `json:"type"`
	GroupInfo      *GroupInfo        `json:"groupInfo,omitempty"`
	LastMessage    *LastMessageInfo  `json:"lastMessage,omitempty"`
	Participants   []ParticipantInfo `json:"participants,omitempty"`
	CreatedAt      string            `json:"createdAt"`
	UpdatedAt      string            `json:"updatedAt"`
}
