package res

type FriendResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

type FriendRequestResponse struct {
	ID        string          `json:"id"`
	From      *FriendResponse `json:"from,omitempty"`
	To        *FriendResponse `json:"to,omitempty"`
	Message   string          `json:"message,omitempty"`
	CreatedAt string          `json:"createdAt"`
}
