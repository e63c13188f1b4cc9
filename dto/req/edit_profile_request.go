package req

type EditProfileRequest struct {
	Username    string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	DisplayName string `json:"displayName,omitempty" validate:"omitempty,min=2,max=100"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
}
