package entity

import "chat-app-core/enum"

// User rows soft-delete; the case-insensitive uniqueness of username, email
// and phone applies only among live rows, so a deleted user's identifiers can
// be reused. That rules out a plain unique index - uniqueness is enforced by
// lower() pre-checks inside the registration/update transaction.
type User struct {
	BaseEntity
	Username     string        `json:"username" gorm:"type:varchar(50);not null;index"`
	Email        string        `json:"email" gorm:"type:varchar(100);not null;index"`
	PasswordHash string        `json:"-" gorm:"type:varchar(255);not null"`
	Role         enum.UserRole `json:"role" gorm:"type:varchar(10);default:'USER'"`
	DisplayName  string        `json:"displayName" gorm:"type:varchar(100)"`
	AvatarURL    string        `json:"avatarUrl,omitempty" gorm:"type:text"`
	Bio          string        `json:"bio,omitempty" gorm:"type:text"`
	Phone        string        `json:"phone,omitempty" gorm:"type:varchar(20);index"`

	Messages      []Message     `json:"-" gorm:"foreignKey:SenderID"`
	Participating []Participant `json:"-" gorm:"foreignKey:UserID"`
}
