package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendRequest is directional: A->B and B->A may both be pending until one
// of them is resolved. Requests hard-delete on accept/reject, so there is no
// DeletedAt here.
type FriendRequest struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(255)"`
	FromUserID string    `json:"fromUserId" gorm:"type:varchar(255);not null;uniqueIndex:idx_friend_request_pair"`
	ToUserID   string    `json:"toUserId" gorm:"type:varchar(255);not null;uniqueIndex:idx_friend_request_pair"`
	Message    string    `json:"message,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`

	FromUser User `json:"-" gorm:"foreignKey:FromUserID;references:ID;constraint:OnDelete:CASCADE"`
	ToUser   User `json:"-" gorm:"foreignKey:ToUserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (request *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	return nil
}

// Friendship stores the undirected edge exactly once: UserA is always the
// lexicographically smaller identifier (see CanonicalPair) and the check
// constraint rejects anything else. Unfriending soft-deletes, and the unique
// index only covers live rows so the pair can become friends again later.
type Friendship struct {
	BaseEntity
	UserA string `json:"userA" gorm:"type:varchar(255);not null;uniqueIndex:idx_friendship_pair,where:deleted_at IS NULL;check:chk_friendship_order,user_a < user_b"`
	UserB string `json:"userB" gorm:"type:varchar(255);not null;uniqueIndex:idx_friendship_pair,where:deleted_at IS NULL"`

	First  User `json:"-" gorm:"foreignKey:UserA;references:ID;constraint:OnDelete:CASCADE"`
	Second User `json:"-" gorm:"foreignKey:UserB;references:ID;constraint:OnDelete:CASCADE"`
}

// CanonicalPair orders two user identifiers by their natural byte order.
// Every lookup and insert of a Friendship must go through this so the edge
// exists under exactly one key.
func CanonicalPair(userX, userY string) (string, string) {
	if userX <= userY {
		return userX, userY
	}
	return userY, userX
}
