package domain

import "time"

// Session backs one refresh token; its ID is the token's jti.
type Session struct {
	ID        string     `gorm:"primaryKey;size:26" bson:"_id"`
	UserID    string     `gorm:"size:26;not null;index" bson:"userId"`
	UserAgent string     `bson:"userAgent,omitempty"`
	ExpiresAt time.Time  `gorm:"not null;index" bson:"expiresAt"`
	RevokedAt *time.Time `bson:"revokedAt,omitempty"`
	CreatedAt time.Time  `bson:"createdAt"`
}

func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
