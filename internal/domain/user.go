package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID                    string    `gorm:"primaryKey;size:26" bson:"_id"`
	Name                  string    `gorm:"not null" bson:"name"`
	Email                 string    `gorm:"uniqueIndex;not null" bson:"email"`
	PasswordHash          string    `gorm:"not null" bson:"passwordHash"`
	Role                  Role      `gorm:"size:16;not null;default:user" bson:"role"`
	InterWorkspaceEnabled bool      `gorm:"not null" bson:"interWorkspaceEnabled"`
	CreatedAt             time.Time `bson:"createdAt"`
	UpdatedAt             time.Time `bson:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
