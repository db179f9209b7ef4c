package models

type User struct {
	Base
	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	// Empty for accounts created through Google sign-in.
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         string `gorm:"size:32;default:'USER'" json:"role"` // USER, ADMIN, SUPER_ADMIN
}

func (User) TableName() string {
	return "users"
}
