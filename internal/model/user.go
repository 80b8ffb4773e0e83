package model

import "time"

// AvatarStyles lists the selectable profile avatar variants.
var AvatarStyles = []string{"default", "robot", "wizard", "investor"}

// swagger:model User
type User struct {
	BaseModel
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:255;unique;not null" json:"email"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	Bio         string    `gorm:"size:500" json:"bio"`
	AvatarStyle string    `gorm:"size:50;default:'default'" json:"avatarStyle"`
	LastLogin   time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// ValidAvatarStyle reports whether style is one of the selectable variants.
func ValidAvatarStyle(style string) bool {
	for _, s := range AvatarStyles {
		if s == style {
			return true
		}
	}
	return false
}
