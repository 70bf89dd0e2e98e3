package model

import "time"

type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	University  string    `json:"university"`
	Timezone    string    `json:"timezone"`
	AvatarURL   string    `json:"avatar_url"`
	Onboarded   bool      `json:"onboarded"`
	CreatedAt   time.Time `json:"created_at"`
}
