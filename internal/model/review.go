package model

import "time"

// Review is an immutable observation of a toilet by a user.
type Review struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ToiletID       uint      `json:"toilet_id" gorm:"not null;index"`
	Toilet         *Toilet   `json:"-" gorm:"foreignKey:ToiletID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	User           *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Accessible     bool      `json:"accessible" gorm:"not null;default:false"`
	HasToiletPaper bool      `json:"has_toilet_paper" gorm:"not null;default:false"`
	Cleanliness    int       `json:"cleanliness" gorm:"not null;check:chk_reviews_cleanliness,cleanliness >= 1 AND cleanliness <= 5"`
	Comment        string    `json:"comment" gorm:"size:200"`
	CreatedAt      time.Time `json:"created_at"`
}
