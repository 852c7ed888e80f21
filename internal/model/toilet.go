package model

import "time"

// Toilet is a submitted location. Accessible, HasToiletPaper and Cleanliness
// hold the submitter's initial observation; displayed values come from the
// consensus over this record and its reviews.
type Toilet struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Latitude       float64   `json:"latitude" gorm:"not null"`
	Longitude      float64   `json:"longitude" gorm:"not null"`
	Description    string    `json:"description" gorm:"size:200;not null"`
	Accessible     bool      `json:"accessible" gorm:"not null;default:false"`
	HasToiletPaper bool      `json:"has_toilet_paper" gorm:"not null;default:false"`
	Cleanliness    int       `json:"cleanliness" gorm:"not null;default:3;check:chk_toilets_cleanliness,cleanliness >= 1 AND cleanliness <= 5"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	User           *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt      time.Time `json:"created_at"`
}
