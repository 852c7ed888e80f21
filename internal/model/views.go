package model

// TimestampLayout is the display format for creation times.
const TimestampLayout = "2006-01-02 15:04"

// UnknownAuthor is shown when a record's user no longer exists.
const UnknownAuthor = "Unknown"

// ToiletSummary is the list view of a toilet with consensus values applied.
type ToiletSummary struct {
	ID             uint    `json:"id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Description    string  `json:"description"`
	Accessible     bool    `json:"accessible"`
	HasToiletPaper bool    `json:"has_toilet_paper"`
	Cleanliness    int     `json:"cleanliness"`
	ReviewCount    int     `json:"review_count"`
	Author         string  `json:"author"`
}

// ReviewView is a single review as presented in a toilet detail.
type ReviewView struct {
	ID             uint   `json:"id"`
	Accessible     bool   `json:"accessible"`
	HasToiletPaper bool   `json:"has_toilet_paper"`
	Cleanliness    int    `json:"cleanliness"`
	Comment        string `json:"comment"`
	Timestamp      string `json:"timestamp"`
	Author         string `json:"author"`
}

// ToiletDetail extends the summary with the creation time and every review in order.
type ToiletDetail struct {
	ToiletSummary
	Timestamp string       `json:"timestamp"`
	Reviews   []ReviewView `json:"reviews"`
}
