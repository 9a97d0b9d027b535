package domain

import "time"

type Course struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Provider      string   `json:"provider"`
	Price         string   `json:"price"`
	Duration      string   `json:"duration"`
	Rating        string   `json:"rating,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	AffiliateLink string   `json:"affiliate_link,omitempty"`
	Skills        []string `json:"skills"`
	Level         string   `json:"level"`
}

type Enrollment struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	CourseID    int64      `json:"course_id"`
	Progress    int        `json:"progress"`
	IsCompleted bool       `json:"is_completed"`
	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
