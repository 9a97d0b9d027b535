package domain

import "time"

type Mentor struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	ProfilePicture string   `json:"profile_picture,omitempty"`
	Rating         string   `json:"rating,omitempty"`
	HourlyRate     float64  `json:"hourly_rate"`
	Specialties    []string `json:"specialties"`
	Bio            string   `json:"bio,omitempty"`
}

// Estados de una sesion de mentoria.
const (
	BookingScheduled = "scheduled"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

type MentorBooking struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	MentorID    int64     `json:"mentor_id"`
	SessionDate time.Time `json:"session_date"`
	Duration    int       `json:"duration"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
