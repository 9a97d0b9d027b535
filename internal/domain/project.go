package domain

import "time"

type Project struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	LiveURL      string    `json:"live_url,omitempty"`
	GithubURL    string    `json:"github_url,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type SkillBadge struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BadgeName string    `json:"badge_name"`
	BadgeType string    `json:"badge_type"`
	EarnedAt  time.Time `json:"earned_at"`
}

type InterviewPerformance struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"user_id"`
	SessionType         string    `json:"session_type"`
	TechnicalScore      int       `json:"technical_score"`
	CommunicationScore  int       `json:"communication_score"`
	ProblemSolvingScore int       `json:"problem_solving_score"`
	Feedback            string    `json:"feedback,omitempty"`
	CompletedAt         time.Time `json:"completed_at"`
}
