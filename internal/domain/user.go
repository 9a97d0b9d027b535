package domain

import "time"

// Proveedores de autenticacion soportados.
const (
	AuthProviderEmail  = "email"
	AuthProviderGoogle = "google"
)

// Planes de suscripcion.
const (
	PlanFree        = "free"
	PlanPremium     = "premium"
	PlanPremiumPlus = "premium_plus"
)

type User struct {
	ID                  int64      `json:"id"`
	Username            string     `json:"username,omitempty"`
	PasswordHash        string     `json:"-"`
	Email               string     `json:"email"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	ProfilePicture      string     `json:"profile_picture,omitempty"`
	PhoneNumber         string     `json:"phone_number,omitempty"`
	GoogleID            string     `json:"-"`
	LinkedinID          string     `json:"-"`
	GithubID            string     `json:"-"`
	AuthProvider        string     `json:"auth_provider"`
	CareerScore         int        `json:"career_score"`
	CoursesCompleted    int        `json:"courses_completed"`
	Badges              int        `json:"badges"`
	MentorSessions      int        `json:"mentor_sessions"`
	SubscriptionPlan    string     `json:"subscription_plan"`
	SubscriptionExpiry  *time.Time `json:"subscription_expiry,omitempty"`
	ResumeAnalysisCount int        `json:"resume_analysis_count"`
	FreeAnalysisUsed    bool       `json:"free_analysis_used"`
	CreatedAt           time.Time  `json:"created_at"`
	LastLogin           *time.Time `json:"last_login,omitempty"`
}
