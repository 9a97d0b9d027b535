package domain

import "time"

type Resume struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	FileName        string    `json:"file_name"`
	FilePath        string    `json:"file_path"`
	ExtractedSkills []string  `json:"extracted_skills"`
	ATSScore        int       `json:"ats_score"`
	KeywordScore    int       `json:"keyword_score"`
	UploadedAt      time.Time `json:"uploaded_at"`
}
