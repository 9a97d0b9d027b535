package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"careerlift/internal/domain"
)

// MemoryCourseRepository implementa CourseRepository y arranca con un
// catalogo minimo sembrado para desarrollo.
type MemoryCourseRepository struct {
	mu          sync.Mutex
	courses     map[int64]domain.Course
	enrollments map[int64]domain.Enrollment
	nextID      int64
	nextEnrID   int64
}

func NewMemoryCourseRepository() *MemoryCourseRepository {
	r := &MemoryCourseRepository{
		courses:     make(map[int64]domain.Course),
		enrollments: make(map[int64]domain.Enrollment),
	}
	r.seed()
	return r
}

func (r *MemoryCourseRepository) seed() {
	courses := []domain.Course{
		{
			Title:       "AWS Cloud Practitioner",
			Description: "Master cloud fundamentals and AWS services",
			Provider:    "Coursera",
			Price:       "49.00",
			Duration:    "6 weeks",
			Rating:      "4.7",
			Skills:      []string{"AWS", "Cloud"},
			Level:       "beginner",
		},
		{
			Title:       "Docker & Kubernetes",
			Description: "Containerize and orchestrate production workloads",
			Provider:    "Udemy",
			Price:       "29.00",
			Duration:    "8 weeks",
			Rating:      "4.6",
			Skills:      []string{"Docker", "Kubernetes", "DevOps"},
			Level:       "intermediate",
		},
		{
			Title:       "System Design Interview Prep",
			Description: "Design scalable systems with confidence",
			Provider:    "Educative",
			Price:       "79.00",
			Duration:    "4 weeks",
			Rating:      "4.8",
			Skills:      []string{"System Design", "TypeScript"},
			Level:       "advanced",
		},
	}
	for _, c := range courses {
		r.nextID++
		c.ID = r.nextID
		r.courses[c.ID] = c
	}
}

func (r *MemoryCourseRepository) ListAll(_ context.Context) ([]domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	courses := make([]domain.Course, 0, len(r.courses))
	for _, c := range r.courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (r *MemoryCourseRepository) GetByID(_ context.Context, id int64) (domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return domain.Course{}, pgx.ErrNoRows
	}
	return c, nil
}

func (r *MemoryCourseRepository) ListBySkills(_ context.Context, skills []string) ([]domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(skills))
	for _, skill := range skills {
		wanted[skill] = true
	}
	var courses []domain.Course
	for _, c := range r.courses {
		for _, skill := range c.Skills {
			if wanted[skill] {
				courses = append(courses, c)
				break
			}
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (r *MemoryCourseRepository) ListEnrollments(_ context.Context, userID int64) ([]domain.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var enrollments []domain.Enrollment
	for _, e := range r.enrollments {
		if e.UserID == userID {
			enrollments = append(enrollments, e)
		}
	}
	sort.Slice(enrollments, func(i, j int) bool { return enrollments[i].ID < enrollments[j].ID })
	return enrollments, nil
}

func (r *MemoryCourseRepository) CreateEnrollment(_ context.Context, e domain.Enrollment) (domain.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextEnrID++
	e.ID = r.nextEnrID
	r.enrollments[e.ID] = e
	return e, nil
}

func (r *MemoryCourseRepository) UpdateProgress(_ context.Context, userID, courseID int64, progress int, completedAt *time.Time) (domain.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			e.Progress = progress
			e.IsCompleted = completedAt != nil
			e.CompletedAt = completedAt
			r.enrollments[id] = e
			return e, nil
		}
	}
	return domain.Enrollment{}, pgx.ErrNoRows
}

// MemoryMentorRepository implementa MentorRepository con mentores sembrados.
type MemoryMentorRepository struct {
	mu       sync.Mutex
	mentors  map[int64]domain.Mentor
	bookings map[int64]domain.MentorBooking
	nextID   int64
	nextBkID int64
}

func NewMemoryMentorRepository() *MemoryMentorRepository {
	r := &MemoryMentorRepository{
		mentors:  make(map[int64]domain.Mentor),
		bookings: make(map[int64]domain.MentorBooking),
	}
	r.seed()
	return r
}

func (r *MemoryMentorRepository) seed() {
	mentors := []domain.Mentor{
		{
			Name:        "Priya Nair",
			Title:       "Staff Engineer",
			Company:     "Flipkart",
			Rating:      "4.9",
			HourlyRate:  80,
			Specialties: []string{"System Design", "Career Growth"},
		},
		{
			Name:        "Daniel Cho",
			Title:       "Engineering Manager",
			Company:     "Stripe",
			Rating:      "4.8",
			HourlyRate:  120,
			Specialties: []string{"Interviews", "Leadership"},
		},
	}
	for _, m := range mentors {
		r.nextID++
		m.ID = r.nextID
		r.mentors[m.ID] = m
	}
}

func (r *MemoryMentorRepository) ListTop(_ context.Context, limit int) ([]domain.Mentor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mentors := make([]domain.Mentor, 0, len(r.mentors))
	for _, m := range r.mentors {
		mentors = append(mentors, m)
	}
	sort.Slice(mentors, func(i, j int) bool { return mentors[i].Rating > mentors[j].Rating })
	if limit > 0 && len(mentors) > limit {
		mentors = mentors[:limit]
	}
	return mentors, nil
}

func (r *MemoryMentorRepository) GetByID(_ context.Context, id int64) (domain.Mentor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mentors[id]
	if !ok {
		return domain.Mentor{}, pgx.ErrNoRows
	}
	return m, nil
}

func (r *MemoryMentorRepository) CreateBooking(_ context.Context, b domain.MentorBooking) (domain.MentorBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextBkID++
	b.ID = r.nextBkID
	r.bookings[b.ID] = b
	return b, nil
}

func (r *MemoryMentorRepository) ListBookings(_ context.Context, userID int64) ([]domain.MentorBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []domain.MentorBooking
	for _, b := range r.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].SessionDate.Before(bookings[j].SessionDate) })
	return bookings, nil
}
