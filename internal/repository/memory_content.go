package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"careerlift/internal/domain"
)

// MemoryResumeRepository implementa ResumeRepository sobre un mapa.
type MemoryResumeRepository struct {
	mu      sync.Mutex
	resumes map[int64]domain.Resume
	nextID  int64
}

func NewMemoryResumeRepository() *MemoryResumeRepository {
	return &MemoryResumeRepository{resumes: make(map[int64]domain.Resume)}
}

func (r *MemoryResumeRepository) Create(_ context.Context, resume domain.Resume) (domain.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	resume.ID = r.nextID
	r.resumes[resume.ID] = resume
	return resume, nil
}

func (r *MemoryResumeRepository) GetLatestByUser(_ context.Context, userID int64) (domain.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest domain.Resume
	found := false
	for _, res := range r.resumes {
		if res.UserID != userID {
			continue
		}
		if !found || res.UploadedAt.After(latest.UploadedAt) {
			latest = res
			found = true
		}
	}
	if !found {
		return domain.Resume{}, pgx.ErrNoRows
	}
	return latest, nil
}

// MemoryProjectRepository implementa ProjectRepository sobre un mapa.
type MemoryProjectRepository struct {
	mu       sync.Mutex
	projects map[int64]domain.Project
	nextID   int64
}

func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{projects: make(map[int64]domain.Project)}
}

func (r *MemoryProjectRepository) ListByUser(_ context.Context, userID int64) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var projects []domain.Project
	for _, p := range r.projects {
		if p.UserID == userID {
			projects = append(projects, p)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID > projects[j].ID })
	return projects, nil
}

func (r *MemoryProjectRepository) Create(_ context.Context, p domain.Project) (domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.projects[p.ID] = p
	return p, nil
}

// MemoryProgressRepository implementa ProgressRepository sobre mapas.
type MemoryProgressRepository struct {
	mu         sync.Mutex
	badges     map[int64]domain.SkillBadge
	interviews map[int64]domain.InterviewPerformance
	nextBadge  int64
	nextIntv   int64
}

func NewMemoryProgressRepository() *MemoryProgressRepository {
	return &MemoryProgressRepository{
		badges:     make(map[int64]domain.SkillBadge),
		interviews: make(map[int64]domain.InterviewPerformance),
	}
}

func (r *MemoryProgressRepository) ListBadges(_ context.Context, userID int64) ([]domain.SkillBadge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var badges []domain.SkillBadge
	for _, b := range r.badges {
		if b.UserID == userID {
			badges = append(badges, b)
		}
	}
	sort.Slice(badges, func(i, j int) bool { return badges[i].ID < badges[j].ID })
	return badges, nil
}

func (r *MemoryProgressRepository) AwardBadge(_ context.Context, b domain.SkillBadge) (domain.SkillBadge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextBadge++
	b.ID = r.nextBadge
	r.badges[b.ID] = b
	return b, nil
}

func (r *MemoryProgressRepository) ListInterviewPerformance(_ context.Context, userID int64) ([]domain.InterviewPerformance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var results []domain.InterviewPerformance
	for _, p := range r.interviews {
		if p.UserID == userID {
			results = append(results, p)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (r *MemoryProgressRepository) CreateInterviewPerformance(_ context.Context, p domain.InterviewPerformance) (domain.InterviewPerformance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextIntv++
	p.ID = r.nextIntv
	r.interviews[p.ID] = p
	return p, nil
}

// MemoryPaymentRepository implementa PaymentRepository sobre un mapa.
type MemoryPaymentRepository struct {
	mu       sync.Mutex
	payments map[int64]domain.Payment
	nextID   int64
}

func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{payments: make(map[int64]domain.Payment)}
}

func (r *MemoryPaymentRepository) Create(_ context.Context, p domain.Payment) (domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.payments[p.ID] = p
	return p, nil
}

func (r *MemoryPaymentRepository) ListByUser(_ context.Context, userID int64) ([]domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var payments []domain.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID > payments[j].ID })
	return payments, nil
}
