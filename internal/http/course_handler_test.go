package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerlift/internal/domain"
	"careerlift/internal/repository"
)

func registerAndCookie(t *testing.T, env *testEnv) *http.Cookie {
	t.Helper()
	w := postJSON(t, env.router, "/api/register", gin.H{"email": "ana@example.com", "password": "s3cret-pass"}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", w.Code, w.Body.String())
	}
	c := sessionCookie(t, w)
	return &http.Cookie{Name: c.Name, Value: c.Value}
}

func getWithCookie(t *testing.T, env *testEnv, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestCoursesList_Public(t *testing.T) {
	env := newTestEnv(t, nil)

	w := getWithCookie(t, env, "/api/courses", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "AWS Cloud Practitioner") {
		t.Fatalf("expected seeded catalog, got %s", w.Body.String())
	}
}

func TestCoursesRecommended_MatchesSkillGaps(t *testing.T) {
	env := newTestEnv(t, nil)
	cookie := registerAndCookie(t, env)

	w := getWithCookie(t, env, "/api/courses/recommended", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Courses       []domain.Course `json:"courses"`
		MissingSkills []string        `json:"missing_skills"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.MissingSkills) == 0 {
		t.Fatalf("expected missing skills in response")
	}
	if len(resp.Courses) == 0 {
		t.Fatalf("expected courses matching skill gaps")
	}
	for _, course := range resp.Courses {
		matched := false
		for _, skill := range course.Skills {
			for _, missing := range resp.MissingSkills {
				if skill == missing {
					matched = true
				}
			}
		}
		if !matched {
			t.Fatalf("course %q does not cover any missing skill", course.Title)
		}
	}
}

func TestCoursesEnrollAndProgress(t *testing.T) {
	env := newTestEnv(t, nil)
	cookie := registerAndCookie(t, env)

	if w := postJSON(t, env.router, "/api/courses/999/enroll", gin.H{}, cookie); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown course, got %d", w.Code)
	}

	w := postJSON(t, env.router, "/api/courses/1/enroll", gin.H{}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/courses/1/progress", strings.NewReader(`{"progress": 40}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Completar el curso sube el contador del usuario.
	req = httptest.NewRequest(http.MethodPatch, "/api/courses/1/progress", strings.NewReader(`{"progress": 100}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Enrollment domain.Enrollment `json:"enrollment"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Enrollment.IsCompleted || resp.Enrollment.CompletedAt == nil {
		t.Fatalf("expected completed enrollment, got %+v", resp.Enrollment)
	}

	user, err := env.users.GetByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if user.CoursesCompleted != 1 {
		t.Fatalf("expected courses completed counter 1, got %d", user.CoursesCompleted)
	}

	// Progreso invalido se rechaza.
	req = httptest.NewRequest(http.MethodPatch, "/api/courses/1/progress", strings.NewReader(`{"progress": 140}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range progress, got %d", rec.Code)
	}
}

func TestMentorBook_DerivesPrice(t *testing.T) {
	env := newTestEnv(t, nil)
	cookie := registerAndCookie(t, env)

	w := postJSON(t, env.router, "/api/mentors/1/book", gin.H{
		"sessionDate": "2026-09-15T10:00:00Z",
		"duration":    30,
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Booking domain.MentorBooking `json:"booking"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Booking.Status != domain.BookingScheduled {
		t.Fatalf("expected scheduled booking, got %q", resp.Booking.Status)
	}
	if resp.Booking.Price <= 0 {
		t.Fatalf("expected derived price, got %v", resp.Booking.Price)
	}

	user, err := env.users.GetByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if user.MentorSessions != 1 {
		t.Fatalf("expected mentor sessions counter 1, got %d", user.MentorSessions)
	}
}

func TestInterviewPerformance_DefaultsWhenEmpty(t *testing.T) {
	env := newTestEnv(t, nil)
	cookie := registerAndCookie(t, env)

	w := getWithCookie(t, env, "/api/interview/performance", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		TechnicalScore      int `json:"technical_score"`
		CommunicationScore  int `json:"communication_score"`
		ProblemSolvingScore int `json:"problem_solving_score"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TechnicalScore != 80 || resp.CommunicationScore != 75 || resp.ProblemSolvingScore != 85 {
		t.Fatalf("expected baseline scores, got %+v", resp)
	}
}

func TestInterviewPerformance_ReportsMostRecentSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	progress := repository.NewMemoryProgressRepository()
	h := NewProgressHandler(zap.NewNop(), progress)

	old := domain.InterviewPerformance{
		UserID:              1,
		SessionType:         "technical",
		TechnicalScore:      10,
		CommunicationScore:  20,
		ProblemSolvingScore: 30,
		CompletedAt:         time.Now().UTC().Add(-time.Hour),
	}
	recent := domain.InterviewPerformance{
		UserID:              1,
		SessionType:         "technical",
		TechnicalScore:      99,
		CommunicationScore:  88,
		ProblemSolvingScore: 77,
		CompletedAt:         time.Now().UTC(),
	}
	if _, err := progress.CreateInterviewPerformance(context.Background(), old); err != nil {
		t.Fatalf("seed old session failed: %v", err)
	}
	if _, err := progress.CreateInterviewPerformance(context.Background(), recent); err != nil {
		t.Fatalf("seed recent session failed: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/interview/performance", nil)
	c.Set(authUserKey, domain.User{ID: 1})
	h.InterviewPerformance(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		TechnicalScore      int                           `json:"technical_score"`
		CommunicationScore  int                           `json:"communication_score"`
		ProblemSolvingScore int                           `json:"problem_solving_score"`
		Sessions            []domain.InterviewPerformance `json:"sessions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TechnicalScore != 99 || resp.CommunicationScore != 88 || resp.ProblemSolvingScore != 77 {
		t.Fatalf("expected headline scores from most recent session, got %+v", resp)
	}
	if len(resp.Sessions) != 2 {
		t.Fatalf("expected full history, got %d sessions", len(resp.Sessions))
	}
}

func TestProjectsCreateAndList(t *testing.T) {
	env := newTestEnv(t, nil)
	cookie := registerAndCookie(t, env)

	w := postJSON(t, env.router, "/api/projects", gin.H{
		"title":        "Portfolio Site",
		"technologies": []string{"Go", "React"},
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	list := getWithCookie(t, env, "/api/projects", cookie)
	if list.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", list.Code)
	}
	if !strings.Contains(list.Body.String(), "Portfolio Site") {
		t.Fatalf("expected created project in listing, got %s", list.Body.String())
	}
}
