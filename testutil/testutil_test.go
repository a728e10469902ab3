// testutil/testutil_test.go
package testutil_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/danielhkuo/lectern/models"
	"github.com/danielhkuo/lectern/testutil"
)

func getStatus(t *testing.T, url string) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func postStatus(t *testing.T, url, body string) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

// The /api/quiz routes mix literal segments with wildcard IDs; every shape
// has to be registrable on one mux and reach its own handler.
func TestQuizRoutesAreDistinct(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.AddSession(models.Session{ID: 1, Title: "Live", IsActive: true})
	quizID := backend.AddQuiz(1, models.LetterA, 30)
	base := backend.URL()

	gets := []string{
		fmt.Sprintf("/api/quiz/session-sequence/%d", 1),
		fmt.Sprintf("/api/quiz/statistics/%d", 1),
		fmt.Sprintf("/api/quiz/session-overview/%d", 1),
		fmt.Sprintf("/api/quiz/session/%d/published", 1),
		fmt.Sprintf("/api/quiz/session/%d/feedback-details", 1),
		fmt.Sprintf("/api/quiz/%d/discussions", quizID),
	}
	for _, path := range gets {
		if got := getStatus(t, base+path); got != http.StatusOK {
			t.Errorf("GET %s = %d, want %d", path, got, http.StatusOK)
		}
	}

	if got := postStatus(t, base+fmt.Sprintf("/api/quiz/%d/discussions", quizID), `{"content":"hi"}`); got != http.StatusCreated {
		t.Errorf("POST discussions = %d, want %d", got, http.StatusCreated)
	}

	// Unknown sub-resources under a quiz ID must not be swallowed by the
	// discussion handlers.
	if got := getStatus(t, base+fmt.Sprintf("/api/quiz/%d/bogus", quizID)); got != http.StatusNotFound {
		t.Errorf("GET unknown sub-resource = %d, want %d", got, http.StatusNotFound)
	}
}
