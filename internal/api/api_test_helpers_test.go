package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/babyfeed/internal/db"
	"github.com/terraincognita07/babyfeed/internal/i18n"
	"github.com/terraincognita07/babyfeed/internal/notify"
	"github.com/terraincognita07/babyfeed/internal/services"
)

type capturingSender struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (sender *capturingSender) Send(_ context.Context, message notify.Message) error {
	sender.mu.Lock()
	defer sender.mu.Unlock()
	sender.messages = append(sender.messages, message)
	return nil
}

type testEnv struct {
	app       *fiber.App
	container *services.Container
	scheduler *notify.Scheduler
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "babyfeed.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := database.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	i18nManager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	scheduler := notify.NewScheduler(&capturingSender{}, time.UTC)
	container := services.NewContainer(db.NewRepositories(database).Stores(), services.ContainerOptions{
		Notifier: scheduler,
		Texts:    i18nManager,
		Language: "en",
		Location: time.UTC,
	})

	handler := NewHandler(container, i18nManager, time.UTC)
	handler.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return testEnv{app: NewApp(handler), container: container, scheduler: scheduler}
}

func (env testEnv) do(t *testing.T, method string, path string, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = response.Body.Close() })
	return response
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		payload, _ := io.ReadAll(response.Body)
		t.Fatalf("status = %d, want %d (body %s)", response.StatusCode, want, payload)
	}
}

const testSchedule = `{
  "month": 2,
  "signs_of_readiness": ["Sits with support"],
  "safety_guidelines": ["Always supervise meals"],
  "weekly_schedule": [
    {"week": 1, "days": [
      {"day": 1, "time": "10:00", "food_type": "vegetable", "food": "Zucchini", "amount_grams": 15},
      {"day": 2, "time": "10:30", "food_type": "vegetable", "food": "Broccoli", "amount_grams": 20}
    ]}
  ]
}`
