package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/babyfeed/internal/models"
	"github.com/terraincognita07/babyfeed/internal/services"
)

const serverRequestTimeout = 10 * time.Second

var errServerUnreachable = errors.New("babyfeed server is not reachable")

// serverClient calls the running server for operations that change
// notification triggers, since the triggers live in the server process.
type serverClient struct {
	baseURL string
}

func newServerClient(out *console) *serverClient {
	return &serverClient{baseURL: out.cfg.BaseURL()}
}

func (client *serverClient) ImportSchedule(raw []byte) (services.ImportResult, error) {
	result := services.ImportResult{}
	agent := fiber.Post(client.baseURL + "/api/schedules/import").
		ContentType(fiber.MIMEApplicationJSON).
		Body(raw)
	return result, client.do(agent, &result)
}

func (client *serverClient) DeleteSchedule(id string) error {
	return client.do(fiber.Delete(client.baseURL+"/api/schedules/"+url.PathEscape(id)), nil)
}

func (client *serverClient) ReconcileReminders() ([]models.Reminder, error) {
	reminders := []models.Reminder{}
	return reminders, client.do(fiber.Post(client.baseURL+"/api/reminders/reconcile"), &reminders)
}

func (client *serverClient) do(agent *fiber.Agent, target any) error {
	code, body, errs := agent.Timeout(serverRequestTimeout).Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		if isUnreachable(err) {
			return fmt.Errorf("%w at %s: %v", errServerUnreachable, client.baseURL, err)
		}
		return fmt.Errorf("server request failed: %w", err)
	}

	if code >= fiber.StatusBadRequest {
		payload := struct {
			Error string `json:"error"`
		}{}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
			return errors.New(payload.Error)
		}
		return fmt.Errorf("server returned status %d", code)
	}

	if target == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode server response: %w", err)
	}
	return nil
}

func isUnreachable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
