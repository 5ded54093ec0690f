package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const telegramAPIBaseURL = "https://api.telegram.org"

type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger.With(slog.String("component", "notify"))}
}

func (sender *LogSender) Send(ctx context.Context, message Message) error {
	sender.logger.InfoContext(ctx, "notification",
		slog.String("title", message.Title),
		slog.String("body", message.Body),
	)
	return nil
}

type TelegramSender struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

func NewTelegramSender(botToken string, chatID string) *TelegramSender {
	return &TelegramSender{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  telegramAPIBaseURL,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

func (sender *TelegramSender) Send(ctx context.Context, message Message) error {
	text := message.Title
	if message.Body != "" {
		text = message.Title + "\n" + message.Body
	}

	values := url.Values{}
	values.Set("chat_id", sender.chatID)
	values.Set("text", text)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", sender.baseURL, sender.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := sender.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", redactURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// redactURL drops the request URL from transport errors; it carries the bot
// token in its path.
func redactURL(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
}
