package staffdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент справочника сотрудников дилерского центра
// Аутентификацию выполняет внешний сервис; здесь только резолвим
// отображаемое имя продавца по логину
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetStaffMember получает запись о сотруднике по логину
func (c *Client) GetStaffMember(ctx context.Context, login string) (*StaffMember, error) {
	reqURL := fmt.Sprintf("%s/internal/staff/%s", c.baseURL, url.PathEscape(login))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrStaffNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var member StaffMember
	if err := json.NewDecoder(resp.Body).Decode(&member); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &member, nil
}

// ResolveDisplayName возвращает отображаемое имя сотрудника с graceful degradation
// При недоступности справочника или отсутствии записи возвращает сам логин:
// запись на тест-драйв не должна падать из-за вспомогательного сервиса
func (c *Client) ResolveDisplayName(ctx context.Context, login string) string {
	member, err := c.GetStaffMember(ctx, login)
	if err != nil {
		if err == ErrStaffNotFound {
			c.log.Info("Staff member %q not found in directory, using login as name", login)
			return login
		}
		c.log.Error("Staff directory unavailable, using login %q as name: %v", login, err)
		return login
	}
	return member.DisplayName
}
