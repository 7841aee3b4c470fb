package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/logging"
)

// Fallback messages used when the server gives none.
const (
	MsgLoginFailed    = "Erro ao realizar login"
	MsgRegisterFailed = "Erro ao cadastrar usuário"
	MsgCreateFailed   = "Erro ao cadastrar lembrete"
	MsgDeleteFailed   = "Erro ao deletar lembrete"
	MsgListFailed     = "Erro ao buscar lembretes"
)

const maxResponseBytes = 1 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient builds a client for the API rooted at baseURL. Outgoing
// requests carry trace context when a tracer provider is installed.
func NewHTTPClient(baseURL string, l logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		logger:  l.With("module", "http_client"),
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type apiError struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields"`
}

// do is send plus logging of transport failures, whose cause the caller
// never shows to the user.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, fallback string) error {
	err := c.send(ctx, method, path, in, out, fallback)
	if errors.Is(err, ErrUnavailable) {
		c.logger.Error(ctx, "request failed", "method", method, "path", path, "error", err)
	}
	return err
}

// send issues one request and decodes a 2xx JSON body into out (if non-nil).
// Non-2xx answers become *RejectedError with fallback as the default message,
// unless their body is present but not JSON, which counts as unavailable.
func (c *HTTPClient) send(ctx context.Context, method, path string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logging.RequestIDFrom(ctx); id != "" {
		req.Header.Set(common.RequestIDHeaderName, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &ae); err != nil {
				return fmt.Errorf("%w: status %d: malformed error body: %w", ErrUnavailable, resp.StatusCode, err)
			}
		}
		msg := ae.Message
		if msg == "" {
			msg = fallback
		}
		return &RejectedError{Status: resp.StatusCode, Message: msg, Code: ae.Code, Fields: ae.Fields}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: malformed response: %w", ErrUnavailable, err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	req := map[string]string{"email": email, "senha": password}

	var resp struct {
		User json.RawMessage `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", req, &resp, MsgLoginFailed); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (int64, error) {
	req := map[string]string{"nome": name, "email": email, "senha": password}

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/usuarios", req, &resp, MsgRegisterFailed); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *HTTPClient) CreateReminder(ctx context.Context, in ReminderInput) (int64, error) {
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/lembretes", in, &resp, MsgCreateFailed); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *HTTPClient) DeleteReminder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/lembretes/"+strconv.FormatInt(id, 10), nil, nil, MsgDeleteFailed)
}

func (c *HTTPClient) ListReminders(ctx context.Context, ownerID int64) ([]Reminder, error) {
	var resp struct {
		Items []Reminder `json:"lembretes"`
	}
	path := "/usuarios/" + strconv.FormatInt(ownerID, 10) + "/lembretes"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, MsgListFailed); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Ping reports ErrUnavailable unless /health answers 2xx. Failures are not
// logged; the caller polls.
func (c *HTTPClient) Ping(ctx context.Context) error {
	err := c.send(ctx, http.MethodGet, "/health", nil, nil, "unhealthy")
	var rej *RejectedError
	if errors.As(err, &rej) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
