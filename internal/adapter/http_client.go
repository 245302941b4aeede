package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

// HTTPClientConfig carries the settings needed to construct an HTTP note
// store adapter.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpNoteStore struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPNoteStore builds a [NoteStore] speaking the server's REST API.
func NewHTTPNoteStore(cfg HTTPClientConfig) NoteStore {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpNoteStore{client: cli}
}

func (h *httpNoteStore) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpNoteStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpNoteStore) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", errors.Join(ErrUnavailable, err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}
	userID, err := parseUserIDFromJWT(token)
	if err != nil {
		return models.User{}, fmt.Errorf("register parse user id: %w", err)
	}

	h.SetToken(token)
	return models.User{UserID: userID, Login: user.Login, Name: user.Name}, nil
}

func (h *httpNoteStore) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", errors.Join(ErrUnavailable, err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse bearer token: %w", err)
	}
	userID, err := parseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse user id: %w", err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

func (h *httpNoteStore) List(ctx context.Context) ([]models.Note, error) {
	resp, err := h.authedRequest(ctx).Get("/api/notes")
	if err != nil {
		return nil, fmt.Errorf("list notes request: %w", errors.Join(ErrUnavailable, err))
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var notes []models.Note
	if err = json.Unmarshal(resp.Body(), &notes); err != nil {
		return nil, fmt.Errorf("decode notes list: %w", err)
	}
	return notes, nil
}

func (h *httpNoteStore) Get(ctx context.Context, id string) (models.Note, error) {
	resp, err := h.authedRequest(ctx).Get("/api/notes/" + id)
	if err != nil {
		return models.Note{}, fmt.Errorf("get note request: %w", errors.Join(ErrUnavailable, err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var note models.Note
	if err = json.Unmarshal(resp.Body(), &note); err != nil {
		return models.Note{}, fmt.Errorf("decode note: %w", err)
	}
	return note, nil
}

func (h *httpNoteStore) Create(ctx context.Context, fields models.NoteFields) (models.Note, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(fields).
		Post("/api/notes")
	if err != nil {
		return models.Note{}, fmt.Errorf("create note request: %w", errors.Join(ErrUnavailable, err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var note models.Note
	if err = json.Unmarshal(resp.Body(), &note); err != nil {
		return models.Note{}, fmt.Errorf("decode created note: %w", err)
	}
	return note, nil
}

func (h *httpNoteStore) Update(ctx context.Context, id string, fields models.NoteFields) (models.Note, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(fields).
		Put("/api/notes/" + id)
	if err != nil {
		return models.Note{}, fmt.Errorf("update note request: %w", errors.Join(ErrUnavailable, err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var note models.Note
	if err = json.Unmarshal(resp.Body(), &note); err != nil {
		return models.Note{}, fmt.Errorf("decode updated note: %w", err)
	}
	return note, nil
}

func (h *httpNoteStore) Delete(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).Delete("/api/notes/" + id)
	if err != nil {
		return fmt.Errorf("delete note request: %w", errors.Join(ErrUnavailable, err))
	}
	return mapHTTPError(resp)
}

func (h *httpNoteStore) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SummarizeRequest{Text: text}).
		Post("/api/summarize")
	if err != nil {
		return "", fmt.Errorf("summarize request: %w", errors.Join(ErrUnavailable, err))
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var sr models.SummarizeResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return "", fmt.Errorf("decode summarize response: %w", err)
	}
	if sr.Error != "" {
		return "", fmt.Errorf("summarizer: %s", sr.Error)
	}
	return sr.Summary, nil
}

func (h *httpNoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: http %d: %s", ErrUnavailable, resp.StatusCode(), body)
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

func parseUserIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(sub, 10, 64)
}
