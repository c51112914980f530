// Package client is a REST client for the MuscleMap server. Reads are served
// from a cached copy of the dataset; every successful mutation invalidates
// the cache so the next read refetches.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/claude/musclemap/internal/models"
)

// Client talks to the MuscleMap server over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	mu     sync.Mutex
	cached []models.Day // nil when invalidated
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// New creates a Client targeting the given base URL. apiKey may be empty.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Invalidate drops the cached dataset; the next read refetches.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

// Days returns every persisted day, from cache when available.
func (c *Client) Days(ctx context.Context) ([]models.Day, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil {
		out := make([]models.Day, len(c.cached))
		for i, d := range c.cached {
			out[i] = d.Clone()
		}
		return out, nil
	}

	var days []models.Day
	if err := c.do(ctx, http.MethodGet, "/api/v1/days", nil, &days); err != nil {
		return nil, err
	}
	if days == nil {
		days = []models.Day{}
	}
	c.cached = days

	out := make([]models.Day, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}
	return out, nil
}

// Day returns the day for the date, or nil when it has no persisted state.
func (c *Client) Day(ctx context.Context, date string) (*models.Day, error) {
	days, err := c.Days(ctx)
	if err != nil {
		return nil, err
	}
	for i := range days {
		if days[i].Date == date {
			return &days[i], nil
		}
	}
	return nil, nil
}

// CreateWorkout creates a workout on the day and returns it.
func (c *Client) CreateWorkout(ctx context.Context, dayDate string, draft models.Workout) (models.Workout, error) {
	body := map[string]any{"dayDate": dayDate, "workout": draft}
	var created models.Workout
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts", body, &created); err != nil {
		return models.Workout{}, err
	}
	c.Invalidate()
	return created, nil
}

// UpdateWorkout replaces the workout and returns the stored version.
func (c *Client) UpdateWorkout(ctx context.Context, workoutID string, patch models.Workout) (models.Workout, error) {
	var updated models.Workout
	if err := c.do(ctx, http.MethodPut, "/api/v1/workouts/"+workoutID, patch, &updated); err != nil {
		return models.Workout{}, err
	}
	c.Invalidate()
	return updated, nil
}

// DeleteWorkout removes the workout.
func (c *Client) DeleteWorkout(ctx context.Context, workoutID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/workouts/"+workoutID, nil, nil); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// MoveWorkout relocates a workout between days.
func (c *Client) MoveWorkout(ctx context.Context, workoutID, fromDate, toDate string) error {
	body := map[string]string{
		"workoutId":   workoutID,
		"fromDayDate": fromDate,
		"toDayDate":   toDate,
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts/move", body, nil); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// ReorderWorkout moves a workout to targetIndex within its day.
func (c *Client) ReorderWorkout(ctx context.Context, dayDate, workoutID string, targetIndex int) error {
	body := map[string]any{
		"dayDate":     dayDate,
		"workoutId":   workoutID,
		"targetIndex": targetIndex,
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts/reorder", body, nil); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// MoveExercise moves an exercise to targetIndex within its workout.
func (c *Client) MoveExercise(ctx context.Context, dayDate, workoutID, exerciseID string, targetIndex int) error {
	body := map[string]any{
		"dayDate":     dayDate,
		"workoutId":   workoutID,
		"exerciseId":  exerciseID,
		"targetIndex": targetIndex,
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/exercises/move", body, nil); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// do performs a JSON request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		msg := string(data)
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
