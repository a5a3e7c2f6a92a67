package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyward-data/airq/core"
)

// stubAsker returns a canned result or error.
type stubAsker struct {
	result   *core.AnswerResult
	err      error
	question string
}

func (s *stubAsker) Ask(ctx context.Context, question string) (*core.AnswerResult, error) {
	s.question = question
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestHandleAsk(t *testing.T) {
	t.Run("successful answer", func(t *testing.T) {
		asker := &stubAsker{result: &core.AnswerResult{
			Answer:     "PM2.5 was 95.2.",
			Sources:    []string{"table: air_quality_cleaned", "row_id: 12"},
			Confidence: 0.83,
		}}
		srv := NewServer(asker)

		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"q":"What was PM2.5 in Delhi?"}`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "What was PM2.5 in Delhi?", asker.question)

		var body struct {
			Answer     string   `json:"answer"`
			Sources    []string `json:"sources"`
			Confidence float64  `json:"confidence"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "PM2.5 was 95.2.", body.Answer)
		assert.Equal(t, []string{"table: air_quality_cleaned", "row_id: 12"}, body.Sources)
		assert.Equal(t, 0.83, body.Confidence)
	})

	t.Run("empty question is rejected", func(t *testing.T) {
		srv := NewServer(&stubAsker{})

		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"q":"  "}`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		srv := NewServer(&stubAsker{})

		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("engine failure maps to bad gateway", func(t *testing.T) {
		srv := NewServer(&stubAsker{err: errors.New("generation failed")})

		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"q":"question"}`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadGateway, rec.Code)

		var body struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Error, "generation failed")
	})

	t.Run("get is not allowed on ask", func(t *testing.T) {
		srv := NewServer(&stubAsker{})

		req := httptest.NewRequest(http.MethodGet, "/ask", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	srv := NewServer(&stubAsker{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
