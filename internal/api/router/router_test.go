package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docchat-ai/docchat/internal/appointments"
	"github.com/docchat-ai/docchat/internal/contacts"
	"github.com/docchat-ai/docchat/internal/dialogue"
	"github.com/docchat-ai/docchat/internal/http/handlers"
)

type stubAnswerer struct{}

func (stubAnswerer) Answer(context.Context, string) (string, error) { return "an answer", nil }

type stubBooker struct{}

func (stubBooker) Book(context.Context, *dialogue.Session, string) (string, error) {
	return "booked", nil
}

type noDates struct{}

func (noDates) Extract(string) (string, bool) { return "", false }

type noSlots struct{}

func (noSlots) AvailableSlots(context.Context, string) ([]string, error) { return nil, nil }

type noContacts struct{}

func (noContacts) Create(context.Context, *contacts.Record) (string, error) {
	return "", errors.New("unused")
}

func (noContacts) MarkConfirmed(context.Context, string) error { return nil }

type noAppts struct{}

func (noAppts) Create(context.Context, string, string, string) (*appointments.Appointment, error) {
	return nil, errors.New("unused")
}

func newTestRouter() http.Handler {
	collector := dialogue.NewCollector(noDates{}, noSlots{}, noContacts{}, noAppts{}, nil)
	dlgRouter := dialogue.NewRouter(collector, stubBooker{}, stubAnswerer{}, noDates{}, nil, nil)
	chat := handlers.NewChatHandler(dialogue.NewSessionStore(), dlgRouter, nil, nil)

	return New(&Config{
		ChatHandler: chat,
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	})
}

func TestHealthz(t *testing.T) {
	r := newTestRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestMetricsMounted(t *testing.T) {
	r := newTestRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChatRoute(t *testing.T) {
	r := newTestRouter()

	body, _ := json.Marshal(map[string]string{"session_id": "s1", "message": "hello"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "an answer")
}

func TestDocumentsRouteAbsentWithoutHandler(t *testing.T) {
	r := newTestRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/documents", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
