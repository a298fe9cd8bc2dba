package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
	apperrors "github.com/frauddesk/frauddesk-cli/internal/errors"
)

func testTokens() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
}

func newTestClient(t *testing.T, baseURL string, mutate ...func(*Config)) *Client {
	t.Helper()
	cfg := Config{
		BaseURL: baseURL,
		Tokens:  testTokens(),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "ftp://example.com"})
	assert.Error(t, err)

	client, err := NewClient(Config{BaseURL: "https://frauddesk.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://frauddesk.example.com", client.baseURL.String())
	assert.Equal(t, DefaultTimeout, client.timeout)
}

func TestClient_CreatePrediction(t *testing.T) {
	var captured struct {
		method, path, auth, contentType, userAgent, requestID string
		body                                                  []byte
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		captured.contentType = r.Header.Get("Content-Type")
		captured.userAgent = r.Header.Get("User-Agent")
		captured.requestID = r.Header.Get("X-Request-ID")
		captured.body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"job_id": "J1", "status": "pending", "cost": 1.5}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	pred, err := client.CreatePrediction(context.Background(), model.NewPredictRequest(model.Transaction{
		"id":             "T1",
		"amount":         100.0,
		"origin_account": "acc-1",
		"dest_account":   "acc-2",
	}))
	require.NoError(t, err)

	assert.Equal(t, "J1", pred.JobID)
	assert.Equal(t, model.StatusPending, pred.Status)
	assert.Equal(t, 1.5, pred.Cost)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/predictions/predict", captured.path)
	assert.Equal(t, "Bearer test-token", captured.auth)
	assert.Equal(t, "application/json", captured.contentType)
	assert.Equal(t, defaultUserAgent, captured.userAgent)
	_, parseErr := uuid.Parse(captured.requestID)
	assert.NoError(t, parseErr, "X-Request-ID must be a uuid")

	var envelope map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(captured.body, &envelope))
	assert.Equal(t, "T1", envelope["data"]["transaction"]["id"])
}

func TestClient_AuthRequired_FailsBeforeIO(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, func(cfg *Config) { cfg.Tokens = nil })

	_, err := client.Balance(context.Background())
	assert.True(t, apperrors.IsAuthRequired(err))
	assert.Equal(t, int64(0), requests.Load(), "no network I/O without credentials")
}

func TestClient_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		checkKind func(error) bool
		wantMsg   string
	}{
		{
			name:      "401 auth required",
			status:    http.StatusUnauthorized,
			body:      `{"detail": "Not authenticated"}`,
			checkKind: apperrors.IsAuthRequired,
			wantMsg:   "Not authenticated",
		},
		{
			name:      "404 not found",
			status:    http.StatusNotFound,
			body:      `{"detail": "Предсказание не найдено"}`,
			checkKind: apperrors.IsNotFound,
			wantMsg:   "Предсказание не найдено",
		},
		{
			name:      "422 validation",
			status:    http.StatusUnprocessableEntity,
			body:      `{"detail": "value is not a valid dict"}`,
			checkKind: apperrors.IsValidation,
			wantMsg:   "value is not a valid dict",
		},
		{
			name:      "500 server internal",
			status:    http.StatusInternalServerError,
			body:      `{"detail": "internal error"}`,
			checkKind: apperrors.IsServerInternal,
			wantMsg:   "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL)
			_, err := client.GetPrediction(context.Background(), "J1")

			require.Error(t, err)
			assert.True(t, tt.checkKind(err))
			assert.Equal(t, tt.status, apperrors.GetStatus(err))

			var apiErr *apperrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestClient_InsufficientBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"detail": "Недостаточно средств для выполнения предсказания"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.CreatePrediction(context.Background(), model.NewPredictRequest(model.Transaction{"id": "T1"}))

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnknown, apperrors.GetKind(err))
	assert.True(t, apperrors.IsInsufficientBalance(err))
}

func TestClient_EmptyErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.Balance(context.Background())

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "503 Service Unavailable", apiErr.Message)
	assert.True(t, apperrors.IsServerInternal(err))
}

func TestClient_OpaqueErrorBodyTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("<html>upstream</html>", 100)))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.Balance(context.Background())

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Len(t, apiErr.Message, maxErrorMessageBytes)
}

func TestClient_GarbageSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("here is your prediction, good luck"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.GetPrediction(context.Background(), "J1")

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnknown, apperrors.GetKind(err))
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, func(cfg *Config) { cfg.Timeout = 50 * time.Millisecond })

	start := time.Now()
	_, err := client.Balance(context.Background())

	assert.True(t, apperrors.IsTimeout(err), "got %v", err)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := newTestClient(t, srv.URL)
	_, err := client.Balance(context.Background())

	assert.True(t, apperrors.IsNetwork(err), "got %v", err)
}

func TestClient_GetPrediction_EmptyID(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.GetPrediction(context.Background(), "  ")

	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "job_id", apperrors.GetField(err))
	assert.Equal(t, int64(0), requests.Load())
}

func TestClient_ListPredictions_Paging(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"predictions": []}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	history, err := client.ListPredictions(context.Background(), 10, 5)

	require.NoError(t, err)
	assert.Empty(t, history.Predictions)
	assert.Equal(t, "limit=5&skip=10", query)
}

func TestClient_TopUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req model.TopUpRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 50.0, req.Amount)
		_, _ = w.Write([]byte(`{"previous_balance": 10, "current_balance": 60, "transaction_id": "tx_123"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	receipt, err := client.TopUp(context.Background(), &model.TopUpRequest{Amount: 50})

	require.NoError(t, err)
	assert.Equal(t, 10.0, receipt.PreviousBalance)
	assert.Equal(t, 60.0, receipt.CurrentBalance)
	assert.Equal(t, "tx_123", receipt.TransactionID)
}

func TestClient_TopUp_RejectsNonPositiveLocally(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.TopUp(context.Background(), &model.TopUpRequest{Amount: -5})

	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "amount", apperrors.GetField(err))
	assert.Equal(t, int64(0), requests.Load())
}

func TestClient_RequestIDsDifferPerCall(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`{"balance": 1}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.Balance(context.Background())
	require.NoError(t, err)
	_, err = client.Balance(context.Background())
	require.NoError(t, err)

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}
