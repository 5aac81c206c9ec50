package predictor

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dermascan/internal/app/pkg/errorx"
)

func TestPredictSuccess(t *testing.T) {
	var gotField []byte
	var gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotField, err = io.ReadAll(file)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prediction":"malignant","riskLevel":"malignant","confidence":87.5,"details":"model v2"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second, nil)
	result, err := client.Predict(context.Background(), []byte("fake-image-bytes"), "lesion.jpg")
	require.NoError(t, err)

	assert.Equal(t, "malignant", result.Prediction)
	assert.Equal(t, "malignant", result.RawRiskLevel)
	assert.Equal(t, 87.5, result.Confidence)
	assert.Equal(t, "model v2", result.Details)
	assert.Equal(t, "lesion.jpg", gotFilename)
	assert.Equal(t, []byte("fake-image-bytes"), gotField)
}

func TestPredictNon200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second, nil)
	_, err := client.Predict(context.Background(), []byte("img"), "a.jpg")
	assert.ErrorIs(t, err, errorx.ErrPredictionUnavailable)
}

func TestPredictMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second, nil)
	_, err := client.Predict(context.Background(), []byte("img"), "a.jpg")
	assert.ErrorIs(t, err, errorx.ErrPredictionUnavailable)
}

func TestPredictConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // 立即关闭，后续连接必然失败

	client := NewHTTPClient(server.URL, time.Second, nil)
	_, err := client.Predict(context.Background(), []byte("img"), "a.jpg")
	assert.ErrorIs(t, err, errorx.ErrPredictionUnavailable)
}

func TestPredictTimeoutSingleAttempt(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 20*time.Millisecond, nil)
	_, err := client.Predict(context.Background(), []byte("img"), "a.jpg")
	assert.ErrorIs(t, err, errorx.ErrPredictionUnavailable)

	// 超时后不重试
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 1, attempts)
}
