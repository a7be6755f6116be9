package bank

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/biolquiz/internal/logging"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, []byte(twoQuizDoc), 0o644))

	b, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, b.Quizzes(), 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestLoad_EmptySourceUsesSample(t *testing.T) {
	b, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, b.Quizzes())
}

func TestLoad_URL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoQuizDoc))
	}))
	defer srv.Close()

	b, err := Load(context.Background(), srv.URL+"/study_quiz_processed_questions_by_topics_db.json",
		WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	assert.Len(t, b.Quizzes(), 2)
	assert.Equal(t, int32(1), hits.Load())
}

func TestLoad_URLFailureIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL, WithHTTPClient(srv.Client()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
	assert.Equal(t, int32(1), hits.Load())
}

func TestLoad_URLFailureIsLogged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger := logging.New("biolquiz", "test", &buf, zerolog.DebugLevel, false)
	ctx := logging.IntoContext(context.Background(), &logger)

	_, err := Load(ctx, srv.URL, WithHTTPClient(srv.Client()))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "fetching question bank")
	assert.Contains(t, out, "question bank fetch failed")
	assert.Contains(t, out, "status=404")
}

func TestLoad_EmptyBank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestLoad_ImageBase(t *testing.T) {
	doc := `[{"quiz_title": "Cells", "questions": [{
		"question": "<img src=\"/assessment_questions/77/files/9/download?verifier=AbC123&wrap=1\">Name the organelle",
		"id": 5,
		"options": [{"text": "Golgi", "is_correct": true}]
	}]}]`
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	b, err := Load(context.Background(), path, WithImageBase("/biol1009/"))
	require.NoError(t, err)
	q := b.Quizzes()[0].Questions[0]
	assert.Equal(t, `<img src="/biol1009/img/AbC123.jpg">Name the organelle`, q.Prompt)
}
