package forwarder

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scanRecorder struct {
	mu    sync.Mutex
	paths []string
	fail  string
}

func (s *scanRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, r.URL.EscapedPath())
	if s.fail != "" && strings.HasSuffix(r.URL.Path, s.fail) {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func TestForwarder_Run(t *testing.T) {
	t.Run("forwards trimmed non-blank lines", func(t *testing.T) {
		rec := &scanRecorder{}
		srv := httptest.NewServer(rec)
		defer srv.Close()

		n, err := New(srv.URL+"/", srv.Client()).Run(context.Background(),
			strings.NewReader("A1B2C3\r\n\n   \n D4 E5 \n"))

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"/scan/A1B2C3", "/scan/D4%20E5"}, rec.paths)
	})

	t.Run("failed forward does not stop the loop", func(t *testing.T) {
		rec := &scanRecorder{fail: "BAD"}
		srv := httptest.NewServer(rec)
		defer srv.Close()

		n, err := New(srv.URL, srv.Client()).Run(context.Background(), strings.NewReader("BAD\nGOOD\n"))

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Len(t, rec.paths, 2)
	})

	t.Run("stops on cancel", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer pw.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := New("http://127.0.0.1:0", nil).Run(ctx, pr)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestForwarder_Forward(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := New(srv.URL, srv.Client()).Forward(context.Background(), "A1")
	assert.Error(t, err)
}
