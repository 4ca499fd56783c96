package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"draftPublisher/internal/config"
	"draftPublisher/internal/database"
	"draftPublisher/internal/logger"
	"draftPublisher/internal/publisher"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStudio struct {
	got []publisher.Visibility
	err error
}

func (s *fakeStudio) EnsureOpen(context.Context) error { return nil }

func (s *fakeStudio) PublishAllEligibleDrafts(_ context.Context, v publisher.Visibility) (int, error) {
	s.got = append(s.got, v)
	if s.err != nil {
		return 0, s.err
	}
	return 3, nil
}

type fakeUploads struct {
	err error
}

func (f fakeUploads) ListUploads(context.Context, int, int) ([]database.Upload, error) {
	return []database.Upload{{ID: 1, Title: "2.1", VideoID: "v1", CreatedAt: time.Unix(0, 0)}}, f.err
}

func newTestServer(studio *fakeStudio, uploads *fakeUploads) http.Handler {
	cfg := &config.Cfg{Publish: config.Publish{Visibility: publisher.VisibilityLinkOnly}}
	var lister UploadLister
	if uploads != nil {
		lister = *uploads
	}
	return New(cfg, logger.Nop(), studio, lister).Handler()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(newTestServer(&fakeStudio{}, nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPublish(t *testing.T) {
	studio := &fakeStudio{}
	h := newTestServer(studio, nil)

	rec := do(h, http.MethodPost, "/api/publish", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"published":3,"visibility":"link-only"}`, rec.Body.String())

	rec = do(h, http.MethodPost, "/api/publish", `{"visibility":"public"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []publisher.Visibility{publisher.VisibilityLinkOnly, publisher.VisibilityPublic}, studio.got)
}

func TestPublish_ChunkedBody(t *testing.T) {
	studio := &fakeStudio{}
	h := newTestServer(studio, nil)

	// io.MultiReader скрывает длину, как у chunked-запроса
	req := httptest.NewRequest(http.MethodPost, "/api/publish", io.MultiReader(strings.NewReader(`{"visibility":"public"}`)))
	req.Header.Set("Content-Type", "application/json")
	require.EqualValues(t, -1, req.ContentLength)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []publisher.Visibility{publisher.VisibilityPublic}, studio.got)
}

func TestPublish_Errors(t *testing.T) {
	t.Run("bad visibility", func(t *testing.T) {
		rec := do(newTestServer(&fakeStudio{}, nil), http.MethodPost, "/api/publish", `{"visibility":"friends"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("batch in progress", func(t *testing.T) {
		rec := do(newTestServer(&fakeStudio{err: publisher.ErrBatchInProgress}, nil), http.MethodPost, "/api/publish", "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
	t.Run("abort", func(t *testing.T) {
		studio := &fakeStudio{err: &publisher.AbortError{Item: 2, Completed: 2, State: publisher.StateVisibilityStep, Err: publisher.ErrMissingElement}}
		rec := do(newTestServer(studio, nil), http.MethodPost, "/api/publish", "")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.EqualValues(t, 2, body["published"])
		assert.EqualValues(t, 3, body["item"])
		assert.Equal(t, "visibility_step", body["state"])
	})
}

func TestUploads(t *testing.T) {
	rec := do(newTestServer(&fakeStudio{}, nil), http.MethodGet, "/api/uploads", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(newTestServer(&fakeStudio{}, &fakeUploads{}), http.MethodGet, "/api/uploads", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var uploads []database.Upload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploads))
	require.Len(t, uploads, 1)
	assert.Equal(t, "v1", uploads[0].VideoID)

	rec = do(newTestServer(&fakeStudio{}, &fakeUploads{err: errors.New("down")}), http.MethodGet, "/api/uploads", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
