package youtube

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"draftPublisher/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	calls     []string
	failOn    string
	uploads   []PlaylistVideo
	nextVideo int
}

func (s *stubAPI) record(call string) error {
	s.calls = append(s.calls, call)
	if s.failOn == call {
		return errors.New("api down")
	}
	return nil
}

func (s *stubAPI) UploadMedia(_ context.Context, path, title string) (string, error) {
	if err := s.record("upload " + title); err != nil {
		return "", err
	}
	s.nextVideo++
	return fmt.Sprintf("vid-%d", s.nextVideo), nil
}

func (s *stubAPI) EditMetadata(_ context.Context, videoID, title string) error {
	return s.record("edit " + videoID + " " + title)
}

func (s *stubAPI) InsertIntoCollection(_ context.Context, playlistID, videoID string) error {
	return s.record("insert " + playlistID + " " + videoID)
}

func (s *stubAPI) UploadsPlaylistID(context.Context) (string, error) {
	return "UU1", s.record("uploads")
}

func (s *stubAPI) PlaylistVideos(_ context.Context, playlistID string) ([]PlaylistVideo, error) {
	return s.uploads, s.record("list " + playlistID)
}

type memLedger struct {
	byPath map[string]*database.Upload
	nextID uint
}

func newMemLedger() *memLedger {
	return &memLedger{byPath: make(map[string]*database.Upload)}
}

func (m *memLedger) GetUploadByPath(_ context.Context, path string) (*database.Upload, error) {
	return m.byPath[path], nil
}

func (m *memLedger) CreateUpload(_ context.Context, u *database.Upload) error {
	m.nextID++
	stored := *u
	stored.ID = m.nextID
	m.byPath[u.Path] = &stored
	u.ID = stored.ID
	return nil
}

func (m *memLedger) SetUploadPlaylist(_ context.Context, id uint, playlistID string) error {
	for _, u := range m.byPath {
		if u.ID == id {
			u.PlaylistID = playlistID
			return nil
		}
	}
	return errors.New("no such upload")
}

func videoDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644))
	}
	return dir
}

func TestUploadDirectory(t *testing.T) {
	dir := videoDir(t, "01.mp4", "02.mp4")
	api := &stubAPI{}
	ledger := newMemLedger()

	report, err := NewLibrary(api, ledger, "PL1", nil).UploadDirectory(context.Background(), dir, 2)

	require.NoError(t, err)
	assert.Equal(t, UploadReport{Uploaded: 2}, report)
	assert.Equal(t, []string{"upload 2.1", "insert PL1 vid-1", "upload 2.2", "insert PL1 vid-2"}, api.calls)
	require.Contains(t, ledger.byPath, filepath.Join(dir, "02.mp4"))
	assert.Equal(t, "vid-2", ledger.byPath[filepath.Join(dir, "02.mp4")].VideoID)
	assert.Equal(t, "PL1", ledger.byPath[filepath.Join(dir, "02.mp4")].PlaylistID)
}

func TestUploadDirectory_SkipsFilesInLedger(t *testing.T) {
	dir := videoDir(t, "01.mp4", "02.mp4")
	ledger := newMemLedger()
	ledger.byPath[filepath.Join(dir, "01.mp4")] = &database.Upload{ID: 100, VideoID: "old", PlaylistID: "PL1"}
	api := &stubAPI{}

	report, err := NewLibrary(api, ledger, "PL1", nil).UploadDirectory(context.Background(), dir, 2)

	require.NoError(t, err)
	assert.Equal(t, UploadReport{Uploaded: 1, Skipped: 1}, report)
	assert.Equal(t, []string{"upload 2.2", "insert PL1 vid-1"}, api.calls)
}

func TestUploadDirectory_FailedInsertIsNotUploadedAgain(t *testing.T) {
	dir := videoDir(t, "01.mp4", "02.mp4")
	ledger := newMemLedger()
	api := &stubAPI{failOn: "insert PL1 vid-1"}
	lib := NewLibrary(api, ledger, "PL1", nil)

	report, err := lib.UploadDirectory(context.Background(), dir, 3)
	require.Error(t, err)
	assert.Zero(t, report.Uploaded)

	first := ledger.byPath[filepath.Join(dir, "01.mp4")]
	require.NotNil(t, first)
	assert.Equal(t, "vid-1", first.VideoID)
	assert.Empty(t, first.PlaylistID)

	api.failOn = ""
	report, err = lib.UploadDirectory(context.Background(), dir, 3)

	require.NoError(t, err)
	assert.Equal(t, UploadReport{Uploaded: 1, Collected: 1}, report)
	assert.Equal(t, []string{
		"upload 3.1", "insert PL1 vid-1",
		"insert PL1 vid-1", "upload 3.2", "insert PL1 vid-2",
	}, api.calls)
	assert.Equal(t, "PL1", first.PlaylistID)
}

func TestUploadDirectory_StopsOnFirstError(t *testing.T) {
	dir := videoDir(t, "01.mp4", "02.mp4", "03.mp4")
	api := &stubAPI{failOn: "upload 2.2"}

	report, err := NewLibrary(api, nil, "PL1", nil).UploadDirectory(context.Background(), dir, 2)

	require.Error(t, err)
	assert.Equal(t, 1, report.Uploaded)
	assert.NotContains(t, api.calls, "upload 2.3")
}

func TestUploadDirectory_RequiresPlaylist(t *testing.T) {
	_, err := NewLibrary(&stubAPI{}, nil, "", nil).UploadDirectory(context.Background(), t.TempDir(), 1)
	assert.Error(t, err)
}

func TestRenameAndCollect(t *testing.T) {
	api := &stubAPI{uploads: []PlaylistVideo{
		{VideoID: "a", Title: "03"},
		{VideoID: "b", Title: "1.1"},
		{VideoID: "c", Title: "1"},
	}}

	n, err := NewLibrary(api, nil, "PL1", nil).RenameAndCollect(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{
		"uploads",
		"list UU1",
		"edit c 1.1",
		"insert PL1 c",
		"edit a 1.3",
		"insert PL1 a",
	}, api.calls)
}

func TestRenameAndCollect_NothingToDo(t *testing.T) {
	api := &stubAPI{uploads: []PlaylistVideo{{VideoID: "b", Title: "1.1"}}}

	n, err := NewLibrary(api, nil, "PL1", nil).RenameAndCollect(context.Background(), 1)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, []string{"uploads", "list UU1"}, api.calls)
}
