package mazeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	remote "github.com/beka-birhanu/vinom-mazeview/infrastruture/mazeapi"
	"github.com/beka-birhanu/vinom-mazeview/maze"
	"github.com/beka-birhanu/vinom-mazeview/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type stubMazeService struct {
	err  error
	path []maze.CellPosition
}

func (s *stubMazeService) Generate(_ context.Context, rows, cols int) ([]maze.Bitset, []maze.Bitset, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return make([]maze.Bitset, rows), make([]maze.Bitset, rows-1), nil
}

func (s *stubMazeService) Solve(context.Context, *maze.Maze) ([]maze.CellPosition, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.path, nil
}

func newServer(t *testing.T, svc *stubMazeService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	session, err := service.NewSession(&service.Config{
		MazeService:      svc,
		Logger:           nopLogger{},
		CanvasWidth:      100,
		CanvasHeight:     100,
		PlaybackInterval: time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(session.Close)

	controller, err := NewMazeController(session)
	require.NoError(t, err)

	router := gin.New()
	controller.RegisterPublic(router.Group("/api/v1"))
	return router
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func upload(router http.Handler, name, content string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, _ := w.CreateFormFile("file", name)
	_, _ = part.Write([]byte(content))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/maze/load", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) StateResponse {
	t.Helper()
	var state StateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	return state
}

func TestState(t *testing.T) {
	router := newServer(t, &stubMazeService{})

	rec := doJSON(router, http.MethodGet, "/api/v1/maze/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeState(t, rec)
	assert.Equal(t, 25, state.Inputs.Rows)
	assert.Equal(t, 50, state.Inputs.MaxCol)
	assert.True(t, strings.HasPrefix(state.Text, "25 50\n"))

	rec = doJSON(router, http.MethodGet, "/api/v1/maze/frame", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var frame FrameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &frame))
	assert.NotEmpty(t, frame.Commands)

	rec = doJSON(router, http.MethodGet, "/api/v1/maze/image.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestStateMatchesTextDuringLoads(t *testing.T) {
	router := newServer(t, &stubMazeService{})
	files := []string{"2 2\n0\n1\n\n0 1\n", "3 3\n0 0\n0 0\n0 0\n\n0 0 0\n0 0 0\n"}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for k := 0; ; k++ {
			select {
			case <-stop:
				return
			default:
			}
			upload(router, "maze.txt", files[k%len(files)])
		}
	}()

	for k := 0; k < 2000; k++ {
		state := decodeState(t, doJSON(router, http.MethodGet, "/api/v1/maze/", ""))
		firstLine := strings.SplitN(state.Text, "\n", 2)[0]
		rows := strconv.Itoa(state.Inputs.Rows) + " " + strconv.Itoa(state.Inputs.Cols)
		if !assert.Equal(t, rows, firstLine) {
			break
		}
	}
	close(stop)
	wg.Wait()
}

func TestGenerateRoute(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router := newServer(t, &stubMazeService{})
		rec := doJSON(router, http.MethodPost, "/api/v1/maze/generate", `{"rows": 3, "cols": 4}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 3, decodeState(t, rec).Inputs.MaxRow)
	})

	t.Run("Invalid dimensions", func(t *testing.T) {
		router := newServer(t, &stubMazeService{})
		assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/api/v1/maze/generate", `{"rows": 0, "cols": 4}`).Code)
		assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/api/v1/maze/generate", `{"rows": 60, "cols": 4}`).Code)
	})

	t.Run("Service failure", func(t *testing.T) {
		router := newServer(t, &stubMazeService{err: remote.ErrCannotGenerate})
		rec := doJSON(router, http.MethodPost, "/api/v1/maze/generate", `{"rows": 3, "cols": 4}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "can not get maze from server")
	})
}

func TestEndpointRoutes(t *testing.T) {
	router := newServer(t, &stubMazeService{})

	rec := doJSON(router, http.MethodPut, "/api/v1/maze/start", `{"row": 2, "col": 3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeState(t, rec)
	assert.Equal(t, 2, state.Inputs.StartRow)
	assert.Equal(t, 3, state.Inputs.StartCol)

	rec = doJSON(router, http.MethodPut, "/api/v1/maze/end", `{"row": 99, "col": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeState(t, rec)
	assert.Equal(t, 25, state.Inputs.EndRow)
	assert.Equal(t, 50, state.Inputs.EndCol)

	rec = doJSON(router, http.MethodPut, "/api/v1/maze/end", `{"row": 0, "col": 0}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPut, "/api/v1/maze/start", `{"row": 2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolveRoute(t *testing.T) {
	t.Run("Returns the path", func(t *testing.T) {
		path := []maze.CellPosition{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
		router := newServer(t, &stubMazeService{path: path})

		rec := doJSON(router, http.MethodPost, "/api/v1/maze/solve", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var resp SolveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, resp.Path)
	})

	t.Run("Path outside the maze", func(t *testing.T) {
		router := newServer(t, &stubMazeService{path: []maze.CellPosition{{Row: 70, Col: 0}}})
		assert.Equal(t, http.StatusBadGateway, doJSON(router, http.MethodPost, "/api/v1/maze/solve", "").Code)
	})

	t.Run("Service failure", func(t *testing.T) {
		router := newServer(t, &stubMazeService{err: remote.ErrCannotSolve})
		assert.Equal(t, http.StatusBadGateway, doJSON(router, http.MethodPost, "/api/v1/maze/solve", "").Code)
	})
}

func TestLoadRoute(t *testing.T) {
	t.Run("Valid file", func(t *testing.T) {
		router := newServer(t, &stubMazeService{})
		rec := upload(router, "maze.txt", "2 2\n0\n1\n\n0 1\n")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2 2\n0\n1\n\n0 1\n", decodeState(t, rec).Text)
	})

	t.Run("Malformed vertical walls", func(t *testing.T) {
		router := newServer(t, &stubMazeService{})
		rec := upload(router, "maze.txt", "2 3\n0\n0 1\n\n0 0 0\n")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "can not load vertical walls")

		state := decodeState(t, doJSON(router, http.MethodGet, "/api/v1/maze/", ""))
		assert.Equal(t, 25, state.Inputs.Rows)
	})

	t.Run("Wrong extension", func(t *testing.T) {
		router := newServer(t, &stubMazeService{})
		rec := upload(router, "maze.png", "2 2\n0\n1\n\n0 1\n")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "please select a .txt file")
	})

	t.Run("Missing file", func(t *testing.T) {
		router := newServer(t, &stubMazeService{})
		assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/api/v1/maze/load", "").Code)
	})
}

func TestSaveRoute(t *testing.T) {
	router := newServer(t, &stubMazeService{})
	require.Equal(t, http.StatusOK, upload(router, "maze.txt", "2 2\n0\n1\n\n0 1\n").Code)

	rec := doJSON(router, http.MethodPost, "/api/v1/maze/save", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="maze_`)
	assert.NotEmpty(t, rec.Header().Get("X-Snapshot-ID"))
	assert.Equal(t, "2 2\n0\n1\n\n0 1\n", rec.Body.String())
}

func TestSnapshotRoutesWithoutStorage(t *testing.T) {
	router := newServer(t, &stubMazeService{})

	assert.Equal(t, http.StatusServiceUnavailable, doJSON(router, http.MethodGet, "/api/v1/maze/snapshots", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodGet, "/api/v1/maze/snapshots?limit=-1", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/api/v1/maze/snapshots/nope/load", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable,
		doJSON(router, http.MethodPost, "/api/v1/maze/snapshots/5b0d7c0e-5a56-4a47-9d0b-4f3a8b8a2f11/load", "").Code)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusOf(service.ErrStaleResponse))
	assert.Equal(t, http.StatusBadGateway, statusOf(remote.ErrBadResponse))
	assert.Equal(t, http.StatusInternalServerError, statusOf(assert.AnError))
}
