package mazeapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-mazeview/codec"
	remote "github.com/beka-birhanu/vinom-mazeview/infrastruture/mazeapi"
	"github.com/beka-birhanu/vinom-mazeview/infrastruture/repo"
	"github.com/beka-birhanu/vinom-mazeview/maze"
	"github.com/beka-birhanu/vinom-mazeview/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultRecentLimit = 10

// MazeController routes UI actions to the live maze session.
type MazeController struct {
	session *service.Session
}

// NewMazeController initializes a MazeController.
func NewMazeController(s *service.Session) (*MazeController, error) {
	if s == nil {
		return nil, errors.New("session is required")
	}
	return &MazeController{session: s}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mz := route.Group("/maze")
	{
		mz.GET("/", mc.state)
		mz.GET("/frame", mc.frame)
		mz.GET("/image.png", mc.image)
		mz.POST("/generate", mc.generate)
		mz.PUT("/start", mc.setStart)
		mz.PUT("/end", mc.setEnd)
		mz.POST("/solve", mc.solve)
		mz.POST("/load", mc.load)
		mz.POST("/save", mc.save)
		mz.GET("/snapshots", mc.recent)
		mz.POST("/snapshots/:ID/load", mc.loadSnapshot)
	}
}

func (mc *MazeController) state(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, mc.stateResponse())
}

func (mc *MazeController) frame(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, &FrameResponse{Commands: mc.session.Frame()})
}

func (mc *MazeController) image(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := mc.session.WritePNG(&buf); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding canvas"})
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := mc.session.Generate(ctx.Request.Context(), request.Rows, request.Cols); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mc.stateResponse())
}

func (mc *MazeController) setStart(ctx *gin.Context) {
	mc.moveEndpoint(ctx, mc.session.SetStart)
}

func (mc *MazeController) setEnd(ctx *gin.Context) {
	mc.moveEndpoint(ctx, mc.session.SetEnd)
}

// moveEndpoint applies a 1-based cell from the request. Cells outside the maze
// are ignored and the unchanged state is returned.
func (mc *MazeController) moveEndpoint(ctx *gin.Context, set func(row, col int) error) {
	var request CellRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, col := service.FromInput(*request.Row, *request.Col)
	if err := set(row, col); err != nil && !errors.Is(err, maze.ErrOutOfRange) {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mc.stateResponse())
}

func (mc *MazeController) solve(ctx *gin.Context) {
	path, err := mc.session.Solve(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, maze.ErrOutOfRange) {
			ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &SolveResponse{Path: cellsOf(path)})
}

func (mc *MazeController) load(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	if err := mc.session.Load(header.Filename, header.Size, file); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mc.stateResponse())
}

func (mc *MazeController) save(ctx *gin.Context) {
	snapshot, err := mc.session.Save(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snapshot.Name))
	ctx.Header("X-Snapshot-ID", snapshot.ID.String())
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(snapshot.Text))
}

func (mc *MazeController) recent(ctx *gin.Context) {
	limit := int64(defaultRecentLimit)
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	snapshots, err := mc.session.RecentSnapshots(ctx.Request.Context(), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snapshots)
}

func (mc *MazeController) loadSnapshot(ctx *gin.Context) {
	IDString := ctx.Params.ByName("ID")
	ID, err := uuid.Parse(IDString)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot id"})
		return
	}

	if err := mc.session.LoadSnapshot(ctx.Request.Context(), ID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mc.stateResponse())
}

func (mc *MazeController) stateResponse() *StateResponse {
	inputs, text := mc.session.State()
	return &StateResponse{
		Inputs: inputs,
		Text:   text,
	}
}

// respondError writes err with the status of its kind.
func respondError(ctx *gin.Context, err error) {
	ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrStaleResponse):
		return http.StatusConflict
	case errors.Is(err, remote.ErrTransport),
		errors.Is(err, remote.ErrBadResponse),
		errors.Is(err, maze.ErrWallShape):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrNoSnapshotStore):
		return http.StatusServiceUnavailable
	case errors.Is(err, repo.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, codec.ErrMalformedWallMatrix),
		errors.Is(err, maze.ErrInvalidDimension),
		errors.Is(err, codec.ErrFileExtension),
		errors.Is(err, codec.ErrFileTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
