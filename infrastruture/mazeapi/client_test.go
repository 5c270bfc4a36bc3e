package mazeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beka-birhanu/vinom-mazeview/maze"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

func newServer(t *testing.T, register func(r *gin.Engine)) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/", Logger: nopLogger{}})
	require.NoError(t, err)
	return c
}

func TestGenerate(t *testing.T) {
	t.Run("Parses decimal bit patterns", func(t *testing.T) {
		var got generateRequest
		c := newServer(t, func(r *gin.Engine) {
			r.POST("/generate", func(ctx *gin.Context) {
				assert.NoError(t, ctx.ShouldBindJSON(&got))
				ctx.JSON(http.StatusOK, gin.H{
					"verticals":   []string{"0", "1180591620717411303425", "5"},
					"horizontals": []string{"2", "0", "999"},
				})
			})
		})

		v, h, err := c.Generate(context.Background(), 3, 50)
		require.NoError(t, err)
		assert.Equal(t, generateRequest{Rows: 3, Cols: 50}, got)
		require.Len(t, v, 3)
		require.Len(t, h, 2, "trailing horizontal row is dropped")

		set, _ := v[1].Test(70)
		assert.True(t, set)
		assert.Equal(t, "2", h[0].String())
	})

	t.Run("Non success status", func(t *testing.T) {
		c := newServer(t, func(r *gin.Engine) {
			r.POST("/generate", func(ctx *gin.Context) {
				ctx.String(http.StatusBadRequest, "Invalid rows or cols")
			})
		})

		_, _, err := c.Generate(context.Background(), 2, 2)
		assert.ErrorIs(t, err, ErrCannotGenerate)
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("Missing rows", func(t *testing.T) {
		c := newServer(t, func(r *gin.Engine) {
			r.POST("/generate", func(ctx *gin.Context) {
				ctx.JSON(http.StatusOK, gin.H{"verticals": []string{"0"}, "horizontals": []string{}})
			})
		})

		_, _, err := c.Generate(context.Background(), 2, 2)
		assert.ErrorIs(t, err, ErrBadResponse)
	})

	t.Run("Bad bit pattern", func(t *testing.T) {
		c := newServer(t, func(r *gin.Engine) {
			r.POST("/generate", func(ctx *gin.Context) {
				ctx.JSON(http.StatusOK, gin.H{"verticals": []string{"x"}, "horizontals": []string{}})
			})
		})

		_, _, err := c.Generate(context.Background(), 1, 2)
		assert.ErrorIs(t, err, ErrBadResponse)
	})

	t.Run("Invalid dimensions never reach the wire", func(t *testing.T) {
		called := false
		c := newServer(t, func(r *gin.Engine) {
			r.POST("/generate", func(ctx *gin.Context) { called = true })
		})

		_, _, err := c.Generate(context.Background(), 0, 2)
		assert.ErrorIs(t, err, maze.ErrInvalidDimension)
		assert.False(t, called)
	})
}

func TestSolve(t *testing.T) {
	m, err := maze.New(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.ReplaceWalls(
		[]maze.Bitset{{}, maze.NewBitset([]bool{true})},
		[]maze.Bitset{maze.NewBitset([]bool{false, true})},
	))
	require.NoError(t, m.SetEnd(1, 0))

	t.Run("Sends the maze and reads the pass", func(t *testing.T) {
		var got solveRequest
		c := newServer(t, func(r *gin.Engine) {
			r.POST("/pass", func(ctx *gin.Context) {
				assert.NoError(t, ctx.ShouldBindJSON(&got))
				ctx.JSON(http.StatusOK, gin.H{"pass": [][2]int{{0, 0}, {1, 0}}})
			})
		})

		path, err := c.Solve(context.Background(), m)
		require.NoError(t, err)
		assert.Equal(t, []maze.CellPosition{{Row: 0, Col: 0}, {Row: 1, Col: 0}}, path)
		assert.Equal(t, solveRequest{
			Rows: 2, Cols: 2,
			Start: [2]int{0, 0}, End: [2]int{1, 0},
			Verticals:   []string{"0", "1"},
			Horizontals: []string{"2"},
		}, got)
	})

	t.Run("Non success status", func(t *testing.T) {
		c := newServer(t, func(r *gin.Engine) {
			r.POST("/pass", func(ctx *gin.Context) { ctx.Status(http.StatusInternalServerError) })
		})

		_, err := c.Solve(context.Background(), m)
		assert.ErrorIs(t, err, ErrCannotSolve)
	})

	t.Run("Canceled context", func(t *testing.T) {
		c := newServer(t, func(r *gin.Engine) {
			r.POST("/pass", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"pass": nil}) })
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Solve(ctx, m)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{Logger: nopLogger{}})
	assert.Error(t, err)
	_, err = NewClient(Config{BaseURL: "http://localhost"})
	assert.Error(t, err)
}
