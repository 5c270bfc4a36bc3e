package mazeapi

// generateRequest asks the service for a new maze.
type generateRequest struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// generateResponse carries wall rows as decimal bit patterns.
type generateResponse struct {
	Verticals   []string `json:"verticals"`
	Horizontals []string `json:"horizontals"`
}

// solveRequest carries the maze and its endpoints as [row, col] pairs.
type solveRequest struct {
	Rows        int      `json:"rows"`
	Cols        int      `json:"cols"`
	Start       [2]int   `json:"start"`
	End         [2]int   `json:"end"`
	Verticals   []string `json:"verticals"`
	Horizontals []string `json:"horizontals"`
}

// solveResponse is the path from start to end, start first.
type solveResponse struct {
	Pass [][2]int `json:"pass"`
}
