package game

const (
	BOARD_WIDTH  = 8
	BOARD_DEPTH  = 8
	BOARD_LAYERS = 3
	LAYER_SIZE   = BOARD_WIDTH * BOARD_DEPTH
	BOARD_SIZE   = LAYER_SIZE * BOARD_LAYERS
)

// Vector is a position (or a displacement) on the 8x8x3 grid.
// X runs along the files, Y along the rows and Z across the layers.
type Vector struct {
	X int
	Y int
	Z int
}

func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector) Scale(n int) Vector {
	return Vector{v.X * n, v.Y * n, v.Z * n}
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// VectorToIndex maps a grid position to its linear index. Axes wrap, so
// callers check VectorInBounds first when wrapping is not wanted.
func VectorToIndex(v Vector) int {
	return mod(v.X, BOARD_WIDTH) + mod(v.Y, BOARD_DEPTH)*BOARD_WIDTH + mod(v.Z, BOARD_LAYERS)*LAYER_SIZE
}

func IndexToVector(index int) Vector {
	return Vector{
		X: index % BOARD_WIDTH,
		Y: index / BOARD_WIDTH % BOARD_DEPTH,
		Z: index / LAYER_SIZE,
	}
}

func IndexInBounds(index int) bool {
	return index >= 0 && index < BOARD_SIZE
}

func VectorInBounds(v Vector) bool {
	return v.X >= 0 && v.X < BOARD_WIDTH &&
		v.Y >= 0 && v.Y < BOARD_DEPTH &&
		v.Z >= 0 && v.Z < BOARD_LAYERS
}
