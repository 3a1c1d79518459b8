package repositories

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	chezzerrors "github.com/sgatu/chezz3d/errors"
	"github.com/sgatu/chezz3d/game"
	"github.com/sgatu/chezz3d/models"
)

// SaveFileRepository keeps boards as <dir>/<name>.txt files. The first line
// is the hex board state and the second names the side to move. Files
// without a second line, and finished games, load with white to move.
type SaveFileRepository struct {
	dir string
}

func NewSaveFileRepository(dir string) models.BoardSource {
	return &SaveFileRepository{dir: dir}
}

func (sfr *SaveFileRepository) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid save name %q", name)
	}
	return filepath.Join(sfr.dir, name+".txt"), nil
}

func (sfr *SaveFileRepository) LoadBoard(name string) (*game.Board, error) {
	path, err := sfr.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("save %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 || len(fields) > 2 {
		return nil, &chezzerrors.MalformedStateError{Reason: fmt.Sprintf("save %s: expected a board and a side to move", name)}
	}
	turn := game.WHITE_PLAYER
	if len(fields) == 2 {
		var ok bool
		if turn, ok = game.ParsePlayer(fields[1]); !ok {
			return nil, &chezzerrors.MalformedStateError{Reason: fmt.Sprintf("save %s: unknown side to move %q", name, fields[1])}
		}
	}
	return game.ParseBoard(fields[0], turn)
}

func (sfr *SaveFileRepository) SaveBoard(name string, board *game.Board) error {
	path, err := sfr.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(sfr.dir, 0o755); err != nil {
		return err
	}
	content := board.Hex() + "\n"
	if turn := board.Turn(); turn != game.UNKNOWN_PLAYER {
		content += turn.String() + "\n"
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
