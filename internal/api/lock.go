package api

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/logging"
)

const lockFileName = "somscan.lock"

// sessionLock enforces a single active poll session per state directory.
type sessionLock struct {
	path string
	lock *flock.Flock
}

func acquireSessionLock(stateDir string) (*sessionLock, error) {
	path := filepath.Join(stateDir, lockFileName)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another somscan session is already polling")
	}
	return &sessionLock{path: path, lock: lock}, nil
}

func (l *sessionLock) release(logger *slog.Logger) {
	if l == nil {
		return
	}
	if err := l.lock.Unlock(); err != nil && logger != nil {
		logger.Warn("failed to release session lock",
			logging.Error(err),
			logging.String("path", l.path))
	}
}
