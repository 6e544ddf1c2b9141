package adapters

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"

	"apt-sources/internal/deb822"
	"apt-sources/internal/ports"
)

const (
	defaultLockTimeout = 5 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
	defaultSourcesMode = 0644
)

// DefaultSourcesDir is where APT reads .sources files from.
const DefaultSourcesDir = "/etc/apt/sources.list.d"

// DefaultLockPath places the lock next to the sources directory, in its
// parent: APT never reads it there and, for /etc/apt, only root can create
// or hold it.
func DefaultLockPath(sourcesDir string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(sourcesDir)), "apt-sources.lock")
}

type SourcesFileAdapter struct {
	// LockPath enables an advisory lock around writes when set.
	LockPath    string
	LockTimeout time.Duration
	// Atomic writes go through a temporary file renamed over the target.
	Atomic bool
}

func NewSourcesFileAdapter(lockPath string, atomic bool) SourcesFileAdapter {
	return SourcesFileAdapter{
		LockPath:    lockPath,
		LockTimeout: defaultLockTimeout,
		Atomic:      atomic,
	}
}

func (a SourcesFileAdapter) Read(ctx context.Context, path string) (*deb822.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sources file path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError(err, "failed to read sources file "+path)
	}
	doc, err := deb822.ParseBytes(data)
	if err != nil {
		var parseErr *deb822.ParseError
		if errors.As(err, &parseErr) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid sources file %s: %s", path, parseErr.Error())).
				WithCause(err)
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse sources file " + path).
			WithCause(err)
	}
	return doc, nil
}

func (a SourcesFileAdapter) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sources file path is empty")
	}
	unlock, err := a.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if a.Atomic {
		err = writeFileAtomic(path, data)
	} else {
		err = os.WriteFile(path, data, defaultSourcesMode)
	}
	if err != nil {
		return ioError(err, "failed to write sources file "+path)
	}
	log.Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Bool("atomic", a.Atomic).
		Msg("sources file written")
	return nil
}

func (a SourcesFileAdapter) lock(ctx context.Context) (func(), error) {
	if strings.TrimSpace(a.LockPath) == "" {
		return func() {}, nil
	}
	timeout := a.LockTimeout
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fileLock := flock.New(a.LockPath)
	locked, err := fileLock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil || !locked {
		if ctx.Err() == nil && errors.Is(lockCtx.Err(), context.DeadlineExceeded) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("sources lock is held by another process: " + a.LockPath)
		}
		if err == nil {
			err = fmt.Errorf("lock not acquired")
		}
		return nil, ioError(err, "failed to acquire sources lock "+a.LockPath)
	}
	return func() {
		if err := fileLock.Unlock(); err != nil {
			log.Warn().Err(err).Str("lock", a.LockPath).Msg("failed to release sources lock")
		}
	}, nil
}

// writeFileAtomic writes to a temporary file next to path and renames it
// over path. The mode of an existing file is kept. A symlinked path is
// resolved first so the link stays in place and its target is replaced.
func writeFileAtomic(path string, data []byte) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	mode := os.FileMode(defaultSourcesMode)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

var _ ports.SourceFilePort = SourcesFileAdapter{}
