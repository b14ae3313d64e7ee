package transfer

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"fotosort/internal/config"
	"fotosort/internal/errors"
	"fotosort/internal/log"
)

// Engine performs the filesystem side of triage: copying or moving a file
// into a slot folder and deleting it in place.
type Engine struct {
	cfg *config.Config
}

// New creates a transfer engine for the given configuration.
func New(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.New()
	}
	return &Engine{cfg: cfg}
}

// SlotDir returns the folder slot n maps to.
func (e *Engine) SlotDir(slot int) (string, error) {
	return e.cfg.SlotDir(slot)
}

// Destination returns where src would land in slot before collision
// handling.
func (e *Engine) Destination(src string, slot int) (string, error) {
	dir, err := e.SlotDir(slot)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(src)), nil
}

// Copy copies src into slot and returns the path written.
func (e *Engine) Copy(src string, slot int) (string, error) {
	dest, same, err := e.prepare(src, slot, errors.CopyFailed)
	if err != nil || same {
		return dest, err
	}

	log.Debugf("Copying %s to %s", src, dest)
	if err := copyFile(src, dest); err != nil {
		return "", errors.NewFileError("failed to copy file", src, errors.CopyFailed, err)
	}
	return dest, nil
}

// Move moves src into slot and returns the new path. A rename that crosses
// filesystems falls back to copy and remove.
func (e *Engine) Move(src string, slot int) (string, error) {
	dest, same, err := e.prepare(src, slot, errors.MoveFailed)
	if err != nil || same {
		return dest, err
	}

	log.Debugf("Moving %s to %s", src, dest)
	err = os.Rename(src, dest)
	if err == nil {
		return dest, nil
	}
	if !isCrossDevice(err) {
		return "", errors.NewFileError("failed to move file", src, errors.MoveFailed, err)
	}

	log.Debugf("Rename crossed devices, copying %s instead", src)
	if err := copyFile(src, dest); err != nil {
		return "", errors.NewFileError("failed to move file", src, errors.MoveFailed, err)
	}
	if err := os.Remove(src); err != nil {
		// Leave exactly one copy behind.
		if rmErr := os.Remove(dest); rmErr != nil {
			log.Warnf("Could not remove partial move target %s: %v", dest, rmErr)
		}
		return "", errors.NewFileError("failed to remove source after copy", src, errors.MoveFailed, err)
	}
	return dest, nil
}

// Delete removes path from storage.
func (e *Engine) Delete(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return errors.NewFileError("failed to delete file", path, errors.DeleteFailed, err)
	}
	if info.IsDir() {
		return errors.NewFileError("refusing to delete directory", path, errors.DeleteFailed, nil)
	}
	if err := os.Remove(path); err != nil {
		return errors.NewFileError("failed to delete file", path, errors.DeleteFailed, err)
	}
	return nil
}

// prepare validates src, makes sure the slot folder exists and resolves the
// final destination. same is true when src already sits at the destination.
func (e *Engine) prepare(src string, slot int, kind errors.ErrorKind) (dest string, same bool, err error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", false, errors.NewFileError("source file error", src, kind, err)
	}
	if srcInfo.IsDir() {
		return "", false, errors.NewFileError("cannot transfer directory as file", src, kind, nil)
	}

	dir, err := e.SlotDir(slot)
	if err != nil {
		return "", false, err
	}
	if err := e.ensureDir(dir); err != nil {
		return "", false, err
	}

	dest = filepath.Join(dir, filepath.Base(src))
	if sameFile(src, dest) {
		log.Debug("Source and destination are the same, skipping", src)
		return dest, true, nil
	}

	final, err := e.handleCollision(src, dest)
	if err != nil {
		return "", false, err
	}
	return final, false, nil
}

func (e *Engine) ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.NewFileError("destination is not a directory", dir, errors.DirCreateFailed, nil)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return errors.NewFileError("failed to access destination directory", dir, errors.DirCreateFailed, err)
	}
	if !e.cfg.Settings.CreateDirs {
		return errors.NewFileError("destination directory does not exist", dir, errors.DirCreateFailed, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewFileError("failed to create destination directory", dir, errors.DirCreateFailed, err)
	}
	log.Info("Created folder %s", dir)
	return nil
}

// handleCollision implements collision resolution strategies and returns the
// final destination path.
func (e *Engine) handleCollision(src, dest string) (string, error) {
	_, err := os.Lstat(dest)
	if os.IsNotExist(err) {
		return dest, nil
	}
	if err != nil {
		return "", errors.NewFileError("error checking destination", dest, errors.DestinationExists, err)
	}

	switch e.cfg.Settings.Collision {
	case config.CollisionSkip:
		return "", errors.NewFileError("destination already exists", dest, errors.DestinationExists, nil)
	case config.CollisionOverwrite:
		log.Warnf("Overwriting %s with %s", dest, src)
		return dest, nil
	default:
		return findUniqueDestName(dest)
	}
}

// findUniqueDestName finds a unique filename by adding counter to the basename
func findUniqueDestName(originalPath string) (string, error) {
	ext := filepath.Ext(originalPath)
	base := strings.TrimSuffix(originalPath, ext)

	for counter := 1; counter <= 1000; counter++ {
		newName := fmt.Sprintf("%s_(%d)%s", base, counter, ext)
		if _, err := os.Lstat(newName); os.IsNotExist(err) {
			log.Debugf("Renaming destination to %s due to collision", newName)
			return newName, nil
		}
	}

	return "", errors.NewFileError("failed to find unique name after 1000 attempts",
		originalPath, errors.DestinationExists, nil)
}

// copyFile writes src to a temporary file beside dest and renames it into
// place, so dest is never left half written.
func copyFile(src, dest string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".fotosort-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}

func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if stderrors.As(err, &linkErr) {
		return stderrors.Is(linkErr.Err, syscall.EXDEV)
	}
	return false
}
