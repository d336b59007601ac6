package upload

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/climforge/forcingval/internal/common/apperrors"
)

var ErrUpload apperrors.Error = apperrors.New("upload failed")

// Uploader delivers one local file to a destination-relative path.
// Implementations own connection handling; callers own tree walking
// and fan-out.
type Uploader interface {
	Upload(ctx context.Context, localPath, destPath string) error
	String() string
}

// LocalStagingUploader places files under a local staging directory,
// preserving the destination-relative layout. A file already present
// at the destination is skipped, not overwritten: re-running an upload
// must not clobber what a previous run delivered.
type LocalStagingUploader struct {
	Dir string
}

func (u *LocalStagingUploader) Upload(ctx context.Context, localPath, destPath string) error {
	if err := ctx.Err(); err != nil {
		return ErrUpload.Err(err)
	}

	target := filepath.Join(u.Dir, destPath)
	if _, err := os.Stat(target); err == nil {
		log.Warn().Str("file", destPath).Msg("already staged, skipping. Use a different staging directory to upload again")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return ErrUpload.MsgErr("could not create staging directories", err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return ErrUpload.MsgErr("could not open "+localPath, err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return ErrUpload.MsgErr("could not create "+target, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return ErrUpload.MsgErr("could not copy "+localPath, err)
	}
	log.Info().Str("file", destPath).Msg("staged")
	return nil
}

func (u *LocalStagingUploader) String() string {
	return fmt.Sprintf("LocalStagingUploader(dir=%s)", u.Dir)
}

// FindTreeFiles returns the files under root whose names match pattern
// (a filepath.Match pattern applied to the base name), sorted by walk
// order.
func FindTreeFiles(root, pattern string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, ErrUpload.MsgErr("could not walk "+root, err)
	}
	return files, nil
}

// UploadTree uploads every file under treeRoot matching pattern,
// preserving the tree-relative layout, fanning out over nWorkers. One
// failed file does not stop the rest; all failures come back in one
// aggregate error.
func UploadTree(ctx context.Context, uploader Uploader, treeRoot, pattern string, nWorkers int) error {
	files, err := FindTreeFiles(treeRoot, pattern)
	if err != nil {
		return err
	}
	log.Info().
		Int("files", len(files)).
		Str("uploader", uploader.String()).
		Msg("uploading tree")

	if nWorkers < 1 {
		nWorkers = 1
	}
	jobs := make(chan string)
	errs := make([]error, len(files))
	index := make(map[string]int, len(files))
	for i, f := range files {
		index[f] = i
	}

	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				rel, err := filepath.Rel(treeRoot, file)
				if err == nil {
					err = uploader.Upload(ctx, file, rel)
				}
				if err != nil {
					log.Error().Err(err).Str("file", file).Msg("upload failed")
					errs[index[file]] = fmt.Errorf("%s: %w", file, err)
				}
			}
		}()
	}

loop:
	for _, file := range files {
		select {
		case <-ctx.Done():
			break loop
		case jobs <- file:
		}
	}
	close(jobs)
	wg.Wait()

	var failed []string
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err.Error())
		}
	}
	if len(failed) > 0 {
		return ErrUpload.Msg(fmt.Sprintf(
			"%d of %d files failed to upload:\n%s",
			len(failed), len(files), strings.Join(failed, "\n")))
	}
	return ctx.Err()
}
