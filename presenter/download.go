package presenter

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DownloadFileName    = "blog-post.md"
	DownloadContentType = "text/markdown; charset=utf-8"
)

// Download is a transient file holding a post for export. It must be
// released once the save has been triggered; Release is safe to call more
// than once.
type Download struct {
	Name        string
	ContentType string
	ModTime     time.Time
	Size        int64

	file   *os.File
	logger *logrus.Logger
	once   sync.Once
	err    error
}

// DownloadAsFile acquires a temp file containing content, positioned at the
// start for reading.
func (p *Presenter) DownloadAsFile(content string) (*Download, error) {
	f, err := os.CreateTemp(p.tempDir, "blog-post-*.md")
	if err != nil {
		return nil, errors.Wrap(err, "creating download file")
	}

	d := &Download{
		Name:        DownloadFileName,
		ContentType: DownloadContentType,
		ModTime:     time.Now(),
		Size:        int64(len(content)),
		file:        f,
		logger:      p.logger,
	}

	if _, err := io.WriteString(f, content); err != nil {
		d.Release()
		return nil, errors.Wrap(err, "writing download file")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		d.Release()
		return nil, errors.Wrap(err, "rewinding download file")
	}

	p.logger.WithFields(logrus.Fields{
		"path": f.Name(),
		"size": d.Size,
	}).Debug("Download file acquired")

	return d, nil
}

func (d *Download) Read(b []byte) (int, error) {
	return d.file.Read(b)
}

func (d *Download) Seek(offset int64, whence int) (int64, error) {
	return d.file.Seek(offset, whence)
}

// SaveTo copies the download into dir under its fixed name and returns the
// written path.
func (d *Download) SaveTo(dir string) (string, error) {
	if _, err := d.file.Seek(0, io.SeekStart); err != nil {
		return "", errors.Wrap(err, "rewinding download file")
	}

	path := filepath.Join(dir, d.Name)
	out, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "creating output file")
	}
	if _, err := io.Copy(out, d.file); err != nil {
		out.Close()
		return "", errors.Wrap(err, "writing output file")
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrap(err, "closing output file")
	}
	return path, nil
}

// Release closes and removes the backing file.
func (d *Download) Release() error {
	d.once.Do(func() {
		name := d.file.Name()
		closeErr := d.file.Close()
		removeErr := os.Remove(name)
		switch {
		case removeErr != nil && !os.IsNotExist(removeErr):
			d.err = errors.Wrap(removeErr, "removing download file")
		case closeErr != nil:
			d.err = errors.Wrap(closeErr, "closing download file")
		}
		if d.err != nil {
			d.logger.WithError(d.err).WithField("path", name).Error("Failed to release download file")
			return
		}
		d.logger.WithField("path", name).Debug("Download file released")
	})
	return d.err
}
