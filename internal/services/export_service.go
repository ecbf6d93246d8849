package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"go.uber.org/zap"
)

// ExportFile describes one downloadable artifact.
type ExportFile struct {
	Name        string `json:"name"`
	SizeBytes   int64  `json:"sizeBytes"`
	ContentType string `json:"contentType"`
}

// ExportService streams static report artifacts (SQL script, PDF report,
// notebook) from a configured directory. Bytes pass through unchanged.
type ExportService interface {
	List() ([]ExportFile, error)
	Resolve(name string) (path, contentType string, err error)
}

type ExportServiceImpl struct {
	logger *zap.Logger
	dir    string
}

func NewExportService(logger *zap.Logger, dir string) ExportService {
	return &ExportServiceImpl{logger: logger, dir: dir}
}

func (s *ExportServiceImpl) List() ([]ExportFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("export directory unreadable", zap.String("dir", s.dir), zap.Error(err))
		return []ExportFile{}, nil // absent artifacts are an empty catalog, not a fault
	}
	files := make([]ExportFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, ExportFile{
			Name:        e.Name(),
			SizeBytes:   info.Size(),
			ContentType: contentTypeFor(e.Name()),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (s *ExportServiceImpl) Resolve(name string) (string, string, error) {
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", "", pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid file name", nil)
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", "", pkg.NewAppError(pkg.ErrRecordNotFoundCode, fmt.Sprintf("artifact %q not found", name), err)
	}
	return path, contentTypeFor(name), nil
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".sql":
		return "text/plain"
	case ".pdf":
		return "application/pdf"
	case ".ipynb", ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
