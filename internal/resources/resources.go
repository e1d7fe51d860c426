// Package resources resolves on-disk locations of bundled assets and
// user uploads.
package resources

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var ErrOutsideUploadDir = errors.New("path escapes upload directory")

type Resources struct {
	root string
	now  func() time.Time
}

func New(rootDir string) (*Resources, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve root dir %q: %w", rootDir, err)
	}
	return &Resources{root: filepath.Clean(abs), now: time.Now}, nil
}

func (r *Resources) RootDir() string { return r.root }

func (r *Resources) AssetsDir() string { return filepath.Join(r.root, "assets") }

func (r *Resources) I18nDir() string { return filepath.Join(r.AssetsDir(), "i18n") }

func (r *Resources) AssetFile(rel string) ([]byte, error) {
	return os.ReadFile(filepath.Join(r.AssetsDir(), filepath.FromSlash(rel)))
}

func (r *Resources) FileUploadDir() string { return filepath.Join(r.root, "uploaded") }

// PublicFileUploadPath turns an absolute path under the upload dir into the
// slash-separated relative form exposed over HTTP.
func (r *Resources) PublicFileUploadPath(abs string) (string, error) {
	rel, err := filepath.Rel(r.FileUploadDir(), filepath.Clean(abs))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideUploadDir
	}
	return filepath.ToSlash(rel), nil
}

func (r *Resources) FromPublicFileUploadPath(public string) string {
	return filepath.Join(r.FileUploadDir(), filepath.FromSlash(public))
}

// ResolveUpload maps a public path to an absolute one, refusing anything that
// would land outside the upload dir.
func (r *Resources) ResolveUpload(public string) (string, error) {
	slashed := strings.ReplaceAll(public, "\\", "/")
	for _, seg := range strings.Split(slashed, "/") {
		if seg == ".." {
			return "", ErrOutsideUploadDir
		}
	}
	clean := strings.TrimPrefix(path.Clean("/"+slashed), "/")
	if clean == "" {
		return "", ErrOutsideUploadDir
	}
	abs := r.FromPublicFileUploadPath(clean)
	if !strings.HasPrefix(abs, r.FileUploadDir()+string(filepath.Separator)) {
		return "", ErrOutsideUploadDir
	}
	return abs, nil
}

// FileNameBuilder returns the absolute destination for an upload:
// <upload>/<appDir>/users/<id|unknown>/<unix ms>-<name>. Parent
// directories are created.
func (r *Resources) FileNameBuilder(appDir string, userID *int64, originalName string) (string, error) {
	userDir := "unknown"
	if userID != nil {
		userDir = fmt.Sprintf("%d", *userID)
	}
	name := filepath.Base(filepath.Clean("/" + originalName))
	if name == "/" || name == "." {
		return "", fmt.Errorf("invalid file name %q", originalName)
	}
	dir := filepath.Join(r.FileUploadDir(), appDir, "users", userDir)
	if !strings.HasPrefix(dir, r.FileUploadDir()+string(filepath.Separator)) {
		return "", ErrOutsideUploadDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	return filepath.Join(dir, fmt.Sprintf("%d-%s", r.now().UnixMilli(), name)), nil
}
