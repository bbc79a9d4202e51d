package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Defaults applied to zero-valued Options fields.
const (
	DefaultDirectory = "events"
	DefaultMaxSizeMB = 5
)

// DefaultAllowedTypes are the image MIME types accepted when Options.AllowedTypes is empty.
var DefaultAllowedTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// Options configures where uploads land and what is accepted.
type Options struct {
	// Directory is the category folder under <public root>/images.
	Directory    string
	AllowedTypes []string
	MaxSizeMB    float64
}

func (o Options) withDefaults() Options {
	if o.Directory == "" {
		o.Directory = DefaultDirectory
	}
	if len(o.AllowedTypes) == 0 {
		o.AllowedTypes = DefaultAllowedTypes
	}
	if o.MaxSizeMB <= 0 {
		o.MaxSizeMB = DefaultMaxSizeMB
	}
	return o
}

// File is an uploaded file as declared by the client. ContentType is the declared
// type; it is not sniffed from Content.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     []byte
}

// Error is returned for every rejected or failed upload. Message is safe to show to
// clients.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Uploader validates image uploads and writes them below a public static root.
type Uploader struct {
	root string
	opts Options
	now  func() time.Time
}

// New returns an Uploader writing to <publicRoot>/images/<opts.Directory>.
func New(publicRoot string, opts Options) *Uploader {
	return &Uploader{
		root: publicRoot,
		opts: opts.withDefaults(),
		now:  time.Now,
	}
}

// WithClock replaces the clock used to timestamp filenames.
func (u *Uploader) WithClock(now func() time.Time) *Uploader {
	u.now = now
	return u
}

// Options returns the effective options, defaults included.
func (u *Uploader) Options() Options {
	return u.opts
}

// Upload validates f and writes it to disk, returning the public path
// /images/<directory>/<millis>-<sanitized name>.
func (u *Uploader) Upload(_ context.Context, f File) (string, error) {
	if f.Size == 0 {
		return "", &Error{Message: "No file provided"}
	}
	if !u.allowed(f.ContentType) {
		return "", &Error{Message: "Invalid file type. Allowed: " + strings.Join(u.opts.AllowedTypes, ", ")}
	}
	if float64(f.Size)/(1024*1024) > u.opts.MaxSizeMB {
		return "", &Error{Message: fmt.Sprintf("File size exceeds %gMB limit", u.opts.MaxSizeMB)}
	}

	filename := fmt.Sprintf("%d-%s", u.now().UnixMilli(), SanitizeName(f.Name))
	dir := filepath.Join(u.root, "images", u.opts.Directory)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &Error{Message: err.Error(), Err: err}
	}
	if err := os.WriteFile(filepath.Join(dir, filename), f.Content, 0o644); err != nil {
		return "", &Error{Message: err.Error(), Err: err}
	}
	return path.Join("/images", u.opts.Directory, filename), nil
}

// Remove deletes a file previously returned by Upload. Paths outside the upload
// directory are refused; a file that is already gone is not an error.
func (u *Uploader) Remove(_ context.Context, publicPath string) error {
	prefix := path.Join("/images", u.opts.Directory) + "/"
	name, ok := strings.CutPrefix(publicPath, prefix)
	if !ok || name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("refusing to remove %q: not an upload path", publicPath)
	}
	err := os.Remove(filepath.Join(u.root, "images", u.opts.Directory, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

func (u *Uploader) allowed(contentType string) bool {
	for _, t := range u.opts.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// SanitizeName replaces every character outside [a-zA-Z0-9.-] with a hyphen and
// lowercases the result.
func SanitizeName(name string) string {
	return strings.ToLower(unsafeNameChars.ReplaceAllString(name, "-"))
}
