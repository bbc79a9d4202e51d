// Package intake turns multipart event submissions into allow-listed drafts.
package intake

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"devevents/internal/adapters/upload"
	"devevents/internal/domain"
)

// ErrInvalidForm is returned when the request body is not readable multipart data.
var ErrInvalidForm = errors.New("Invalid form data")

const imageField = "image"

// listFields accumulate repeated values in submission order.
var listFields = map[string]bool{"agenda": true, "tags": true}

// ImageStore stores uploaded images and removes them again on rollback.
type ImageStore interface {
	Upload(ctx context.Context, f upload.File) (string, error)
	Remove(ctx context.Context, publicPath string) error
}

// Record is the typed result of parsing a submission. Scalar keys keep their last
// value; agenda and tags keep every value in order.
type Record struct {
	values   map[string]string
	lists    map[string][]string
	uploaded string
	images   ImageStore
}

func newRecord(images ImageStore) *Record {
	return &Record{
		values: make(map[string]string),
		lists:  make(map[string][]string),
		images: images,
	}
}

// Value returns the last scalar value submitted for key.
func (r *Record) Value(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// List returns all values submitted for a list key.
func (r *Record) List(key string) []string {
	return r.lists[key]
}

// UploadedImage is the public path of the image written while parsing, if any.
func (r *Record) UploadedImage() string {
	return r.uploaded
}

// Discard removes the image written while parsing. It is a no-op when nothing was
// uploaded.
func (r *Record) Discard(ctx context.Context) error {
	if r.uploaded == "" {
		return nil
	}
	if err := r.images.Remove(ctx, r.uploaded); err != nil {
		return err
	}
	r.uploaded = ""
	return nil
}

// Project applies the allow-list: only event attributes are copied into the draft.
// Scalars are trimmed; blank list items are dropped.
func (r *Record) Project() *domain.EventDraft {
	s := func(key string) string { return strings.TrimSpace(r.values[key]) }
	return &domain.EventDraft{
		Title:       s("title"),
		Description: s("description"),
		Overview:    s("overview"),
		Image:       s(imageField),
		Venue:       s("venue"),
		Location:    s("location"),
		Date:        s("date"),
		Time:        s("time"),
		Mode:        s("mode"),
		Audience:    s("audience"),
		Agenda:      r.compactList("agenda"),
		Organizer:   s("organizer"),
		Tags:        r.compactList("tags"),
	}
}

// compactList returns nil when key was never submitted and a non-nil, possibly
// empty, slice otherwise.
func (r *Record) compactList(key string) []string {
	values, ok := r.lists[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Parser reads event submissions part by part.
type Parser struct {
	images ImageStore
}

// NewParser returns a Parser that hands image parts to images.
func NewParser(images ImageStore) *Parser {
	return &Parser{images: images}
}

// Parse consumes every part of mr in order. An image upload failure aborts the parse
// and is returned as is (an *upload.Error); malformed input yields ErrInvalidForm.
// No partial record is returned on error, and an image already written is removed.
func (p *Parser) Parse(ctx context.Context, mr *multipart.Reader) (*Record, error) {
	rec := newRecord(p.images)
	if err := p.parse(ctx, mr, rec); err != nil {
		_ = rec.Discard(ctx)
		return nil, err
	}
	return rec, nil
}

func (p *Parser) parse(ctx context.Context, mr *multipart.Reader, rec *Record) error {
	for {
		part, err := mr.NextPart()
		// Only a bare io.EOF marks the closing boundary; a truncated body wraps it.
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return ErrInvalidForm
		}
		err = p.consume(ctx, part, rec)
		part.Close()
		if err != nil {
			return err
		}
	}
}

func (p *Parser) consume(ctx context.Context, part *multipart.Part, rec *Record) error {
	key := part.FormName()
	if key == "" {
		return nil
	}
	content, err := io.ReadAll(part)
	if err != nil {
		return ErrInvalidForm
	}

	if key == imageField && isFilePart(part) {
		path, err := p.images.Upload(ctx, upload.File{
			Name:        part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Size:        int64(len(content)),
			Content:     content,
		})
		if err != nil {
			return err
		}
		// A second image part replaces the first.
		if rec.uploaded != "" {
			_ = p.images.Remove(ctx, rec.uploaded)
		}
		rec.uploaded = path
		rec.values[key] = path
		return nil
	}

	if listFields[key] {
		rec.lists[key] = append(rec.lists[key], string(content))
		return nil
	}
	// Once a file was written, the image value stays its public path.
	if key == imageField && rec.uploaded != "" {
		return nil
	}
	rec.values[key] = string(content)
	return nil
}

// isFilePart reports whether the part was sent as a file, including the empty file
// browsers submit when no file is chosen.
func isFilePart(part *multipart.Part) bool {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return false
	}
	_, ok := params["filename"]
	return ok
}
