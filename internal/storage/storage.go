// Package storage proxies uploads and deletes to object storage and validates files before
// they leave the service.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ObjectStorage stores public objects addressed by key.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromURL(url string) (string, bool)
}

type Kind string

const (
	KindImage    Kind = "image"
	KindDocument Kind = "document"
)

const (
	DefaultMaxImageSize    int64 = 5 << 20
	DefaultMaxDocumentSize int64 = 20 << 20

	// sniffLen is how many leading bytes are read to detect the content type.
	sniffLen = 3072
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file is too large")
	ErrUnsupportedType = errors.New("file type is not allowed")
	ErrInvalidFolder   = errors.New("folder may only contain lowercase letters, digits and dashes")
	ErrUnknownKind     = errors.New("unknown upload kind")
	ErrForeignURL      = errors.New("url does not belong to this storage")
)

var allowedTypes = map[Kind]map[string]string{
	KindImage: {
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	},
	KindDocument: {
		"application/pdf":    ".pdf",
		"application/msword": ".doc",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
		"application/vnd.ms-excel": ".xls",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
		"application/x-ole-storage": ".doc",
	},
}

var folderRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}$`)

// Limits caps upload sizes per kind.
type Limits struct {
	MaxImageSize    int64
	MaxDocumentSize int64
}

func (l Limits) max(kind Kind) int64 {
	switch kind {
	case KindImage:
		if l.MaxImageSize > 0 {
			return l.MaxImageSize
		}
		return DefaultMaxImageSize
	case KindDocument:
		if l.MaxDocumentSize > 0 {
			return l.MaxDocumentSize
		}
		return DefaultMaxDocumentSize
	}
	return 0
}

// File is a validated upload ready to be stored.
type File struct {
	Kind        Kind
	ContentType string
	Extension   string
	Size        int64
	Body        io.Reader
}

// Validate sniffs the content type from the first bytes of body and checks it together with
// the declared size against the limits for kind. The returned File replays the sniffed bytes.
func Validate(kind Kind, body io.Reader, size int64, limits Limits) (*File, error) {
	types, ok := allowedTypes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if size <= 0 {
		return nil, ErrEmptyFile
	}
	if limit := limits.max(kind); size > limit {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrFileTooLarge, size, limit)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read file header: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, ErrEmptyFile
	}

	detected := mimetype.Detect(head)
	contentType, ext := "", ""
	for m := detected; m != nil; m = m.Parent() {
		if e, ok := types[m.String()]; ok {
			contentType, ext = m.String(), e
			break
		}
	}
	if contentType == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, detected.String())
	}
	if contentType == "application/x-ole-storage" {
		contentType = "application/msword"
	}

	return &File{
		Kind:        kind,
		ContentType: contentType,
		Extension:   ext,
		Size:        size,
		Body:        io.MultiReader(bytes.NewReader(head), body),
	}, nil
}

// NewKey returns a fresh object key inside folder.
func NewKey(folder, ext string) (string, error) {
	if !folderRe.MatchString(folder) {
		return "", ErrInvalidFolder
	}
	return path.Join(folder, uuid.NewString()+ext), nil
}

// trimBase strips base from rawURL and returns the remaining key.
func trimBase(base, rawURL string) (string, bool) {
	base = strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(rawURL, base) {
		return "", false
	}
	key := strings.TrimPrefix(rawURL, base)
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}
