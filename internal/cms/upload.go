package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/storage"
)

type UploadInput struct {
	Kind     storage.Kind
	Folder   string
	Filename string
	Body     io.Reader
	Size     int64
}

type UploadResult struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Upload validates the file by its content and stores it under a fresh key in folder.
func (m *Manager) Upload(ctx context.Context, actor Actor, in UploadInput) (*UploadResult, error) {
	if err := requireRole(actor, auth.RoleEditor); err != nil {
		return nil, err
	}

	f, err := storage.Validate(in.Kind, in.Body, in.Size, m.limits)
	switch {
	case errors.Is(err, storage.ErrUnknownKind):
		return nil, newValidationError("kind", "must be one of: image, document")
	case errors.Is(err, storage.ErrEmptyFile), errors.Is(err, storage.ErrFileTooLarge), errors.Is(err, storage.ErrUnsupportedType):
		return nil, newValidationError("file", err.Error())
	case err != nil:
		return nil, fmt.Errorf("upload: %w", err)
	}

	key, err := storage.NewKey(in.Folder, f.Extension)
	if err != nil {
		return nil, newValidationError("folder", err.Error())
	}

	if err := m.files.Put(ctx, key, f.Body, f.Size, f.ContentType); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	res := &UploadResult{
		URL:         m.files.PublicURL(key),
		Key:         key,
		ContentType: f.ContentType,
		Size:        f.Size,
	}

	m.audit(ctx, actor, ActionUpload, "files", nil, map[string]string{
		"key":         key,
		"filename":    in.Filename,
		"contentType": f.ContentType,
		"size":        strconv.FormatInt(f.Size, 10),
	})

	return res, nil
}

// DeleteFile removes an object previously returned by Upload. URLs of other hosts are
// rejected.
func (m *Manager) DeleteFile(ctx context.Context, actor Actor, url string) error {
	if err := requireRole(actor, auth.RoleEditor); err != nil {
		return err
	}

	key, ok := m.files.KeyFromURL(url)
	if !ok {
		return newValidationError("url", storage.ErrForeignURL.Error())
	}

	if err := m.files.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	m.audit(ctx, actor, ActionDeleteFile, "files", nil, map[string]string{"key": key})

	return nil
}
