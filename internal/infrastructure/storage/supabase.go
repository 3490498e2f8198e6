package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"

	supabase "github.com/nedpals/supabase-go"

	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

// Supabase stores objects in Supabase Storage buckets.
type Supabase struct {
	client *supabase.Client
}

// NewSupabase creates a Supabase store from the project URL and service key.
func NewSupabase(supabaseURL, supabaseKey string) (*Supabase, error) {
	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}
	// CreateClient returns *supabase.Client (no error)
	return &Supabase{client: supabase.CreateClient(supabaseURL, supabaseKey)}, nil
}

// Upload writes the object, replacing any existing one at the same path.
// The SDK panics on transport errors, so calls are guarded.
func (s *Supabase) Upload(_ context.Context, bucket, p string, r io.Reader, contentType string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("supabase upload: %v", rec)
		}
	}()

	resp := s.client.Storage.From(bucket).Upload(p, r, &supabase.FileUploadOptions{
		ContentType: contentType,
		MimeType:    contentType,
		Upsert:      true,
	})
	if resp.Key == "" {
		return fmt.Errorf("supabase upload: %s", resp.Message)
	}
	return nil
}

func (s *Supabase) PublicURL(bucket, p string) string {
	return s.client.Storage.From(bucket).GetPublicUrl(p).SignedUrl
}

// Open downloads the whole object with the service key. Supabase does not
// return the stored content type here, so it is derived from the extension.
func (s *Supabase) Open(_ context.Context, bucket, p string) (obj *ports.StoredObject, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			obj, err = nil, fmt.Errorf("supabase download: %v", rec)
		}
	}()

	data, err := s.client.Storage.From(bucket).Download(p)
	if err != nil {
		var fe *supabase.FileErrorResponse
		if errors.Is(err, supabase.ErrNotFound) || (errors.As(err, &fe) && fe.Status == "404") {
			return nil, domain.ErrObjectNotFound
		}
		return nil, fmt.Errorf("supabase download: %w", err)
	}
	return &ports.StoredObject{
		Body:        io.NopCloser(bytes.NewReader(data)),
		ContentType: mime.TypeByExtension(path.Ext(p)),
		Size:        int64(len(data)),
	}, nil
}

func (s *Supabase) Remove(_ context.Context, bucket, p string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("supabase remove: %v", rec)
		}
	}()
	if resp := s.client.Storage.From(bucket).Remove([]string{p}); resp.Message != "" {
		return fmt.Errorf("supabase remove: %s", resp.Message)
	}
	return nil
}
