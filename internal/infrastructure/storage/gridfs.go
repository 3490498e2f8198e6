// Package storage holds the object storage backends for uploaded files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

const (
	defaultTimeout = 60 * time.Second
	bucketPrefix   = "files_"
)

// GridFS stores objects in MongoDB GridFS, one GridFS bucket per storage
// bucket. Public URLs point at this API's /storage route.
type GridFS struct {
	db      *mongo.Database
	baseURL string
}

// NewGridFS returns a GridFS store. baseURL is the externally reachable
// address of the API, e.g. https://api.example.com.
func NewGridFS(db *mongo.Database, baseURL string) *GridFS {
	return &GridFS{db: db, baseURL: strings.TrimRight(baseURL, "/")}
}

func (g *GridFS) bucket(name string) (*gridfs.Bucket, error) {
	return gridfs.NewBucket(g.db, options.GridFSBucket().SetName(bucketPrefix+name))
}

// Upload replaces any object stored under path. The new revision is written
// before older ones are removed, so a failed upload keeps the previous file.
func (g *GridFS) Upload(ctx context.Context, bucket, path string, r io.Reader, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	b, err := g.bucket(bucket)
	if err != nil {
		return fmt.Errorf("gridfs bucket: %w", err)
	}

	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "content_type", Value: contentType}})
	id, err := b.UploadFromStream(path, r, opts)
	if err != nil {
		return fmt.Errorf("gridfs upload: %w", err)
	}
	return g.removeRevisions(ctx, b, supersededFilter(path, id))
}

func (g *GridFS) PublicURL(bucket, path string) string {
	return g.baseURL + "/storage/" + url.PathEscape(bucket) + "/" + escapePath(path)
}

func (g *GridFS) Open(ctx context.Context, bucket, path string) (*ports.StoredObject, error) {
	b, err := g.bucket(bucket)
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	stream, err := b.OpenDownloadStreamByName(path)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, domain.ErrObjectNotFound
		}
		return nil, fmt.Errorf("gridfs open: %w", err)
	}

	file := stream.GetFile()
	contentType := "application/octet-stream"
	if file.Metadata != nil {
		if ct, ok := file.Metadata.Lookup("content_type").StringValueOK(); ok && ct != "" {
			contentType = ct
		}
	}
	return &ports.StoredObject{Body: stream, ContentType: contentType, Size: file.Length}, nil
}

func (g *GridFS) Remove(ctx context.Context, bucket, path string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	b, err := g.bucket(bucket)
	if err != nil {
		return fmt.Errorf("gridfs bucket: %w", err)
	}
	return g.removeRevisions(ctx, b, bson.M{"filename": path})
}

// supersededFilter matches every revision of path except keep.
func supersededFilter(path string, keep primitive.ObjectID) bson.M {
	return bson.M{"filename": path, "_id": bson.M{"$ne": keep}}
}

// removeRevisions deletes every stored file matching filter.
func (g *GridFS) removeRevisions(ctx context.Context, b *gridfs.Bucket, filter bson.M) error {
	cur, err := b.FindContext(ctx, filter)
	if err != nil {
		return fmt.Errorf("gridfs find: %w", err)
	}
	defer cur.Close(ctx)

	var files []struct {
		ID interface{} `bson:"_id"`
	}
	if err := cur.All(ctx, &files); err != nil {
		return fmt.Errorf("gridfs decode: %w", err)
	}
	for _, f := range files {
		if err := b.DeleteContext(ctx, f.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("gridfs delete: %w", err)
		}
	}
	return nil
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}
