package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

// JobSeekerRepository stores job_seekers; the document id is the profile id.
type JobSeekerRepository struct {
	col *mongo.Collection
}

func NewJobSeekerRepository(db *mongo.Database) *JobSeekerRepository {
	return &JobSeekerRepository{col: db.Collection(collectionJobSeekers)}
}

func (r *JobSeekerRepository) FindByID(ctx context.Context, id string) (*domain.JobSeeker, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var js domain.JobSeeker
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&js); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrJobSeekerNotFound
		}
		return nil, fmt.Errorf("find job seeker: %w", err)
	}
	return &js, nil
}

func (r *JobSeekerRepository) Create(ctx context.Context, js *domain.JobSeeker) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, js); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert job seeker: %w", err)
	}
	return nil
}

// Save upserts js.
func (r *JobSeekerRepository) Save(ctx context.Context, js *domain.JobSeeker) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": js.ID}, js, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("save job seeker: %w", err)
	}
	return nil
}
