package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

// JobRepository stores job postings. Writes always filter on both the job id
// and the owning company id.
type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// ListByCompany returns the company's jobs, newest first.
func (r *JobRepository) ListByCompany(ctx context.Context, companyID string, filter domain.JobFilter) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{"company_id": companyID}
	if filter.ActiveOnly {
		q["is_active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cur.Close(ctx)

	jobs := make([]*domain.Job, 0)
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) Update(ctx context.Context, companyID, jobID string, u domain.JobUpdate, now time.Time) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := scopedJob(companyID, jobID)
	var job domain.Job
	if err := r.col.FindOne(ctx, filter).Decode(&job); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	if err := u.Apply(&job, now); err != nil {
		return nil, err
	}

	res, err := r.col.ReplaceOne(ctx, filter, &job)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrJobNotFound
	}
	return &job, nil
}

func (r *JobRepository) Delete(ctx context.Context, companyID, jobID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, scopedJob(companyID, jobID))
	if err != nil {
		return 0, fmt.Errorf("delete job: %w", err)
	}
	return res.DeletedCount, nil
}

type jobStats struct {
	Total        int64 `bson:"total"`
	Active       int64 `bson:"active"`
	Applications int64 `bson:"applications"`
}

func (r *JobRepository) Stats(ctx context.Context, companyID string) (*domain.CompanyStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, statsPipeline(companyID))
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}
	defer cur.Close(ctx)

	var rows []jobStats
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode job stats: %w", err)
	}
	stats := &domain.CompanyStats{}
	if len(rows) > 0 {
		stats.TotalJobs = rows[0].Total
		stats.ActiveJobs = rows[0].Active
		stats.TotalApplications = rows[0].Applications
	}
	return stats, nil
}

func statsPipeline(companyID string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"company_id": companyID}}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"total":        bson.M{"$sum": 1},
			"active":       bson.M{"$sum": bson.M{"$cond": bson.A{"$is_active", 1, 0}}},
			"applications": bson.M{"$sum": "$applications_count"},
		}}},
	}
}

// ListActive returns the newest active postings across companies, each with
// its company summary joined in.
func (r *JobRepository) ListActive(ctx context.Context, limit int) ([]*domain.JobListing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, activeJobsPipeline(limit))
	if err != nil {
		return nil, fmt.Errorf("list active jobs: %w", err)
	}
	defer cur.Close(ctx)

	jobs := make([]*domain.JobListing, 0)
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("decode active jobs: %w", err)
	}
	return jobs, nil
}

func activeJobsPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_active": true}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$lookup", Value: bson.M{
			"from": collectionCompanies,
			"let":  bson.M{"cid": "$company_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$cid"}}}},
				bson.M{"$project": bson.M{"_id": 0, "name": 1, "logo_url": 1, "is_verified": 1}},
			},
			"as": "company",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$company", "preserveNullAndEmptyArrays": true}}},
	}
}

// DeactivateExpired closes active postings whose application deadline has
// passed and reports how many were closed.
func (r *JobRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"is_active": true, "application_deadline": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired jobs: %w", err)
	}
	return res.ModifiedCount, nil
}

func scopedJob(companyID, jobID string) bson.M {
	return bson.M{"_id": jobID, "company_id": companyID}
}

func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "application_deadline", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}
