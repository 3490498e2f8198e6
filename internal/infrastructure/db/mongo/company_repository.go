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

// CompanyRepository stores companies and their company_users memberships.
type CompanyRepository struct {
	col     *mongo.Collection
	members *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{
		col:     db.Collection(collectionCompanies),
		members: db.Collection(collectionCompanyUsers),
	}
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*domain.Company, error) {
	return r.findOne(ctx, bson.M{"_id": id}, options.FindOne())
}

// FindByName matches name case-insensitively, the same way the unique index
// compares names.
func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	return r.findOne(ctx, bson.M{"name": name}, options.FindOne().SetCollation(caseInsensitive))
}

func (r *CompanyRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Company
	if err := r.col.FindOne(ctx, filter, opts).Decode(&c); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return &c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) Update(ctx context.Context, id string, u domain.CompanyUpdate, now time.Time) (*domain.Company, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Apply(c, now)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.NewValidationError("name", "a company with this name already exists")
		}
		return nil, fmt.Errorf("update company: %w", err)
	}
	return c, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) FindMembership(ctx context.Context, profileID string) (*domain.CompanyMembership, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.CompanyMembership
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if err := r.members.FindOne(ctx, bson.M{"profile_id": profileID}, opts).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("find company membership: %w", err)
	}
	return &m, nil
}

func (r *CompanyRepository) AddMember(ctx context.Context, m *domain.CompanyMembership) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"profile_id": m.ProfileID, "company_id": m.CompanyID}
	if _, err := r.members.ReplaceOne(ctx, filter, m, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert company membership: %w", err)
	}
	return nil
}

// EnsureIndexes makes company names unique (case-insensitively) and
// memberships unique per profile and company.
func (r *CompanyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	if _, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetCollation(caseInsensitive),
	}); err != nil {
		return err
	}
	_, err := r.members.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "profile_id", Value: 1}, {Key: "company_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "company_id", Value: 1}}},
	})
	return err
}
