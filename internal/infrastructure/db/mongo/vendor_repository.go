package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

// VendorRepository stores vendors and their vendor_users memberships.
type VendorRepository struct {
	col     *mongo.Collection
	members *mongo.Collection
}

func NewVendorRepository(db *mongo.Database) *VendorRepository {
	return &VendorRepository{
		col:     db.Collection(collectionVendors),
		members: db.Collection(collectionVendorUsers),
	}
}

func (r *VendorRepository) FindByID(ctx context.Context, id string) (*domain.Vendor, error) {
	return r.findOne(ctx, bson.M{"_id": id}, options.FindOne())
}

func (r *VendorRepository) FindByName(ctx context.Context, name string) (*domain.Vendor, error) {
	return r.findOne(ctx, bson.M{"name": name}, options.FindOne().SetCollation(caseInsensitive))
}

func (r *VendorRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Vendor
	if err := r.col.FindOne(ctx, filter, opts).Decode(&v); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	return &v, nil
}

func (r *VendorRepository) Create(ctx context.Context, v *domain.Vendor) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

func (r *VendorRepository) Update(ctx context.Context, id string, u domain.VendorUpdate, now time.Time) (*domain.Vendor, error) {
	v, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Apply(v, now)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.NewValidationError("name", "a vendor with this name already exists")
		}
		return nil, fmt.Errorf("update vendor: %w", err)
	}
	return v, nil
}

func (r *VendorRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	return nil
}

// ListActive returns active vendors ordered by name.
func (r *VendorRepository) ListActive(ctx context.Context, filter domain.VendorFilter) ([]*domain.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.col.Find(ctx, vendorQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer cur.Close(ctx)

	vendors := make([]*domain.Vendor, 0)
	if err := cur.All(ctx, &vendors); err != nil {
		return nil, fmt.Errorf("decode vendors: %w", err)
	}
	return vendors, nil
}

// vendorQuery builds the directory filter. Search is a literal,
// case-insensitive substring over name and description.
func vendorQuery(filter domain.VendorFilter) bson.M {
	q := bson.M{"is_active": true}
	if filter.ServiceType != "" {
		q["service_type"] = filter.ServiceType
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
		}
	}
	return q
}

func (r *VendorRepository) FindMembership(ctx context.Context, profileID string) (*domain.VendorMembership, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.VendorMembership
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if err := r.members.FindOne(ctx, bson.M{"profile_id": profileID}, opts).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("find vendor membership: %w", err)
	}
	return &m, nil
}

func (r *VendorRepository) AddMember(ctx context.Context, m *domain.VendorMembership) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"profile_id": m.ProfileID, "vendor_id": m.VendorID}
	if _, err := r.members.ReplaceOne(ctx, filter, m, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert vendor membership: %w", err)
	}
	return nil
}

func (r *VendorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	if _, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(caseInsensitive),
		},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "service_type", Value: 1}}},
	}); err != nil {
		return err
	}
	_, err := r.members.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "profile_id", Value: 1}, {Key: "vendor_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
