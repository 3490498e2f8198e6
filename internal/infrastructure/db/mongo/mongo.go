package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second
)

// Collection names.
const (
	collectionIdentities   = "identities"
	collectionProfiles     = "profiles"
	collectionCompanies    = "companies"
	collectionCompanyUsers = "company_users"
	collectionVendors      = "vendors"
	collectionVendorUsers  = "vendor_users"
	collectionJobSeekers   = "job_seekers"
	collectionJobs         = "jobs"
)

// caseInsensitive makes organisation names unique regardless of case.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Store groups the portal repositories over one database.
type Store struct {
	Identities *IdentityRepository
	Profiles   *ProfileRepository
	Companies  *CompanyRepository
	Vendors    *VendorRepository
	JobSeekers *JobSeekerRepository
	Jobs       *JobRepository
}

// NewStore builds every repository over db.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		Identities: NewIdentityRepository(db),
		Profiles:   NewProfileRepository(db),
		Companies:  NewCompanyRepository(db),
		Vendors:    NewVendorRepository(db),
		JobSeekers: NewJobSeekerRepository(db),
		Jobs:       NewJobRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"identities", s.Identities.EnsureIndexes},
		{"companies", s.Companies.EnsureIndexes},
		{"vendors", s.Vendors.EnsureIndexes},
		{"jobs", s.Jobs.EnsureIndexes},
	}
	for _, st := range steps {
		if err := st.fn(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", st.name, err)
		}
	}
	return nil
}

// MigrateLegacyRoles rewrites profiles still carrying a historical role value.
func MigrateLegacyRoles(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	col := db.Collection(collectionProfiles)
	for legacy, canonical := range domain.LegacyRoles {
		res, err := col.UpdateMany(ctx,
			bson.M{"role": string(legacy)},
			bson.M{"$set": bson.M{"role": string(canonical), "updated_at": time.Now().UTC()}},
		)
		if err != nil {
			return fmt.Errorf("migrate role %q: %w", legacy, err)
		}
		if res.ModifiedCount > 0 {
			log.Info().Str("from", string(legacy)).Str("to", string(canonical)).Int64("profiles", res.ModifiedCount).Msg("legacy roles migrated")
		}
	}
	return nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
