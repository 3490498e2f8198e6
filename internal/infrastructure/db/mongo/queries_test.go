package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/talentbridge/job-portal/internal/core/domain"
)

func TestVendorQuery(t *testing.T) {
	q := vendorQuery(domain.VendorFilter{})
	assert.Equal(t, bson.M{"is_active": true}, q)

	q = vendorQuery(domain.VendorFilter{ServiceType: "catering", Search: "a.b"})
	assert.Equal(t, "catering", q["service_type"])
	or, ok := q["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	re := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, `a\.b`, re.Pattern, "search must be matched literally")
	assert.Equal(t, "i", re.Options)
}

func TestScopedJob(t *testing.T) {
	assert.Equal(t, bson.M{"_id": "j1", "company_id": "c1"}, scopedJob("c1", "j1"))
}

func TestStatsPipelineMatchesCompany(t *testing.T) {
	p := statsPipeline("c1")
	require.Len(t, p, 2)
	assert.Equal(t, "$match", p[0][0].Key)
	assert.Equal(t, bson.M{"company_id": "c1"}, p[0][0].Value)
	assert.Equal(t, "$group", p[1][0].Key)
}

func TestLegacyRolesMigrateToCanonical(t *testing.T) {
	for legacy, canonical := range domain.LegacyRoles {
		assert.True(t, canonical.Valid(), "%s must migrate to a canonical role", legacy)
		assert.False(t, legacy.Valid())
	}
}

func TestActiveJobsPipeline(t *testing.T) {
	p := activeJobsPipeline(6)
	require.Len(t, p, 5)
	assert.Equal(t, bson.M{"is_active": true}, p[0][0].Value)
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, p[1][0].Value)
	assert.Equal(t, int64(6), p[2][0].Value)

	lookup := p[3][0].Value.(bson.M)
	assert.Equal(t, collectionCompanies, lookup["from"])
	assert.Equal(t, "company", lookup["as"])
	project := lookup["pipeline"].(bson.A)[1].(bson.M)["$project"]
	assert.Equal(t, bson.M{"_id": 0, "name": 1, "logo_url": 1, "is_verified": 1}, project)

	assert.Equal(t, "$unwind", p[4][0].Key)
}
