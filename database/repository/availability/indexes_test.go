package availabilityRepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestAvailabilityIndexKeepsOneDocumentPerPartner(t *testing.T) {
	models := availabilityIndexModels()
	require.NotEmpty(t, models)

	idx := models[0]
	assert.Equal(t, bson.D{{Key: "partnerId", Value: 1}}, idx.Keys)
	require.NotNil(t, idx.Options)
	require.NotNil(t, idx.Options.Unique)
	assert.True(t, *idx.Options.Unique)
}
