package dynamodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name       string
		entityType EntityType
		ids        []string
		want       Key
	}{
		{
			name:       "user keyed by bare email",
			entityType: EntityUser,
			ids:        []string{"jo@example.com"},
			want:       Key{PK: "jo@example.com", SK: "jo@example.com"},
		},
		{
			name:       "campaign keyed by bare id",
			entityType: EntityCampaign,
			ids:        []string{"camp-1"},
			want:       Key{PK: "camp-1", SK: "camp-1"},
		},
		{
			name:       "membership link keyed by user and campaign",
			entityType: EntityUserCampaign,
			ids:        []string{"user-1", "camp-1"},
			want:       Key{PK: "user-1", SK: "camp-1"},
		},
		{
			name:       "default pointer namespaced under CAMPAIGN",
			entityType: EntityUserDefaultCampaign,
			ids:        []string{"user-1"},
			want:       Key{PK: "CAMPAIGN#user-1", SK: "CAMPAIGN#user-1"},
		},
		{
			name:       "application namespaced on both halves",
			entityType: EntityApplication,
			ids:        []string{"app-1", "camp-1"},
			want:       Key{PK: "APPLICATION#app-1", SK: "APPLICATION#camp-1"},
		},
		{
			name:       "task namespaced on both halves",
			entityType: EntityTask,
			ids:        []string{"task-1", "app-1"},
			want:       Key{PK: "TASK#task-1", SK: "TASK#app-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeyFor(tt.entityType, tt.ids...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyForRejectsBadInput(t *testing.T) {
	_, err := KeyFor(EntityApplication, "app-1")
	assert.Error(t, err, "application needs two ids")

	_, err = KeyFor(EntityUser, "")
	assert.Error(t, err, "empty id")

	_, err = KeyFor(EntityType("WIDGET"), "x")
	assert.Error(t, err, "unknown entity type")
}

func TestInversePartition(t *testing.T) {
	assert.Equal(t, "APPLICATION#camp-1", InversePartition(EntityApplication, "camp-1"))
	assert.Equal(t, "TASK#app-1", InversePartition(EntityTask, "app-1"))
}
