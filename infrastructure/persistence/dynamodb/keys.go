package dynamodb

import "fmt"

// EntityType tags each item stored in the shared table. Types whose natural
// keys could collide with other entities namespace their key values with a
// `TYPE#` prefix; users and campaigns keep their natural keys bare.
type EntityType string

const (
	EntityUser                EntityType = "USER"
	EntityCampaign            EntityType = "CAMPAIGN"
	EntityUserCampaign        EntityType = "USER_CAMPAIGN"
	EntityUserDefaultCampaign EntityType = "USER_DEFAULT_CAMPAIGN"
	EntityApplication         EntityType = "APPLICATION"
	EntityTask                EntityType = "TASK"
)

// Key is the two-part address of an item in the table. The inverse index
// swaps the two roles, so SK doubles as the reverse-lookup partition value.
type Key struct {
	PK string
	SK string
}

// KeyFor derives the (partition, sort) pair for an entity from its identifying
// values. The formulas are load-bearing: existing tables were written with
// exactly these strings.
//
//	USER                   email                 -> (email, email)
//	CAMPAIGN               id                    -> (id, id)
//	USER_CAMPAIGN          userID, campaignID    -> (userID, campaignID)
//	USER_DEFAULT_CAMPAIGN  userID                -> (CAMPAIGN#userID, CAMPAIGN#userID)
//	APPLICATION            id, campaignID        -> (APPLICATION#id, APPLICATION#campaignID)
//	TASK                   id, applicationID     -> (TASK#id, TASK#applicationID)
func KeyFor(entityType EntityType, ids ...string) (Key, error) {
	switch entityType {
	case EntityUser:
		if err := wantIDs(entityType, ids, 1); err != nil {
			return Key{}, err
		}
		return Key{PK: ids[0], SK: ids[0]}, nil

	case EntityCampaign:
		if err := wantIDs(entityType, ids, 1); err != nil {
			return Key{}, err
		}
		return Key{PK: ids[0], SK: ids[0]}, nil

	case EntityUserCampaign:
		if err := wantIDs(entityType, ids, 2); err != nil {
			return Key{}, err
		}
		return Key{PK: ids[0], SK: ids[1]}, nil

	case EntityUserDefaultCampaign:
		if err := wantIDs(entityType, ids, 1); err != nil {
			return Key{}, err
		}
		k := "CAMPAIGN#" + ids[0]
		return Key{PK: k, SK: k}, nil

	case EntityApplication:
		if err := wantIDs(entityType, ids, 2); err != nil {
			return Key{}, err
		}
		return Key{PK: "APPLICATION#" + ids[0], SK: "APPLICATION#" + ids[1]}, nil

	case EntityTask:
		if err := wantIDs(entityType, ids, 2); err != nil {
			return Key{}, err
		}
		return Key{PK: "TASK#" + ids[0], SK: "TASK#" + ids[1]}, nil

	default:
		return Key{}, fmt.Errorf("unknown entity type %q", entityType)
	}
}

// InversePartition returns the partition value to query on the inverse index
// for all children of an owner: the owner-addressed half of the child's sort
// key, e.g. APPLICATION#<campaignID> or TASK#<applicationID>.
func InversePartition(entityType EntityType, ownerID string) string {
	return fmt.Sprintf("%s#%s", entityType, ownerID)
}

func wantIDs(entityType EntityType, ids []string, n int) error {
	if len(ids) != n {
		return fmt.Errorf("entity type %s requires %d id(s), got %d", entityType, n, len(ids))
	}
	for i, id := range ids {
		if id == "" {
			return fmt.Errorf("entity type %s: id %d is empty", entityType, i)
		}
	}
	return nil
}
