package cluster

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is a cluster identifier in the target attribute model.
type ID uint32

// Clusters the bridge writes into. Values follow the Matter cluster ID
// space so downstream consumers can map them directly.
const (
	PowerSource         ID = 0x002F
	OperationalState    ID = 0x0060
	RVCRunMode          ID = 0x0054
	RVCCleanMode        ID = 0x0055
	RVCOperationalState ID = 0x0061
	ServiceArea         ID = 0x0150
)

// String returns the canonical key form of the ID, e.g. "0x0061".
func (id ID) String() string {
	return fmt.Sprintf("0x%04X", uint32(id))
}

// Name returns the human-readable cluster name, or "" if unknown.
func (id ID) Name() string {
	switch id {
	case PowerSource:
		return "PowerSource"
	case OperationalState:
		return "OperationalState"
	case RVCRunMode:
		return "RvcRunMode"
	case RVCCleanMode:
		return "RvcCleanMode"
	case RVCOperationalState:
		return "RvcOperationalState"
	case ServiceArea:
		return "ServiceArea"
	default:
		return ""
	}
}

// Descriptor is the object form of a cluster reference used by callers that
// carry both identifier and display name (e.g. framework-side metadata).
type Descriptor struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Identified is implemented by any reference type that can report its
// cluster ID directly.
type Identified interface {
	ClusterID() ID
}

// ClusterID implements Identified for Descriptor.
func (d Descriptor) ClusterID() ID { return d.ID }

// nameToID maps known cluster names (lowercased) back to their IDs, so
// name-only references canonicalise to the same key as numeric ones.
var nameToID = map[string]ID{
	"powersource":         PowerSource,
	"operationalstate":    OperationalState,
	"rvcrunmode":          RVCRunMode,
	"rvccleanmode":        RVCCleanMode,
	"rvcoperationalstate": RVCOperationalState,
	"servicearea":         ServiceArea,
}

// Key canonicalises any supported cluster reference to its key string.
//
// Accepted forms:
//   - ID (named constant) and any unsigned/signed integer type
//   - Descriptor or anything implementing Identified
//   - string: either an already-canonical "0xNNNN" key or a known name
//
// Two references to the same logical cluster always produce the same key.
// Unrecognised references fall back to a type-tagged string; they still
// compare equal to themselves, just never to a real cluster.
func Key(ref any) string {
	switch v := ref.(type) {
	case ID:
		return v.String()
	case Identified:
		return v.ClusterID().String()
	case uint32:
		return ID(v).String()
	case uint16:
		return ID(v).String()
	case uint64:
		return ID(v).String()
	case int:
		return ID(v).String()
	case int32:
		return ID(v).String()
	case int64:
		return ID(v).String()
	case string:
		if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
			if n, err := strconv.ParseUint(v[2:], 16, 32); err == nil {
				return ID(n).String()
			}
		}
		if id, ok := nameToID[strings.ToLower(v)]; ok {
			return id.String()
		}
		return "name:" + v
	default:
		return fmt.Sprintf("%T:%v", ref, ref)
	}
}

// AttributeKey builds the cache key for one attribute slot within a cluster.
// The separator cannot occur in canonical cluster keys or attribute names.
func AttributeKey(ref any, attribute string) string {
	return Key(ref) + "/" + attribute
}
