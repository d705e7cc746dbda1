package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/b9s/b9s/internal/api"
	"github.com/b9s/b9s/internal/pager"
)

// ResourceID identifies a backoffice resource type.
type ResourceID struct {
	Section  string // e.g., "sales", "catalog", "marketing", "comms"
	Resource string // e.g., "order", "product", "promocode"
}

// String returns a string representation in the form "section/resource".
func (r ResourceID) String() string {
	return fmt.Sprintf("%s/%s", r.Section, r.Resource)
}

// Parse parses a string in the form "section/resource" into a ResourceID.
func (r *ResourceID) Parse(s string) error {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid resource ID format: %s (expected section/resource)", s)
	}
	r.Section, r.Resource = parts[0], parts[1]
	return nil
}

// Predefined ResourceID variables for the backoffice resources.
var (
	OrderRID        = ResourceID{Section: "sales", Resource: "order"}
	ProductRID      = ResourceID{Section: "catalog", Resource: "product"}
	CategoryRID     = ResourceID{Section: "catalog", Resource: "category"}
	PromoCodeRID    = ResourceID{Section: "marketing", Resource: "promocode"}
	NotificationRID = ResourceID{Section: "comms", Resource: "notification"}

	// AllResourceIDs lists every browsable resource.
	AllResourceIDs = []*ResourceID{
		&OrderRID,
		&ProductRID,
		&CategoryRID,
		&PromoCodeRID,
		&NotificationRID,
	}
)

// Object represents a generic backoffice entity with common metadata.
type Object interface {
	GetID() string
	GetName() string
	GetStatus() string
	GetCreatedAt() *time.Time
	GetRaw() interface{}
}

// Factory provides backend client configuration and management.
type Factory interface {
	Client() api.Connection
	Env() string
	SetEnv(name string) error
}

// Getter retrieves a single entity by id.
type Getter interface {
	Get(ctx context.Context, id string) (Object, error)
}

// Lister retrieves one page of entities, or the whole collection when the
// backend declines to paginate.
type Lister interface {
	List(ctx context.Context, params pager.FetchParams) (*pager.Response[Object], error)
}

// Accessor combines getting and listing capabilities with initialization.
type Accessor interface {
	Getter
	Lister
	Init(Factory, *ResourceID)
	ResourceID() *ResourceID
}

// Describer provides formatted descriptions of entities.
type Describer interface {
	Describe(ctx context.Context, id string) (string, error)
	ToJSON(ctx context.Context, id string) (string, error)
}

// Updater replaces an entity with an edited body.
type Updater interface {
	Update(ctx context.Context, id string, body map[string]interface{}) (Object, error)
}

// Nuker provides deletion capabilities for entities.
type Nuker interface {
	Delete(ctx context.Context, id string, force bool) error
}
