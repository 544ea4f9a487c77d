package tenantstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yardbook/yardbook/pkg/tenant"
)

// CollectionName is the tenants collection in the application database.
const CollectionName = "tenants"

// Store persists tenant records in MongoDB and implements
// tenant.Directory for the resolution core. Reads come from the
// resolver; writes come from the admin console and the billing sync.
type Store struct {
	collection *mongo.Collection
}

// NewStore creates a tenant store over the given database.
func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique subdomain index and the custom
// domain lookup index. Call once at startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subdomain", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "custom_domains", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
	if err != nil {
		return errors.Join(tenant.ErrDirectoryUnavailable, err)
	}
	return nil
}

// tenantDoc is the persisted shape of a tenant record. UUIDs are stored
// as strings so documents stay readable in shells and dumps.
type tenantDoc struct {
	ID            string          `bson:"_id"`
	Subdomain     string          `bson:"subdomain"`
	Name          string          `bson:"name"`
	Domain        string          `bson:"domain,omitempty"`
	CustomDomains []string        `bson:"custom_domains,omitempty"`
	LogoURL       string          `bson:"logo_url,omitempty"`
	Subscription  subscriptionDoc `bson:"subscription"`
	CreatedAt     time.Time       `bson:"created_at"`
	UpdatedAt     time.Time       `bson:"updated_at"`
}

type subscriptionDoc struct {
	Status string `bson:"status"`
	PlanID string `bson:"plan_id,omitempty"`
}

func docFromTenant(t *tenant.Tenant) tenantDoc {
	return tenantDoc{
		ID:            t.ID.String(),
		Subdomain:     t.Subdomain,
		Name:          t.Name,
		Domain:        t.Domain,
		CustomDomains: t.CustomDomains,
		LogoURL:       t.LogoURL,
		Subscription: subscriptionDoc{
			Status: string(t.Subscription.Status),
			PlanID: t.Subscription.PlanID,
		},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (d tenantDoc) toTenant() (*tenant.Tenant, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Join(ErrInvalidTenantRecord, err)
	}
	return &tenant.Tenant{
		ID:            id,
		Subdomain:     d.Subdomain,
		Name:          d.Name,
		Domain:        d.Domain,
		CustomDomains: d.CustomDomains,
		LogoURL:       d.LogoURL,
		Subscription: tenant.Subscription{
			Status: tenant.Status(d.Subscription.Status),
			PlanID: d.Subscription.PlanID,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// wrapLookupErr maps driver errors to the directory error taxonomy.
// A missing document is a client/config problem; anything else is the
// directory being unreachable and must stay distinguishable.
func wrapLookupErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return tenant.ErrTenantNotFound
	}
	return errors.Join(tenant.ErrDirectoryUnavailable, err)
}

// GetByKey implements tenant.Directory. The key is matched against the
// subdomain, the registered apex domain, and any custom domain alias.
func (s *Store) GetByKey(ctx context.Context, key string) (*tenant.Tenant, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "subdomain", Value: key}},
		bson.D{{Key: "domain", Value: key}},
		bson.D{{Key: "custom_domains", Value: key}},
	}}}

	var doc tenantDoc
	if err := s.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, wrapLookupErr(err)
	}
	return doc.toTenant()
}

// GetByID retrieves a tenant by its id.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	var doc tenantDoc
	if err := s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		return nil, wrapLookupErr(err)
	}
	return doc.toTenant()
}

// Create inserts a new tenant record. Returns ErrSubdomainTaken when
// the subdomain is already registered.
func (s *Store) Create(ctx context.Context, t *tenant.Tenant) error {
	if _, err := s.collection.InsertOne(ctx, docFromTenant(t)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSubdomainTaken
		}
		return errors.Join(tenant.ErrDirectoryUnavailable, err)
	}
	return nil
}

// UpdateSubscriptionStatus sets the subscription status for a tenant.
// Used by the billing webhook sync; resolution never writes.
func (s *Store) UpdateSubscriptionStatus(ctx context.Context, id uuid.UUID, status tenant.Status) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "subscription.status", Value: string(status)},
			{Key: "updated_at", Value: time.Now()},
		}}},
	)
	if err != nil {
		return errors.Join(tenant.ErrDirectoryUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

// SetLogo stores the public logo URL for a tenant.
func (s *Store) SetLogo(ctx context.Context, id uuid.UUID, logoURL string) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "logo_url", Value: logoURL},
			{Key: "updated_at", Value: time.Now()},
		}}},
	)
	if err != nil {
		return errors.Join(tenant.ErrDirectoryUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

// List returns all tenants ordered by creation time, newest first.
// Admin console only; tenant-facing code never enumerates tenants.
func (s *Store) List(ctx context.Context) ([]*tenant.Tenant, error) {
	cursor, err := s.collection.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, errors.Join(tenant.ErrDirectoryUnavailable, err)
	}
	defer cursor.Close(ctx)

	var tenants []*tenant.Tenant
	for cursor.Next(ctx) {
		var doc tenantDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Join(tenant.ErrDirectoryUnavailable, err)
		}
		t, err := doc.toTenant()
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Join(tenant.ErrDirectoryUnavailable, err)
	}
	return tenants, nil
}
