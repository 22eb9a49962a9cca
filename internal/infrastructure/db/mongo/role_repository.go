package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accountsapi/accounts-service/internal/core/domain"
	"github.com/accountsapi/accounts-service/internal/core/ports"
)

type mongoRole struct {
	ID          int64     `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (m *mongoRole) toDomain() *domain.Role {
	return &domain.Role{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// RoleRepository implements ports.RoleRepository using MongoDB.
type RoleRepository struct {
	coll *mongo.Collection
	seq  *sequence
}

var _ ports.RoleRepository = (*RoleRepository)(nil)

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(collectionRoles), seq: newSequence(db)}
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return doc.toDomain(), nil
}

// GetOrCreate upserts on the unique name so concurrent callers converge on a
// single document. An ID is only allocated on a read miss.
func (r *RoleRepository) GetOrCreate(ctx context.Context, role domain.Role) (*domain.Role, bool, error) {
	existing, err := r.FindByName(ctx, role.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrRoleNotFound) {
		return nil, false, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, collectionRoles)
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"_id":         id,
		"description": role.Description,
		"created_at":  now,
		"updated_at":  now,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc mongoRole
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"name": role.Name}, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the race against a concurrent upsert; read the winner.
		winner, findErr := r.FindByName(ctx, role.Name)
		return winner, false, findErr
	}
	if err != nil {
		return nil, false, fmt.Errorf("upsert role: %w", err)
	}
	return doc.toDomain(), doc.ID == id, nil
}
