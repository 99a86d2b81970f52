package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"projecthub/internal/domain"
)

type KnowledgeBaseRepository interface {
	Create(ctx context.Context, item *domain.KnowledgeBaseItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.KnowledgeBaseItem, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.KnowledgeBaseItem, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type knowledgeBaseRepository struct {
	collection *mongo.Collection
}

func NewKnowledgeBaseRepository(db *mongo.Database) KnowledgeBaseRepository {
	return &knowledgeBaseRepository{collection: db.Collection("knowledge_base")}
}

func (r *knowledgeBaseRepository) Create(ctx context.Context, item *domain.KnowledgeBaseItem) error {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return nil
}

func (r *knowledgeBaseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.KnowledgeBaseItem, error) {
	var item domain.KnowledgeBaseItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *knowledgeBaseRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.KnowledgeBaseItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []domain.KnowledgeBaseItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *knowledgeBaseRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	fields["updated_at"] = time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *knowledgeBaseRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
