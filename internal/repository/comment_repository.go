package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"projecthub/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.Comment, error)
	UpdateText(ctx context.Context, id primitive.ObjectID, text string) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)

	AddReply(ctx context.Context, commentID primitive.ObjectID, reply domain.Reply) (int64, error)
	UpdateReply(ctx context.Context, commentID primitive.ObjectID, replyID, text string) (int64, error)
	RemoveReply(ctx context.Context, commentID primitive.ObjectID, replyID string) (int64, error)
}

type commentRepository struct {
	collection *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{collection: db.Collection("comments")}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if comment.Replies == nil {
		comment.Replies = []domain.Reply{}
	}
	res, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []domain.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) UpdateText(ctx context.Context, id primitive.ObjectID, text string) (int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"text":       text,
			"updated_at": time.Now().UTC(),
		},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Delete removes the comment document; embedded replies go with it.
func (r *commentRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *commentRepository) AddReply(ctx context.Context, commentID primitive.ObjectID, reply domain.Reply) (int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": commentID}, bson.M{
		"$push": bson.M{"replies": reply},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *commentRepository) UpdateReply(ctx context.Context, commentID primitive.ObjectID, replyID, text string) (int64, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": commentID, "replies.id": replyID},
		bson.M{"$set": bson.M{
			"replies.$.text":       text,
			"replies.$.updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *commentRepository) RemoveReply(ctx context.Context, commentID primitive.ObjectID, replyID string) (int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": commentID}, bson.M{
		"$pull": bson.M{"replies": bson.M{"id": replyID}},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
