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

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Project, error)
	List(ctx context.Context, status, tech string) ([]domain.Project, error)
	ListByMember(ctx context.Context, userID primitive.ObjectID) ([]domain.Project, error)
	Update(ctx context.Context, id primitive.ObjectID, patch domain.ProjectPatch) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)

	AddInterested(ctx context.Context, id primitive.ObjectID, user domain.MemberSnapshot) (int64, error)
	RemoveInterested(ctx context.Context, id, userID primitive.ObjectID) (int64, error)
	AcceptInterested(ctx context.Context, id primitive.ObjectID, user domain.MemberSnapshot) (int64, error)
	AddTeamMember(ctx context.Context, id primitive.ObjectID, user domain.MemberSnapshot) (int64, error)
}

type projectRepository struct {
	collection *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) ProjectRepository {
	return &projectRepository{collection: db.Collection("projects")}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.TeamMembers == nil {
		project.TeamMembers = []domain.MemberSnapshot{}
	}
	if project.InterestedUsers == nil {
		project.InterestedUsers = []domain.MemberSnapshot{}
	}
	res, err := r.collection.InsertOne(ctx, project)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		project.ID = oid
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Project, error) {
	var project domain.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, status, tech string) ([]domain.Project, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if tech != "" {
		filter["tech_stack"] = tech
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []domain.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]domain.Project, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"team_members.user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []domain.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.ProjectPatch) (int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, patch.Document(time.Now().UTC()))
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *projectRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *projectRepository) AddInterested(ctx context.Context, id primitive.ObjectID, user domain.MemberSnapshot) (int64, error) {
	patch := domain.StructuralPatch(bson.M{
		"$push": bson.M{"interested_users": user},
	})
	return r.Update(ctx, id, patch)
}

func (r *projectRepository) RemoveInterested(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	patch := domain.StructuralPatch(bson.M{
		"$pull": bson.M{"interested_users": bson.M{"user_id": userID}},
	})
	return r.Update(ctx, id, patch)
}

// AcceptInterested moves the user from interested_users to team_members in a
// single document operation, so the two lists never both contain the user.
func (r *projectRepository) AcceptInterested(ctx context.Context, id primitive.ObjectID, user domain.MemberSnapshot) (int64, error) {
	patch := domain.StructuralPatch(bson.M{
		"$push": bson.M{"team_members": user},
		"$pull": bson.M{"interested_users": bson.M{"user_id": user.UserID}},
	})
	return r.Update(ctx, id, patch)
}

func (r *projectRepository) AddTeamMember(ctx context.Context, id primitive.ObjectID, user domain.MemberSnapshot) (int64, error) {
	patch := domain.StructuralPatch(bson.M{
		"$push": bson.M{"team_members": user},
	})
	return r.Update(ctx, id, patch)
}
