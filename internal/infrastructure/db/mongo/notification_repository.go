package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

// NotificationRepository implements ports.NotificationRepository using MongoDB.
type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if n.ID == "" {
		n.ID = newID()
	}
	_, err := r.col.InsertOne(ctx, n)
	return err
}

// CreateMany inserts every notification in a single bulk write.
func (r *NotificationRepository) CreateMany(ctx context.Context, ns []*domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]any, 0, len(ns))
	for _, n := range ns {
		if n.ID == "" {
			n.ID = newID()
		}
		docs = append(docs, n)
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*domain.Notification, error) {
	return findOne[domain.Notification](ctx, r.col, bson.M{"_id": id}, domain.ErrNotificationNotFound)
}

func (r *NotificationRepository) List(ctx context.Context, f ports.NotificationFilter) ([]*domain.Notification, int64, error) {
	filter := bson.M{"recipient_id": f.RecipientID}
	if f.UnreadOnly {
		filter["is_read"] = false
	}
	sort := bson.D{{Key: "created_at", Value: -1}}
	return findPage[domain.Notification](ctx, r.col, filter, f.PageRequest, sort)
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"is_read": false}
	if recipientID != "" {
		filter["recipient_id"] = recipientID
	}
	return r.col.CountDocuments(ctx, filter)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"is_read": true}}, domain.ErrNotificationNotFound)
}

func (r *NotificationRepository) markMany(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter["is_read"] = false
	res, err := r.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	return r.markMany(ctx, bson.M{"recipient_id": recipientID})
}

func (r *NotificationRepository) MarkManyRead(ctx context.Context, ids []string, recipientID string) (int64, error) {
	return r.markMany(ctx, bson.M{"_id": bson.M{"$in": ids}, "recipient_id": recipientID})
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) deleteMany(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *NotificationRepository) DeleteByRecipient(ctx context.Context, recipientID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"recipient_id": recipientID})
}

func (r *NotificationRepository) DeleteInvolving(ctx context.Context, userID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"recipient_id": userID},
		bson.M{"sender_id": userID},
	}})
}

// EnsureIndexes creates the inbox and sender indexes.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "is_read", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "sender_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
