package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sportmeet/backend/internal/core/domain"
)

const (
	eventCollection = "events"
	photoCollection = "event_photos"
)

type EventRepository struct {
	db     *mongo.Database
	events *mongo.Collection
	photos *mongo.Collection
	chats  *mongo.Collection
	msgs   *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		db:     db,
		events: db.Collection(eventCollection),
		photos: db.Collection(photoCollection),
		chats:  db.Collection(eventChatCollection),
		msgs:   db.Collection(messageCollection),
	}
}

type mongoEvent struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID      primitive.ObjectID `bson:"owner_id"`
	Title        string             `bson:"title"`
	StartDate    int64              `bson:"start_date"`
	Participants []string           `bson:"participants"`
	ChatID       primitive.ObjectID `bson:"chat_id"`
	CreatedAt    int64              `bson:"created_at"`
}

type mongoEventPhoto struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	EventID     primitive.ObjectID `bson:"event_id"`
	UploaderID  string             `bson:"uploader_id"`
	ContentType string             `bson:"content_type"`
	Data        []byte             `bson:"data"`
	CreatedAt   int64              `bson:"created_at"`
}

// CreateWithChat inserts the event and its chat in a single transaction. IDs
// are generated up front so both documents can reference each other.
func (r *EventRepository) CreateWithChat(ctx context.Context, event *domain.Event, chat *domain.EventChat) (*domain.Event, error) {
	ownerID, err := primitive.ObjectIDFromHex(event.OwnerID)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	eventID := primitive.NewObjectID()
	chatID := primitive.NewObjectID()

	eventDoc := mongoEvent{
		ID:           eventID,
		OwnerID:      ownerID,
		Title:        event.Title,
		StartDate:    event.StartDate.Unix(),
		Participants: event.Participants,
		ChatID:       chatID,
		CreatedAt:    event.CreatedAt.Unix(),
	}
	chatDoc := mongoEventChat{
		ID:        chatID,
		EventID:   eventID,
		CreatedAt: chat.CreatedAt.Unix(),
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.events.InsertOne(sc, eventDoc); err != nil {
			return nil, err
		}
		if _, err := r.chats.InsertOne(sc, chatDoc); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := *event
	created.ID = eventID.Hex()
	created.ChatID = chatID.Hex()
	chat.ID = chatID.Hex()
	chat.EventID = eventID.Hex()
	return &created, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	var doc mongoEvent
	if err := r.events.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]*domain.Event, error) {
	cur, err := r.events.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var events []*domain.Event
	for cur.Next(ctx) {
		var doc mongoEvent
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, doc.toDomain())
	}
	return events, cur.Err()
}

// Save persists the mutable fields (participant set).
func (r *EventRepository) Save(ctx context.Context, event *domain.Event) error {
	oid, err := primitive.ObjectIDFromHex(event.ID)
	if err != nil {
		return domain.ErrEventNotFound
	}

	res, err := r.events.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"participants": event.Participants}})
	if err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// DeleteCascade removes the event with its chat, the chat's messages, and the
// event's photos in one transaction. The event and its dependents are one
// persistence unit; none of them is reachable afterwards.
func (r *EventRepository) DeleteCascade(ctx context.Context, eventID string) error {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return domain.ErrEventNotFound
	}

	var doc mongoEvent
	if err := r.events.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("find event: %w", err)
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.msgs.DeleteMany(sc, bson.M{"chat_id": doc.ChatID.Hex()}); err != nil {
			return nil, err
		}
		if _, err := r.chats.DeleteOne(sc, bson.M{"_id": doc.ChatID}); err != nil {
			return nil, err
		}
		if _, err := r.photos.DeleteMany(sc, bson.M{"event_id": oid}); err != nil {
			return nil, err
		}
		if _, err := r.events.DeleteOne(sc, bson.M{"_id": oid}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (r *EventRepository) AddPhoto(ctx context.Context, photo *domain.EventPhoto) error {
	eventID, err := primitive.ObjectIDFromHex(photo.EventID)
	if err != nil {
		return domain.ErrEventNotFound
	}

	id := primitive.NewObjectID()
	doc := mongoEventPhoto{
		ID:          id,
		EventID:     eventID,
		UploaderID:  photo.UploaderID,
		ContentType: photo.ContentType,
		Data:        photo.Data,
		CreatedAt:   photo.CreatedAt.Unix(),
	}
	if _, err := r.photos.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	photo.ID = id.Hex()
	return nil
}

func (r *EventRepository) RemovePhoto(ctx context.Context, eventID, photoID string) error {
	eid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return domain.ErrEventNotFound
	}
	pid, err := primitive.ObjectIDFromHex(photoID)
	if err != nil {
		return domain.ErrPhotoNotFound
	}

	res, err := r.photos.DeleteOne(ctx, bson.M{"_id": pid, "event_id": eid})
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

func (r *EventRepository) FindPhoto(ctx context.Context, eventID, photoID string) (*domain.EventPhoto, error) {
	eid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}
	pid, err := primitive.ObjectIDFromHex(photoID)
	if err != nil {
		return nil, domain.ErrPhotoNotFound
	}

	var doc mongoEventPhoto
	if err := r.photos.FindOne(ctx, bson.M{"_id": pid, "event_id": eid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("find photo: %w", err)
	}

	return &domain.EventPhoto{
		ID:          doc.ID.Hex(),
		EventID:     doc.EventID.Hex(),
		UploaderID:  doc.UploaderID,
		ContentType: doc.ContentType,
		Data:        doc.Data,
		CreatedAt:   unixToTime(doc.CreatedAt),
	}, nil
}

func (d *mongoEvent) toDomain() *domain.Event {
	return &domain.Event{
		ID:           d.ID.Hex(),
		OwnerID:      d.OwnerID.Hex(),
		Title:        d.Title,
		StartDate:    unixToTime(d.StartDate),
		Participants: d.Participants,
		ChatID:       d.ChatID.Hex(),
		CreatedAt:    unixToTime(d.CreatedAt),
	}
}
