package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sportmeet/backend/internal/core/domain"
)

const (
	eventChatCollection   = "event_chats"
	privateChatCollection = "private_chats"
	messageCollection     = "messages"
)

type ChatRepository struct {
	eventChats   *mongo.Collection
	privateChats *mongo.Collection
	msgs         *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{
		eventChats:   db.Collection(eventChatCollection),
		privateChats: db.Collection(privateChatCollection),
		msgs:         db.Collection(messageCollection),
	}
}

type mongoEventChat struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   primitive.ObjectID `bson:"event_id"`
	CreatedAt int64              `bson:"created_at"`
}

type mongoPrivateChat struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Participants []string           `bson:"participants"`
	CreatedAt    int64              `bson:"created_at"`
}

type mongoMessage struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	ChatID   string             `bson:"chat_id"`
	ChatKind string             `bson:"chat_kind"`
	SenderID string             `bson:"sender_id"`
	Content  string             `bson:"content"`
	SentAt   int64              `bson:"sent_at"`
}

func (r *ChatRepository) CreatePrivateChat(ctx context.Context, chat *domain.PrivateChat) (*domain.PrivateChat, error) {
	id := primitive.NewObjectID()
	doc := mongoPrivateChat{
		ID:           id,
		Participants: chat.Participants,
		CreatedAt:    chat.CreatedAt.Unix(),
	}
	if _, err := r.privateChats.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert private chat: %w", err)
	}

	created := *chat
	created.ID = id.Hex()
	return &created, nil
}

func (r *ChatRepository) FindEventChatByID(ctx context.Context, id string) (*domain.EventChat, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrChatNotFound
	}

	var doc mongoEventChat
	if err := r.eventChats.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrChatNotFound
		}
		return nil, fmt.Errorf("find event chat: %w", err)
	}

	return &domain.EventChat{
		ID:        doc.ID.Hex(),
		EventID:   doc.EventID.Hex(),
		CreatedAt: unixToTime(doc.CreatedAt),
	}, nil
}

func (r *ChatRepository) FindPrivateChatByID(ctx context.Context, id string) (*domain.PrivateChat, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrChatNotFound
	}

	var doc mongoPrivateChat
	if err := r.privateChats.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrChatNotFound
		}
		return nil, fmt.Errorf("find private chat: %w", err)
	}

	return &domain.PrivateChat{
		ID:           doc.ID.Hex(),
		Participants: doc.Participants,
		CreatedAt:    unixToTime(doc.CreatedAt),
	}, nil
}

func (r *ChatRepository) SavePrivateChat(ctx context.Context, chat *domain.PrivateChat) error {
	oid, err := primitive.ObjectIDFromHex(chat.ID)
	if err != nil {
		return domain.ErrChatNotFound
	}

	res, err := r.privateChats.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"participants": chat.Participants}})
	if err != nil {
		return fmt.Errorf("save private chat: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrChatNotFound
	}
	return nil
}

// DeletePrivateChat removes the chat and its messages. Deleting an absent
// chat is a no-op.
func (r *ChatRepository) DeletePrivateChat(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := r.msgs.DeleteMany(ctx, bson.M{"chat_id": id}); err != nil {
		return fmt.Errorf("delete chat messages: %w", err)
	}
	if _, err := r.privateChats.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete private chat: %w", err)
	}
	return nil
}

func (r *ChatRepository) AppendMessage(ctx context.Context, msg *domain.Message) error {
	id := primitive.NewObjectID()
	doc := mongoMessage{
		ID:       id,
		ChatID:   msg.ChatID,
		ChatKind: string(msg.ChatKind),
		SenderID: msg.SenderID,
		Content:  msg.Content,
		SentAt:   msg.SentAt.Unix(),
	}
	if _, err := r.msgs.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	msg.ID = id.Hex()
	return nil
}

// ListMessages returns the most recent messages of a chat, oldest first.
func (r *ChatRepository) ListMessages(ctx context.Context, chatID string, limit int) ([]*domain.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.msgs.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var msgs []*domain.Message
	for cur.Next(ctx) {
		var doc mongoMessage
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		msgs = append(msgs, &domain.Message{
			ID:       doc.ID.Hex(),
			ChatID:   doc.ChatID,
			ChatKind: domain.ChatKind(doc.ChatKind),
			SenderID: doc.SenderID,
			Content:  doc.Content,
			SentAt:   unixToTime(doc.SentAt),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	// reverse to chronological order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
