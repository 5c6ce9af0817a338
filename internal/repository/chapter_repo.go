package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChapterRepo accumulates generated stories across requests.
// Entries are usually model.Chapter values but may be any JSON value.
type ChapterRepo interface {
	Append(ctx context.Context, entries ...interface{}) error
	Load(ctx context.Context) (json.RawMessage, error)
}

type fileChapterRepo struct {
	path string
	mu   sync.Mutex
}

// NewFileChapterRepo creates a chapter repository backed by a JSON array on disk.
// Appends are serialized within the process only.
func NewFileChapterRepo(path string) ChapterRepo {
	return &fileChapterRepo{path: path}
}

func (r *fileChapterRepo) Append(ctx context.Context, entries ...interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.readExisting()
	for _, e := range entries {
		raw, err := toRaw(e)
		if err != nil {
			return err
		}
		existing = append(existing, raw)
	}

	return writeJSONFile(r.path, existing)
}

// readExisting returns the current array, treating a missing, unreadable
// or non-array document as empty
func (r *fileChapterRepo) readExisting() []json.RawMessage {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return []json.RawMessage{}
	}

	var existing []json.RawMessage
	if err := json.Unmarshal(data, &existing); err != nil || existing == nil {
		return []json.RawMessage{}
	}
	return existing
}

func (r *fileChapterRepo) Load(ctx context.Context) (json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s: invalid JSON document", r.path)
	}
	return json.RawMessage(data), nil
}

type chapterEntry struct {
	Payload   string    `bson:"payload"`
	CreatedAt time.Time `bson:"createdAt"`
}

type mongoChapterRepo struct {
	collection *mongo.Collection
}

// NewMongoChapterRepo creates a chapter repository storing one document per entry
func NewMongoChapterRepo(db *mongo.Database) ChapterRepo {
	return &mongoChapterRepo{
		collection: db.Collection("chapters"),
	}
}

func (r *mongoChapterRepo) Append(ctx context.Context, entries ...interface{}) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		raw, err := toRaw(e)
		if err != nil {
			return err
		}
		docs = append(docs, chapterEntry{Payload: string(raw), CreatedAt: now})
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

func (r *mongoChapterRepo) Load(ctx context.Context) (json.RawMessage, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []chapterEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	payloads := make([]string, 0, len(entries))
	for _, e := range entries {
		payloads = append(payloads, e.Payload)
	}
	return json.RawMessage("[" + strings.Join(payloads, ",") + "]"), nil
}

func toRaw(v interface{}) (json.RawMessage, error) {
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode chapter entry: %w", err)
	}
	return data, nil
}
