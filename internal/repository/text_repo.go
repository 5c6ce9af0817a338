package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"neurodiverse/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrTextNotFound  = errors.New("extracted text not found")
	ErrTextCorrupted = errors.New("extracted text is corrupted or empty")
)

// TextRepo stores the text extracted from the most recent upload
type TextRepo interface {
	Save(ctx context.Context, text string) error
	Load(ctx context.Context) (string, error)
}

type fileTextRepo struct {
	path string
	mu   sync.RWMutex
}

// NewFileTextRepo creates a text repository backed by a JSON document on disk
func NewFileTextRepo(path string) TextRepo {
	return &fileTextRepo{path: path}
}

func (r *fileTextRepo) Save(ctx context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return writeJSONFile(r.path, model.TextDocument{Text: text})
}

func (r *fileTextRepo) Load(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return "", ErrTextNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", r.path, err)
	}

	var doc model.TextDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", ErrTextCorrupted
	}
	return doc.Text, nil
}

const extractedTextID = "extracted_text"

type mongoTextRepo struct {
	collection *mongo.Collection
}

// NewMongoTextRepo creates a text repository that keeps a single document in MongoDB
func NewMongoTextRepo(db *mongo.Database) TextRepo {
	return &mongoTextRepo{
		collection: db.Collection("documents"),
	}
}

func (r *mongoTextRepo) Save(ctx context.Context, text string) error {
	doc := bson.M{
		"_id":       extractedTextID,
		"text":      text,
		"updatedAt": time.Now(),
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": extractedTextID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoTextRepo) Load(ctx context.Context) (string, error) {
	var doc model.TextDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": extractedTextID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", ErrTextNotFound
	}
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// writeJSONFile writes v as indented JSON without escaping HTML characters
func writeJSONFile(path string, v interface{}) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
