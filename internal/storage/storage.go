package storage

import (
	"context"
	"errors"
)

// Collection names used by the server.
const (
	Users       = "users"
	SensorData  = "sensorData"
	RunReports  = "runReports"
	WalkReports = "walkReports"
	Workouts    = "workouts"
)

// ErrNotFound is returned by FindOne when no document matches the filter.
var ErrNotFound = errors.New("storage: not found")

// Document is a schemaless record. Generated ids live under "_id" as strings.
type Document = map[string]any

// FindOptions orders and bounds a query. A zero Limit means unbounded.
type FindOptions struct {
	SortField  string
	Descending bool
	Limit      int64
}

type Collection interface {
	// InsertOne stores the document and returns its generated id.
	InsertOne(ctx context.Context, doc Document) (string, error)
	// Find returns every document whose fields match all filter entries.
	Find(ctx context.Context, filter Document, opts FindOptions) ([]Document, error)
	// FindOne returns the first matching document or ErrNotFound.
	FindOne(ctx context.Context, filter Document) (Document, error)
	// DeleteOne removes one matching document, reporting whether it existed.
	DeleteOne(ctx context.Context, filter Document) (bool, error)
}

// Database hands out named collections. The rest of the server never sees
// which backend is behind it.
type Database interface {
	Collection(name string) Collection
}
