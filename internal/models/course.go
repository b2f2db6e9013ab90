package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Course documents live in the courses collection and are read, never
// written, by this service.
type Course struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Modules []Module           `bson:"modules" json:"modules"`
}

type Module struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code   string             `bson:"code" json:"code"`
	Title  string             `bson:"title" json:"title"`
	Assets []string           `bson:"assets" json:"assets"`
}

// Asset is a single learning item. Which content fields are populated
// depends on Type; the content extractor owns the fallback order.
type Asset struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type            string             `bson:"type" json:"type"`
	Title           string             `bson:"title" json:"title"`
	Content         string             `bson:"content,omitempty" json:"content,omitempty"`
	Transcript      string             `bson:"transcript,omitempty" json:"transcript,omitempty"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	ExtractedText   string             `bson:"extracted_text,omitempty" json:"extracted_text,omitempty"`
	Summary         string             `bson:"summary,omitempty" json:"summary,omitempty"`
	AltText         string             `bson:"alt_text,omitempty" json:"alt_text,omitempty"`
	DurationSeconds int                `bson:"duration,omitempty" json:"duration,omitempty"`
	Metadata        AssetMetadata      `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type AssetMetadata struct {
	Difficulty string `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
}
