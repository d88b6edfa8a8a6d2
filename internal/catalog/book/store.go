// Copyright (c) 2026 BookWise. All rights reserved.

package book

import "context"

// MediaKind identifies which media URL column an upload targets.
type MediaKind string

const (
	MediaCover MediaKind = "cover"
	MediaPDF   MediaKind = "pdf"
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
)

type Repository interface {
	ListBooks(ctx context.Context, f Filter, limit, offset int) ([]*Book, int, error)
	GetBook(ctx context.Context, idOrSlug string) (*Book, error)
	CreateBook(ctx context.Context, b *Book) error
	UpdateBook(ctx context.Context, b *Book) error
	DeleteBook(ctx context.Context, id string) error
	SetMediaURL(ctx context.Context, id string, kind MediaKind, url string) error
}
