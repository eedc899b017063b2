package guard

import (
	"context"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

type textClient interface {
	PolishMessage(ctx context.Context, text string) (string, error)
	DescribeSpecimen(ctx context.Context, subject string) (domain.SpecimenEntry, error)
}

type imageClient interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
	EditImage(ctx context.Context, dataURL, instructions string) (string, error)
}

// Text is a guarded text collaborator.
type Text struct {
	inner textClient
	g     *Guard
}

// NewText wraps inner with g.
func NewText(inner textClient, g *Guard) *Text {
	return &Text{inner: inner, g: g}
}

func (t *Text) PolishMessage(ctx context.Context, text string) (string, error) {
	return Call(ctx, t.g, func(ctx context.Context) (string, error) {
		return t.inner.PolishMessage(ctx, text)
	})
}

func (t *Text) DescribeSpecimen(ctx context.Context, subject string) (domain.SpecimenEntry, error) {
	return Call(ctx, t.g, func(ctx context.Context) (domain.SpecimenEntry, error) {
		return t.inner.DescribeSpecimen(ctx, subject)
	})
}

// Images is a guarded image collaborator.
type Images struct {
	inner imageClient
	g     *Guard
}

// NewImages wraps inner with g.
func NewImages(inner imageClient, g *Guard) *Images {
	return &Images{inner: inner, g: g}
}

func (i *Images) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return Call(ctx, i.g, func(ctx context.Context) (string, error) {
		return i.inner.GenerateImage(ctx, prompt)
	})
}

func (i *Images) EditImage(ctx context.Context, dataURL, instructions string) (string, error) {
	return Call(ctx, i.g, func(ctx context.Context) (string, error) {
		return i.inner.EditImage(ctx, dataURL, instructions)
	})
}
