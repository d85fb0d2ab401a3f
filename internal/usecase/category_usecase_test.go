package usecase

import (
	"context"
	"testing"

	"salon-booking-api/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCategoryNameIsNormalized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.category.Create(ctx, &dto.CreateCategoryRequest{Name: "  Box   Braids "})
	require.NoError(t, err)
	require.Equal(t, "box braids", created.Name)

	// Same name after normalization collides
	_, err = env.category.Create(ctx, &dto.CreateCategoryRequest{Name: "BOX BRAIDS"})
	require.ErrorIs(t, err, ErrCategoryTaken)
}

func TestCategoryDeleteBlockedWhileReferenced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	category, err := env.category.Create(ctx, &dto.CreateCategoryRequest{Name: "braids"})
	require.NoError(t, err)

	style, err := env.style.Create(ctx, &dto.CreateStyleRequest{
		Category: "braids",
		Name:     "Box Braids",
		Value:    "box-braids",
	})
	require.NoError(t, err)

	err = env.category.Delete(ctx, category.ID)
	require.ErrorIs(t, err, ErrCategoryInUse)

	// Once the style is gone the category can be removed
	require.NoError(t, env.style.Delete(ctx, style.ID))
	require.NoError(t, env.category.Delete(ctx, category.ID))
}

func TestCategoryDeleteNotFound(t *testing.T) {
	env := newTestEnv(t)
	err := env.category.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestStyleValueCollision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.style.Create(ctx, &dto.CreateStyleRequest{
		Category: "braids",
		Name:     "Box Braids",
		Value:    "Box Braids",
	})
	require.NoError(t, err)

	// Slug normalization makes these the same value
	_, err = env.style.Create(ctx, &dto.CreateStyleRequest{
		Category: "braids",
		Name:     "Box braids deluxe",
		Value:    "box-braids",
	})
	require.ErrorIs(t, err, ErrStyleValueTaken)
}
