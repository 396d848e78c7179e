package lunch

import (
	"context"
	"testing"

	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/lunch/domain"
	userdomain "github.com/lunchpick/lunchpick/internal/modules/user/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_MemorySessionStore_FindByID_Unknown_Returns_NotFound(t *testing.T) {
	// Arrange
	store := NewMemorySessionStore()

	// Act
	_, err := store.FindByID(context.Background(), uuid.New())

	// Assert
	require.ErrorIs(t, err, core.ErrNotFound)
}

func Test_MemorySessionStore_Reads_Do_Not_Expose_Stored_State(t *testing.T) {
	// Arrange
	store := NewMemorySessionStore()
	creator := userdomain.User{ID: uuid.New(), Name: "ana", Email: "ana@example.com"}
	session := domain.NewSession(creator)
	require.NoError(t, store.Save(context.Background(), session))

	// Act
	loaded, err := store.FindByID(context.Background(), session.ID)
	require.NoError(t, err)

	loaded.Participants = append(loaded.Participants, userdomain.User{ID: uuid.New()})
	loaded.Active = false

	// Assert
	reloaded, err := store.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Participants, 1)
	require.True(t, reloaded.Active)
}

func Test_MemorySessionStore_Mutations_Only_Visible_After_Save(t *testing.T) {
	// Arrange
	store := NewMemorySessionStore()
	creator := userdomain.User{ID: uuid.New(), Name: "ana", Email: "ana@example.com"}
	session := domain.NewSession(creator)
	require.NoError(t, store.Save(context.Background(), session))

	restaurant := domain.Restaurant{ID: uuid.New(), Name: "one", SessionID: session.ID}
	require.NoError(t, session.AddRestaurant(restaurant))

	// Act
	before, err := store.FindByID(context.Background(), session.ID)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), session))

	after, err := store.FindByID(context.Background(), session.ID)
	require.NoError(t, err)

	// Assert
	require.Empty(t, before.Restaurants)
	require.Len(t, after.Restaurants, 1)
}

func Test_MemoryRestaurantStore_FindByName_Unknown_Returns_NotFound(t *testing.T) {
	// Arrange
	store := NewMemoryRestaurantStore()

	// Act
	_, err := store.FindByName(context.Background(), "nowhere")

	// Assert
	require.ErrorIs(t, err, core.ErrNotFound)
}

func Test_MemoryRestaurantStore_DeleteBySession_Leaves_Other_Sessions_Alone(t *testing.T) {
	// Arrange
	store := NewMemoryRestaurantStore()
	first := uuid.New()
	second := uuid.New()

	require.NoError(t, store.Save(context.Background(), domain.Restaurant{
		ID: uuid.New(), Name: "one", SessionID: first,
	}))
	require.NoError(t, store.Save(context.Background(), domain.Restaurant{
		ID: uuid.New(), Name: "two", SessionID: second,
	}))

	// Act
	require.NoError(t, store.DeleteBySession(context.Background(), first))

	// Assert
	gone, err := store.FindBySession(context.Background(), first)
	require.NoError(t, err)
	require.Empty(t, gone)

	kept, err := store.FindBySession(context.Background(), second)
	require.NoError(t, err)
	require.Len(t, kept, 1)
}
