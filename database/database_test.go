package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rpupo63/blogly/config"
	"github.com/rpupo63/blogly/models"
)

// setupTestDatabase connects to BLOGLY_TEST_DATABASE_URL, migrates and empties every table.
func setupTestDatabase(t *testing.T) Database {
	t.Helper()

	dsn := os.Getenv("BLOGLY_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Skipping test - BLOGLY_TEST_DATABASE_URL not set")
	}

	db, err := Open(config.Settings{DatabaseURL: dsn, Environment: "test"})
	require.NoError(t, err)

	database := New(db)
	require.NoError(t, database.Migrate())
	require.NoError(t, db.Exec("TRUNCATE posts_tags, posts, tags, users RESTART IDENTITY CASCADE").Error)

	t.Cleanup(func() {
		_ = database.Close()
	})
	return database
}

func countPostTags(t *testing.T, d Database, where string, args ...any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, d.db.Model(&models.PostTag{}).Where(where, args...).Count(&count).Error)
	return count
}

func TestUserRepo_AddAndFind(t *testing.T) {
	d := setupTestDatabase(t)
	ctx := context.Background()

	user := models.NewUser("Ada", "Lovelace", "")
	require.NoError(t, d.UserRepo().Add(ctx, user))
	require.NotZero(t, user.ID)

	found, err := d.UserRepo().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.FirstName)
	assert.Equal(t, "Lovelace", found.LastName)
	assert.Equal(t, models.DefaultImageURL, found.ImageURL)
	assert.Empty(t, found.Posts)
}

func TestUserRepo_FindAllInsertionOrder(t *testing.T) {
	d := setupTestDatabase(t)
	ctx := context.Background()

	users, err := d.UserRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	for _, name := range []string{"Grace", "Alan", "Barbara"} {
		require.NoError(t, d.UserRepo().Add(ctx, models.NewUser(name, "Test", "")))
	}

	users, err = d.UserRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Grace", users[0].FirstName)
	assert.Equal(t, "Alan", users[1].FirstName)
	assert.Equal(t, "Barbara", users[2].FirstName)
}

func TestUserRepo_UpdateAllowsBlankImage(t *testing.T) {
	d := setupTestDatabase(t)
	ctx := context.Background()

	user := models.NewUser("Ada", "Lovelace", "https://example.com/ada.png")
	require.NoError(t, d.UserRepo().Add(ctx, user))

	user.FirstName = "Augusta"
	user.ImageURL = ""
	require.NoError(t, d.UserRepo().Update(ctx, user))

	found, err := d.UserRepo().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", found.FirstName)
	assert.Equal(t, "", found.ImageURL)
}

func TestRepos_NotFound(t *testing.T) {
	d := setupTestDatabase(t)
	ctx := context.Background()

	_, err := d.UserRepo().FindByID(ctx, 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = d.PostRepo().FindByID(ctx, 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = d.TagRepo().FindByID(ctx, 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, d.UserRepo().Update(ctx, &models.User{ID: 404, FirstName: "x", LastName: "y"}), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, d.TagRepo().Update(ctx, &models.Tag{ID: 404, Name: "x"}), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, d.UserRepo().Delete(ctx, 404), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, d.PostRepo().Delete(ctx, 404), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, d.TagRepo().Delete(ctx, 404), gorm.ErrRecordNotFound)
}

func TestTagRepo_UniqueName(t *testing.T) {
	d := setupTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, d.TagRepo().Add(ctx, &models.Tag{Name: "python"}))
	err := d.TagRepo().Add(ctx, &models.Tag{Name: "python"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestTagRepo_FindByIDs(t *testing.T) {
	d := setupTestDatabase(t)
	ctx := context.Background()

	python := &models.Tag{Name: "python"}
	golang := &models.Tag{Name: "go"}
	require.NoError(t, d.TagRepo().Add(ctx, python))
	require.NoError(t, d.TagRepo().Add(ctx, golang))

	tags, err := d.TagRepo().FindByIDs(ctx, []int64{golang.ID, 999, python.ID, golang.ID})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "python", tags[0].Name)
	assert.Equal(t, "go", tags[1].Name)

	tags, err = d.TagRepo().FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestPostRepo_TagSetLifecycle(t *testing.T) {
	d := setupTestDatabase(t)
	ctx := context.Background()

	user := models.NewUser("Ada", "Lovelace", "")
	require.NoError(t, d.UserRepo().Add(ctx, user))
	python := &models.Tag{Name: "python"}
	golang := &models.Tag{Name: "go"}
	sql := &models.Tag{Name: "sql"}
	for _, tag := range []*models.Tag{python, golang, sql} {
		require.NoError(t, d.TagRepo().Add(ctx, tag))
	}

	post := &models.Post{Title: "Hello", Content: "World", UserID: user.ID}
	require.NoError(t, d.PostRepo().Add(ctx, post, []models.Tag{*python}))

	found, err := d.PostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, found.Tags, 1)
	assert.Equal(t, "python", found.Tags[0].Name)
	require.NotNil(t, found.User)
	assert.Equal(t, user.ID, found.User.ID)
	assert.False(t, found.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now(), found.CreatedAt, 24*time.Hour)

	found.Title = "Hello again"
	require.NoError(t, d.PostRepo().Update(ctx, found, []models.Tag{*golang, *sql}))

	found, err = d.PostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello again", found.Title)
	assert.Equal(t, []int64{golang.ID, sql.ID}, found.TagIDs())

	require.NoError(t, d.PostRepo().Update(ctx, found, nil))
	found, err = d.PostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Tags)
	assert.Equal(t, int64(0), countPostTags(t, d, "post_id = ?", post.ID))
}

func TestTagRepo_DeleteRemovesOnlyItsLinks(t *testing.T) {
	d := setupTestDatabase(t)
	ctx := context.Background()

	user := models.NewUser("Ada", "Lovelace", "")
	require.NoError(t, d.UserRepo().Add(ctx, user))
	python := &models.Tag{Name: "python"}
	golang := &models.Tag{Name: "go"}
	require.NoError(t, d.TagRepo().Add(ctx, python))
	require.NoError(t, d.TagRepo().Add(ctx, golang))

	post := &models.Post{Title: "Hello", Content: "World", UserID: user.ID}
	require.NoError(t, d.PostRepo().Add(ctx, post, []models.Tag{*python, *golang}))

	require.NoError(t, d.TagRepo().Delete(ctx, python.ID))

	assert.Equal(t, int64(0), countPostTags(t, d, "tag_id = ?", python.ID))
	assert.Equal(t, int64(1), countPostTags(t, d, "tag_id = ?", golang.ID))

	found, err := d.PostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{golang.ID}, found.TagIDs())
}

func TestUserRepo_DeleteCascadesToPosts(t *testing.T) {
	d := setupTestDatabase(t)
	ctx := context.Background()

	user := models.NewUser("Ada", "Lovelace", "")
	require.NoError(t, d.UserRepo().Add(ctx, user))
	tag := &models.Tag{Name: "python"}
	require.NoError(t, d.TagRepo().Add(ctx, tag))
	post := &models.Post{Title: "Hello", Content: "World", UserID: user.ID}
	require.NoError(t, d.PostRepo().Add(ctx, post, []models.Tag{*tag}))

	require.NoError(t, d.UserRepo().Delete(ctx, user.ID))

	_, err := d.PostRepo().FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, int64(0), countPostTags(t, d, "post_id = ?", post.ID))

	found, err := d.TagRepo().FindByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Posts)
}

func TestPostRepo_AddRejectsUnknownUser(t *testing.T) {
	d := setupTestDatabase(t)
	ctx := context.Background()

	err := d.PostRepo().Add(ctx, &models.Post{Title: "Orphan", Content: "x", UserID: 12345}, nil)
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
}

func TestDatabase_Ping(t *testing.T) {
	d := setupTestDatabase(t)

	assert.NoError(t, d.Ping(context.Background()))
}
