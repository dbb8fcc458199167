package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/rpupo63/blogly/models"
	"github.com/rpupo63/blogly/views"
)

// memoryStore is an in-memory stand-in for the postgres repositories with the same
// not-found, uniqueness and cascade behavior.
type memoryStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]models.User
	posts    map[int64]models.Post
	tags     map[int64]models.Tag
	postTags map[int64]map[int64]struct{}
	failWith error
	pingErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[int64]models.User{},
		posts:    map[int64]models.Post{},
		tags:     map[int64]models.Tag{},
		postTags: map[int64]map[int64]struct{}{},
	}
}

func (m *memoryStore) stores() stores {
	return stores{
		users: fakeUsers{m},
		posts: fakePosts{m},
		tags:  fakeTags{m},
		db:    m,
	}
}

func (m *memoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("failed to find %s by id %d: %w", entity, id, gorm.ErrRecordNotFound)
}

func sortedIDs[T any](rows map[int64]T) []int64 {
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *memoryStore) tagsOf(postID int64) []models.Tag {
	tags := make([]models.Tag, 0)
	for _, id := range sortedIDs(m.postTags[postID]) {
		tags = append(tags, m.tags[id])
	}
	return tags
}

func (m *memoryStore) setTags(postID int64, tags []models.Tag) {
	links := map[int64]struct{}{}
	for _, tag := range tags {
		links[tag.ID] = struct{}{}
	}
	m.postTags[postID] = links
}

func (m *memoryStore) deletePost(id int64) {
	delete(m.posts, id)
	delete(m.postTags, id)
}

func (m *memoryStore) Ping(context.Context) error {
	return m.pingErr
}

type fakeUsers struct{ *memoryStore }

func (f fakeUsers) FindAll(context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	users := make([]*models.User, 0, len(f.users))
	for _, id := range sortedIDs(f.users) {
		user := f.users[id]
		users = append(users, &user)
	}
	return users, nil
}

func (f fakeUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	user.Posts = nil
	for _, postID := range sortedIDs(f.posts) {
		if post := f.posts[postID]; post.UserID == id {
			user.Posts = append(user.Posts, post)
		}
	}
	return &user, nil
}

func (f fakeUsers) Add(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user.ID = f.id()
	f.users[user.ID] = *user
	return nil
}

func (f fakeUsers) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.ID]; !ok {
		return notFound("user", user.ID)
	}
	f.users[user.ID] = models.User{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName, ImageURL: user.ImageURL}
	return nil
}

func (f fakeUsers) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return notFound("user", id)
	}
	for postID, post := range f.posts {
		if post.UserID == id {
			f.deletePost(postID)
		}
	}
	delete(f.users, id)
	return nil
}

type fakePosts struct{ *memoryStore }

func (f fakePosts) FindByID(_ context.Context, id int64) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	post, ok := f.posts[id]
	if !ok {
		return nil, notFound("post", id)
	}
	user := f.users[post.UserID]
	post.User = &user
	post.Tags = f.tagsOf(id)
	return &post, nil
}

func (f fakePosts) Add(_ context.Context, post *models.Post, tags []models.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[post.UserID]; !ok {
		return fmt.Errorf("failed to create post: %w", gorm.ErrForeignKeyViolated)
	}
	post.ID = f.id()
	post.CreatedAt = time.Now().UTC()
	f.posts[post.ID] = models.Post{ID: post.ID, Title: post.Title, Content: post.Content, CreatedAt: post.CreatedAt, UserID: post.UserID}
	f.setTags(post.ID, tags)
	return nil
}

func (f fakePosts) Update(_ context.Context, post *models.Post, tags []models.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.posts[post.ID]
	if !ok {
		return notFound("post", post.ID)
	}
	stored.Title = post.Title
	stored.Content = post.Content
	f.posts[post.ID] = stored
	f.setTags(post.ID, tags)
	return nil
}

func (f fakePosts) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.posts[id]; !ok {
		return notFound("post", id)
	}
	f.deletePost(id)
	return nil
}

type fakeTags struct{ *memoryStore }

func (f fakeTags) FindAll(context.Context) ([]*models.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tags := make([]*models.Tag, 0, len(f.tags))
	for _, id := range sortedIDs(f.tags) {
		tag := f.tags[id]
		tags = append(tags, &tag)
	}
	return tags, nil
}

func (f fakeTags) FindByID(_ context.Context, id int64) (*models.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tag, ok := f.tags[id]
	if !ok {
		return nil, notFound("tag", id)
	}
	for _, postID := range sortedIDs(f.postTags) {
		if _, linked := f.postTags[postID][id]; linked {
			tag.Posts = append(tag.Posts, f.posts[postID])
		}
	}
	return &tag, nil
}

func (f fakeTags) FindByIDs(_ context.Context, ids []int64) ([]models.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tags := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		if tag, ok := f.tags[id]; ok {
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	return tags, nil
}

func (f fakeTags) nameTaken(name string, except int64) bool {
	for id, tag := range f.tags {
		if tag.Name == name && id != except {
			return true
		}
	}
	return false
}

func (f fakeTags) Add(_ context.Context, tag *models.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.nameTaken(tag.Name, 0) {
		return fmt.Errorf("failed to create tag: %w", gorm.ErrDuplicatedKey)
	}
	tag.ID = f.id()
	f.tags[tag.ID] = models.Tag{ID: tag.ID, Name: tag.Name}
	return nil
}

func (f fakeTags) Update(_ context.Context, tag *models.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tags[tag.ID]; !ok {
		return notFound("tag", tag.ID)
	}
	if f.nameTaken(tag.Name, tag.ID) {
		return fmt.Errorf("failed to update tag: %w", gorm.ErrDuplicatedKey)
	}
	f.tags[tag.ID] = models.Tag{ID: tag.ID, Name: tag.Name}
	return nil
}

func (f fakeTags) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tags[id]; !ok {
		return notFound("tag", id)
	}
	for _, links := range f.postTags {
		delete(links, id)
	}
	delete(f.tags, id)
	return nil
}

// recordingRenderer remembers the last page rendered instead of producing HTML.
type recordingRenderer struct {
	mu   sync.Mutex
	name string
	data views.Data
	err  error
}

func (r *recordingRenderer) Render(w io.Writer, name string, data views.Data) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.name = name
	r.data = data
	_, err := io.WriteString(w, "page:"+name)
	return err
}

func (r *recordingRenderer) last() (string, views.Data) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name, r.data
}

var errStoreDown = errors.New("connection refused")
