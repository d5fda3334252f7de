package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openblog/blog-api/internal/core/domain"
)

const blogsCollection = "blogs"

type BlogRepository struct {
	coll *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{coll: db.Collection(blogsCollection)}
}

type mongoBlog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Username  string             `bson:"username"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBlog{
		Title:     blog.Title,
		Content:   blog.Content,
		Username:  blog.Username,
		CreatedAt: blog.CreatedAt,
		UpdatedAt: blog.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert blog: %w", err)
	}

	created := *blog
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A structurally invalid id can never match a document.
		return nil, domain.ErrBlogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBlog
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return toDomainBlog(mb), nil
}

// FindAll returns every post, newest first.
func (r *BlogRepository) FindAll(ctx context.Context) ([]*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer cursor.Close(ctx)

	blogs := make([]*domain.Blog, 0)
	for cursor.Next(ctx) {
		var mb mongoBlog
		if err := cursor.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode blog: %w", err)
		}
		blogs = append(blogs, toDomainBlog(mb))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

func (r *BlogRepository) Update(ctx context.Context, blog *domain.Blog) (*domain.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(blog.ID)
	if err != nil {
		return nil, domain.ErrBlogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":      blog.Title,
		"content":    blog.Content,
		"updated_at": blog.UpdatedAt,
	}})
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrBlogNotFound
	}
	return blog, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBlogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

func toDomainBlog(mb mongoBlog) *domain.Blog {
	return &domain.Blog{
		ID:        mb.ID.Hex(),
		Title:     mb.Title,
		Content:   mb.Content,
		Username:  mb.Username,
		CreatedAt: mb.CreatedAt.UTC(),
		UpdatedAt: mb.UpdatedAt.UTC(),
	}
}
