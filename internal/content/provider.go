package content

import (
	"academy/internal/cache"
	"academy/internal/entity"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("content not found")

const (
	DefaultLandingCourses = 6
	DefaultLandingPosts   = 3
	maxEntries            = 100
)

// Options configures the provider. A missing space id or token selects the built-in content.
type Options struct {
	SpaceID     string
	AccessToken string
	Environment string
	Host        string
	Timeout     time.Duration
	CacheTTL    time.Duration
	LogLevel    string
	LogOutput   io.Writer
}

// Provider serves typed marketing content, degrading to built-in data on any remote failure.
type Provider struct {
	client   *Client
	cache    cache.Store
	cacheTTL time.Duration
	log      *logrus.Entry
}

// NewProvider builds a provider from explicit configuration. store may be nil.
func NewProvider(opts Options, store cache.Store) *Provider {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if opts.LogOutput != nil {
		logger.SetOutput(opts.LogOutput)
	} else {
		logger.SetOutput(os.Stderr)
	}
	level, err := logrus.ParseLevel(strings.TrimSpace(opts.LogLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	p := &Provider{
		cache:    store,
		cacheTTL: opts.CacheTTL,
		log:      logger.WithField("component", "content"),
	}
	client, err := NewClient(ClientOptions{
		SpaceID:     opts.SpaceID,
		AccessToken: opts.AccessToken,
		Environment: opts.Environment,
		Host:        opts.Host,
		Timeout:     opts.Timeout,
	})
	if err != nil {
		p.log.Warn("contentful credentials not found, using built-in content")
		return p
	}
	p.client = client
	return p
}

// Enabled reports whether a CMS is configured.
func (p *Provider) Enabled() bool {
	return p.client != nil
}

// SpaceID returns the configured space, or "" when running on built-in content.
func (p *Provider) SpaceID() string {
	if p.client == nil {
		return ""
	}
	return p.client.SpaceID()
}

// Landing loads courses, posts and FAQs for the home page. Any remote failure returns the
// built-in set as a whole so the page never mixes sources.
func (p *Provider) Landing(ctx context.Context, courseLimit, postLimit int) entity.LandingPage {
	fallback := entity.LandingPage{
		Courses:   limitSlice(fallbackCourses, courseLimit),
		BlogPosts: limitSlice(fallbackPosts, postLimit),
		FAQs:      limitSlice(fallbackFAQs, 0),
		Source:    entity.SourceFallback,
	}
	if p.client == nil {
		return fallback
	}

	key := fmt.Sprintf("%slanding:%d:%d", cache.KeyContent, courseLimit, postLimit)
	var cached entity.LandingPage
	if p.cacheGet(ctx, key, &cached) {
		return cached
	}

	courses, err := p.fetchCourses(ctx, Query{ContentType: TypeCourse, Limit: courseLimit})
	if err != nil {
		p.log.WithError(err).Error("failed to fetch courses")
		return fallback
	}
	posts, err := p.fetchPosts(ctx, Query{ContentType: TypeBlogPost, Limit: postLimit, Order: "-fields.date"})
	if err != nil {
		p.log.WithError(err).Error("failed to fetch blog posts")
		return fallback
	}
	faqs, err := p.fetchFAQs(ctx)
	if err != nil {
		p.log.WithError(err).Error("failed to fetch faqs")
		return fallback
	}

	page := entity.LandingPage{Courses: courses, BlogPosts: posts, FAQs: faqs, Source: entity.SourceRemote}
	p.cacheSet(ctx, key, page)
	p.log.WithFields(logrus.Fields{
		"courses": len(courses),
		"posts":   len(posts),
		"faqs":    len(faqs),
	}).Debug("landing content fetched")
	return page
}

func (p *Provider) Courses(ctx context.Context) ([]entity.Course, entity.ContentSource) {
	if p.client == nil {
		return limitSlice(fallbackCourses, 0), entity.SourceFallback
	}
	key := cache.KeyContent + "courses"
	var cached []entity.Course
	if p.cacheGet(ctx, key, &cached) {
		return cached, entity.SourceRemote
	}
	courses, err := p.fetchCourses(ctx, Query{ContentType: TypeCourse, Limit: maxEntries})
	if err != nil {
		p.log.WithError(err).Error("failed to fetch courses")
		return limitSlice(fallbackCourses, 0), entity.SourceFallback
	}
	p.cacheSet(ctx, key, courses)
	return courses, entity.SourceRemote
}

func (p *Provider) CourseBySlug(ctx context.Context, slug string) (*entity.Course, entity.ContentSource, error) {
	slug = strings.TrimSpace(slug)
	if p.client != nil {
		courses, err := p.fetchCourses(ctx, Query{ContentType: TypeCourse, Limit: 1, Fields: map[string]string{"slug": slug}})
		if err == nil {
			if len(courses) == 0 {
				return nil, entity.SourceRemote, ErrNotFound
			}
			return &courses[0], entity.SourceRemote, nil
		}
		p.log.WithError(err).WithField("slug", slug).Error("failed to fetch course")
	}
	for _, c := range fallbackCourses {
		if c.Slug == slug {
			course := c
			return &course, entity.SourceFallback, nil
		}
	}
	return nil, entity.SourceFallback, ErrNotFound
}

func (p *Provider) BlogPosts(ctx context.Context) ([]entity.BlogPost, entity.ContentSource) {
	if p.client == nil {
		return limitSlice(fallbackPosts, 0), entity.SourceFallback
	}
	key := cache.KeyContent + "posts"
	var cached []entity.BlogPost
	if p.cacheGet(ctx, key, &cached) {
		return cached, entity.SourceRemote
	}
	posts, err := p.fetchPosts(ctx, Query{ContentType: TypeBlogPost, Limit: maxEntries, Order: "-fields.date"})
	if err != nil {
		p.log.WithError(err).Error("failed to fetch blog posts")
		return limitSlice(fallbackPosts, 0), entity.SourceFallback
	}
	p.cacheSet(ctx, key, posts)
	return posts, entity.SourceRemote
}

func (p *Provider) BlogPostBySlug(ctx context.Context, slug string) (*entity.BlogPost, entity.ContentSource, error) {
	slug = strings.TrimSpace(slug)
	if p.client != nil {
		posts, err := p.fetchPosts(ctx, Query{ContentType: TypeBlogPost, Limit: 1, Fields: map[string]string{"slug": slug}})
		if err == nil {
			if len(posts) == 0 {
				return nil, entity.SourceRemote, ErrNotFound
			}
			return &posts[0], entity.SourceRemote, nil
		}
		p.log.WithError(err).WithField("slug", slug).Error("failed to fetch blog post")
	}
	for _, post := range fallbackPosts {
		if post.Slug == slug {
			found := post
			return &found, entity.SourceFallback, nil
		}
	}
	return nil, entity.SourceFallback, ErrNotFound
}

func (p *Provider) FAQs(ctx context.Context) ([]entity.FAQ, entity.ContentSource) {
	if p.client == nil {
		return limitSlice(fallbackFAQs, 0), entity.SourceFallback
	}
	key := cache.KeyContent + "faqs"
	var cached []entity.FAQ
	if p.cacheGet(ctx, key, &cached) {
		return cached, entity.SourceRemote
	}
	faqs, err := p.fetchFAQs(ctx)
	if err != nil {
		p.log.WithError(err).Error("failed to fetch faqs")
		return limitSlice(fallbackFAQs, 0), entity.SourceFallback
	}
	p.cacheSet(ctx, key, faqs)
	return faqs, entity.SourceRemote
}

// SEORecord looks up page metadata by internal name, falling back to the site defaults.
func (p *Provider) SEORecord(ctx context.Context, internalName string) (entity.SEORecord, entity.ContentSource) {
	fallback := fallbackSEO
	fallback.InternalName = internalName
	if p.client == nil || strings.TrimSpace(internalName) == "" {
		return fallback, entity.SourceFallback
	}

	key := cache.KeyContent + "seo:" + internalName
	var cached entity.SEORecord
	if p.cacheGet(ctx, key, &cached) {
		return cached, entity.SourceRemote
	}

	collection, err := p.client.Entries(ctx, Query{ContentType: TypeSEO, Limit: 1, Fields: map[string]string{"internalName": internalName}})
	if err != nil {
		p.log.WithError(err).WithField("internal_name", internalName).Error("failed to fetch seo record")
		return fallback, entity.SourceFallback
	}
	if len(collection.Items) == 0 {
		return fallback, entity.SourceFallback
	}
	record, err := decodeSEO(collection.Items[0], collection)
	if err != nil {
		p.log.WithError(err).Warn("dropping undecodable seo record")
		return fallback, entity.SourceFallback
	}
	if record.Title == "" {
		record.Title = fallbackSEO.Title
	}
	if record.Description == "" {
		record.Description = fallbackSEO.Description
	}
	p.cacheSet(ctx, key, record)
	return record, entity.SourceRemote
}

// Refresh drops cached content and re-warms the landing page.
func (p *Provider) Refresh(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	if p.cache != nil {
		_ = p.cache.Delete(ctx,
			fmt.Sprintf("%slanding:%d:%d", cache.KeyContent, DefaultLandingCourses, DefaultLandingPosts),
			cache.KeyContent+"courses",
			cache.KeyContent+"posts",
			cache.KeyContent+"faqs",
		)
	}
	page := p.Landing(ctx, DefaultLandingCourses, DefaultLandingPosts)
	if page.Source != entity.SourceRemote {
		return errors.New("content refresh fell back to built-in data")
	}
	return nil
}

func (p *Provider) fetchCourses(ctx context.Context, q Query) ([]entity.Course, error) {
	collection, err := p.client.Entries(ctx, q)
	if err != nil {
		return nil, err
	}
	courses := make([]entity.Course, 0, len(collection.Items))
	for _, item := range collection.Items {
		course, err := decodeCourse(item)
		if err != nil {
			p.log.WithError(err).Warn("dropping undecodable course")
			continue
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func (p *Provider) fetchPosts(ctx context.Context, q Query) ([]entity.BlogPost, error) {
	collection, err := p.client.Entries(ctx, q)
	if err != nil {
		return nil, err
	}
	posts := make([]entity.BlogPost, 0, len(collection.Items))
	for _, item := range collection.Items {
		post, err := decodeBlogPost(item, collection)
		if err != nil {
			p.log.WithError(err).Warn("dropping undecodable blog post")
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (p *Provider) fetchFAQs(ctx context.Context) ([]entity.FAQ, error) {
	collection, err := p.client.Entries(ctx, Query{ContentType: TypeFAQ, Limit: maxEntries, Order: "fields.order"})
	if err != nil {
		return nil, err
	}
	faqs := make([]entity.FAQ, 0, len(collection.Items))
	for _, item := range collection.Items {
		faq, err := decodeFAQ(item)
		if err != nil {
			p.log.WithError(err).Warn("dropping undecodable faq")
			continue
		}
		faqs = append(faqs, faq)
	}
	return faqs, nil
}

func (p *Provider) cacheGet(ctx context.Context, key string, dest any) bool {
	if p.cache == nil {
		return false
	}
	ok, err := p.cache.Get(ctx, key, dest)
	if err != nil {
		p.log.WithError(err).WithField("key", key).Debug("content cache read failed")
		return false
	}
	return ok
}

func (p *Provider) cacheSet(ctx context.Context, key string, value any) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(ctx, key, value, p.cacheTTL); err != nil {
		p.log.WithError(err).WithField("key", key).Debug("content cache write failed")
	}
}
