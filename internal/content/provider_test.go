package content

import (
	"academy/internal/cache"
	"academy/internal/entity"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const coursesFixture = `{
  "total": 3,
  "items": [
    {"sys": {"id": "c1"}, "fields": {"slug": "freight", "title": "Freight Forwarding", "modules": ["Incoterms"], "syllabus": {"weeks": 12}}},
    {"sys": {"id": "c2"}, "fields": {"title": "No Slug Course"}},
    {"sys": {"id": "c3"}, "fields": {"slug": "broken", "title": "Broken", "modules": "not-a-list"}}
  ]
}`

const postsFixture = `{
  "total": 1,
  "items": [
    {"sys": {"id": "p1"}, "fields": {"slug": "hello", "title": "Hello", "date": "2024-10-24",
      "coverImage": {"sys": {"type": "Link", "linkType": "Asset", "id": "a1"}}}}
  ],
  "includes": {"Asset": [
    {"sys": {"id": "a1"}, "fields": {"title": "Cover", "file": {"url": "//images.ctfassets.net/cover.jpg", "details": {"image": {"width": 800, "height": 600}}}}}
  ]}
}`

const faqsFixture = `{
  "total": 2,
  "items": [
    {"sys": {"id": "f1"}, "fields": {"question": "When?", "answer": "Now.", "order": 1}},
    {"sys": {"id": "f2"}, "fields": {"question": "", "answer": "Missing question", "order": 2}}
  ]
}`

const seoFixture = `{
  "total": 1,
  "items": [
    {"sys": {"id": "s1"}, "fields": {"internalName": "home", "title": "Home", "keywords": ["logistics"], "noIndex": true,
      "ogImage": {"sys": {"type": "Link", "linkType": "Asset", "id": "a2"}}}}
  ],
  "includes": {"Asset": [
    {"sys": {"id": "a2"}, "fields": {"title": "OG", "file": {"url": "//images.ctfassets.net/og.png"}}}
  ]}
}`

func newContentfulServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/spaces/space/environments/master/entries" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		q := r.URL.Query()
		if q.Get("include") != "2" {
			t.Errorf("expected include=2, got %q", q.Get("include"))
		}
		w.Header().Set("Content-Type", "application/json")
		switch q.Get("content_type") {
		case TypeCourse:
			if q.Get("fields.slug") == "missing" {
				_, _ = io.WriteString(w, `{"total":0,"items":[]}`)
				return
			}
			_, _ = io.WriteString(w, coursesFixture)
		case TypeBlogPost:
			if q.Get("order") != "-fields.date" && q.Get("fields.slug") == "" {
				t.Errorf("expected posts ordered by -fields.date, got %q", q.Get("order"))
			}
			_, _ = io.WriteString(w, postsFixture)
		case TypeFAQ:
			if q.Get("order") != "fields.order" {
				t.Errorf("expected faqs ordered by fields.order, got %q", q.Get("order"))
			}
			_, _ = io.WriteString(w, faqsFixture)
		case TypeSEO:
			if q.Get("fields.internalName") != "home" {
				_, _ = io.WriteString(w, `{"total":0,"items":[]}`)
				return
			}
			_, _ = io.WriteString(w, seoFixture)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
}

func newTestProvider(host string, store cache.Store) *Provider {
	return NewProvider(Options{
		SpaceID:     "space",
		AccessToken: "token",
		Host:        host,
		Timeout:     time.Second,
		CacheTTL:    time.Minute,
		LogLevel:    "panic",
		LogOutput:   io.Discard,
	}, store)
}

func TestLandingFromContentful(t *testing.T) {
	var hits int32
	server := newContentfulServer(t, &hits)
	defer server.Close()

	provider := newTestProvider(server.URL, cache.NewMemoryStore(32, time.Minute))
	page := provider.Landing(context.Background(), 6, 3)

	if page.Source != entity.SourceRemote {
		t.Fatalf("expected remote source, got %s", page.Source)
	}
	if len(page.Courses) != 2 {
		t.Fatalf("expected 2 decodable courses, got %d", len(page.Courses))
	}
	if page.Courses[1].Slug != "c2" {
		t.Fatalf("expected slug to fall back to entry id, got %q", page.Courses[1].Slug)
	}
	if string(page.Courses[0].Syllabus) != `{"weeks": 12}` {
		t.Fatalf("unexpected syllabus %s", page.Courses[0].Syllabus)
	}
	if len(page.BlogPosts) != 1 || page.BlogPosts[0].CoverImage.URL != "https://images.ctfassets.net/cover.jpg" {
		t.Fatalf("unexpected posts %+v", page.BlogPosts)
	}
	if page.BlogPosts[0].CoverImage.Width != 800 {
		t.Fatalf("expected asset width to resolve, got %d", page.BlogPosts[0].CoverImage.Width)
	}
	if len(page.FAQs) != 1 || page.FAQs[0].ID != "f1" {
		t.Fatalf("expected invalid faq to be dropped, got %+v", page.FAQs)
	}

	before := atomic.LoadInt32(&hits)
	_ = provider.Landing(context.Background(), 6, 3)
	if atomic.LoadInt32(&hits) != before {
		t.Fatal("expected second landing call to be served from cache")
	}
}

func TestLandingFallsBackOnRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := newTestProvider(server.URL, nil)
	page := provider.Landing(context.Background(), 1, 0)
	if page.Source != entity.SourceFallback {
		t.Fatalf("expected fallback source, got %s", page.Source)
	}
	if len(page.Courses) != 1 || page.Courses[0].Slug != "logistics-supply-chain" {
		t.Fatalf("unexpected fallback courses %+v", page.Courses)
	}
	if len(page.BlogPosts) != 1 || len(page.FAQs) != 1 {
		t.Fatalf("unexpected fallback page %+v", page)
	}
}

func TestProviderWithoutCredentials(t *testing.T) {
	provider := NewProvider(Options{LogOutput: io.Discard}, nil)
	if provider.Enabled() {
		t.Fatal("expected provider to be disabled")
	}
	courses, source := provider.Courses(context.Background())
	if source != entity.SourceFallback || len(courses) != 2 {
		t.Fatalf("unexpected courses %v from %s", courses, source)
	}
	course, _, err := provider.CourseBySlug(context.Background(), "accounting-taxation")
	if err != nil || course.Title != "Accounting & Taxation" {
		t.Fatalf("unexpected course lookup %+v, %v", course, err)
	}
	if _, _, err := provider.BlogPostBySlug(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	seo, source := provider.SEORecord(context.Background(), "home")
	if source != entity.SourceFallback || seo.Title != "Elevate U Academy" {
		t.Fatalf("unexpected seo fallback %+v", seo)
	}
}

func TestCourseBySlugAndSEO(t *testing.T) {
	var hits int32
	server := newContentfulServer(t, &hits)
	defer server.Close()
	provider := newTestProvider(server.URL, nil)

	if _, _, err := provider.CourseBySlug(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	seo, source := provider.SEORecord(context.Background(), "home")
	if source != entity.SourceRemote {
		t.Fatalf("expected remote seo, got %s", source)
	}
	if !seo.NoIndex || seo.OGImage == nil || seo.OGImage.URL != "https://images.ctfassets.net/og.png" {
		t.Fatalf("unexpected seo record %+v", seo)
	}
	if seo.Description != "Master Logistics and Supply Chain Management." {
		t.Fatalf("expected default description, got %q", seo.Description)
	}

	fallback, source := provider.SEORecord(context.Background(), "about")
	if source != entity.SourceFallback || fallback.InternalName != "about" {
		t.Fatalf("unexpected seo fallback %+v from %s", fallback, source)
	}
}
