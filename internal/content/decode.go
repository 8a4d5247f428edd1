package content

import (
	"academy/internal/entity"
	"academy/internal/validation"
	"encoding/json"
	"fmt"
	"strings"
)

type link struct {
	Sys sys `json:"sys"`
}

type courseFields struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Duration    string          `json:"duration"`
	Description string          `json:"description"`
	Modules     []string        `json:"modules"`
	Highlights  []string        `json:"highlights"`
	Tools       []string        `json:"tools"`
	Syllabus    json.RawMessage `json:"syllabus"`
}

type blogPostFields struct {
	Slug       string          `json:"slug"`
	Title      string          `json:"title"`
	Excerpt    string          `json:"excerpt"`
	Date       string          `json:"date"`
	Category   string          `json:"category"`
	CoverImage *link           `json:"coverImage"`
	Content    json.RawMessage `json:"content"`
}

type faqFields struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
}

type seoFields struct {
	InternalName   string          `json:"internalName"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Keywords       []string        `json:"keywords"`
	NoIndex        bool            `json:"noIndex"`
	OGImage        *link           `json:"ogImage"`
	StructuredData json.RawMessage `json:"structuredData"`
}

// decodeEntry unmarshals the raw field bag into its typed shape and validates the result.
// A failure means the entry is unusable and must be dropped, not patched.
func decodeEntry[T any](entry rawEntry, fields any, build func() T) (T, error) {
	var zero T
	if len(entry.Fields) == 0 {
		return zero, fmt.Errorf("entry %s has no fields", entry.Sys.ID)
	}
	if err := json.Unmarshal(entry.Fields, fields); err != nil {
		return zero, fmt.Errorf("entry %s: %w", entry.Sys.ID, err)
	}
	out := build()
	if err := validation.Default().Struct(out); err != nil {
		return zero, fmt.Errorf("entry %s: %w", entry.Sys.ID, err)
	}
	return out, nil
}

func decodeCourse(entry rawEntry) (entity.Course, error) {
	var f courseFields
	return decodeEntry(entry, &f, func() entity.Course {
		slug := strings.TrimSpace(f.Slug)
		if slug == "" {
			slug = entry.Sys.ID
		}
		return entity.Course{
			ID:          entry.Sys.ID,
			Slug:        slug,
			Title:       f.Title,
			Category:    f.Category,
			Duration:    f.Duration,
			Description: f.Description,
			Modules:     nonNil(f.Modules),
			Highlights:  nonNil(f.Highlights),
			Tools:       nonNil(f.Tools),
			Syllabus:    f.Syllabus,
		}
	})
}

func decodeBlogPost(entry rawEntry, c *EntryCollection) (entity.BlogPost, error) {
	var f blogPostFields
	return decodeEntry(entry, &f, func() entity.BlogPost {
		slug := strings.TrimSpace(f.Slug)
		if slug == "" {
			slug = entry.Sys.ID
		}
		post := entity.BlogPost{
			ID:       entry.Sys.ID,
			Slug:     slug,
			Title:    f.Title,
			Excerpt:  f.Excerpt,
			Date:     f.Date,
			Category: f.Category,
			Content:  f.Content,
		}
		if img := resolveImage(f.CoverImage, c); img != nil {
			post.CoverImage = *img
		}
		return post
	})
}

func decodeFAQ(entry rawEntry) (entity.FAQ, error) {
	var f faqFields
	return decodeEntry(entry, &f, func() entity.FAQ {
		return entity.FAQ{ID: entry.Sys.ID, Question: f.Question, Answer: f.Answer, Order: f.Order}
	})
}

func decodeSEO(entry rawEntry, c *EntryCollection) (entity.SEORecord, error) {
	var f seoFields
	return decodeEntry(entry, &f, func() entity.SEORecord {
		return entity.SEORecord{
			InternalName:   f.InternalName,
			Title:          f.Title,
			Description:    f.Description,
			Keywords:       nonNil(f.Keywords),
			NoIndex:        f.NoIndex,
			OGImage:        resolveImage(f.OGImage, c),
			StructuredData: f.StructuredData,
		}
	})
}

// resolveImage follows an asset link into the collection's includes.
func resolveImage(l *link, c *EntryCollection) *entity.Image {
	if l == nil || c == nil || l.Sys.ID == "" {
		return nil
	}
	asset, ok := c.asset(l.Sys.ID)
	if !ok || asset.Fields.File.URL == "" {
		return nil
	}
	u := asset.Fields.File.URL
	if strings.HasPrefix(u, "//") {
		u = "https:" + u
	}
	return &entity.Image{
		URL:    u,
		Title:  asset.Fields.Title,
		Width:  asset.Fields.File.Details.Image.Width,
		Height: asset.Fields.File.Details.Image.Height,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
