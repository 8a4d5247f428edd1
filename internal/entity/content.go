package entity

import "encoding/json"

// ContentSource tells callers whether content came from the CMS or the built-in fallback.
type ContentSource string

const (
	SourceRemote   ContentSource = "contentful"
	SourceFallback ContentSource = "fallback"
)

type Course struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Category    string          `json:"category"`
	Duration    string          `json:"duration"`
	Description string          `json:"description"`
	Modules     []string        `json:"modules"`
	Highlights  []string        `json:"highlights"`
	Tools       []string        `json:"tools"`
	Syllabus    json.RawMessage `json:"syllabus,omitempty"`
}

type Image struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type BlogPost struct {
	ID         string          `json:"id"`
	Slug       string          `json:"slug" validate:"required"`
	Title      string          `json:"title" validate:"required"`
	Excerpt    string          `json:"excerpt"`
	Date       string          `json:"date"`
	Category   string          `json:"category"`
	CoverImage Image           `json:"cover_image"`
	Content    json.RawMessage `json:"content,omitempty"`
}

type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Order    int    `json:"order"`
}

type SEORecord struct {
	InternalName   string          `json:"internal_name" validate:"required"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Keywords       []string        `json:"keywords"`
	NoIndex        bool            `json:"no_index"`
	OGImage        *Image          `json:"og_image,omitempty"`
	StructuredData json.RawMessage `json:"structured_data,omitempty"`
}

type LandingPage struct {
	Courses   []Course      `json:"courses"`
	BlogPosts []BlogPost    `json:"blog_posts"`
	FAQs      []FAQ         `json:"faqs"`
	Source    ContentSource `json:"source"`
}

type SEOResponse struct {
	Record SEORecord     `json:"record"`
	Source ContentSource `json:"source"`
}

// ContentShortcut links an admin to the CMS editor for an entry.
type ContentShortcut struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	EditURL string `json:"edit_url,omitempty"`
}

type DashboardResponse struct {
	User          SessionUser       `json:"user"`
	EnquiryCount  int               `json:"enquiry_count"`
	RecentCourses []ContentShortcut `json:"recent_courses"`
	RecentPosts   []ContentShortcut `json:"recent_posts"`
	RecentFAQs    []ContentShortcut `json:"recent_faqs"`
	ContentSource ContentSource     `json:"content_source"`
}
