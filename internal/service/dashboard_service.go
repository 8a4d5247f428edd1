package service

import (
	"academy/internal/auth"
	"academy/internal/entity"
	"context"
	"fmt"
)

const dashboardShortcuts = 5

// ContentCatalog is the read side of the content provider the dashboard links into.
type ContentCatalog interface {
	Courses(ctx context.Context) ([]entity.Course, entity.ContentSource)
	BlogPosts(ctx context.Context) ([]entity.BlogPost, entity.ContentSource)
	FAQs(ctx context.Context) ([]entity.FAQ, entity.ContentSource)
	SpaceID() string
}

// DashboardService assembles the admin landing page.
type DashboardService struct {
	enquiries *EnquiryService
	content   ContentCatalog
}

func NewDashboardService(enquiries *EnquiryService, content ContentCatalog) *DashboardService {
	return &DashboardService{enquiries: enquiries, content: content}
}

func (s *DashboardService) Dashboard(ctx context.Context, session *auth.Session) (*entity.DashboardResponse, error) {
	count, err := s.enquiries.Count(ctx, session)
	if err != nil {
		return nil, err
	}

	resp := &entity.DashboardResponse{
		User:          session.User(),
		EnquiryCount:  count,
		RecentCourses: []entity.ContentShortcut{},
		RecentPosts:   []entity.ContentShortcut{},
		RecentFAQs:    []entity.ContentShortcut{},
		ContentSource: entity.SourceFallback,
	}
	if s.content == nil {
		return resp, nil
	}

	space := s.content.SpaceID()
	courses, source := s.content.Courses(ctx)
	for i, c := range courses {
		if i == dashboardShortcuts {
			break
		}
		resp.RecentCourses = append(resp.RecentCourses, shortcut(space, c.ID, c.Title))
	}
	posts, _ := s.content.BlogPosts(ctx)
	for i, p := range posts {
		if i == dashboardShortcuts {
			break
		}
		resp.RecentPosts = append(resp.RecentPosts, shortcut(space, p.ID, p.Title))
	}
	faqs, _ := s.content.FAQs(ctx)
	for i, f := range faqs {
		if i == dashboardShortcuts {
			break
		}
		resp.RecentFAQs = append(resp.RecentFAQs, shortcut(space, f.ID, f.Question))
	}
	resp.ContentSource = source
	return resp, nil
}

func shortcut(space, id, title string) entity.ContentShortcut {
	sc := entity.ContentShortcut{ID: id, Title: title}
	if space != "" && id != "" {
		sc.EditURL = fmt.Sprintf("https://app.contentful.com/spaces/%s/entries/%s", space, id)
	}
	return sc
}
