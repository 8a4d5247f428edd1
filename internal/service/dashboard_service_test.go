package service

import (
	"academy/internal/entity"
	"context"
	"testing"
	"time"
)

type stubCatalog struct {
	space string
}

func (s stubCatalog) Courses(context.Context) ([]entity.Course, entity.ContentSource) {
	courses := make([]entity.Course, 7)
	for i := range courses {
		courses[i] = entity.Course{ID: "c" + itoa(uint(i)), Title: "Course"}
	}
	return courses, entity.SourceRemote
}

func (s stubCatalog) BlogPosts(context.Context) ([]entity.BlogPost, entity.ContentSource) {
	return []entity.BlogPost{{ID: "p1", Title: "Post"}}, entity.SourceRemote
}

func (s stubCatalog) FAQs(context.Context) ([]entity.FAQ, entity.ContentSource) {
	return []entity.FAQ{{ID: "f1", Question: "Q?"}}, entity.SourceRemote
}

func (s stubCatalog) SpaceID() string { return s.space }

func TestDashboard(t *testing.T) {
	enquiries := NewEnquiryService(newTestRepo(t), &fakeVerifier{}, nil, nil, time.Minute)
	seedEnquiries(t, enquiries, 2)
	svc := NewDashboardService(enquiries, stubCatalog{space: "space1"})

	resp, err := svc.Dashboard(context.Background(), adminSession("a"))
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if resp.EnquiryCount != 2 {
		t.Fatalf("expected 2 enquiries, got %d", resp.EnquiryCount)
	}
	if len(resp.RecentCourses) != dashboardShortcuts {
		t.Fatalf("expected %d course shortcuts, got %d", dashboardShortcuts, len(resp.RecentCourses))
	}
	if resp.RecentPosts[0].EditURL != "https://app.contentful.com/spaces/space1/entries/p1" {
		t.Fatalf("unexpected edit url %q", resp.RecentPosts[0].EditURL)
	}
	if resp.ContentSource != entity.SourceRemote {
		t.Fatalf("unexpected source %s", resp.ContentSource)
	}

	_, err = svc.Dashboard(context.Background(), nil)
	expectKind(t, err, KindUnauthorized, MsgUnauthorized)
}
