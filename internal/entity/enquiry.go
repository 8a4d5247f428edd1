package entity

import "time"

const (
	EnquiryStatusNew      = "New"
	EnquiryDefaultCourse  = "General"
	EnquiryRangeAll       = "all"
	EnquiryRangeLast7Days = "7days"
	EnquiryRange30Days    = "30days"
)

// DbEnquiry is a lead captured by the public contact form.
type DbEnquiry struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Phone          string    `gorm:"column:phone;type:varchar(50);not null" json:"phone"`
	CourseInterest string    `gorm:"column:course_interest;type:varchar(100)" json:"course_interest"`
	Status         string    `gorm:"column:status;type:varchar(50);not null;default:New" json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at;index;<-:create" json:"created_at"`
}

// TableName overrides default pluralised name.
func (DbEnquiry) TableName() string {
	return "enquiries"
}

// EnquirySubmission carries the untrusted public form.
type EnquirySubmission struct {
	Name           string `json:"name" form:"name"`
	Phone          string `json:"phone" form:"phone"`
	Course         string `json:"course" form:"course"`
	Honeypot       string `json:"confirm_email" form:"confirm_email"`
	ChallengeToken string `json:"cf-turnstile-response" form:"cf-turnstile-response"`
	RemoteIP       string `json:"-" form:"-"`
}

type EnquirySubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// EnquiryQuery filters the admin enquiry view.
type EnquiryQuery struct {
	Q     string `json:"q" form:"q"`
	Range string `json:"range" form:"range"`
}

type EnquiryListResponse struct {
	Enquiries []DbEnquiry `json:"enquiries"`
	Shown     int         `json:"shown"`
	Total     int         `json:"total"`
}

type EnquiryDeleteRequest struct {
	IDs []string `json:"ids" form:"ids"`
}

type EnquiryDeleteResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

type EnquiryArchiveResponse struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}
