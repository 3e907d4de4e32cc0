package models

import "time"

// ReportReason classifies why a post was flagged.
type ReportReason string

const (
	// ReportReasonSpam flags unsolicited or repetitive content.
	ReportReasonSpam ReportReason = "spam"
	// ReportReasonInappropriate flags content unsuitable for the club.
	ReportReasonInappropriate ReportReason = "inappropriate"
	// ReportReasonHarassment flags abusive behavior toward a user.
	ReportReasonHarassment ReportReason = "harassment"
	// ReportReasonOther covers anything else, described in free text.
	ReportReasonOther ReportReason = "other"
)

// Valid reports whether the reason is one of the known values.
func (r ReportReason) Valid() bool {
	switch r {
	case ReportReasonSpam, ReportReasonInappropriate, ReportReasonHarassment, ReportReasonOther:
		return true
	}
	return false
}

// Report is a user-filed moderation flag on a post. At most one report per
// (post, reporter) pair. Resolution is a human-triggered state flip; reports
// never act on the post themselves.
type Report struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	PostID           uint         `gorm:"not null;uniqueIndex:idx_report_post_reporter" json:"post_id"`
	Post             *Post        `gorm:"foreignKey:PostID" json:"post,omitempty"`
	ReporterID       uint         `gorm:"not null;uniqueIndex:idx_report_post_reporter" json:"reporter_id"`
	Reporter         *User        `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Reason           ReportReason `gorm:"type:varchar(20);not null" json:"reason"`
	Description      string       `gorm:"type:text" json:"description"`
	IsResolved       bool         `gorm:"not null;default:false" json:"is_resolved"`
	ResolvedByUserID *uint        `json:"resolved_by_user_id,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
