package types

// Section content is server-authoritative; the client changes it only
// through a refine call. Feedback and UserNotes are independently settable.
type Section struct {
	ID         int      `json:"id"`
	ProjectID  int      `json:"project_id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	OrderIndex int      `json:"order_index"`
	Feedback   Feedback `json:"feedback"`
	UserNotes  string   `json:"user_notes"`
}

type Feedback string

const (
	FeedbackNone    Feedback = ""
	FeedbackLike    Feedback = "like"
	FeedbackDislike Feedback = "dislike"
)

func (f Feedback) Valid() bool {
	switch f {
	case FeedbackNone, FeedbackLike, FeedbackDislike:
		return true
	}
	return false
}

// Marker returns the sidebar badge for a rating, or "" when unrated.
func (f Feedback) Marker() string {
	switch f {
	case FeedbackLike:
		return "+1"
	case FeedbackDislike:
		return "-1"
	}
	return ""
}
