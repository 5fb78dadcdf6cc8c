package admin

import (
	"time"

	"github.com/dreammattress/storefront/pkg/constants"
)

// Notice messages.
const (
	ProductAdded   = "✅ Product added successfully!"
	ProductEdited  = "✅ Product edited successfully!"
	ProductDeleted = "✅ Product deleted successfully!"

	SaveFailed    = "Failed to save product. Check backend connection and logs for details."
	DeleteFailed  = "Failed to delete product. Check backend logs."
	RefreshFailed = "Product deleted, but the product list could not be refreshed. Check backend logs."
)

// NoticeKind distinguishes transient success banners from blocking failures.
type NoticeKind int

// Notice kinds.
const (
	NoNotice NoticeKind = iota
	SuccessNotice
	FailureNotice
)

// Notice is a message shown on the dashboard after a workflow step.
// Success notices expire on their own; failure notices block until
// acknowledged.
type Notice struct {
	Kind    NoticeKind
	Message string
	Expires time.Time
}

// Success builds a notice that clears after constants.NoticeDuration.
func Success(message string, now time.Time) Notice {
	return Notice{Kind: SuccessNotice, Message: message, Expires: now.Add(constants.NoticeDuration)}
}

// Failure builds a blocking notice.
func Failure(message string) Notice {
	return Notice{Kind: FailureNotice, Message: message}
}

// Active reports whether the notice should still be displayed at now.
func (n Notice) Active(now time.Time) bool {
	switch n.Kind {
	case SuccessNotice:
		return now.Before(n.Expires)
	case FailureNotice:
		return true
	}
	return false
}

// Blocking reports whether the notice needs explicit acknowledgement.
func (n Notice) Blocking() bool {
	return n.Kind == FailureNotice
}

// Remaining is how long a success notice has left at now.
func (n Notice) Remaining(now time.Time) time.Duration {
	if n.Kind != SuccessNotice || !now.Before(n.Expires) {
		return 0
	}
	return n.Expires.Sub(now)
}
