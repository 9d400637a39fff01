package social

// PagedResult is one page of an ordered result set plus a continuation
// flag. HasMore=false means no further page exists. Items preserve the
// order delivered by the native layer; an empty Items with
// HasMore=true is a legal mid-sequence page, not end-of-stream.
type PagedResult[T any] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"hasMore"`
	Page    int  `json:"page"`
}

// NewPage assembles a page from a decoded item list and continuation
// flag. Pure assembly; item order is preserved.
func NewPage[T any](items []T, hasMore bool, page int) PagedResult[T] {
	return PagedResult[T]{Items: items, HasMore: hasMore, Page: page}
}

// ListKind names the list-returning operation families that carry
// pagination state.
type ListKind string

const (
	ListContacts     ListKind = "contacts"
	ListFeed         ListKind = "feed"
	ListLeaderboards ListKind = "leaderboards"
	ListScores       ListKind = "scores"
)

// Pager tracks page continuation for one list-returning query family.
// The bridge never tracks multi-page cursor state; continuation is
// driven from the caller side through a Pager.
//
// Pager is not safe for concurrent use; each query context owns one.
type Pager struct {
	page      int
	exhausted bool
}

// Advance returns the page number for the next query. fromStart
// discards prior continuation state and restarts at page zero. A
// next-page query after a hasMore=false page returns ErrEndOfResults.
func (p *Pager) Advance(fromStart bool) (int, error) {
	if fromStart {
		p.page = 0
		p.exhausted = false
		return 0, nil
	}
	if p.exhausted {
		return 0, ErrEndOfResults
	}
	return p.page, nil
}

// Observe records the continuation flag of a delivered page and moves
// the cursor to the following page.
func (p *Pager) Observe(hasMore bool) {
	p.page++
	p.exhausted = !hasMore
}

// Current returns the page number the pager will hand out next.
func (p *Pager) Current() int { return p.page }

// Exhausted reports whether the last observed page was terminal.
func (p *Pager) Exhausted() bool { return p.exhausted }
