package domain

import "time"

// Interaction types accepted by the tracking endpoint.
const (
	InteractionView     = "view"
	InteractionExpand   = "expand"
	InteractionLink     = "click_link"
	InteractionBookmark = "bookmark"
	InteractionShare    = "share"
)

// PageView is one recorded page load. UserID is nil for anonymous
// visitors, who are correlated through the X-Session-ID header instead.
type PageView struct {
	ID         uint
	UserID     *uint
	SessionID  string
	PageURL    string
	PageTitle  string
	Referrer   string
	IPAddress  string
	UserAgent  string
	DeviceType string
	Timestamp  time.Time
}

// ResourceInteraction is one recorded interaction with a catalog item.
type ResourceInteraction struct {
	ID               uint
	UserID           *uint
	SessionID        string
	ResourceCategory string
	ResourceTitle    string
	InteractionType  string
	InteractionData  map[string]any
	IPAddress        string
	Timestamp        time.Time
}

// SearchQuery is one recorded catalog search.
type SearchQuery struct {
	ID            uint
	UserID        *uint
	SessionID     string
	Query         string
	ResultsCount  int
	ClickedResult string
	Timestamp     time.Time
}

// DailyAnalytics is one day's aggregated rollup row.
type DailyAnalytics struct {
	Date               string       `json:"date"`
	TotalUsers         int64        `json:"totalUsers"`
	NewUsers           int64        `json:"newUsers"`
	ReturningUsers     int64        `json:"returningUsers"`
	TotalPageViews     int64        `json:"totalPageViews"`
	UniquePageViews    int64        `json:"uniquePageViews"`
	AvgSessionDuration float64      `json:"avgSessionDuration"`
	BounceRate         float64      `json:"bounceRate"`
	TopPages           []PageCount  `json:"topPages"`
	TopSearches        []QueryCount `json:"topSearches"`
}

// PageCount pairs a page URL with its view count.
type PageCount struct {
	PageURL string `json:"pageUrl"`
	Views   int64  `json:"views"`
}

// QueryCount pairs a search query with its occurrence count.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// PopularItem pairs a catalog item with its recent interaction count.
type PopularItem struct {
	ResourceCategory string `json:"resourceCategory"`
	ResourceTitle    string `json:"resourceTitle"`
	InteractionCount int64  `json:"interactionCount"`
}

// PageViewTrend is one day's page-view totals for the dashboard.
type PageViewTrend struct {
	Date        string `json:"date"`
	Views       int64  `json:"views"`
	UniqueUsers int64  `json:"uniqueUsers"`
}

// UserStats summarizes account growth and activity.
type UserStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	NewUsersToday    int64 `json:"newUsersToday"`
	NewUsersWeek     int64 `json:"newUsersWeek"`
	ActiveUsersToday int64 `json:"activeUsersToday"`
	ActiveUsersWeek  int64 `json:"activeUsersWeek"`
}

// ActivitySummary is one user's recent activity breakdown.
type ActivitySummary struct {
	PageViews    []DailyCount `json:"pageViews"`
	Interactions []TypeCount  `json:"interactions"`
	TopSearches  []QueryCount `json:"topSearches"`
}

// UserEventCounts are the per-user analytics totals included in a GDPR
// export; raw event rows stay server-side.
type UserEventCounts struct {
	PageViews    int64 `json:"pageViews"`
	Interactions int64 `json:"interactions"`
	Searches     int64 `json:"searches"`
}
