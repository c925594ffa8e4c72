package types

// CacheKey names one snapshot held in the cache store
type CacheKey string

const (
	CacheKeyCases       CacheKey = "cases"
	CacheKeyDetails     CacheKey = "details"
	CacheKeyBugs        CacheKey = "bugs"
	CacheKeyIssues      CacheKey = "issues"
	CacheKeyEscalations CacheKey = "escalations"
	CacheKeyWatchlist   CacheKey = "watchlist"
	CacheKeyCards       CacheKey = "cards"
	CacheKeyStats       CacheKey = "stats"
)

// String returns the string representation of the cache key
func (k CacheKey) String() string {
	return string(k)
}

// IsValid checks if the cache key is one of the known snapshot keys
func (k CacheKey) IsValid() bool {
	for _, key := range CacheKeys() {
		if key == k {
			return true
		}
	}
	return false
}

// CacheKeys returns every snapshot key in warm-up order
func CacheKeys() []CacheKey {
	return []CacheKey{
		CacheKeyCases,
		CacheKeyDetails,
		CacheKeyBugs,
		CacheKeyIssues,
		CacheKeyEscalations,
		CacheKeyWatchlist,
		CacheKeyCards,
		CacheKeyStats,
	}
}
