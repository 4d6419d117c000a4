package domain

// HistoryTimeFormat is the wire format of HistoryRecord.TimeSearched:
// UTC, ISO-8601, second precision.
const HistoryTimeFormat = "2006-01-02T15:04:05Z"

// SummaryEntries is how many entries a history summary resolves at read time.
const SummaryEntries = 3

// HistoryEntry is one compact (source id, confidence) pair of a past query.
type HistoryEntry struct {
	SourceID   int
	Confidence float64
}

// HistoryRecord is the stored summary of one search. It keeps the entire
// ranked entry list so full results remain reconstructable against the
// catalog; full SearchResult objects are never stored.
type HistoryRecord struct {
	ID           string
	Query        string
	TimeSearched string
	Entries      []HistoryEntry
}

// HistorySummary is the read-time projection of a record: the first
// SummaryEntries entries resolved into full results. Entries whose source
// no longer resolves are dropped, so TopResults may hold fewer than
// SummaryEntries items.
type HistorySummary struct {
	ID           string         `json:"id"`
	Query        string         `json:"query"`
	TimeSearched string         `json:"time_searched"`
	TopResults   []SearchResult `json:"top_results"`
}

// HistoryPage is one pagination window over all history records.
// Total counts every stored record regardless of the window.
type HistoryPage struct {
	Items []HistorySummary `json:"items"`
	Total int              `json:"total"`
}
