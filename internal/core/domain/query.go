package domain

// SortKey orders documents in list and search results.
type SortKey string

const (
	// SortByTitle orders by title, case-insensitive.
	SortByTitle SortKey = "title"
	// SortByPageCount orders by page count ascending.
	SortByPageCount SortKey = "pageCount"
	// SortByReadStatus orders unread before read.
	SortByReadStatus SortKey = "readStatus"
	// SortByDateAdded orders by date added ascending.
	SortByDateAdded SortKey = "dateAdded"
)

// ReadFilter restricts list and search results by read state.
type ReadFilter string

const (
	// FilterAll keeps every document.
	FilterAll ReadFilter = "all"
	// FilterReadOnly keeps documents marked read.
	FilterReadOnly ReadFilter = "readOnly"
	// FilterUnreadOnly keeps documents not marked read.
	FilterUnreadOnly ReadFilter = "unreadOnly"
)

// Statistics is a single consistent snapshot of library counts.
type Statistics struct {
	Total          int            `json:"total"`
	Indexed        int            `json:"indexed"`
	Pending        int            `json:"pending"`
	Failed         int            `json:"failed"`
	ReadCount      int            `json:"read_count"`
	PerGroupCounts map[string]int `json:"per_group_counts"`
}
