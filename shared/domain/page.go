package domain

// PageWindow is the offset/limit view of a board's threads for one page.
type PageWindow struct {
	Page       int
	TotalPages int
	Offset     int
	Limit      int
}

// NewPageWindow clamps the requested page into [1, TotalPages].
// TotalPages is at least 1, even for an empty board.
func NewPageWindow(total, pageSize, requested int) PageWindow {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (total + pageSize - 1) / pageSize
	totalPages = max(1, totalPages)
	page := min(max(1, requested), totalPages)
	return PageWindow{
		Page:       page,
		TotalPages: totalPages,
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
	}
}
