package database

import "fmt"

// Page is one page of results plus the pagination summary.
type Page struct {
	Rows         []Row
	Total        int64
	PerPage      int
	CurrentPage  int
	LastPage     int
	From         int64
	To           int64
	HasMorePages bool
}

// Paginate returns page `page` of the rows matching the condition map,
// perPage rows per page. Pages are 1-based; values below 1 clamp to 1.
// The orderBy string is trusted verbatim, as in Select.
func (r runner) Paginate(table string, columns []string, where Conditions, orderBy string, page, perPage int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	total, err := r.Count(table, where)
	if err != nil {
		return nil, err
	}

	offset := int64(page-1) * int64(perPage)
	limit := fmt.Sprintf("LIMIT %d OFFSET %d", perPage, offset)
	rows, err := r.selectLimit(table, columns, where, orderBy, limit)
	if err != nil {
		return nil, err
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	var from, to int64
	if len(rows) > 0 {
		from = offset + 1
		to = offset + int64(len(rows))
	}

	return &Page{
		Rows:         rows,
		Total:        total,
		PerPage:      perPage,
		CurrentPage:  page,
		LastPage:     lastPage,
		From:         from,
		To:           to,
		HasMorePages: offset+int64(len(rows)) < total,
	}, nil
}
