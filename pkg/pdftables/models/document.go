package models

// PageTables holds the tables detected on one page.
type PageTables struct {
	// Page is the page number (1-based).
	Page int `json:"page"`
	// Tables contains the detected tables in detection order.
	Tables []RawTable `json:"tables,omitempty"`
}

// DocumentInfo describes an opened document.
type DocumentInfo struct {
	// FileName is the document file name (no path).
	FileName string `json:"file_name"`
	// PageCount is the number of pages in the document.
	PageCount int `json:"page_count"`
}
