package models

import "time"

// AuditFile is the persisted summary of one parsed audit transmission.
type AuditFile struct {
	// ID is the ingest identifier (UUID), shared with the raw archive object.
	ID string `gorm:"column:id;primaryKey;size:36" json:"id"`
	// Label is the caller-supplied name for the transmission.
	Label string `gorm:"column:label;size:255" json:"label"`
	// Success mirrors the parse outcome.
	Success bool `gorm:"column:success" json:"success"`
	// RecordCount is the number of non-empty lines decoded.
	RecordCount int `gorm:"column:record_count" json:"record_count"`
	// PatternType is the detected machine layout (or "unknown").
	PatternType string `gorm:"column:pattern_type;size:64" json:"pattern_type"`
	// Confidence is the layout detector's confidence score.
	Confidence float64 `gorm:"column:confidence" json:"confidence"`
	// RawObject is the storage key of the archived raw file, empty when
	// archiving is disabled.
	RawObject string    `gorm:"column:raw_object;size:255" json:"raw_object"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name.
func (AuditFile) TableName() string {
	return "audit_files"
}

// SelectionRow is one consolidated product selection of an audit file.
type SelectionRow struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuditFileID string `gorm:"column:audit_file_id;size:36;index" json:"audit_file_id"`
	// Selection is the machine selection identifier (e.g. "A1", "101").
	Selection      string `gorm:"column:selection;size:32" json:"selection"`
	Price          int    `gorm:"column:price" json:"price"`
	Capacity       int    `gorm:"column:capacity" json:"capacity"`
	UnitsSold      int    `gorm:"column:units_sold" json:"units_sold"`
	Revenue        int    `gorm:"column:revenue" json:"revenue"`
	TestVends      int    `gorm:"column:test_vends" json:"test_vends"`
	FreeVends      int    `gorm:"column:free_vends" json:"free_vends"`
	CashSales      int    `gorm:"column:cash_sales" json:"cash_sales"`
	CashlessSales  int    `gorm:"column:cashless_sales" json:"cashless_sales"`
	DiscountCount  int    `gorm:"column:discount_count" json:"discount_count"`
	DiscountAmount int    `gorm:"column:discount_amount" json:"discount_amount"`
	LastSaleDate   string `gorm:"column:last_sale_date;size:16" json:"last_sale_date"`
	LastSaleTime   string `gorm:"column:last_sale_time;size:16" json:"last_sale_time"`
	// GridRow and GridColumn are the detected layout cell, nil when the
	// layout is unknown. MySQL reserves COLUMN, hence the prefixed names.
	GridRow    *string `gorm:"column:grid_row;size:16" json:"grid_row"`
	GridColumn *string `gorm:"column:grid_col;size:16" json:"grid_col"`
}

// TableName overrides the table name.
func (SelectionRow) TableName() string {
	return "selection_rows"
}

// ParseIssue is one recorded parse error (fatal or advisory).
type ParseIssue struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuditFileID string `gorm:"column:audit_file_id;size:36;index" json:"audit_file_id"`
	Line        int    `gorm:"column:line" json:"line"`
	Category    string `gorm:"column:category;size:32" json:"category"`
	// Field is the 0-based index of the offending field, or -1.
	Field   int    `gorm:"column:field" json:"field"`
	Message string `gorm:"column:message;size:1024" json:"message"`
}

// TableName overrides the table name.
func (ParseIssue) TableName() string {
	return "parse_issues"
}
