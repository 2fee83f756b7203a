package domain

// Table is a mongo collection name
type Table string

const (
	TableSaleActivities Table = "sale_activities"
)
