package dto

// StockItem is one row of the /get-stock-items response.
type StockItem struct {
	ID                uint   `json:"id"`
	ItemName          string `json:"item_name"`
	Quantity          int    `json:"quantity"`
	UnitOfMeasurement string `json:"unit_of_measurement"`
}

// HistoryEntry is one row of the /history response.
type HistoryEntry struct {
	ID                uint   `json:"id"`
	Reference         string `json:"reference"`
	TransactionType   string `json:"transaction_type"`
	Name              string `json:"name"`
	Address           string `json:"address"`
	ContactNumber     string `json:"contact_number"`
	CompanyName       string `json:"company_name"`
	ItemName          string `json:"item_name"`
	Quantity          int    `json:"quantity"`
	UnitOfMeasurement string `json:"unit_of_measurement"`
	Date              string `json:"date"`
	Timestamp         string `json:"timestamp"`
}
