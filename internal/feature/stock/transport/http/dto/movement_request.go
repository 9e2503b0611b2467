// Package dto defines data transfer objects for the stock feature's HTTP transport layer.
package dto

// StockInReq represents the request body for the /stockin endpoint.
// JSON and form-encoded bodies are both accepted.
type StockInReq struct {
	SupplierName      string `json:"supplierName" form:"supplierName" binding:"required"`
	Address           string `json:"address" form:"address" binding:"required"`
	ContactNumber     string `json:"contactNumber" form:"contactNumber" binding:"required"`
	CompanyName       string `json:"companyName" form:"companyName" binding:"required"`
	ItemName          string `json:"itemName" form:"itemName" binding:"required"`
	Quantity          int    `json:"quantity" form:"quantity" binding:"required,gt=0"`
	UnitOfMeasurement string `json:"unitOfMeasurement" form:"unitOfMeasurement" binding:"required"`
	Date              string `json:"date" form:"date" binding:"required"`
	Timestamp         string `json:"timestamp" form:"timestamp" binding:"required"`
}

// StockOutReq represents the request body for the /stockout endpoint.
type StockOutReq struct {
	CustomerName      string `json:"customerName" form:"customerName" binding:"required"`
	Address           string `json:"address" form:"address" binding:"required"`
	ContactNumber     string `json:"contactNumber" form:"contactNumber" binding:"required"`
	CompanyName       string `json:"companyName" form:"companyName" binding:"required"`
	ItemName          string `json:"itemName" form:"itemName" binding:"required"`
	Quantity          int    `json:"quantity" form:"quantity" binding:"required,gt=0"`
	UnitOfMeasurement string `json:"unitOfMeasurement" form:"unitOfMeasurement" binding:"required"`
	Date              string `json:"date" form:"date" binding:"required"`
	Timestamp         string `json:"timestamp" form:"timestamp" binding:"required"`
}

// MovementRes acknowledges a recorded movement.
type MovementRes struct {
	Message   string `json:"message"`
	Reference string `json:"reference"`
}
