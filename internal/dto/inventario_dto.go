package dto

// TransferRequest moves Quantity units of SKU from Origin to Destination.
type TransferRequest struct {
	SKU         string `json:"sku"         validate:"required"`
	Quantity    int    `json:"quantity"    validate:"required,min=1"`
	Origin      string `json:"origin"      validate:"required"`
	Destination string `json:"destination" validate:"required,nefield=Origin"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// SummaryResponse feeds the dashboard gauges.
type SummaryResponse struct {
	Branch        string `json:"branch"`
	DistinctSKUs  int    `json:"distinct_skus"`
	TotalUnits    int    `json:"total_units"`
	LowStockCount int    `json:"low_stock_count"`
	Threshold     int    `json:"low_stock_threshold"`
}

type BranchResponse struct {
	Name     string `json:"name"`
	Products int    `json:"products"`
}

// ResetRequest must repeat the confirmation phrase verbatim.
type ResetRequest struct {
	Confirmation string `json:"confirmation" validate:"required"`
}

// ResetConfirmationPhrase is what the operator types to wipe the system.
const ResetConfirmationPhrase = "si, seguro de eliminar todo"
