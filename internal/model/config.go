package model

// DefaultLowStockThreshold is the stock level at or below which a product is
// reported as low after a sale when no threshold is configured.
const DefaultLowStockThreshold = 10

// Config is the process-wide engine configuration record.
type Config struct {
	LowStockThreshold int `json:"low_stock_threshold" validate:"min=0"`
}

// IsLowStock reports whether stock is at or below the configured threshold.
func (c Config) IsLowStock(stock int) bool { return stock <= c.LowStockThreshold }
