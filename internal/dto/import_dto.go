package dto

// ImportRow is one raw CSV row. Values stay as text until the import pass
// parses them, so a malformed value aborts the whole import.
type ImportRow struct {
	Line   int    `json:"line"`
	SKU    string `json:"sku"`
	Name   string `json:"nombre"`
	Price  string `json:"precio"`
	Stock  string `json:"stock"`
	Branch string `json:"sucursal"`
}

type ImportResponse struct {
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Message string `json:"message"`
}
