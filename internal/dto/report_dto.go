package dto

// ReportResponse points at a rendered PDF.
type ReportResponse struct {
	Path string `json:"path"`
}

type ReportFilter struct {
	Branch string `form:"sucursal"`
	Date   string `form:"fecha"`
}
