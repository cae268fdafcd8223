package domain

// Record is a single business record pulled from the external CRM. Fields
// mirror the CRM's account object; everything is passed through untouched.
type Record struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Phone             string `json:"phone,omitempty"`
	Website           string `json:"website,omitempty"`
	Industry          string `json:"industry,omitempty"`
	BillingStreet     string `json:"billingStreet,omitempty"`
	BillingCity       string `json:"billingCity,omitempty"`
	BillingState      string `json:"billingState,omitempty"`
	BillingPostalCode string `json:"billingPostalCode,omitempty"`
	BillingCountry    string `json:"billingCountry,omitempty"`
}

// RecordPage is one page of CRM records plus the total count needed to
// compute pagination.
type RecordPage struct {
	Records      []Record
	TotalRecords int
}

// Pagination describes the page position of a RecordPage for API responses.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
	TotalPages   int `json:"totalPages"`
}
