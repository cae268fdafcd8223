package dashsdk

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInfo is the public projection of an account.
type UserInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AuthResponse is returned by register, login and refresh: the identity
// fields plus a fresh access token. The refresh token itself travels only
// in the HttpOnly cookie, never in the body.
type AuthResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Token     string `json:"token"`
}

// UserInfo returns the identity fields of an AuthResponse.
func (a AuthResponse) UserInfo() UserInfo {
	return UserInfo{ID: a.ID, Email: a.Email, FirstName: a.FirstName, LastName: a.LastName}
}

// Record is one external CRM account row.
type Record struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
	Website        string `json:"website,omitempty"`
	Industry       string `json:"industry,omitempty"`
	BillingStreet  string `json:"billingStreet,omitempty"`
	BillingCity    string `json:"billingCity,omitempty"`
	BillingState      string `json:"billingState,omitempty"`
	BillingPostalCode string `json:"billingPostalCode,omitempty"`
	BillingCountry    string `json:"billingCountry,omitempty"`
}

// Pagination describes the page a RecordsResponse holds.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
	TotalPages   int `json:"totalPages"`
}

// RecordsResponse is returned by GET /external/records.
type RecordsResponse struct {
	Records    []Record   `json:"records"`
	Pagination Pagination `json:"pagination"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
}

// HealthResponse is returned by the health probe endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
