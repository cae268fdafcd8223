package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lakemont/crmdash/internal/dash/crm"
	"github.com/lakemont/crmdash/pkg/dashsdk"
	"github.com/lakemont/crmdash/pkg/httpx"
	"github.com/lakemont/crmdash/pkg/slogx"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// RecordsHandler serves GET /external/records, proxying pages of CRM
// account records through the shared session cache.
type RecordsHandler struct {
	CRM *crm.SessionCache
}

// ServeHTTP godoc
//
//	@Summary		List external records
//	@Description	Returns one page of business records from the upstream CRM. The CRM session is cached process-wide and renewed transparently.
//	@Tags			Records
//	@Produce		json
//	@Param			page		query		int	false	"Page number (1-based)"	default(1)
//	@Param			pageSize	query		int	false	"Records per page"		default(10)
//	@Success		200			{object}	dashsdk.RecordsResponse	"records, pagination"
//	@Failure		401			{object}	dashsdk.APIError		"error, error_description"
//	@Failure		502			{object}	dashsdk.APIError		"error, error_description"
//	@Security		BearerAuth
//	@Router			/external/records [get].
func (h *RecordsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := queryInt(r, "pageSize", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	result, err := h.CRM.FetchRecords(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		switch {
		case errors.Is(err, crm.ErrSessionExpired):
			log.Error("crm session expired beyond recovery", "err", err)
			dashsdk.ErrExternalSessionExpired.WriteError(w)
		case errors.Is(err, crm.ErrAuthFailed):
			log.Error("crm authentication failed", "err", err)
			dashsdk.ErrExternalAuthFailed.WriteError(w)
		default:
			log.Error("crm records fetch failed", "err", err)
			dashsdk.ErrServerError.WriteError(w)
		}
		return
	}

	records := make([]dashsdk.Record, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, sdkRecord(rec))
	}

	totalPages := 0
	if result.TotalRecords > 0 {
		totalPages = (result.TotalRecords + pageSize - 1) / pageSize
	}

	httpx.WriteJSON(w, http.StatusOK, dashsdk.RecordsResponse{
		Records: records,
		Pagination: dashsdk.Pagination{
			CurrentPage:  page,
			PageSize:     pageSize,
			TotalRecords: result.TotalRecords,
			TotalPages:   totalPages,
		},
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
