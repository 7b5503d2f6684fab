package directory

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tamirciBul/internal/models"
)

// The directory has been observed to use several spellings for the same
// field (company_name vs companyName, rating vs avg_rating) and to return
// ids and coordinates as either numbers or strings. All of that is resolved
// here, once, at the boundary; nothing past this file deals in fallbacks.

type rawService struct {
	ID             json.RawMessage `json:"id"`
	Category       string          `json:"category"`
	DisplayName    string          `json:"display_name"`
	CompanyName    string          `json:"company_name"`
	CompanyNameAlt string          `json:"companyName"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	City           string          `json:"city"`
	District       string          `json:"district"`
	Latitude       json.RawMessage `json:"latitude"`
	Longitude      json.RawMessage `json:"longitude"`
	Rating         *float64        `json:"rating"`
	AvgRating      *float64        `json:"avg_rating"`
	ReviewCount    *int            `json:"review_count"`
	ReviewsCount   *int            `json:"reviews_count"`
}

type rawPagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

type rawServiceDetail struct {
	rawService
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
	Reviews []rawReview `json:"reviews"`
}

type rawReview struct {
	ID          json.RawMessage `json:"id"`
	ServiceID   json.RawMessage `json:"service_id"`
	UserID      int             `json:"user_id"`
	UserName    string          `json:"user_name"`
	UserNameAlt string          `json:"userName"`
	Rating      float64         `json:"rating"`
	Comment     string          `json:"comment"`
	Review      string          `json:"review"`
}

func (r rawService) normalize() (models.ServiceRecord, error) {
	id := parseID(r.ID)
	if id == "" {
		return models.ServiceRecord{}, fmt.Errorf("%w: missing id", models.ErrMalformedRecord)
	}
	name := firstNonEmpty(r.DisplayName, r.CompanyName, r.CompanyNameAlt, r.Name)
	if name == "" {
		return models.ServiceRecord{}, fmt.Errorf("%w: record %s has no name", models.ErrMalformedRecord, id)
	}

	category := strings.ToLower(strings.TrimSpace(r.Category))
	if category == "" || category == models.CategoryAll || !models.ValidCategory(category) {
		category = models.CategoryOther
	}

	rec := models.ServiceRecord{
		ID:          id,
		Category:    category,
		DisplayName: name,
		Description: r.Description,
		City:        r.City,
		District:    r.District,
		Rating:      clampRating(coalesceFloat(r.Rating, r.AvgRating)),
		ReviewCount: coalesceInt(r.ReviewCount, r.ReviewsCount),
		Location:    parseLocation(r.Latitude, r.Longitude),
	}
	return rec, nil
}

func (r rawServiceDetail) normalize() (models.ServiceDetail, error) {
	rec, err := r.rawService.normalize()
	if err != nil {
		return models.ServiceDetail{}, err
	}
	detail := models.ServiceDetail{
		ServiceRecord: rec,
		Phone:         r.Phone,
		Address:       r.Address,
	}
	for _, raw := range r.Reviews {
		detail.Reviews = append(detail.Reviews, models.Review{
			ID:        parseID(raw.ID),
			ServiceID: parseID(raw.ServiceID),
			UserID:    raw.UserID,
			UserName:  firstNonEmpty(raw.UserName, raw.UserNameAlt),
			Rating:    raw.Rating,
			Comment:   firstNonEmpty(raw.Comment, raw.Review),
		})
	}
	return detail, nil
}

// normalizePagination repairs envelopes that omit last_page or per_page.
func normalizePagination(page *models.ResultPage, q models.SearchQuery) {
	if page.PerPage <= 0 {
		page.PerPage = q.PerPage
	}
	if page.CurrentPage <= 0 {
		page.CurrentPage = q.Page
		if page.CurrentPage <= 0 {
			page.CurrentPage = 1
		}
	}
	if page.LastPage <= 0 {
		page.LastPage = totalPages(page.Total, page.PerPage)
	}
}

func totalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// parseID accepts a JSON string or integer id and canonicalizes to string.
func parseID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return ""
}

// parseCoord accepts a JSON number or numeric string.
func parseCoord(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}

// parseLocation returns nil for absent or out-of-range coordinates; such
// records still render, just without a distance.
func parseLocation(latRaw, lngRaw json.RawMessage) *models.GeoPoint {
	lat, ok := parseCoord(latRaw)
	if !ok {
		return nil
	}
	lng, ok := parseCoord(lngRaw)
	if !ok {
		return nil
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil
	}
	return &models.GeoPoint{Latitude: lat, Longitude: lng}
}

func clampRating(r *float64) *float64 {
	if r == nil {
		return nil
	}
	v := *r
	if v < 0 {
		v = 0
	}
	if v > 5 {
		v = 5
	}
	return &v
}

func coalesceFloat(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func coalesceInt(vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
