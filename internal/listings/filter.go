package listings

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
	"github.com/campusbooks/campusbooks-backend/pkg/enums"
)

// Filters describe the supported knobs for the browse endpoint. The SQL
// scope and the in-memory predicate below are two views of the same rules;
// keep them together so they cannot drift apart.
type Filters struct {
	Query      string            `json:"q,omitempty"`
	Course     string            `json:"course,omitempty"`
	Conditions []enums.Condition `json:"conditions,omitempty"`
	MaxPrice   *decimal.Decimal  `json:"max_price,omitempty"`
}

// NormalizeCourseCode uppercases and trims a course token. Listings store
// their course codes in this form, so filters must match it.
func NormalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeCourseCodes maps a raw code list into stored form, dropping blanks.
func NormalizeCourseCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if normalized := NormalizeCourseCode(code); normalized != "" {
			out = append(out, normalized)
		}
	}
	return out
}

func (f Filters) normalizedQuery() string {
	return strings.ToLower(strings.TrimSpace(f.Query))
}

// Scope applies the filter set plus the browse visibility rule (AVAILABLE
// only) to a listings query.
func (f Filters) Scope(db *gorm.DB) *gorm.DB {
	db = db.Where("status = ?", enums.ListingStatusAvailable)

	if q := f.normalizedQuery(); q != "" {
		pattern := "%" + q + "%"
		db = db.Where(
			"LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if course := NormalizeCourseCode(f.Course); course != "" {
		db = db.Where("? = ANY(course_codes)", course)
	}
	if len(f.Conditions) > 0 {
		db = db.Where("condition IN ?", f.Conditions)
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", f.MaxPrice)
	}
	return db
}

// Matches reports whether a listing satisfies the filter set. It mirrors
// Scope exactly for in-process refiltering.
func (f Filters) Matches(l *models.Listing) bool {
	if l == nil || l.Status != enums.ListingStatusAvailable {
		return false
	}

	if q := f.normalizedQuery(); q != "" {
		desc := ""
		if l.Description != nil {
			desc = *l.Description
		}
		if !strings.Contains(strings.ToLower(l.Title), q) &&
			!strings.Contains(strings.ToLower(l.Author), q) &&
			!strings.Contains(strings.ToLower(desc), q) {
			return false
		}
	}

	if course := NormalizeCourseCode(f.Course); course != "" {
		found := false
		for _, code := range l.CourseCodes {
			if code == course {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.Conditions) > 0 {
		found := false
		for _, cond := range f.Conditions {
			if l.Condition == cond {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.MaxPrice != nil && l.Price.GreaterThan(*f.MaxPrice) {
		return false
	}

	return true
}
