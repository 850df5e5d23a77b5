package listings

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
	"github.com/campusbooks/campusbooks-backend/pkg/enums"
)

func availableListing() *models.Listing {
	desc := "barely used, includes solution manual"
	return &models.Listing{
		Title:       "Linear Algebra Done Right",
		Author:      "Sheldon Axler",
		Description: &desc,
		CourseCodes: models.StringList{"MATH201", "MATH301"},
		Condition:   enums.ConditionGood,
		Price:       decimal.NewFromFloat(45.50),
		Status:      enums.ListingStatusAvailable,
	}
}

func TestFiltersMatchesQueryAcrossFields(t *testing.T) {
	l := availableListing()

	cases := []struct {
		name  string
		query string
		want  bool
	}{
		{"title case-insensitive", "linear ALGEBRA", true},
		{"author", "axler", true},
		{"description", "solution manual", true},
		{"no match", "organic chemistry", false},
		{"empty matches all", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Filters{Query: tc.query}
			if got := f.Matches(l); got != tc.want {
				t.Fatalf("Matches(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func TestFiltersMatchesQueryWithNilDescription(t *testing.T) {
	l := availableListing()
	l.Description = nil

	if (Filters{Query: "solution"}).Matches(l) {
		t.Fatal("nil description should not match a description-only query")
	}
	if !(Filters{Query: "axler"}).Matches(l) {
		t.Fatal("author match should survive a nil description")
	}
}

func TestFiltersMatchesCourseExactMembership(t *testing.T) {
	l := availableListing()

	if !(Filters{Course: "math201"}).Matches(l) {
		t.Fatal("course filter should normalize case before comparing")
	}
	if !(Filters{Course: "  MATH301 "}).Matches(l) {
		t.Fatal("course filter should trim whitespace before comparing")
	}
	if (Filters{Course: "MATH2"}).Matches(l) {
		t.Fatal("course filter must be exact membership, not a prefix match")
	}
}

func TestFiltersMatchesConditionSet(t *testing.T) {
	l := availableListing()

	if !(Filters{Conditions: []enums.Condition{enums.ConditionNew, enums.ConditionGood}}).Matches(l) {
		t.Fatal("condition set including GOOD should match")
	}
	if (Filters{Conditions: []enums.Condition{enums.ConditionNew}}).Matches(l) {
		t.Fatal("condition set excluding GOOD should not match")
	}
}

func TestFiltersMatchesMaxPriceInclusive(t *testing.T) {
	l := availableListing()

	exact := decimal.NewFromFloat(45.50)
	below := decimal.NewFromFloat(45.49)

	if !(Filters{MaxPrice: &exact}).Matches(l) {
		t.Fatal("max price is inclusive; equal price should match")
	}
	if (Filters{MaxPrice: &below}).Matches(l) {
		t.Fatal("price above max should not match")
	}
}

func TestFiltersMatchesOnlyAvailable(t *testing.T) {
	for _, status := range []enums.ListingStatus{
		enums.ListingStatusPending,
		enums.ListingStatusSold,
		enums.ListingStatusDeleted,
	} {
		l := availableListing()
		l.Status = status
		if (Filters{}).Matches(l) {
			t.Fatalf("status %s should never match browse filters", status)
		}
	}
}

func TestNormalizeCourseCodes(t *testing.T) {
	got := NormalizeCourseCodes([]string{" math201 ", "PHYS101", "", "  "})
	want := []string{"MATH201", "PHYS101"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
