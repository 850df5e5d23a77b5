package watchlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campusbooks/campusbooks-backend/internal/listings"
	"github.com/campusbooks/campusbooks-backend/internal/users"
	"github.com/campusbooks/campusbooks-backend/pkg/db/models"
	"github.com/campusbooks/campusbooks-backend/pkg/enums"
	pkgerrors "github.com/campusbooks/campusbooks-backend/pkg/errors"
)

func newWatchlistService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Listing{}, &models.WatchlistItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(conn),
		Listings: listings.NewRepository(conn),
		Users:    users.NewRepository(conn),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, conn
}

func seedWatcher(t *testing.T, conn *gorm.DB) *models.User {
	t.Helper()
	u := &models.User{
		Username:     "watcher",
		Email:        "watcher@campus.edu",
		PasswordHash: "x",
		Name:         "Watcher",
		IsActive:     true,
	}
	if err := conn.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedWatchableListing(t *testing.T, conn *gorm.DB) *models.Listing {
	t.Helper()
	l := &models.Listing{
		SellerID:  uuid.New(),
		Title:     "Microeconomics",
		Author:    "Varian",
		Condition: enums.ConditionGood,
		Price:     decimal.NewFromInt(25),
		Status:    enums.ListingStatusAvailable,
	}
	if err := conn.Create(l).Error; err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	return l
}

func TestWatchlistAddIsIdempotent(t *testing.T) {
	svc, conn := newWatchlistService(t)
	ctx := context.Background()

	u := seedWatcher(t, conn)
	l := seedWatchableListing(t, conn)

	input := UpdateInput{ListingID: l.ID, Action: "add"}
	user, err := svc.Update(ctx, u.ID, input)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if user.ID != u.ID {
		t.Fatalf("expected the acting user back, got %s", user.ID)
	}
	if len(user.Watchlist) != 1 || user.Watchlist[0] != l.ID {
		t.Fatalf("expected [%s], got %v", l.ID, user.Watchlist)
	}

	user, err = svc.Update(ctx, u.ID, input)
	if err != nil {
		t.Fatalf("repeated add: %v", err)
	}
	if len(user.Watchlist) != 1 {
		t.Fatalf("repeated add must not duplicate, got %v", user.Watchlist)
	}
}

func TestWatchlistAddMissingListing(t *testing.T) {
	svc, conn := newWatchlistService(t)
	u := seedWatcher(t, conn)

	_, err := svc.Update(context.Background(), u.ID, UpdateInput{
		ListingID: uuid.New(),
		Action:    "add",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestWatchlistUpdateMissingUser(t *testing.T) {
	svc, conn := newWatchlistService(t)
	l := seedWatchableListing(t, conn)

	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{
		ListingID: l.ID,
		Action:    "add",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestWatchlistRemoveIsIdempotent(t *testing.T) {
	svc, conn := newWatchlistService(t)
	ctx := context.Background()

	u := seedWatcher(t, conn)
	l := seedWatchableListing(t, conn)

	if _, err := svc.Update(ctx, u.ID, UpdateInput{ListingID: l.ID, Action: "add"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	user, err := svc.Update(ctx, u.ID, UpdateInput{ListingID: l.ID, Action: "remove"})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(user.Watchlist) != 0 {
		t.Fatalf("expected empty watchlist, got %v", user.Watchlist)
	}

	// Removing an absent item stays quiet.
	if _, err := svc.Update(ctx, u.ID, UpdateInput{ListingID: l.ID, Action: "remove"}); err != nil {
		t.Fatalf("repeated remove: %v", err)
	}
}

func TestWatchlistRejectsUnknownAction(t *testing.T) {
	svc, _ := newWatchlistService(t)

	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{
		ListingID: uuid.New(),
		Action:    "toggle",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWatchlistListIDsOldestFirst(t *testing.T) {
	svc, conn := newWatchlistService(t)
	ctx := context.Background()

	userID := uuid.New()
	first := seedWatchableListing(t, conn)
	second := seedWatchableListing(t, conn)

	repo := NewRepository(conn)
	if err := repo.AddItem(ctx, userID, first.ID); err != nil {
		t.Fatalf("add first: %v", err)
	}
	if err := conn.Model(&models.WatchlistItem{}).
		Where("user_id = ? AND listing_id = ?", userID, first.ID).
		Update("created_at", "2024-01-01 00:00:00").Error; err != nil {
		t.Fatalf("backdate first: %v", err)
	}
	if err := repo.AddItem(ctx, userID, second.ID); err != nil {
		t.Fatalf("add second: %v", err)
	}

	ids, err := svc.ListIDs(ctx, userID)
	if err != nil {
		t.Fatalf("list ids: %v", err)
	}
	if len(ids) != 2 || ids[0] != first.ID || ids[1] != second.ID {
		t.Fatalf("expected oldest-first [%s %s], got %v", first.ID, second.ID, ids)
	}
}
