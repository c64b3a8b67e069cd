package service

import (
	"context"
	"testing"

	"skillswap/internal/models"
)

type adminMessageRepoStub struct {
	createFn        func(context.Context, *models.AdminMessage) error
	getByIDFn       func(context.Context, uint) (*models.AdminMessage, error)
	listFn          func(context.Context) ([]models.AdminMessage, error)
	listActiveFn    func(context.Context) ([]models.AdminMessage, error)
	updateFn        func(context.Context, uint, map[string]interface{}) (bool, error)
	deleteFn        func(context.Context, uint) (bool, error)
	platformStatsFn func(context.Context) (*models.PlatformStats, error)
}

func (s *adminMessageRepoStub) Create(ctx context.Context, msg *models.AdminMessage) error {
	return s.createFn(ctx, msg)
}
func (s *adminMessageRepoStub) GetByID(ctx context.Context, id uint) (*models.AdminMessage, error) {
	return s.getByIDFn(ctx, id)
}
func (s *adminMessageRepoStub) List(ctx context.Context) ([]models.AdminMessage, error) {
	return s.listFn(ctx)
}
func (s *adminMessageRepoStub) ListActive(ctx context.Context) ([]models.AdminMessage, error) {
	return s.listActiveFn(ctx)
}
func (s *adminMessageRepoStub) Update(ctx context.Context, id uint, fields map[string]interface{}) (bool, error) {
	return s.updateFn(ctx, id, fields)
}
func (s *adminMessageRepoStub) Delete(ctx context.Context, id uint) (bool, error) {
	return s.deleteFn(ctx, id)
}
func (s *adminMessageRepoStub) PlatformStats(ctx context.Context) (*models.PlatformStats, error) {
	return s.platformStatsFn(ctx)
}

func noopAdminMessageRepo() *adminMessageRepoStub {
	return &adminMessageRepoStub{
		createFn: func(context.Context, *models.AdminMessage) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.AdminMessage, error) {
			return &models.AdminMessage{}, nil
		},
		listFn:       func(context.Context) ([]models.AdminMessage, error) { return nil, nil },
		listActiveFn: func(context.Context) ([]models.AdminMessage, error) { return nil, nil },
		updateFn: func(context.Context, uint, map[string]interface{}) (bool, error) {
			return true, nil
		},
		deleteFn: func(context.Context, uint) (bool, error) { return true, nil },
		platformStatsFn: func(context.Context) (*models.PlatformStats, error) {
			return &models.PlatformStats{}, nil
		},
	}
}

func newAdminService() *AdminService {
	return NewAdminService(noopUserRepo(), noopSwapRepo(), noopSkillRepo(), noopAdminMessageRepo())
}

func TestAdminServiceListUsersInvalidStatus(t *testing.T) {
	svc := newAdminService()
	_, _, err := svc.ListUsers(context.Background(), "", "suspended", 20, 0)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestAdminServiceBanSelf(t *testing.T) {
	svc := newAdminService()
	err := svc.BanUser(context.Background(), 1, 1)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestAdminServiceBanMissingUser(t *testing.T) {
	users := noopUserRepo()
	users.setBannedFn = func(context.Context, uint, bool) (bool, error) { return false, nil }

	svc := NewAdminService(users, noopSwapRepo(), noopSkillRepo(), noopAdminMessageRepo())
	err := svc.BanUser(context.Background(), 1, 99)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestAdminServiceUnban(t *testing.T) {
	users := noopUserRepo()
	var gotBanned *bool
	users.setBannedFn = func(_ context.Context, _ uint, banned bool) (bool, error) {
		gotBanned = &banned
		return true, nil
	}

	svc := NewAdminService(users, noopSwapRepo(), noopSkillRepo(), noopAdminMessageRepo())
	if err := svc.UnbanUser(context.Background(), 1, 2); err != nil {
		t.Fatalf("unban: %v", err)
	}
	if gotBanned == nil || *gotBanned {
		t.Fatal("expected banned=false update")
	}
}

func TestAdminServiceListSwapsInvalidStatus(t *testing.T) {
	svc := newAdminService()
	_, _, err := svc.ListSwaps(context.Background(), "done", 20, 0)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestAdminServiceDeleteSwapMissing(t *testing.T) {
	swaps := noopSwapRepo()
	swaps.deleteFn = func(context.Context, uint) (bool, error) { return false, nil }

	svc := NewAdminService(noopUserRepo(), swaps, noopSkillRepo(), noopAdminMessageRepo())
	err := svc.DeleteSwap(context.Background(), 99)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestAdminServiceCreateMessage(t *testing.T) {
	msgs := noopAdminMessageRepo()
	msgs.createFn = func(_ context.Context, msg *models.AdminMessage) error {
		msg.ID = 1
		return nil
	}

	svc := NewAdminService(noopUserRepo(), noopSwapRepo(), noopSkillRepo(), msgs)
	msg, err := svc.CreateMessage(context.Background(), AdminMessageInput{
		Title:   "Maintenance",
		Message: "Down Sunday 2am",
	})
	if err != nil {
		t.Fatalf("create message: %v", err)
	}
	if msg.Type != models.AdminMessageInfo {
		t.Fatalf("expected info default, got %s", msg.Type)
	}
	if !msg.IsActive {
		t.Fatal("new messages should start active")
	}
}

func TestAdminServiceCreateMessageValidation(t *testing.T) {
	svc := newAdminService()
	ctx := context.Background()

	_, err := svc.CreateMessage(ctx, AdminMessageInput{Title: "No body"})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	_, err = svc.CreateMessage(ctx, AdminMessageInput{Title: "T", Message: "M", Type: "shout"})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestAdminServiceUpdateMessage(t *testing.T) {
	msgs := noopAdminMessageRepo()
	var got map[string]interface{}
	msgs.updateFn = func(_ context.Context, id uint, fields map[string]interface{}) (bool, error) {
		got = fields
		return true, nil
	}
	svc := NewAdminService(noopUserRepo(), noopSwapRepo(), noopSkillRepo(), msgs)
	ctx := context.Background()

	title := "Maintenance window"
	msgType := string(models.AdminMessageAlert)
	active := false
	if err := svc.UpdateMessage(ctx, 1, AdminMessageUpdate{Title: &title, Type: &msgType, IsActive: &active}); err != nil {
		t.Fatalf("update message: unexpected error: %v", err)
	}
	if got["title"] != "Maintenance window" || got["type"] != msgType || got["is_active"] != false {
		t.Fatalf("update message: wrong fields written: %#v", got)
	}
	if _, ok := got["message"]; ok {
		t.Fatalf("update message: unset field written: %#v", got)
	}
}

func TestAdminServiceUpdateMessageValidation(t *testing.T) {
	msgs := noopAdminMessageRepo()
	svc := NewAdminService(noopUserRepo(), noopSwapRepo(), noopSkillRepo(), msgs)
	ctx := context.Background()

	empty := ""
	err := svc.UpdateMessage(ctx, 1, AdminMessageUpdate{Title: &empty})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	bad := "shout"
	err = svc.UpdateMessage(ctx, 1, AdminMessageUpdate{Type: &bad})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	err = svc.UpdateMessage(ctx, 1, AdminMessageUpdate{})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	msgs.updateFn = func(context.Context, uint, map[string]interface{}) (bool, error) {
		return false, nil
	}
	active := true
	err = svc.UpdateMessage(ctx, 99, AdminMessageUpdate{IsActive: &active})
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestAdminServiceComputeStats(t *testing.T) {
	msgs := noopAdminMessageRepo()
	msgs.platformStatsFn = func(context.Context) (*models.PlatformStats, error) {
		return &models.PlatformStats{
			Users: models.UserStats{TotalUsers: 12, BannedUsers: 1},
			Swaps: models.SwapStats{TotalSwaps: 30, CompletedSwaps: 8},
		}, nil
	}
	skills := noopSkillRepo()
	skills.popularFn = func(_ context.Context, limit int) ([]models.PopularSkill, error) {
		if limit != 10 {
			t.Fatalf("expected 10 popular skills, asked for %d", limit)
		}
		return []models.PopularSkill{{Name: "Guitar Lessons", OfferedCount: 5}}, nil
	}

	svc := NewAdminService(noopUserRepo(), noopSwapRepo(), skills, msgs)
	stats, err := svc.ComputeStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Users.TotalUsers != 12 || stats.Swaps.CompletedSwaps != 8 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
	if len(stats.PopularSkills) != 1 || stats.PopularSkills[0].Name != "Guitar Lessons" {
		t.Fatalf("popular skills not attached: %#v", stats.PopularSkills)
	}
}
