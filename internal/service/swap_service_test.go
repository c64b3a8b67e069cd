package service

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

type swapRepoStub struct {
	createFn       func(context.Context, *models.Swap, []uint, []uint) error
	getByIDFn      func(context.Context, uint) (*models.Swap, error)
	listForUserFn  func(context.Context, uint, models.SwapStatus) ([]models.Swap, error)
	listAllFn      func(context.Context, models.SwapStatus, int, int) ([]models.Swap, int64, error)
	transitionFn   func(context.Context, uint, uint, repository.TransitionRole, models.SwapStatus, models.SwapStatus) (bool, error)
	deleteFn       func(context.Context, uint) (bool, error)
	recordRatingFn func(context.Context, *models.Rating) error
	hasRatingFn    func(context.Context, uint, uint) (bool, error)
}

func (s *swapRepoStub) Create(ctx context.Context, swap *models.Swap, offeredIDs, requestedIDs []uint) error {
	return s.createFn(ctx, swap, offeredIDs, requestedIDs)
}
func (s *swapRepoStub) GetByID(ctx context.Context, id uint) (*models.Swap, error) {
	return s.getByIDFn(ctx, id)
}
func (s *swapRepoStub) ListForUser(ctx context.Context, userID uint, status models.SwapStatus) ([]models.Swap, error) {
	return s.listForUserFn(ctx, userID, status)
}
func (s *swapRepoStub) ListAll(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.Swap, int64, error) {
	return s.listAllFn(ctx, status, limit, offset)
}
func (s *swapRepoStub) Transition(ctx context.Context, swapID, actorID uint, role repository.TransitionRole, from, to models.SwapStatus) (bool, error) {
	return s.transitionFn(ctx, swapID, actorID, role, from, to)
}
func (s *swapRepoStub) Delete(ctx context.Context, id uint) (bool, error) {
	return s.deleteFn(ctx, id)
}
func (s *swapRepoStub) RecordRating(ctx context.Context, rating *models.Rating) error {
	return s.recordRatingFn(ctx, rating)
}
func (s *swapRepoStub) HasRating(ctx context.Context, swapID, raterID uint) (bool, error) {
	return s.hasRatingFn(ctx, swapID, raterID)
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	updateFieldsFn  func(context.Context, uint, map[string]interface{}) error
	listPublicFn    func(context.Context, string, string, int, int) ([]models.User, int64, error)
	adminListFn     func(context.Context, string, string, int, int) ([]models.User, int64, error)
	setBannedFn     func(context.Context, uint, bool) (bool, error)
	recentRatingsFn func(context.Context, uint, int) ([]models.RatingInfo, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *userRepoStub) ListPublic(ctx context.Context, search, skill string, limit, offset int) ([]models.User, int64, error) {
	return s.listPublicFn(ctx, search, skill, limit, offset)
}
func (s *userRepoStub) AdminList(ctx context.Context, search, status string, limit, offset int) ([]models.User, int64, error) {
	return s.adminListFn(ctx, search, status, limit, offset)
}
func (s *userRepoStub) SetBanned(ctx context.Context, id uint, banned bool) (bool, error) {
	return s.setBannedFn(ctx, id, banned)
}
func (s *userRepoStub) RecentRatings(ctx context.Context, userID uint, limit int) ([]models.RatingInfo, error) {
	return s.recentRatingsFn(ctx, userID, limit)
}

type skillRepoStub struct {
	listFn              func(context.Context, string, string, int, int) ([]models.Skill, int64, error)
	categoriesFn        func(context.Context) ([]string, error)
	popularFn           func(context.Context, int) ([]models.PopularSkill, error)
	getByIDFn           func(context.Context, uint) (*models.Skill, error)
	createFn            func(context.Context, *models.Skill) error
	updateFn            func(context.Context, *models.Skill) (bool, error)
	deleteFn            func(context.Context, uint) (bool, error)
	upsertOfferedFn     func(context.Context, *models.OfferedSkill) error
	upsertWantedFn      func(context.Context, *models.WantedSkill) error
	removeOfferedFn     func(context.Context, uint, uint) (bool, error)
	removeWantedFn      func(context.Context, uint, uint) (bool, error)
	listOfferedFn       func(context.Context, uint) ([]models.UserSkillInfo, error)
	listWantedFn        func(context.Context, uint) ([]models.UserSkillInfo, error)
	offeredSkillIDSetFn func(context.Context, uint, []uint) (map[uint]bool, error)
}

func (s *skillRepoStub) List(ctx context.Context, category, search string, limit, offset int) ([]models.Skill, int64, error) {
	return s.listFn(ctx, category, search, limit, offset)
}
func (s *skillRepoStub) Categories(ctx context.Context) ([]string, error) {
	return s.categoriesFn(ctx)
}
func (s *skillRepoStub) Popular(ctx context.Context, limit int) ([]models.PopularSkill, error) {
	return s.popularFn(ctx, limit)
}
func (s *skillRepoStub) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	return s.getByIDFn(ctx, id)
}
func (s *skillRepoStub) Create(ctx context.Context, skill *models.Skill) error {
	return s.createFn(ctx, skill)
}
func (s *skillRepoStub) Update(ctx context.Context, skill *models.Skill) (bool, error) {
	return s.updateFn(ctx, skill)
}
func (s *skillRepoStub) Delete(ctx context.Context, id uint) (bool, error) {
	return s.deleteFn(ctx, id)
}
func (s *skillRepoStub) UpsertOffered(ctx context.Context, link *models.OfferedSkill) error {
	return s.upsertOfferedFn(ctx, link)
}
func (s *skillRepoStub) UpsertWanted(ctx context.Context, link *models.WantedSkill) error {
	return s.upsertWantedFn(ctx, link)
}
func (s *skillRepoStub) RemoveOffered(ctx context.Context, userID, skillID uint) (bool, error) {
	return s.removeOfferedFn(ctx, userID, skillID)
}
func (s *skillRepoStub) RemoveWanted(ctx context.Context, userID, skillID uint) (bool, error) {
	return s.removeWantedFn(ctx, userID, skillID)
}
func (s *skillRepoStub) ListOffered(ctx context.Context, userID uint) ([]models.UserSkillInfo, error) {
	return s.listOfferedFn(ctx, userID)
}
func (s *skillRepoStub) ListWanted(ctx context.Context, userID uint) ([]models.UserSkillInfo, error) {
	return s.listWantedFn(ctx, userID)
}
func (s *skillRepoStub) OfferedSkillIDSet(ctx context.Context, userID uint, skillIDs []uint) (map[uint]bool, error) {
	return s.offeredSkillIDSetFn(ctx, userID, skillIDs)
}

func noopSwapRepo() *swapRepoStub {
	return &swapRepoStub{
		createFn: func(context.Context, *models.Swap, []uint, []uint) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Swap, error) {
			return &models.Swap{}, nil
		},
		listForUserFn: func(context.Context, uint, models.SwapStatus) ([]models.Swap, error) { return nil, nil },
		listAllFn: func(context.Context, models.SwapStatus, int, int) ([]models.Swap, int64, error) {
			return nil, 0, nil
		},
		transitionFn: func(context.Context, uint, uint, repository.TransitionRole, models.SwapStatus, models.SwapStatus) (bool, error) {
			return true, nil
		},
		deleteFn:       func(context.Context, uint) (bool, error) { return true, nil },
		recordRatingFn: func(context.Context, *models.Rating) error { return nil },
		hasRatingFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:      func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:   func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:       func(context.Context, *models.User) error { return nil },
		updateFn:       func(context.Context, *models.User) error { return nil },
		updateFieldsFn: func(context.Context, uint, map[string]interface{}) error { return nil },
		listPublicFn: func(context.Context, string, string, int, int) ([]models.User, int64, error) {
			return nil, 0, nil
		},
		adminListFn: func(context.Context, string, string, int, int) ([]models.User, int64, error) {
			return nil, 0, nil
		},
		setBannedFn:     func(context.Context, uint, bool) (bool, error) { return true, nil },
		recentRatingsFn: func(context.Context, uint, int) ([]models.RatingInfo, error) { return nil, nil },
	}
}

func noopSkillRepo() *skillRepoStub {
	return &skillRepoStub{
		listFn: func(context.Context, string, string, int, int) ([]models.Skill, int64, error) {
			return nil, 0, nil
		},
		categoriesFn:    func(context.Context) ([]string, error) { return nil, nil },
		popularFn:       func(context.Context, int) ([]models.PopularSkill, error) { return nil, nil },
		getByIDFn:       func(context.Context, uint) (*models.Skill, error) { return &models.Skill{}, nil },
		createFn:        func(context.Context, *models.Skill) error { return nil },
		updateFn:        func(context.Context, *models.Skill) (bool, error) { return true, nil },
		deleteFn:        func(context.Context, uint) (bool, error) { return true, nil },
		upsertOfferedFn: func(context.Context, *models.OfferedSkill) error { return nil },
		upsertWantedFn:  func(context.Context, *models.WantedSkill) error { return nil },
		removeOfferedFn: func(context.Context, uint, uint) (bool, error) { return true, nil },
		removeWantedFn:  func(context.Context, uint, uint) (bool, error) { return true, nil },
		listOfferedFn:   func(context.Context, uint) ([]models.UserSkillInfo, error) { return nil, nil },
		listWantedFn:    func(context.Context, uint) ([]models.UserSkillInfo, error) { return nil, nil },
		offeredSkillIDSetFn: func(_ context.Context, _ uint, ids []uint) (map[uint]bool, error) {
			set := make(map[uint]bool, len(ids))
			for _, id := range ids {
				set[id] = true
			}
			return set, nil
		},
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}

func TestSwapServiceCreateSelfSwap(t *testing.T) {
	svc := NewSwapService(noopSwapRepo(), noopUserRepo(), noopSkillRepo())
	_, err := svc.Create(context.Background(), 3, CreateSwapInput{
		ProviderID:      3,
		SkillsOffered:   []uint{1},
		SkillsRequested: []uint{2},
	})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestSwapServiceCreateEmptyBundles(t *testing.T) {
	svc := NewSwapService(noopSwapRepo(), noopUserRepo(), noopSkillRepo())

	_, err := svc.Create(context.Background(), 1, CreateSwapInput{
		ProviderID:      2,
		SkillsRequested: []uint{2},
	})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	_, err = svc.Create(context.Background(), 1, CreateSwapInput{
		ProviderID:    2,
		SkillsOffered: []uint{1},
	})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestSwapServiceCreateBannedProvider(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return &models.User{ID: 2, IsBanned: true}, nil
	}

	svc := NewSwapService(noopSwapRepo(), users, noopSkillRepo())
	_, err := svc.Create(context.Background(), 1, CreateSwapInput{
		ProviderID:      2,
		SkillsOffered:   []uint{1},
		SkillsRequested: []uint{2},
	})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestSwapServiceCreateRequesterMissingSkill(t *testing.T) {
	skills := noopSkillRepo()
	skills.offeredSkillIDSetFn = func(_ context.Context, userID uint, ids []uint) (map[uint]bool, error) {
		if userID == 1 {
			return map[uint]bool{}, nil
		}
		set := make(map[uint]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		return set, nil
	}

	svc := NewSwapService(noopSwapRepo(), noopUserRepo(), skills)
	_, err := svc.Create(context.Background(), 1, CreateSwapInput{
		ProviderID:      2,
		SkillsOffered:   []uint{7},
		SkillsRequested: []uint{8},
	})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
	if got := err.Error(); got != "You do not offer the skill with ID 7" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestSwapServiceCreateProviderMissingSkill(t *testing.T) {
	skills := noopSkillRepo()
	skills.offeredSkillIDSetFn = func(_ context.Context, userID uint, ids []uint) (map[uint]bool, error) {
		if userID == 2 {
			return map[uint]bool{}, nil
		}
		set := make(map[uint]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		return set, nil
	}

	svc := NewSwapService(noopSwapRepo(), noopUserRepo(), skills)
	_, err := svc.Create(context.Background(), 1, CreateSwapInput{
		ProviderID:      2,
		SkillsOffered:   []uint{7},
		SkillsRequested: []uint{8},
	})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
	if got := err.Error(); got != "Provider does not offer the requested skill with ID 8" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestSwapServiceCreateStartsPending(t *testing.T) {
	var created *models.Swap
	swaps := noopSwapRepo()
	swaps.createFn = func(_ context.Context, swap *models.Swap, _, _ []uint) error {
		swap.ID = 42
		created = swap
		return nil
	}

	svc := NewSwapService(swaps, noopUserRepo(), noopSkillRepo())
	swap, err := svc.Create(context.Background(), 1, CreateSwapInput{
		ProviderID:      2,
		SkillsOffered:   []uint{7},
		SkillsRequested: []uint{8},
		Message:         "trade?",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created == nil || swap.ID != 42 {
		t.Fatalf("swap not persisted: %#v", swap)
	}
	if swap.Status != models.SwapStatusPending {
		t.Fatalf("expected pending status, got %s", swap.Status)
	}
	if swap.RequesterID != 1 || swap.ProviderID != 2 {
		t.Fatalf("unexpected parties: %d -> %d", swap.RequesterID, swap.ProviderID)
	}
}

func TestSwapServiceTransitionRoles(t *testing.T) {
	tests := []struct {
		name     string
		call     func(svc *SwapService) error
		wantRole repository.TransitionRole
		wantFrom models.SwapStatus
		wantTo   models.SwapStatus
	}{
		{
			name:     "Accept",
			call:     func(svc *SwapService) error { return svc.Accept(context.Background(), 9, 5) },
			wantRole: repository.RoleProvider,
			wantFrom: models.SwapStatusPending,
			wantTo:   models.SwapStatusAccepted,
		},
		{
			name:     "Reject",
			call:     func(svc *SwapService) error { return svc.Reject(context.Background(), 9, 5) },
			wantRole: repository.RoleProvider,
			wantFrom: models.SwapStatusPending,
			wantTo:   models.SwapStatusRejected,
		},
		{
			name:     "Cancel",
			call:     func(svc *SwapService) error { return svc.Cancel(context.Background(), 9, 5) },
			wantRole: repository.RoleRequester,
			wantFrom: models.SwapStatusPending,
			wantTo:   models.SwapStatusCancelled,
		},
		{
			name:     "Complete",
			call:     func(svc *SwapService) error { return svc.Complete(context.Background(), 9, 5) },
			wantRole: repository.RoleEither,
			wantFrom: models.SwapStatusAccepted,
			wantTo:   models.SwapStatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			swaps := noopSwapRepo()
			var gotRole repository.TransitionRole
			var gotFrom, gotTo models.SwapStatus
			swaps.transitionFn = func(_ context.Context, swapID, actorID uint, role repository.TransitionRole, from, to models.SwapStatus) (bool, error) {
				if swapID != 5 || actorID != 9 {
					t.Fatalf("unexpected ids: swap=%d actor=%d", swapID, actorID)
				}
				gotRole, gotFrom, gotTo = role, from, to
				return true, nil
			}

			svc := NewSwapService(swaps, noopUserRepo(), noopSkillRepo())
			if err := tt.call(svc); err != nil {
				t.Fatalf("transition: %v", err)
			}
			if gotRole != tt.wantRole || gotFrom != tt.wantFrom || gotTo != tt.wantTo {
				t.Fatalf("got role=%v %s->%s, want role=%v %s->%s",
					gotRole, gotFrom, gotTo, tt.wantRole, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestSwapServiceTransitionZeroRowsIsNotFound(t *testing.T) {
	swaps := noopSwapRepo()
	swaps.transitionFn = func(context.Context, uint, uint, repository.TransitionRole, models.SwapStatus, models.SwapStatus) (bool, error) {
		return false, nil
	}

	svc := NewSwapService(swaps, noopUserRepo(), noopSkillRepo())
	err := svc.Accept(context.Background(), 9, 5)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestSwapServiceListForUserInvalidStatus(t *testing.T) {
	svc := NewSwapService(noopSwapRepo(), noopUserRepo(), noopSkillRepo())
	_, err := svc.ListForUser(context.Background(), 1, "finished")
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestSwapServiceRateOutOfRange(t *testing.T) {
	svc := NewSwapService(noopSwapRepo(), noopUserRepo(), noopSkillRepo())

	err := svc.Rate(context.Background(), 1, 5, RateInput{Rating: 0})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	err = svc.Rate(context.Background(), 1, 5, RateInput{Rating: 6})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestSwapServiceRateNonParty(t *testing.T) {
	swaps := noopSwapRepo()
	swaps.getByIDFn = func(context.Context, uint) (*models.Swap, error) {
		return &models.Swap{ID: 5, RequesterID: 1, ProviderID: 2, Status: models.SwapStatusCompleted}, nil
	}

	svc := NewSwapService(swaps, noopUserRepo(), noopSkillRepo())
	err := svc.Rate(context.Background(), 3, 5, RateInput{Rating: 4})
	assertAppErrorCode(t, err, "FORBIDDEN")
}

func TestSwapServiceRateNotCompleted(t *testing.T) {
	swaps := noopSwapRepo()
	swaps.getByIDFn = func(context.Context, uint) (*models.Swap, error) {
		return &models.Swap{ID: 5, RequesterID: 1, ProviderID: 2, Status: models.SwapStatusAccepted}, nil
	}

	svc := NewSwapService(swaps, noopUserRepo(), noopSkillRepo())
	err := svc.Rate(context.Background(), 1, 5, RateInput{Rating: 4})
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestSwapServiceRateDuplicate(t *testing.T) {
	swaps := noopSwapRepo()
	swaps.getByIDFn = func(context.Context, uint) (*models.Swap, error) {
		return &models.Swap{ID: 5, RequesterID: 1, ProviderID: 2, Status: models.SwapStatusCompleted}, nil
	}
	swaps.hasRatingFn = func(context.Context, uint, uint) (bool, error) { return true, nil }

	svc := NewSwapService(swaps, noopUserRepo(), noopSkillRepo())
	err := svc.Rate(context.Background(), 1, 5, RateInput{Rating: 4})
	assertAppErrorCode(t, err, "DUPLICATE")
}

func TestSwapServiceRateTargetsCounterparty(t *testing.T) {
	swaps := noopSwapRepo()
	swaps.getByIDFn = func(context.Context, uint) (*models.Swap, error) {
		return &models.Swap{ID: 5, RequesterID: 1, ProviderID: 2, Status: models.SwapStatusCompleted}, nil
	}
	var recorded *models.Rating
	swaps.recordRatingFn = func(_ context.Context, rating *models.Rating) error {
		recorded = rating
		return nil
	}

	svc := NewSwapService(swaps, noopUserRepo(), noopSkillRepo())
	if err := svc.Rate(context.Background(), 2, 5, RateInput{Rating: 5, Comment: "great teacher"}); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if recorded == nil {
		t.Fatal("rating not recorded")
	}
	if recorded.RaterID != 2 || recorded.RatedID != 1 {
		t.Fatalf("rating targets wrong user: rater=%d rated=%d", recorded.RaterID, recorded.RatedID)
	}
	if recorded.SwapID != 5 || recorded.Rating != 5 {
		t.Fatalf("unexpected rating row: %#v", recorded)
	}
}
