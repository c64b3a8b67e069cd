package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	SkillListKey       = "skills:all"
	SkillCategoriesKey = "skills:categories"
	PopularSkillsKey   = "skills:popular"
	AdminMessagesKey   = "admin:messages:active"
	PlatformStatsKey   = "admin:stats"
)

const (
	UserTTL          = 5 * time.Minute
	SkillListTTL     = 10 * time.Minute
	PopularSkillsTTL = 5 * time.Minute
	AdminMessageTTL  = 2 * time.Minute
	StatsTTL         = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateSkills(ctx context.Context) {
	Invalidate(ctx, SkillListKey)
	Invalidate(ctx, SkillCategoriesKey)
	Invalidate(ctx, PopularSkillsKey)
}

func InvalidateAdminMessages(ctx context.Context) {
	Invalidate(ctx, AdminMessagesKey)
}
