package repository

import (
	"time"

	"gorm.io/gorm"
)

// ownedAccounts 限定 column 指向的账号属于该用户
func ownedAccounts(column string, userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" IN (SELECT id FROM social_accounts WHERE user_id = ?)", userID)
	}
}

// ownedPosts 限定 column 指向的帖子属于该用户
func ownedPosts(column string, userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" IN (SELECT p.id FROM posts p JOIN social_accounts sa ON sa.id = p.social_account_id WHERE sa.user_id = ?)", userID)
	}
}

// timeRange 对 column 加 [from, to] 闭区间
func timeRange(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", *from)
		}
		if to != nil {
			db = db.Where(column+" <= ?", *to)
		}
		return db
	}
}
