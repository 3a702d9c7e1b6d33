package models

// UserSetting holds per-user preferences, one row per user. A nil PageTitle
// means cleared; an empty title is normalized to nil before it gets here.
type UserSetting struct {
	UserID    string  `gorm:"primaryKey;size:80"`
	PageTitle *string `gorm:"size:200"`
	UpdatedAt int64   `gorm:"not null;autoUpdateTime:milli"`
}
