package models

// BackgroundImage records one uploaded background. The newest row per user
// (by Timestamp) is the active background; older rows are kept but unread.
type BackgroundImage struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:80;not null;index"`
	Filename  string `gorm:"size:255;not null"`
	Timestamp int64  `gorm:"not null;index"`
}

// ChatImage records an image attached inline to the chat. It carries no link
// to a message row; association is only by user and upload time.
type ChatImage struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:80;not null;index"`
	Filename  string `gorm:"size:255;not null"`
	Timestamp int64  `gorm:"not null;index"`
}
