package models

// Message is one chat line. Timestamp is epoch milliseconds assigned by the
// server at insert time; the poll cursor compares against it directly.
// ReplyTo references another message id and is not validated at write time.
type Message struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:80;not null;index"`
	Text      string `gorm:"type:text;not null"`
	Timestamp int64  `gorm:"not null;index"`
	ReplyTo   *uint  `gorm:"index"`
}
