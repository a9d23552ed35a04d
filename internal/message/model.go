// File: internal/message/model.go
package message

import "time"

// Message is the reserved direct-message record. The table is migrated with
// the rest of the schema but no endpoints are wired yet; messaging delivery
// is out of scope for the prototype.
type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	DialogID  string    `gorm:"column:dialog_id;type:varchar(128);index"`
	FromUser  string    `gorm:"column:from_user;type:varchar(64)"`
	ToUser    string    `gorm:"column:to_user;type:varchar(64)"`
	Text      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the Message model.
func (Message) TableName() string {
	return "messages"
}
