package entities

import "time"

// PeriodRecord is one logged period in a chat's history.
type PeriodRecord struct {
	ChatID    int64     `json:"chat_id"`
	Start     Date      `json:"start_date"`
	End       *Date     `json:"end_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
