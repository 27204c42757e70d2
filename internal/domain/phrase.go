package domain

import "time"

// PhraseList groups phrases for the player's speech mode.
type PhraseList struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	UserID    int64     `json:"user_id" gorm:"index;not null"`
	Name      string    `json:"name"`
	Phrases   []Phrase  `json:"phrases" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Phrase is one utterance: Label is what the player UI shows, Text is what
// the speech synthesizer reads, Language is a BCP 47 tag such as "en-US".
type Phrase struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	PhraseListID int64  `json:"phrase_list_id" gorm:"index;not null"`
	Label        string `json:"label"`
	Text         string `json:"text" gorm:"not null"`
	Language     string `json:"language" gorm:"size:16;not null"`
}
