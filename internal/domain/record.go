package domain

import "time"

// CallRecord is the persisted result of one finished call.
type CallRecord struct {
	ID             string      `json:"id" db:"id" gorm:"column:id;primaryKey"`
	RoomName       string      `json:"room_name" db:"room_name" gorm:"column:room_name;index"`
	CampaignKey    string      `json:"campaign_key" db:"campaign_key" gorm:"column:campaign_key;index"`
	LeadIndex      int         `json:"lead_index" db:"lead_index" gorm:"column:lead_index"`
	ProspectName   string      `json:"prospect_name" db:"prospect_name" gorm:"column:prospect_name"`
	CompanyName    string      `json:"company_name" db:"company_name" gorm:"column:company_name"`
	JobTitle       string      `json:"job_title" db:"job_title" gorm:"column:job_title"`
	Email          string      `json:"email" db:"email" gorm:"column:email"`
	FinalStage     string      `json:"final_stage" db:"final_stage" gorm:"column:final_stage"`
	TurnCount      int         `json:"turn_count" db:"turn_count" gorm:"column:turn_count"`
	ObjectionCount int         `json:"objection_count" db:"objection_count" gorm:"column:objection_count"`
	RapportLevel   int         `json:"rapport_level" db:"rapport_level" gorm:"column:rapport_level"`
	Personality    string      `json:"prospect_personality" db:"prospect_personality" gorm:"column:prospect_personality"`
	Outcome        CallOutcome `json:"outcome" db:"outcome" gorm:"column:outcome"`
	StartedAt      time.Time   `json:"started_at" db:"started_at" gorm:"column:started_at"`
	EndedAt        time.Time   `json:"ended_at" db:"ended_at" gorm:"column:ended_at"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at" gorm:"column:updated_at"`
}

func (CallRecord) TableName() string {
	return "call_records"
}

// CallTurnRecord is one persisted conversation turn, ordered by Sequence.
type CallTurnRecord struct {
	ID          string    `json:"id" db:"id" gorm:"column:id;primaryKey"`
	CallID      string    `json:"call_id" db:"call_id" gorm:"column:call_id;index"`
	Sequence    int       `json:"sequence" db:"sequence" gorm:"column:sequence"`
	Stage       string    `json:"stage" db:"stage" gorm:"column:stage"`
	Utterance   string    `json:"utterance" db:"utterance" gorm:"column:utterance"`
	Sentiment   string    `json:"sentiment" db:"sentiment" gorm:"column:sentiment"`
	Personality string    `json:"personality" db:"personality" gorm:"column:personality"`
	Reply       string    `json:"reply" db:"reply" gorm:"column:reply"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"column:created_at"`
}

func (CallTurnRecord) TableName() string {
	return "call_turns"
}
