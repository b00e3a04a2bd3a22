package domain

import "time"

type Club struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	LeaderID    *uint     `json:"leader_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClubDetail is a Club together with the projections the detail page needs.
type ClubDetail struct {
	Club
	LeaderUsername string  `json:"leader_username,omitempty"`
	MemberCount    int64   `json:"member_count"`
	IsMember       bool    `json:"is_member"`
	IsLeader       bool    `json:"is_leader"`
	UpcomingEvents []Event `json:"upcoming_events"`
	PastEvents     []Event `json:"past_events"`
}

// RankedClub is one row of the club ranking, ordered by member count
// descending with the club name as tiebreak.
type RankedClub struct {
	Club
	MemberCount int64 `json:"member_count"`
}
