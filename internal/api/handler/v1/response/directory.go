package response

type SeatsRemainingResponse struct {
	EventID        uint  `json:"event_id"`
	SeatsRemaining int64 `json:"seats_remaining"`
}

type MemberCountResponse struct {
	ClubID      uint  `json:"club_id"`
	MemberCount int64 `json:"member_count"`
}

type EnrollmentResponse struct {
	Message string `json:"message"`
	EventID uint   `json:"event_id"`
}

type MembershipResponse struct {
	Message string `json:"message"`
	ClubID  uint   `json:"club_id"`
}

type ProfilePictureResponse struct {
	ImageFile string `json:"image_file"`
}
