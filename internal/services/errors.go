package services

// Service errors
var (
	ErrAlreadyVoted           = &ServiceError{Message: "already voted for this performance"}
	ErrPerformanceNotFound    = &ServiceError{Message: "performance not found"}
	ErrPerformanceInactive    = &ServiceError{Message: "performance is not open for voting"}
	ErrVoterTokenRequired     = &ServiceError{Message: "voter token is required"}
	ErrParticipantNotFound    = &ServiceError{Message: "participant not found"}
	ErrParticipantNotSelected = &ServiceError{Message: "participant has not been selected for the finals"}
	ErrCategoryNotFound       = &ServiceError{Message: "category not found"}
	ErrAuditionNotFound       = &ServiceError{Message: "audition not found"}
	ErrAuditionExists         = &ServiceError{Message: "participant already has an audition"}
	ErrResultAlreadyRecorded  = &ServiceError{Message: "audition result has already been recorded"}
	ErrAnnouncementNotFound   = &ServiceError{Message: "announcement not found"}
	ErrNotificationNotFound   = &ServiceError{Message: "notification not found"}
	ErrNotRecipient           = &ServiceError{Message: "notification belongs to another participant"}
	ErrTitleRequired          = &ServiceError{Message: "title is required"}
	ErrTeamNameRequired       = &ServiceError{Message: "team_name is required for group categories"}
	ErrTeamSizeInvalid        = &ServiceError{Message: "team_size must be at least 2 for group categories"}
	ErrEmailRegistered        = &ServiceError{Message: "email already registered for this category"}
	ErrInvalidStatus          = &ServiceError{Message: "invalid status"}
	ErrInvalidResult          = &ServiceError{Message: "result must be qualified or not_qualified"}
)

// ServiceError represents a service-level error with a stable identity, so
// handlers can map distinguished outcomes (duplicate vote, inactive
// performance) to specific HTTP statuses.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
