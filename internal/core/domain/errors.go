package domain

import "errors"

// Sentinel errors for the engagement core. Adapters and usecases return
// these unwrapped (or wrapped with %w) so the HTTP layer can translate
// them with errors.Is. Anything outside this set is treated as an
// internal failure.
var (
	ErrAlreadyApplied       = errors.New("you have already applied to this campaign")
	ErrInvalidTransition    = errors.New("application has already been decided")
	ErrInvalidDecision      = errors.New("decision must be accepted or rejected")
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrCampaignClosed       = errors.New("campaign is closed")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidRole          = errors.New("role must be creator or business")
	ErrNotOwner             = errors.New("only the campaign owner may do this")
	ErrNotRecipient         = errors.New("notification belongs to another user")
	ErrNotParticipant       = errors.New("no application links these users for this campaign")
	ErrEmptyContent         = errors.New("message content must not be empty")
)

var domainErrors = []error{
	ErrAlreadyApplied,
	ErrInvalidTransition,
	ErrInvalidDecision,
	ErrCampaignNotFound,
	ErrCampaignClosed,
	ErrApplicationNotFound,
	ErrNotificationNotFound,
	ErrUserNotFound,
	ErrEmailTaken,
	ErrInvalidCredentials,
	ErrInvalidRole,
	ErrNotOwner,
	ErrNotRecipient,
	ErrNotParticipant,
	ErrEmptyContent,
}

// IsDomainError reports whether err belongs to the taxonomy above. Used
// to decide whether a failed storage call may be retried: domain errors
// are definitive, everything else is potentially transient.
func IsDomainError(err error) bool {
	for _, e := range domainErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
