package models

type DigestFrequency string

const (
	DigestNever  DigestFrequency = "never"
	DigestDaily  DigestFrequency = "daily"
	DigestWeekly DigestFrequency = "weekly"
)

func (f DigestFrequency) Valid() bool {
	switch f {
	case DigestNever, DigestDaily, DigestWeekly:
		return true
	}
	return false
}

type UserEmailPreferences struct {
	ID                       int             `json:"id" db:"id"`
	UserID                   int             `json:"user" db:"user_id"`
	ReceiveApplicationEmails bool            `json:"receive_application_emails" db:"receive_application_emails"`
	ReceiveInvitationEmails  bool            `json:"receive_invitation_emails" db:"receive_invitation_emails"`
	ReceiveMembershipEmails  bool            `json:"receive_membership_emails" db:"receive_membership_emails"`
	DigestFrequency          DigestFrequency `json:"digest_frequency" db:"digest_frequency"`
}
