package email

import "fmt"

// Service defines the interface for outbound email. Implementations are
// fire-and-forget from the caller's point of view: a returned error is for
// logging only and must never fail the triggering operation.
type Service interface {
	// SendGradeUpdated notifies a student that the grade for a class
	// changed. The message deliberately carries no grade value.
	SendGradeUpdated(toEmail, firstName, lastName string, classNumber int64) error
	// SendAccountCreated sends the initial credentials notice for a newly
	// provisioned account.
	SendAccountCreated(toEmail, firstName, username string) error
}

func gradeUpdatedBody(firstName, lastName string, classNumber int64) string {
	return fmt.Sprintf(
		"Kia Ora <strong>%s %s,</strong><br/><br/>"+
			"<p>Your grade for class %d is updated. You can check it in the website</p><br/>"+
			"<p>Kind regards,</p><br/>Grading team",
		firstName, lastName, classNumber)
}

func accountCreatedBody(firstName, username string) string {
	return fmt.Sprintf(
		"Hello <strong>%s,</strong><br/><br/>"+
			"<p>An account has been created for you with username <strong>%s</strong>. "+
			"Your password is your date of birth in YYYYMMDD form. Please change it after your first login.</p><br/>"+
			"<p>Kind regards,</p><br/>Grading team",
		firstName, username)
}
