package services

import "iqscaler/backend/apperror"

var (
	ErrConfigurationMissing  = apperror.New(apperror.KindInternal, "Test configuration not set.")
	ErrInsufficientQuestions = apperror.New(apperror.KindNotFound, "Not enough questions available.")
	ErrNoAnswers             = apperror.New(apperror.KindValidation, "No answers submitted.")
	ErrResultNotFound        = apperror.New(apperror.KindNotFound, "Result not found")
	ErrNotAuthorized         = apperror.New(apperror.KindAuthorization, "Not authorized to view this result")
	ErrPaymentRequired       = apperror.New(apperror.KindPaymentRequired, "Payment required to download certificate.")
	ErrCertificateNotFound   = apperror.New(apperror.KindNotFound, "Certificate not found or not purchased.")
	ErrVerificationFailed    = apperror.New(apperror.KindValidation, "Payment verification failed.")
	ErrPriceNotConfigured    = apperror.New(apperror.KindInternal, "Certificate price not configured on the server.")
	ErrUserExists            = apperror.New(apperror.KindValidation, "User already exists")
	ErrInvalidCredentials    = apperror.New(apperror.KindAuthentication, "Invalid email or password")
	ErrUserNotFound          = apperror.New(apperror.KindNotFound, "User not found")
	ErrInvalidResetToken     = apperror.New(apperror.KindValidation, "Invalid or expired reset token.")
	ErrEmailNotSent          = apperror.New(apperror.KindUpstream, "Email could not be sent. Try again later.")
	ErrAdminUndeletable      = apperror.New(apperror.KindValidation, "Cannot delete admin user")
	ErrQuestionNotFound      = apperror.New(apperror.KindNotFound, "Question not found")
	ErrConfigNotFound        = apperror.New(apperror.KindNotFound, "Test configuration not found. Please create one first.")
	ErrInvalidAnswerIndex    = apperror.New(apperror.KindValidation, "Invalid correct answer index for the provided options.")
)
