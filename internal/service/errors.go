package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can pick a status code.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindConflict     Kind = "conflict"
	KindDependency   Kind = "dependency"
	KindBotSuspected Kind = "bot_suspected"
	KindNotFound     Kind = "not_found"
)

// Display messages. These are the only texts a caller ever sees for a failure.
const (
	MsgEnquiryAccepted    = "Enquiry submitted successfully!"
	MsgEnquiryStoreFailed = "Database Error: Failed to save enquiry."
	MsgValidationFailed   = "Please correct the highlighted fields."
	MsgBotChallenge       = "Please complete the bot challenge."
	MsgBotUnavailable     = "Bot validation service unavailable. Please try again."
	MsgNameTooShort       = "Name must be at least 2 characters"
	MsgInvalidPhone       = "Invalid phone number"

	MsgUnauthorized = "Unauthorized: You do not have permission to perform this action."

	MsgNoValidIDs          = "No valid IDs provided"
	MsgDeleteEnquiryFailed = "Failed to delete enquiries"
	MsgLoadEnquiryFailed   = "Failed to load enquiries"
	MsgArchiveFailed       = "Failed to archive enquiries"

	MsgInvalidEmail     = "Invalid email address"
	MsgPasswordTooShort = "Password must be at least 6 characters"
	MsgEmailExists      = "Email already exists."
	MsgAdminCreated     = "Admin user created successfully!"
	MsgAdminCreateFail  = "Failed to create admin user."
	MsgCannotDeleteSelf = "You cannot delete your own account."
	MsgCannotDeleteRoot = "Cannot delete the Root Admin."
	MsgUserNotFound     = "User not found."
	MsgUserDeleted      = "User deleted."
	MsgUserDeleteFailed = "Failed to delete user."
	MsgLoadUsersFailed  = "Failed to load admin users"
)

// Error is the structured failure every public operation returns.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func validationError(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// KindOf returns the kind of a service error, or "" for anything else.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
