package common

import (
	"errors"
	"fmt"
	"strings"

	"gachabot/application"
	"gachabot/domain/entities"
	"gachabot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string      // Message shown to Discord user
	LogMessage  string      // Internal message for logging
	Err         error       // Underlying error
	Context     interface{} // Additional context for logging
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues (bad arguments, missing items, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
	}
}

// NewSystemError creates an error for system issues (database, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: "Something went wrong. Please try again later.",
		LogMessage:  logMessage,
		Err:         err,
	}
}

// UsageError builds the reply for a command called with the wrong arguments
func UsageError(prefix, usage string) *BotError {
	return NewUserError(fmt.Sprintf("Usage: `%s%s`", prefix, usage), "invalid command usage")
}

// UserMessageFor maps an error to the text shown in chat
func UserMessageFor(err error) string {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr.UserMessage
	}

	var ticketErr *application.TicketRequiredError
	if errors.As(err, &ticketErr) {
		return fmt.Sprintf("You need the **%s** role to spin %d time(s).", ticketErr.Role, ticketErr.Count)
	}

	var ambiguous *entities.AmbiguousReferenceError
	if errors.As(err, &ambiguous) {
		return fmt.Sprintf("Several items start with **%q**: %s. Use more letters or the full name.",
			ambiguous.Query, strings.Join(ambiguous.Matches, ", "))
	}

	switch {
	case errors.Is(err, entities.ErrEmptyPool):
		return "The prize pool is empty. An administrator has to create items first."
	case errors.Is(err, entities.ErrInsufficientFunds):
		return "Not enough tokens: " + detail(err, entities.ErrInsufficientFunds)
	case errors.Is(err, entities.ErrInvalidArgument):
		return "Invalid value: " + detail(err, entities.ErrInvalidArgument)
	case errors.Is(err, entities.ErrNotFound):
		return "Not found: " + detail(err, entities.ErrNotFound)
	case errors.Is(err, entities.ErrPermissionDenied):
		return "The bot lacks permission to manage that role. Move the bot's role above it."
	case errors.Is(err, entities.ErrNoTicket):
		return "You need a ticket role to spin."
	}
	return "Something went wrong. Please try again later."
}

// detail strips the sentinel text off a wrapped error message
func detail(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error()
	if idx := strings.LastIndex(msg, marker); idx >= 0 {
		rest := strings.TrimPrefix(msg[idx+len(marker):], ": ")
		head := strings.TrimSuffix(msg[:idx], ": ")
		switch {
		case rest != "":
			return rest
		case head != "":
			return head
		}
	}
	return msg
}

// isUserFacing reports whether err is the caller's doing rather than a fault
func isUserFacing(err error) bool {
	var botErr *BotError
	if errors.As(err, &botErr) && botErr.Err == nil {
		return true
	}
	for _, sentinel := range []error{
		entities.ErrEmptyPool,
		entities.ErrInsufficientFunds,
		entities.ErrInvalidArgument,
		entities.ErrNotFound,
		entities.ErrAmbiguousReference,
		entities.ErrNoTicket,
		entities.ErrPermissionDenied,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// Outcome classifies an error for the command metrics
func Outcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeOK
	case isUserFacing(err):
		return observability.OutcomeUserError
	}
	return observability.OutcomeSystemError
}

// HandleError logs err and replies with the mapped message
func HandleError(c *CommandContext, command string, err error) {
	fields := log.Fields{
		"guildID": c.GuildID,
		"userID":  c.UserID,
		"command": command,
		"error":   err.Error(),
	}
	var botErr *BotError
	if errors.As(err, &botErr) && botErr.Context != nil {
		fields["context"] = botErr.Context
	}

	if Outcome(err) == observability.OutcomeSystemError {
		log.WithFields(fields).Error("Command failed")
	} else {
		log.WithFields(fields).Debug("Command rejected")
	}

	if replyErr := c.Reply("❌ " + UserMessageFor(err)); replyErr != nil {
		log.WithError(replyErr).Error("Error sending error reply")
	}
}
