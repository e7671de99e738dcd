package dialogue

import (
	"strings"

	"github.com/docchat-ai/docchat/internal/schedule"
)

// User-facing prompts for the collection flow.
const (
	promptName        = "Sure, let's get you scheduled. May I have your name first?"
	promptPhone       = "Thank you! Now, could you please provide your phone number?"
	promptPhoneRetry  = "The phone number format doesn't seem right. Please enter a valid number (10-15 digits)."
	promptEmail       = "Great! What's your email address?"
	promptEmailRetry  = "That doesn't look like a valid email. Please enter a correct one."
	promptDate        = "Thanks! On which date would you like to schedule the appointment? (e.g., next Friday, March 15, 2025-01-01)"
	promptDateRetry   = "Sorry, I couldn't understand the date. Please try again with a valid format like 'next Friday' or '15th March'."
	promptTime        = "And what time would you prefer for the appointment? (e.g., 10 AM, 2:30 PM)"
	promptTimeRetry   = "I couldn't understand the time format. Please try again (e.g., '10 AM', '14:30', '5 PM')."
	msgSaveFailed     = "We encountered an error saving your data. Please try again later."
	msgSlotJustTaken  = "Sorry, that slot was just taken."
	msgBookingFailed  = "Your appointment was scheduled but we couldn't save it. Please contact support."
	msgQAFailed       = "I'm sorry, I encountered an error while answering. Please try again."
	msgBookingErrored = "I ran into an error while booking your appointment. Please try again."
)

// SlotList renders available slots as a bullet list.
func SlotList(slots []string) string {
	var b strings.Builder
	for _, slot := range slots {
		b.WriteString("- ")
		b.WriteString(slot)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// AvailabilityMenu is the shared phrasing for "here is what's open on this
// date". Both menu paths (no time given, requested time unavailable) use
// it so the date context is always stated.
func AvailabilityMenu(date string, slots []string) string {
	if len(slots) == 0 {
		return "No available slots on " + schedule.FormatDate(date) + ". Please try another date."
	}
	return "Available times for " + schedule.FormatDate(date) + ":\n" + SlotList(slots)
}

// UnavailableTimeMenu tells the user their pick is taken and lists the
// alternatives for the same date.
func UnavailableTimeMenu(timeStr, date string, slots []string) string {
	if len(slots) == 0 {
		return "Sorry, " + timeStr + " is not available on " + schedule.FormatDate(date) +
			" and no other slots remain on that date. Please try another date."
	}
	return "Sorry, " + timeStr + " is not available on " + schedule.FormatDate(date) + ".\n" +
		AvailabilityMenu(date, slots) + "\nPlease choose one."
}
