package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/classbot/internal/service"
	"github.com/Freeeeeet/classbot/internal/timetable"
)

const (
	ButtonWhereIsClass   = "Where is the class?"
	ButtonWhoIsDeveloper = "Who is the developer?"

	TextClosed        = "College is closed."
	TextNoClass       = "No class right now."
	TextNoUpcoming    = "No upcoming classes found."
	TextNothingToday  = "No remaining classes to remind you about today."
	TextUseButtons    = "Please use the provided buttons or /help."
	TextInternalError = "❌ Something went wrong. Please try again later."
	TextVolatile      = "Reminders are kept in memory and are lost if the bot restarts."

	TextHelp = "/start – register & show menu\n" +
		"/today – today's schedule\n" +
		"/next – next class from now\n" +
		"/subscribe – reminders before each class today\n" +
		"/setgroup <name> – change your group\n" +
		"/groups – supported groups\n" +
		"/week – this week as a picture\n" +
		"/help – help"
)

func startReply(group string) string {
	return "Welcome! You are registered under " + group + ".\n" +
		"Use the buttons below or commands: /today /next /subscribe /setgroup /help"
}

// currentReply формирует ответ на "Where is the class?".
func currentReply(m timetable.Moment) string {
	switch m.Kind {
	case timetable.OnBreak:
		return fmt.Sprintf("It's %s (%s).", strings.ToLower(m.Break.Name), m.Break.Interval)
	case timetable.Active:
		return fmt.Sprintf("Current class (%s):\n%s", m.Slot, timetable.FormatEntry(m.Entry))
	case timetable.Idle:
		return TextNoClass
	default:
		return TextClosed
	}
}

func nextReply(occ timetable.Occurrence, ok bool) string {
	if !ok {
		return TextNoUpcoming
	}
	return fmt.Sprintf("Next class at %s – %s", occ.At.Format("Mon 15:04"), timetable.FormatEntry(occ.Entry))
}

func todayReply(group string, view service.DayView) string {
	if view.Closed {
		return view.Day.String() + ": " + TextClosed
	}
	return fmt.Sprintf("Today's schedule for %s:\n%s", group, timetable.FormatDay(view.Rows))
}

func subscribeReply(res service.SubscribeResult) string {
	var text string
	switch {
	case res.Scheduled > 0:
		text = fmt.Sprintf("Subscribed: I'll remind you %s before %d class(es) today.", humanLead(res.Lead), res.Scheduled)
	case res.Duplicates > 0:
		text = fmt.Sprintf("You are already subscribed for %d class(es) today.", res.Duplicates)
	default:
		return TextNothingToday
	}
	if res.Scheduled > 0 && res.Duplicates > 0 {
		text += fmt.Sprintf(" %d reminder(s) were already set.", res.Duplicates)
	}
	return text + "\n" + TextVolatile
}

func humanLead(d time.Duration) string {
	if d > 0 && d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return d.String()
}

func groupsReply(names []string, current string) string {
	var sb strings.Builder
	sb.WriteString("Supported groups:")
	for _, n := range names {
		sb.WriteString("\n• " + n)
		if n == current {
			sb.WriteString(" (yours)")
		}
	}
	return sb.String()
}

func setGroupUsage() string {
	return "Usage: /setgroup Group-7"
}

func unknownGroupReply(group string, names []string) string {
	return fmt.Sprintf("Unknown group '%s'. Supported: %s", group, strings.Join(names, ", "))
}

// routeText классифицирует свободный текст с клавиатуры.
type textRoute int

const (
	routeUnknown textRoute = iota
	routeWhereIsClass
	routeDeveloper
)

func routeText(text string) textRoute {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(t, "where is the class"):
		return routeWhereIsClass
	case strings.Contains(t, "who is the developer"):
		return routeDeveloper
	default:
		return routeUnknown
	}
}
