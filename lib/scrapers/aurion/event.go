package aurion

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type EventKind string

const (
	KindLeave          EventKind = "leave"
	KindCourse         EventKind = "course"
	KindExam           EventKind = "exam"
	KindMeeting        EventKind = "meeting"
	KindSupervisedWork EventKind = "supervised_work"
	KindPracticalWork  EventKind = "practical_work"
	KindProject        EventKind = "project"
	KindOther          EventKind = "other"
)

// classifyKind maps the portal's css class name for an event onto a
// closed kind set. Case-insensitive, anything unknown is KindOther.
func classifyKind(className string) EventKind {
	switch strings.ToLower(className) {
	case "conges":
		return KindLeave
	case "cm", "cours":
		return KindCourse
	case "est-epreuve", "evaluation", "ds":
		return KindExam
	case "reunion":
		return KindMeeting
	case "td", "cours_td":
		return KindSupervisedWork
	case "tp":
		return KindPracticalWork
	case "projet":
		return KindProject
	default:
		return KindOther
	}
}

// RawEvent is one record of the schedule json embedded in the
// planning partial-update response.
type RawEvent struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	AllDay    bool      `json:"allDay"`
	Editable  bool      `json:"editable"`
	ClassName string    `json:"className"`
}

// Event is a fully decoded schedule entry.
type Event struct {
	Id    int       `json:"id"`
	Kind  EventKind `json:"kind"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Rooms []string  `json:"rooms"`
	// Subject is the course/exam name, e.g. "Mathematics".
	Subject string `json:"subject"`
	// Chapter is empty when the title carries no chapter segment.
	Chapter      string   `json:"chapter,omitempty"`
	Participants []string `json:"participants"`
}

func newEvent(raw RawEvent) (Event, error) {
	id, err := strconv.Atoi(raw.Id)
	if err != nil {
		return Event{}, fmt.Errorf("event id %q is not numeric: %w", raw.Id, err)
	}

	title, err := parseTitle(raw.Title)
	if err != nil {
		return Event{}, err
	}

	return Event{
		Id:           id,
		Kind:         classifyKind(raw.ClassName),
		Start:        raw.Start,
		End:          raw.End,
		Rooms:        title.rooms,
		Subject:      title.subject,
		Chapter:      title.chapter,
		Participants: title.participants,
	}, nil
}

type titleFields struct {
	rooms        []string
	subject      string
	chapter      string
	participants []string
}

// The length of the "HHhMM à HHhMM - " prefix in bytes ('à' is two).
const titlePrefixLen = 16

// The only validated title grammar, used by ISEN Ouest:
//
//	<time> à <time> - <rooms> - <?> - <subject> - [<chapter> - ] <participants>
//
// Segments are " - "-joined; rooms and participants are additionally
// " / "-joined. Slot 1 is portal noise and ignored. A title whose time
// separator is '-' instead of 'à' belongs to a different institution's
// format whose grammar is unknown, so it is rejected rather than
// guessed at. The parser is strict on purpose: downstream consumers
// rely on subject and rooms always being present when it succeeds.
func parseTitle(title string) (titleFields, error) {
	runes := []rune(title)
	if len(runes) < 7 {
		return titleFields{}, fmt.Errorf("%w: %q", ErrUnrecognizedTitle, title)
	}
	switch runes[6] {
	case 'à':
	case '-':
		return titleFields{}, fmt.Errorf("%w: %q", ErrUnsupportedTitleVariant, title)
	default:
		return titleFields{}, fmt.Errorf("%w: %q", ErrUnrecognizedTitle, title)
	}

	if len(title) < titlePrefixLen {
		return titleFields{}, fmt.Errorf("%w: %q", ErrMalformedTitle, title)
	}
	slots := strings.Split(title[titlePrefixLen:], " - ")
	if len(slots) < 4 {
		return titleFields{}, fmt.Errorf("%w: %q", ErrMalformedTitle, title)
	}

	var fields titleFields
	for _, room := range strings.Split(slots[0], " / ") {
		fields.rooms = append(fields.rooms, strings.TrimSpace(room))
	}

	fields.subject = slots[2]
	fields.chapter = strings.TrimSpace(strings.Join(slots[3:len(slots)-1], " - "))

	for _, participant := range strings.Split(slots[len(slots)-1], " / ") {
		participant = strings.TrimSpace(participant)
		if participant != "" {
			fields.participants = append(fields.participants, participant)
		}
	}

	return fields, nil
}
