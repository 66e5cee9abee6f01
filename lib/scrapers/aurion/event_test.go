package aurion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClassifyKind(t *testing.T) {
	cases := []struct {
		className string
		expect    EventKind
	}{
		{"conges", KindLeave},
		{"CM", KindCourse},
		{"cm", KindCourse},
		{"cours", KindCourse},
		{"est-epreuve", KindExam},
		{"EVALUATION", KindExam},
		{"ds", KindExam},
		{"reunion", KindMeeting},
		{"td", KindSupervisedWork},
		{"COURS_TD", KindSupervisedWork},
		{"tp", KindPracticalWork},
		{"projet", KindProject},
		{"", KindOther},
		{"something-new", KindOther},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, classifyKind(test.className), "class name %q", test.className)
	}
}

func TestParseTitle(t *testing.T) {
	fields, err := parseTitle("09h00 à 10h00 - A101 / A102 - X - Mathematics - Vectors - Dr. Smith / Dr. Jones")
	require.NoError(t, err)
	require.Equal(t, []string{"A101", "A102"}, fields.rooms)
	require.Equal(t, "Mathematics", fields.subject)
	require.Equal(t, "Vectors", fields.chapter)
	require.Equal(t, []string{"Dr. Smith", "Dr. Jones"}, fields.participants)
}

func TestParseTitleWithoutChapter(t *testing.T) {
	fields, err := parseTitle("09h00 à 10h00 - A101 - X - Physics - Dr. Smith")
	require.NoError(t, err)
	require.Equal(t, []string{"A101"}, fields.rooms)
	require.Equal(t, "Physics", fields.subject)
	require.Empty(t, fields.chapter)
	require.Equal(t, []string{"Dr. Smith"}, fields.participants)
}

func TestParseTitleMultiSegmentChapter(t *testing.T) {
	fields, err := parseTitle("08h00 à 12h00 - B204 - X - Electronics - Filters - Part 2 - Dr. Jones")
	require.NoError(t, err)
	require.Equal(t, "Filters - Part 2", fields.chapter)
	require.Equal(t, []string{"Dr. Jones"}, fields.participants)
}

func TestParseTitleErrors(t *testing.T) {
	cases := []struct {
		name   string
		title  string
		expect error
	}{
		{
			name:   "alternate institutional format",
			title:  "09h00 - 10h00 - A101 - X - Physics - Dr. Smith",
			expect: ErrUnsupportedTitleVariant,
		},
		{
			name:   "unrecognized time separator",
			title:  "09h00 x 10h00 - A101 - X - Physics - Dr. Smith",
			expect: ErrUnrecognizedTitle,
		},
		{
			name:   "empty title",
			title:  "",
			expect: ErrUnrecognizedTitle,
		},
		{
			name:   "too few segments",
			title:  "09h00 à 10h00 - A101 - Physics",
			expect: ErrMalformedTitle,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseTitle(test.title)
			require.ErrorIs(t, err, test.expect)
		})
	}
}

func TestNewEvent(t *testing.T) {
	start := time.Date(2023, 10, 5, 8, 0, 0, 0, time.UTC)
	end := time.Date(2023, 10, 5, 10, 0, 0, 0, time.UTC)

	event, err := newEvent(RawEvent{
		Id:        "12345",
		Title:     "08h00 à 10h00 - A101 - X - Mathematics - Vectors - Dr. Smith",
		Start:     start,
		End:       end,
		ClassName: "CM",
	})
	require.NoError(t, err)
	require.Equal(t, Event{
		Id:           12345,
		Kind:         KindCourse,
		Start:        start,
		End:          end,
		Rooms:        []string{"A101"},
		Subject:      "Mathematics",
		Chapter:      "Vectors",
		Participants: []string{"Dr. Smith"},
	}, event)
}

func TestNewEventNonNumericId(t *testing.T) {
	_, err := newEvent(RawEvent{
		Id:    "not-a-number",
		Title: "08h00 à 10h00 - A101 - X - Mathematics - Dr. Smith",
	})
	require.Error(t, err)
}
