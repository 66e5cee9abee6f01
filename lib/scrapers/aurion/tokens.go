package aurion

import (
	"fmt"
	"strconv"
	"strings"
)

// Markers the portal's server-rendered pages are split on. These are
// fixed parts of the PrimeFaces output; when one goes missing the
// markup changed and scraping cannot continue.
const (
	viewStateMarker     = `name="javax.faces.ViewState"`
	formIdMarker        = `chargerSousMenu = function() {PrimeFaces.ab({s:"form:j_idt`
	scheduleClassMarker = `" class="schedule"`
	scheduleIdMarker    = `id="form:j_idt`
)

// cutDelimited returns the text strictly between start and end.
func cutDelimited(text, start, end string) (string, error) {
	_, after, found := strings.Cut(text, start)
	if !found {
		return "", fmt.Errorf("%w: missing %q", ErrBadProtocol, start)
	}
	inner, _, found := strings.Cut(after, end)
	if !found {
		return "", fmt.Errorf("%w: missing %q", ErrBadProtocol, end)
	}
	return inner, nil
}

// extractViewState pulls the javax.faces.ViewState value out of a
// rendered page.
func extractViewState(text string) (string, error) {
	_, after, found := strings.Cut(text, viewStateMarker)
	if !found {
		return "", fmt.Errorf("%w: view state field not found", ErrBadProtocol)
	}
	_, after, found = strings.Cut(after, `value="`)
	if !found {
		return "", fmt.Errorf("%w: view state field has no value", ErrBadProtocol)
	}
	value, _, found := strings.Cut(after, `"`)
	if !found {
		return "", fmt.Errorf("%w: view state value is unterminated", ErrBadProtocol)
	}
	return value, nil
}

// extractFormId pulls the numeric suffix of the sidebar form element id
// out of the main page. The id is needed to address partial-ajax
// requests at the menu.
func extractFormId(text string) (int, error) {
	_, after, found := strings.Cut(text, formIdMarker)
	if !found {
		return 0, fmt.Errorf("%w: sidebar form id not found", ErrBadProtocol)
	}
	digits, _, found := strings.Cut(after, `"`)
	if !found {
		return 0, fmt.Errorf("%w: sidebar form id is unterminated", ErrBadProtocol)
	}
	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: sidebar form id %q is not numeric", ErrBadProtocol, digits)
	}
	return id, nil
}

// extractScheduleFormId pulls the form element id of the schedule
// widget out of the planning page. Unlike the sidebar id this one is
// regenerated per page load.
func extractScheduleFormId(text string) (int, error) {
	before, _, found := strings.Cut(text, scheduleClassMarker)
	if !found {
		return 0, fmt.Errorf("%w: schedule widget not found", ErrBadProtocol)
	}
	idx := strings.LastIndex(before, scheduleIdMarker)
	if idx < 0 {
		return 0, fmt.Errorf("%w: schedule form id not found", ErrBadProtocol)
	}
	digits := before[idx+len(scheduleIdMarker):]
	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: schedule form id %q is not numeric", ErrBadProtocol, digits)
	}
	return id, nil
}
