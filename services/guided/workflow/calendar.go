// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package workflow

import (
	"fmt"
	"net/url"
	"time"
)

// calendarTimeLayout is the compact local-time format Google Calendar
// expects in the dates parameter: YYYYMMDDTHHmmSS.
const calendarTimeLayout = "20060102T150405"

// CalendarEventURL builds a Google Calendar event-creation link with the
// session details pre-filled. Opening the link shows the event editor with
// title, time, description, and location already set.
func CalendarEventURL(title, description string, start time.Time, durationMinutes int, location string) string {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", title)
	params.Set("dates", fmt.Sprintf("%s/%s", start.Format(calendarTimeLayout), end.Format(calendarTimeLayout)))
	params.Set("details", description)
	params.Set("location", location)
	params.Set("sf", "true")
	params.Set("output", "xml")

	return "https://calendar.google.com/calendar/render?" + params.Encode()
}
