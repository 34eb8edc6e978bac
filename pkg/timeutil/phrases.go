package timeutil

import (
	"regexp"
	"strings"
	"time"
)

var (
	weekdays = map[string]time.Weekday{
		"sunday": time.Sunday, "sun": time.Sunday,
		"monday": time.Monday, "mon": time.Monday,
		"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
		"wednesday": time.Wednesday, "wed": time.Wednesday,
		"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
		"friday": time.Friday, "fri": time.Friday,
		"saturday": time.Saturday, "sat": time.Saturday,
	}
	// Read as weekdays only after on/this/next/every.
	ambiguousWeekdays = map[string]bool{"sat": true, "sun": true}

	months = map[string]time.Month{
		"january": time.January, "jan": time.January,
		"february": time.February, "feb": time.February,
		"march": time.March, "mar": time.March,
		"april": time.April, "apr": time.April,
		"may": time.May,
		"june": time.June, "jun": time.June,
		"july": time.July, "jul": time.July,
		"august": time.August, "aug": time.August,
		"september": time.September, "sep": time.September, "sept": time.September,
		"october": time.October, "oct": time.October,
		"november": time.November, "nov": time.November,
		"december": time.December, "dec": time.December,
	}

	frequencyWords = map[string]Frequency{
		"daily":    Daily,
		"weekly":   Weekly,
		"monthly":  Monthly,
		"yearly":   Yearly,
		"annually": Yearly,
	}
	frequencyUnits = map[string]Frequency{
		"day": Daily, "days": Daily,
		"week": Weekly, "weeks": Weekly,
		"month": Monthly, "months": Monthly,
		"year": Yearly, "years": Yearly,
	}

	isoDate      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthDay     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)
	dayOfMonth   = regexp.MustCompile(`^(\d{1,2})(st|nd|rd|th)?$`)
	yearWord     = regexp.MustCompile(`^\d{4}$`)
	digitsOnly   = regexp.MustCompile(`^\d+$`)
	trailingPunc = ",;!?."
)

type token struct {
	raw  string
	word string
	used bool
}

// scan holds what has been recognized so far in one piece of text.
type scan struct {
	now   time.Time
	today time.Time
	toks  []token

	matched bool

	date    *time.Time
	tonight bool
	clock   *clock
	instant *time.Time

	end     *clock
	endSpan []int
	dur     time.Duration
	durSpan []int

	deadlineDate  *time.Time
	deadlineClock *clock

	rec *Recurrence
}

func newScan(text string, now time.Time) *scan {
	fields := strings.Fields(text)
	toks := make([]token, len(fields))
	for i, f := range fields {
		toks[i] = token{raw: f, word: strings.TrimRight(strings.ToLower(f), trailingPunc)}
	}
	return &scan{now: now, today: StartOfDay(now), toks: toks}
}

func (s *scan) word(i int) string {
	if i < 0 || i >= len(s.toks) || s.toks[i].used {
		return ""
	}
	return s.toks[i].word
}

func (s *scan) use(from, n int) []int {
	span := make([]int, 0, n)
	for i := from; i < from+n; i++ {
		s.toks[i].used = true
		span = append(span, i)
	}
	s.matched = true
	return span
}

func (s *scan) release(span []int) {
	for _, i := range span {
		s.toks[i].used = false
	}
}

func (s *scan) run() {
	matchers := []func(int) int{
		s.matchRecurrence,
		s.matchDeadline,
		s.matchRelative,
		s.matchUntil,
		s.matchFor,
		s.matchDate,
		s.matchClock,
	}
	for i := 0; i < len(s.toks); {
		consumed := 0
		for _, m := range matchers {
			if consumed = m(i); consumed > 0 {
				break
			}
		}
		if consumed == 0 {
			consumed = 1
		}
		i += consumed
	}
}

func (s *scan) result() *Result {
	if !s.matched {
		return nil
	}

	res := &Result{Recurrence: s.rec}

	if s.tonight && s.clock == nil {
		s.clock = &clock{hour: 20}
	}

	switch {
	case s.instant != nil:
		res.Start = *s.instant
		res.HasTime = true
	case s.clock != nil:
		day := s.today
		if s.date != nil {
			day = *s.date
		}
		res.Start = s.clock.on(day)
		res.HasTime = true
	case s.date != nil:
		res.Start = *s.date
	}

	// An end only means something relative to a clocked start.
	if res.HasTime {
		switch {
		case s.end != nil:
			end := s.end.on(res.Start)
			if end.Before(res.Start) {
				end = end.AddDate(0, 0, 1)
			}
			res.End = &end
		case s.dur > 0:
			end := res.Start.Add(s.dur)
			res.End = &end
		}
	} else {
		s.release(s.endSpan)
		s.release(s.durSpan)
	}

	if s.deadlineDate != nil || s.deadlineClock != nil {
		day := s.today
		if s.deadlineDate != nil {
			day = *s.deadlineDate
		}
		c := clock{hour: 23, minute: 59}
		if s.deadlineClock != nil {
			c = *s.deadlineClock
		}
		deadline := c.on(day)
		res.Deadline = &deadline
	}

	remaining := make([]string, 0, len(s.toks))
	for _, t := range s.toks {
		if !t.used {
			remaining = append(remaining, t.raw)
		}
	}
	res.Remainder = strings.Join(remaining, " ")

	if !res.Scheduled() && res.Deadline == nil && res.Recurrence == nil {
		return nil
	}
	return res
}

// dateAt reads a calendar day starting at i without consuming anything.
func (s *scan) dateAt(i int) (time.Time, int) {
	w := s.word(i)
	switch w {
	case "":
		return time.Time{}, 0
	case "today", "tonight":
		return s.today, 1
	case "tomorrow", "tmrw":
		return s.today.AddDate(0, 0, 1), 1
	case "yesterday":
		return s.today.AddDate(0, 0, -1), 1
	case "on", "this":
		if wd, ok := weekdays[s.word(i + 1)]; ok {
			return s.upcoming(wd), 2
		}
		if w == "on" {
			if d, n := s.dateAt(i + 1); n > 0 {
				return d, n + 1
			}
		}
		return time.Time{}, 0
	case "next":
		if wd, ok := weekdays[s.word(i + 1)]; ok {
			return s.nextWeek(wd), 2
		}
		return time.Time{}, 0
	}

	if wd, ok := weekdays[w]; ok && !ambiguousWeekdays[w] {
		return s.upcoming(wd), 1
	}
	if isoDate.MatchString(w) {
		if d, err := time.ParseInLocation(LayoutDay, w, s.now.Location()); err == nil {
			return d, 1
		}
		return time.Time{}, 0
	}
	if m := monthDay.FindStringSubmatch(w); m != nil {
		if d, ok := s.dayInYear(time.Month(atoi(m[1])), atoi(m[2]), 0); ok {
			return d, 1
		}
		return time.Time{}, 0
	}
	if month, ok := months[w]; ok {
		m := dayOfMonth.FindStringSubmatch(s.word(i + 1))
		if m == nil {
			return time.Time{}, 0
		}
		year, n := 0, 2
		if y := s.word(i + 2); yearWord.MatchString(y) {
			year, n = atoi(y), 3
		}
		if d, ok := s.dayInYear(month, atoi(m[1]), year); ok {
			return d, n
		}
	}
	return time.Time{}, 0
}

// dayInYear builds a date, rolling into next year when no year was given and
// the day has already passed.
func (s *scan) dayInYear(month time.Month, day, year int) (time.Time, bool) {
	explicit := year != 0
	if !explicit {
		year = s.today.Year()
	}
	if month < time.January || month > time.December || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, s.now.Location())
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	if !explicit && d.Before(s.today) {
		d = d.AddDate(1, 0, 0)
	}
	return d, true
}

// upcoming is the soonest day with the given weekday, today included.
func (s *scan) upcoming(wd time.Weekday) time.Time {
	ahead := (int(wd) - int(s.today.Weekday()) + 7) % 7
	return s.today.AddDate(0, 0, ahead)
}

// nextWeek is the given weekday in the following Monday-based week.
func (s *scan) nextWeek(wd time.Weekday) time.Time {
	sinceMonday := (int(s.today.Weekday()) + 6) % 7
	monday := s.today.AddDate(0, 0, 7-sinceMonday)
	return monday.AddDate(0, 0, (int(wd)+6)%7)
}

// clockAt reads a clock time starting at i without consuming anything.
func (s *scan) clockAt(i int, bare bool) (clock, int) {
	w := s.word(i)
	if w == "" {
		return clock{}, 0
	}
	if strings.HasPrefix(w, "@") && len(w) > 1 {
		w, bare = w[1:], true
	}
	if c, ok := parseClockWord(w, bare); ok {
		return c, 1
	}
	if digitsOnly.MatchString(w) || twentyFour.MatchString(w) {
		next := strings.ReplaceAll(s.word(i+1), ".", "")
		if next == "am" || next == "pm" {
			if c, ok := parseClockWord(w+next, false); ok {
				return c, 2
			}
		}
	}
	return clock{}, 0
}

func (s *scan) matchDate(i int) int {
	if s.date != nil || s.instant != nil {
		return 0
	}
	d, n := s.dateAt(i)
	if n == 0 {
		return 0
	}
	if s.word(i) == "tonight" {
		s.tonight = true
	}
	s.date = &d
	s.use(i, n)
	return n
}

func (s *scan) matchClock(i int) int {
	if s.clock != nil || s.instant != nil {
		return 0
	}
	w := s.word(i)
	if start, end, ok := parseClockRange(w); ok {
		s.clock, s.end = &start, &end
		s.use(i, 1)
		return 1
	}

	j, bare := i, false
	switch w {
	case "at", "@", "from":
		j, bare = i+1, true
	}
	c, n := s.clockAt(j, bare)
	if n == 0 {
		return 0
	}
	s.clock = &c
	consumed := j - i + n

	// "2pm - 4pm", "2pm to 4pm", "from 1pm until 3pm"
	switch s.word(i + consumed) {
	case "-", "to", "until", "till":
		if end, en := s.clockAt(i+consumed+1, true); en > 0 {
			s.end = &end
			consumed += 1 + en
		}
	}
	s.use(i, consumed)
	return consumed
}

func (s *scan) matchUntil(i int) int {
	if s.end != nil {
		return 0
	}
	switch s.word(i) {
	case "until", "till":
	default:
		return 0
	}
	c, n := s.clockAt(i+1, true)
	if n == 0 {
		return 0
	}
	s.end = &c
	s.endSpan = s.use(i, n+1)
	return n + 1
}

// durationAt reads "90m", "1h30m", "2 hours" or "an hour".
func (s *scan) durationAt(i int) (time.Duration, int) {
	w := s.word(i)
	if w == "" {
		return 0, 0
	}
	if w == "an" || w == "a" {
		if next := s.word(i + 1); next == "hour" {
			return time.Hour, 2
		}
		return 0, 0
	}
	if d, _, err := ParseWindow(w); err == nil {
		return d, 1
	}
	if digitsOnly.MatchString(w) {
		if d, _, err := ParseWindow(w + s.word(i+1)); err == nil && s.word(i+1) != "" {
			return d, 2
		}
	}
	return 0, 0
}

func (s *scan) matchFor(i int) int {
	if s.dur > 0 || s.word(i) != "for" {
		return 0
	}
	d, n := s.durationAt(i + 1)
	if n == 0 {
		return 0
	}
	s.dur = d
	s.durSpan = s.use(i, n+1)
	return n + 1
}

func (s *scan) matchRelative(i int) int {
	if s.word(i) != "in" || s.instant != nil || s.date != nil || s.clock != nil {
		return 0
	}
	d, n := s.durationAt(i + 1)
	if n == 0 {
		return 0
	}
	if d%(24*time.Hour) == 0 {
		day := s.today.AddDate(0, 0, int(d/(24*time.Hour)))
		s.date = &day
	} else {
		at := s.now.Add(d)
		s.instant = &at
	}
	s.use(i, n+1)
	return n + 1
}

func (s *scan) matchDeadline(i int) int {
	if s.deadlineDate != nil || s.deadlineClock != nil {
		return 0
	}
	w := s.word(i)
	if w != "by" && w != "due" {
		return 0
	}
	j := i + 1
	if w == "due" {
		switch s.word(j) {
		case "by", "on":
			j++
		}
	}

	var (
		day *time.Time
		at  *clock
	)
	if d, n := s.dateAt(j); n > 0 {
		day = &d
		j += n
	}
	k := j
	if connector := s.word(k); connector == "at" || connector == "@" {
		k++
	}
	if c, n := s.clockAt(k, k > j); n > 0 {
		at = &c
		j = k + n
		if day == nil {
			if d, n := s.dateAt(j); n > 0 {
				day = &d
				j += n
			}
		}
	}
	if day == nil && at == nil {
		return 0
	}
	s.deadlineDate, s.deadlineClock = day, at
	s.use(i, j-i)
	return j - i
}

func (s *scan) matchRecurrence(i int) int {
	if s.rec != nil {
		return 0
	}
	w := s.word(i)
	if f, ok := frequencyWords[w]; ok {
		s.rec = &Recurrence{Frequency: f, Interval: 1}
		s.use(i, 1)
		return 1
	}
	if w != "every" && w != "each" {
		return 0
	}

	next := s.word(i + 1)
	if f, ok := frequencyUnits[next]; ok {
		s.rec = &Recurrence{Frequency: f, Interval: 1}
		s.use(i, 2)
		return 2
	}
	if next == "other" {
		if f, ok := frequencyUnits[s.word(i+2)]; ok {
			s.rec = &Recurrence{Frequency: f, Interval: 2}
			s.use(i, 3)
			return 3
		}
		return 0
	}
	if digitsOnly.MatchString(next) {
		if f, ok := frequencyUnits[s.word(i+2)]; ok {
			n := atoi(next)
			if n < 1 {
				return 0
			}
			s.rec = &Recurrence{Frequency: f, Interval: n}
			s.use(i, 3)
			return 3
		}
		return 0
	}
	if wd, ok := weekdays[next]; ok {
		s.rec = &Recurrence{Frequency: Weekly, Interval: 1}
		if s.date == nil && s.instant == nil {
			d := s.upcoming(wd)
			s.date = &d
		}
		s.use(i, 2)
		return 2
	}
	return 0
}
