package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/emersion/go-ical"

	"dispatch/entities"
	"dispatch/pkg/schedule"
)

const (
	productID = "-//dispatch//Weekly Schedule//JA"
	// maxLineOctets is the content line limit before folding.
	maxLineOctets = 75
)

// Calendar renders tasks as an iCalendar feed with UTC timestamps.
func Calendar(tasks []entities.Task, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "PUBLISH")
	cal.Props.SetText("X-WR-CALNAME", SheetName)

	for _, t := range tasks {
		end := schedule.Interval{Start: t.StartAt, End: t.EndAt}.EffectiveEnd()
		method := entities.NormalizeTransport(string(t.TransportMethod)).Label()

		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, fmt.Sprintf("task-%d@dispatch", t.ID))
		ev.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
		ev.Props.SetDateTime(ical.PropDateTimeStart, t.StartAt.UTC())
		ev.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
		ev.Props.SetText(ical.PropSummary, fmt.Sprintf("[%s] %s - %s", method, t.CustomerName, t.SiteName))
		if t.SiteAddress != "" {
			ev.Props.SetText(ical.PropLocation, t.SiteAddress)
		}
		if desc := description(t); desc != "" {
			ev.Props.SetText(ical.PropDescription, desc)
		}
		cal.Children = append(cal.Children, ev.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&folder{w: &buf}).Encode(cal); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func description(t entities.Task) string {
	var parts []string
	if t.GoodsDescription != "" {
		parts = append(parts, "品名: "+t.GoodsDescription)
	}
	if s := staff(t); s != "" {
		parts = append(parts, "人員: "+s)
	}
	if o := owner(t); o != "" {
		parts = append(parts, "担当者: "+o)
	}
	if r := deref(t.Remarks); r != "" {
		parts = append(parts, "備考: "+r)
	}
	return strings.Join(parts, "\n")
}

// folder splits content lines longer than maxLineOctets into CRLF + space
// continuations without breaking a UTF-8 sequence. Lines already within
// the limit pass through untouched.
type folder struct {
	w       io.Writer
	pending []byte
}

func (f *folder) Write(p []byte) (int, error) {
	f.pending = append(f.pending, p...)
	for {
		i := bytes.Index(f.pending, []byte("\r\n"))
		if i < 0 {
			return len(p), nil
		}
		if _, err := f.w.Write(fold(f.pending[:i])); err != nil {
			return 0, err
		}
		f.pending = f.pending[i+2:]
	}
}

func fold(line []byte) []byte {
	out := make([]byte, 0, len(line)+len(line)/maxLineOctets*3+2)
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		out = append(out, line[:cut]...)
		out = append(out, "\r\n "...)
		line = line[cut:]
		// the leading space counts toward the continuation line
		limit = maxLineOctets - 1
	}
	out = append(out, line...)
	return append(out, "\r\n"...)
}
