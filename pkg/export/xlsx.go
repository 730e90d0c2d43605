package export

import (
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"dispatch/entities"
	"dispatch/pkg/schedule"
)

const SheetName = "週間予定"

var header = []any{"日付", "開始", "終了", "得意先名", "現場名", "現場住所", "運送区分", "人員", "担当者", "備考"}

// WeeklySheet writes one row per task, in the order given.
func WeeklySheet(tasks []entities.Task, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", "J1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "A", "J", 16); err != nil {
		return nil, err
	}

	for i, t := range tasks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			t.StartAt.In(loc).Format("2006-01-02 (Mon)"),
			t.StartAt.In(loc).Format(schedule.ClockLayout),
			schedule.Interval{Start: t.StartAt, End: t.EndAt}.EffectiveEnd().In(loc).Format(schedule.ClockLayout),
			t.CustomerName,
			t.SiteName,
			t.SiteAddress,
			entities.NormalizeTransport(string(t.TransportMethod)).Label(),
			staff(t),
			owner(t),
			deref(t.Remarks),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func staff(t entities.Task) string {
	if !t.HasPartTimer || t.PartTimerCount == nil {
		return ""
	}
	s := strconv.Itoa(*t.PartTimerCount) + "名"
	if t.PartTimerDuration != nil && *t.PartTimerDuration != "" {
		s += " " + *t.PartTimerDuration
	}
	return s
}

func owner(t entities.Task) string {
	if t.Owner == nil {
		return ""
	}
	return t.Owner.FullName
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
