package export

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dispatch/entities"
)

var jst = time.FixedZone("JST", 9*60*60)

func sample() []entities.Task {
	end := time.Date(2025, 6, 2, 3, 30, 0, 0, time.UTC)
	count, dur := 2, "半日"
	remarks := "搬入口は北側; 要連絡"
	return []entities.Task{
		{
			ID:                1,
			CustomerName:      "山田建設",
			SiteName:          "新宿現場",
			SiteAddress:       "東京都新宿区1-1",
			StartAt:           time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			EndAt:             &end,
			TransportMethod:   "M便",
			HasPartTimer:      true,
			PartTimerCount:    &count,
			PartTimerDuration: &dur,
			Remarks:           &remarks,
			Owner:             &entities.User{FullName: "佐藤"},
		},
		{
			ID:              2,
			CustomerName:    "田中商事",
			SiteName:        "渋谷",
			StartAt:         time.Date(2025, 6, 3, 1, 0, 0, 0, time.UTC),
			TransportMethod: entities.TransportSeparate,
		},
	}
}

func TestWeeklySheet(t *testing.T) {
	b, err := WeeklySheet(sample(), jst)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "日付", rows[0][0])
	assert.Equal(t, []string{
		"2025-06-02 (Mon)", "09:00", "12:30", "山田建設", "新宿現場", "東京都新宿区1-1",
		"エムワーク便", "2名 半日", "佐藤", "搬入口は北側; 要連絡",
	}, rows[1])
	// no end time: one hour is assumed
	assert.Equal(t, "11:00", rows[2][2])
	assert.Equal(t, "別便", rows[2][6])
}

func decode(t *testing.T, b []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(b)).Decode()
	require.NoError(t, err)
	return cal
}

func TestCalendar(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	b, err := Calendar(sample(), now)
	require.NoError(t, err)
	out := string(b)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "DTSTART:20250602T000000Z\r\n")
	assert.Contains(t, out, "DTEND:20250602T033000Z\r\n")
	// no end time: one hour is assumed
	assert.Contains(t, out, "DTEND:20250603T020000Z\r\n")

	events := decode(t, b).Events()
	require.Len(t, events, 2)
	uid, err := events[0].Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "task-1@dispatch", uid)
	summary, err := events[0].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "[エムワーク便] 山田建設 - 新宿現場", summary)
	desc, err := events[0].Props.Text(ical.PropDescription)
	require.NoError(t, err)
	assert.Contains(t, desc, "担当者: 佐藤\n備考: 搬入口は北側; 要連絡")
}

func TestCalendar_FoldsLongJapaneseLines(t *testing.T) {
	tasks := sample()
	tasks[0].CustomerName = strings.Repeat("株式会社東日本総合物流センター", 4)
	tasks[0].SiteName = "横浜みなとみらい第二倉庫搬入口"

	b, err := Calendar(tasks, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(b), "\r\n"), "\r\n")
	folded := 0
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 75, l)
		assert.True(t, utf8.ValidString(l), l)
		if strings.HasPrefix(l, " ") {
			folded++
		}
	}
	assert.Positive(t, folded)

	summary, err := decode(t, b).Events()[0].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "[エムワーク便] "+tasks[0].CustomerName+" - "+tasks[0].SiteName, summary)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "SUMMARY:short\r\n", string(fold([]byte("SUMMARY:short"))))

	long := []byte("X:" + strings.Repeat("あ", 60))
	out := strings.Split(strings.TrimSuffix(string(fold(long)), "\r\n"), "\r\n")
	require.Greater(t, len(out), 2)
	assert.Equal(t, 74, len(out[0]), "cut backs off to a rune boundary")
	joined := out[0]
	for _, l := range out[1:] {
		require.True(t, strings.HasPrefix(l, " "))
		assert.LessOrEqual(t, len(l), 75)
		joined += l[1:]
	}
	assert.Equal(t, string(long), joined)
}
