package document

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"dispatch/entities"
)

const fontFamily = "jp"

// labels holds the printed captions. Core PDF fonts cannot draw Japanese,
// so the ASCII set is used when no TrueType font is configured.
type labels struct {
	Title, Date, Site, Address, Customer, Meeting, Place, Contact, Phone,
	Content, Equipment, Carts, Abacus, Loading, Remarks, Owner string
}

var jaLabels = labels{
	Title: "作業依頼書", Date: "日時", Site: "現場名", Address: "現場住所", Customer: "得意先",
	Meeting: "集合時間", Place: "集合場所", Contact: "得意先担当者", Phone: "得意先電話番号",
	Content: "作業内容", Equipment: "装備品", Carts: "台車", Abacus: "そろばん",
	Loading: "資材積込", Remarks: "備考", Owner: "担当者",
}

var asciiLabels = labels{
	Title: "Work Request", Date: "Date", Site: "Site", Address: "Address", Customer: "Customer",
	Meeting: "Meeting time", Place: "Meeting place", Contact: "Contact", Phone: "Phone",
	Content: "Work", Equipment: "Equipment", Carts: "Carts", Abacus: "Abacus",
	Loading: "Loading", Remarks: "Remarks", Owner: "Owner",
}

type Renderer struct {
	fontPath string
	loc      *time.Location
}

// NewRenderer uses the TrueType font at fontPath when set.
func NewRenderer(fontPath string, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{fontPath: fontPath, loc: loc}
}

// Render lays out a fixed A4 page. w.Task must be loaded.
func (r *Renderer) Render(w *entities.WorkRequest) ([]byte, error) {
	if w == nil || w.Task == nil {
		return nil, fmt.Errorf("document: work request without task")
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	lb, family, ja := asciiLabels, "Helvetica", r.fontPath != ""
	if ja {
		pdf.AddUTF8Font(fontFamily, "", r.fontPath)
		lb, family = jaLabels, fontFamily
	}
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont(family, "", 18)
	pdf.CellFormat(0, 12, lb.Title, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	t := w.Task
	pdf.SetFont(family, "", 11)
	row := func(label, value string) {
		pdf.CellFormat(45, 8, label, "1", 0, "L", false, 0, "")
		pdf.MultiCell(0, 8, value, "1", "L", false)
	}
	row(lb.Date, t.StartAt.In(r.loc).Format("2006/01/02 15:04"))
	row(lb.Site, t.SiteName)
	row(lb.Address, t.SiteAddress)
	row(lb.Customer, t.CustomerName)
	if t.Owner != nil {
		row(lb.Owner, t.Owner.FullName)
	}
	row(lb.Meeting, w.MeetingTime)
	row(lb.Place, w.MeetingPlace)
	row(lb.Contact, w.CustomerContactPerson)
	row(lb.Phone, w.CustomerPhone)
	row(lb.Content, w.WorkContent)
	row(lb.Equipment, equipmentList(w.Equipment, ja))
	row(lb.Carts, strconv.Itoa(w.CartCount))
	row(lb.Abacus, strconv.Itoa(w.AbacusCount))
	row(lb.Loading, loadingList(w.MaterialLoading, ja))
	row(lb.Remarks, w.AdditionalRemarks)

	if pdf.Err() {
		return nil, pdf.Error()
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func equipmentList(e entities.Equipment, ja bool) string {
	items := []struct {
		on     bool
		ja, en string
	}{
		{e.Helmet, "ヘルメット", "helmet"},
		{e.SafetyBelt, "安全帯", "safety belt"},
		{e.SafetyShoes, "安全靴", "safety shoes"},
		{e.LongSleeveShirt, "長袖シャツ", "long sleeves"},
		{e.LiftingGear, "揚重機材", "lifting gear"},
		{e.Forklift, "フォークリフト", "forklift"},
		{e.Sling, "スリング", "sling"},
	}
	var out []string
	for _, it := range items {
		if !it.on {
			continue
		}
		if ja {
			out = append(out, it.ja)
		} else {
			out = append(out, it.en)
		}
	}
	return join(out)
}

func loadingList(m entities.MaterialLoading, ja bool) string {
	items := []struct {
		on     bool
		ja, en string
	}{
		{m.PreviousDay, "前日", "previous day"},
		{m.SameDay, "当日", "same day"},
		{m.Morning, "午前", "morning"},
		{m.Afternoon, "午後", "afternoon"},
	}
	var out []string
	for _, it := range items {
		if !it.on {
			continue
		}
		if ja {
			out = append(out, it.ja)
		} else {
			out = append(out, it.en)
		}
	}
	return join(out)
}

func join(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ", ")
}
