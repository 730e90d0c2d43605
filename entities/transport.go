package entities

// TransportMethod is the canonical code stored on a task.
type TransportMethod string

const (
	TransportMWork     TransportMethod = "m_work"     // single-vehicle, same-day overlap is forbidden
	TransportSeparate  TransportMethod = "separate"   // 別便
	TransportStaffOnly TransportMethod = "staff_only" // 人員のみ
)

// legacy labels written by earlier clients; M便 and エムワーク便 both mean m_work.
var transportFromLabel = map[string]TransportMethod{
	"M便":    TransportMWork,
	"エムワーク便": TransportMWork,
	"別便":    TransportSeparate,
	"人員のみ":  TransportStaffOnly,
}

var transportDisplay = map[TransportMethod]string{
	TransportMWork:     "エムワーク便",
	TransportSeparate:  "別便",
	TransportStaffOnly: "人員のみ",
}

// NormalizeTransport maps a code or a legacy label to its canonical code.
// Unknown labels pass through unchanged and are never constrained.
func NormalizeTransport(label string) TransportMethod {
	if m, ok := transportFromLabel[label]; ok {
		return m
	}
	return TransportMethod(label)
}

// Known reports whether m is one of the enumerated codes.
func (m TransportMethod) Known() bool {
	_, ok := transportDisplay[m]
	return ok
}

// Label is the display text; unknown values are shown as stored.
func (m TransportMethod) Label() string {
	if s, ok := transportDisplay[m]; ok {
		return s
	}
	return string(m)
}

// Constrained reports whether same-day overlaps must be rejected for m.
func (m TransportMethod) Constrained() bool {
	return NormalizeTransport(string(m)) == TransportMWork
}

// StoredValues lists every value a row of method m may carry in the
// database, canonical code first, legacy labels after.
func (m TransportMethod) StoredValues() []string {
	canon := NormalizeTransport(string(m))
	out := []string{string(canon)}
	for label, code := range transportFromLabel {
		if code == canon {
			out = append(out, label)
		}
	}
	return out
}

// TransportMethods returns the enumerated codes in display order.
func TransportMethods() []TransportMethod {
	return []TransportMethod{TransportMWork, TransportSeparate, TransportStaffOnly}
}
