package schedule

import (
	"errors"

	"dispatch/entities"
)

// ValidationError is a user-facing rejection raised before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

const (
	MsgStartRequired      = "開始時間は必須です"
	MsgEndBeforeStart     = "終了時間は開始時間より後に設定してください"
	MsgTransportDetail    = "運送区分詳細から少なくとも一つを選択してください"
	MsgStaffOnlyNeedsTime = "「人員のみ」を選択した場合、人員情報の入力は必須です。"
	MsgPartTimerNeedsTime = "人員を選択した場合、時間の選択は必須です。"
)

// ValidateTimes checks clock readings of the same day; end may be empty.
// Readings are compared as times, so "9:00" and "09:00" are the same.
func ValidateTimes(start, end string) error {
	if start == "" {
		return &ValidationError{Field: "start_time", Message: MsgStartRequired}
	}
	from, err := ParseClock("start_time", start)
	if err != nil {
		return err
	}
	if end == "" {
		return nil
	}
	to, err := ParseClock("end_time", end)
	if err != nil {
		return err
	}
	if to <= from {
		return &ValidationError{Field: "end_time", Message: MsgEndBeforeStart}
	}
	return nil
}

func ValidateTransportCategories(c *entities.TransportCategories) error {
	if !c.AnySelected() {
		return &ValidationError{Field: "transport_categories", Message: MsgTransportDetail}
	}
	return nil
}

// ApplyPartTimerRules turns the part-timer flag on for staff-only tasks and
// then requires a duration whenever the flag is set. It returns the
// effective flag.
func ApplyPartTimerRules(method entities.TransportMethod, hasPartTimer bool, duration *string) (bool, error) {
	staffOnly := entities.NormalizeTransport(string(method)) == entities.TransportStaffOnly
	if staffOnly {
		hasPartTimer = true
	}
	if hasPartTimer && (duration == nil || *duration == "") {
		if staffOnly {
			return true, &ValidationError{Field: "part_timer_duration", Message: MsgStaffOnlyNeedsTime}
		}
		return true, &ValidationError{Field: "part_timer_duration", Message: MsgPartTimerNeedsTime}
	}
	return hasPartTimer, nil
}
