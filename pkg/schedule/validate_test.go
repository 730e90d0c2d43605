package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/entities"
)

func TestValidateTimes(t *testing.T) {
	err := ValidateTimes("", "10:00")
	require.Error(t, err)
	assert.Equal(t, MsgStartRequired, err.Error())
	assert.True(t, IsValidation(err))

	err = ValidateTimes("10:00", "10:00")
	require.Error(t, err)
	assert.Equal(t, MsgEndBeforeStart, err.Error())

	assert.Error(t, ValidateTimes("10:00", "09:59"))
	assert.NoError(t, ValidateTimes("09:00", "10:00"))
	assert.NoError(t, ValidateTimes("09:00", ""))
}

func TestValidateTimes_UnpaddedHours(t *testing.T) {
	assert.NoError(t, ValidateTimes("9:00", "10:00"))
	assert.NoError(t, ValidateTimes("9:00", "09:30"))

	err := ValidateTimes("10:00", "9:00")
	require.Error(t, err)
	assert.Equal(t, MsgEndBeforeStart, err.Error())

	assert.Error(t, ValidateTimes("9:00", "09:00"), "same instant")
}

func TestValidateTimes_RejectsMalformed(t *testing.T) {
	for _, tc := range [][2]string{
		{"25:00", ""},
		{"9時", "10:00"},
		{"09:00", "10:60"},
	} {
		err := ValidateTimes(tc[0], tc[1])
		require.Error(t, err, tc)
		assert.True(t, IsValidation(err), tc)
	}
}

func TestValidateTransportCategories(t *testing.T) {
	err := ValidateTransportCategories(&entities.TransportCategories{})
	require.Error(t, err)
	assert.Equal(t, MsgTransportDetail, err.Error())

	assert.Error(t, ValidateTransportCategories(nil))

	for _, c := range []entities.TransportCategories{
		{Aswan: true},
		{Charter: true},
		{ShippingCompany: true},
		{NoPickup: true},
	} {
		c := c
		assert.NoError(t, ValidateTransportCategories(&c))
	}
}

func TestApplyPartTimerRules(t *testing.T) {
	dur := "半日"
	empty := ""

	on, err := ApplyPartTimerRules(entities.TransportStaffOnly, false, &dur)
	require.NoError(t, err)
	assert.True(t, on, "staff only forces the flag")

	on, err = ApplyPartTimerRules("人員のみ", false, nil)
	require.Error(t, err)
	assert.True(t, on)
	assert.Equal(t, MsgStaffOnlyNeedsTime, err.Error())

	_, err = ApplyPartTimerRules(entities.TransportSeparate, true, &empty)
	require.Error(t, err)
	assert.Equal(t, MsgPartTimerNeedsTime, err.Error())

	on, err = ApplyPartTimerRules(entities.TransportSeparate, false, nil)
	require.NoError(t, err)
	assert.False(t, on)
}
