package partner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("linh.tran@example.com"))
	assert.NoError(t, ValidateEmail("partner+care@mail.vn"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("0912345678"))
	assert.NoError(t, ValidatePhone("+84912345678"))
	assert.NoError(t, ValidatePhone("0357654321"))
	assert.Error(t, ValidatePhone("0112345678")) // invalid carrier prefix
	assert.Error(t, ValidatePhone("091234567"))  // too short
	assert.Error(t, ValidatePhone("09123456789"))
	assert.Error(t, ValidatePhone("84912345678")) // missing 0 or +84
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(1))
	assert.NoError(t, ValidatePrice(1_000_000))
	assert.Error(t, ValidatePrice(0))
	assert.Error(t, ValidatePrice(-50))
	assert.Error(t, ValidatePrice(1_000_001))
}

func TestValidateExperienceYears(t *testing.T) {
	assert.NoError(t, ValidateExperienceYears(0))
	assert.NoError(t, ValidateExperienceYears(50))
	assert.Error(t, ValidateExperienceYears(-1))
	assert.Error(t, ValidateExperienceYears(51))
}

func TestValidateBio(t *testing.T) {
	assert.NoError(t, ValidateBio(""))
	assert.NoError(t, ValidateBio(strings.Repeat("a", 500)))
	assert.Error(t, ValidateBio(strings.Repeat("a", 501)))
}

func TestValidateServices(t *testing.T) {
	assert.NoError(t, ValidateServices([]string{"elder-care", "child_care", "cleaning2"}))

	err := ValidateServices(nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "services", verr.Field)

	assert.Error(t, ValidateServices([]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}))
	assert.Error(t, ValidateServices([]string{"elder-care", "elder-care"}))
	assert.Error(t, ValidateServices([]string{"bad id!"}))
}
