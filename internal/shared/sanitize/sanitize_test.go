package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", Email("  Ana@Example.COM "))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "+6281234567890", Phone(" +62 (812) 3456-7890 "))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("+62 812 3456 789"))
	assert.True(t, ValidPhone("08123456789"))
	assert.False(t, ValidPhone("12345"))
	assert.False(t, ValidPhone("not-a-number"))
}

func TestStrongPassword(t *testing.T) {
	assert.True(t, StrongPassword("hunter2hunter2"))
	assert.False(t, StrongPassword("short1"))
	assert.False(t, StrongPassword("lettersonly"))
	assert.False(t, StrongPassword("12345678"))
}
