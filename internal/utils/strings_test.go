package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "9876543210", NormalizePhone(" 98765 43210 "))
	assert.Equal(t, "+919876543210", NormalizePhone("+91-98765-43210"))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("9876543210"))
	assert.True(t, ValidPhone("+91 98765 43210"))
	assert.False(t, ValidPhone("12345"))
	assert.False(t, ValidPhone("98765abcde"))
	assert.False(t, ValidPhone(""))
}

func TestFormatRupee(t *testing.T) {
	assert.Equal(t, "₹0", FormatRupee(0))
	assert.Equal(t, "₹999", FormatRupee(999))
	assert.Equal(t, "₹1,000", FormatRupee(1000))
	assert.Equal(t, "₹1,50,000", FormatRupee(150000))
	assert.Equal(t, "-₹250", FormatRupee(-250))
}
