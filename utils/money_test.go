package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "₹0"},
		{9, "₹9"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{99999, "₹99,999"},
		{100000, "₹1,00,000"},
		{123456, "₹1,23,456"},
		{1234567, "₹12,34,567"},
		{12345678, "₹1,23,45,678"},
		{-1999, "-₹1,999"},
		{-500, "-₹500"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatINR(tc.amount), "amount %d", tc.amount)
	}
}
