// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/booknotes/pkg/convert"
)

func TestToIntD(t *testing.T) {
	assert.Equal(t, 7, convert.ToIntD("7", 1))
	assert.Equal(t, 7, convert.ToIntD(" 7 ", 1))
	assert.Equal(t, 1, convert.ToIntD("", 1))
	assert.Equal(t, 1, convert.ToIntD("seven", 1))
}

func TestStringSlice(t *testing.T) {
	assert.Nil(t, convert.StringSlice(""))
	assert.Equal(t, []string{"https://a.app", "http://localhost:5173"},
		convert.StringSlice(" https://a.app, ,http://localhost:5173 "))
}
