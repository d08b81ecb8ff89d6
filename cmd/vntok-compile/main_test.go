package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoMainUsage(t *testing.T) {
	var errOut bytes.Buffer
	code := doMain(nil, &errOut)
	assert.NotEqual(t, 0, code)
	assert.Contains(t, errOut.String(), "Usage")
}

func TestDoMainMissingInput(t *testing.T) {
	var errOut bytes.Buffer
	code := doMain([]string{t.TempDir(), t.TempDir()}, &errOut)
	assert.NotEqual(t, 0, code)
	assert.NotEmpty(t, errOut.String())
}
