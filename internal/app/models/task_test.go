package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "High", Task{Priority: "high"}.PriorityLabel())
	assert.Equal(t, "High", Task{Priority: "High"}.PriorityLabel())
	assert.Equal(t, "Medium", Task{Priority: "MEDIUM"}.PriorityLabel())
	assert.Empty(t, Task{}.PriorityLabel())
}

func TestDueLabel(t *testing.T) {
	assert.Equal(t, "01 Sep 2026", Task{DueDate: "2026-09-01"}.DueLabel())
	assert.Equal(t, "No due date", Task{}.DueLabel())
	assert.Equal(t, "tomorrow", Task{DueDate: "tomorrow"}.DueLabel())
}
