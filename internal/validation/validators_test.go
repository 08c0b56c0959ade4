package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tgienger/todo/internal/models"
)

func TestValidatePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		wantErr bool
	}{
		{value: "high"},
		{value: "medium"},
		{value: "low"},
		{value: "", wantErr: true},
		{value: "urgent", wantErr: true},
		{value: "HIGH", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			err := ValidatePriority(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTask(t *testing.T) {
	t.Parallel()

	ok := models.Task{ID: "a", Title: "Buy milk", Priority: models.PriorityLow, CreatedAt: time.Now()}
	assert.NoError(t, ValidateTask(ok))

	noTitle := ok
	noTitle.Title = ""
	assert.Error(t, ValidateTask(noTitle))

	badPriority := ok
	badPriority.Priority = "someday"
	assert.Error(t, ValidateTask(badPriority))
}

func TestValidateTag(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateTag(models.Tag{ID: "t1", Name: "work"}))
	assert.Error(t, ValidateTag(models.Tag{ID: "t1"}))
	assert.Error(t, ValidateTag(models.Tag{Name: "work"}))
}

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Call mom", NormalizeTitle("  Call mom\t\n"))
	assert.Equal(t, "", NormalizeTitle("   "))
}
