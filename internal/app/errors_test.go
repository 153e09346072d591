package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrors_Format(t *testing.T) {
	assert.Equal(t, "CYCLE: nope", (&HierarchyError{Code: HierarchyErrCycle, Message: "nope"}).Error())
	assert.Equal(t, "CONFIG: missing", (&EstimateError{Code: EstimateErrConfig, Message: "missing"}).Error())
	assert.Equal(t, "INVALID_SORT: bad", (&DashboardError{Code: DashboardErrInvalidSort, Message: "bad"}).Error())
}

func TestTypedErrors_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("moving requirement: %w", &HierarchyError{Code: HierarchyErrCycle, Message: "loop"})
	var hErr *HierarchyError
	assert.True(t, errors.As(err, &hErr))
	assert.Equal(t, HierarchyErrCycle, hErr.Code)
}
