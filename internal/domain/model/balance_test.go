package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopUpRequest_Validate(t *testing.T) {
	assert.NoError(t, (&TopUpRequest{Amount: 50}).Validate())
	assert.Error(t, (&TopUpRequest{Amount: 0}).Validate())
	assert.Error(t, (&TopUpRequest{Amount: -10}).Validate())
}
