package entity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validObject() Object {
	return Object{
		ID:        uuid.New(),
		ObjectID:  "device-001",
		Type:      "sensor",
		AccountID: uuid.New(),
		Name:      "temperature sensor",
		Active:    true,
	}
}

func TestObjectValidate(t *testing.T) {
	o := validObject()
	assert.Empty(t, o.Validate())

	o = validObject()
	o.ObjectID = ""
	o.Name = ""
	violations := o.Validate()
	assert.Len(t, violations, 2)

	o = validObject()
	o.ObjectID = strings.Repeat("x", 768)
	assert.Len(t, o.Validate(), 1)

	o = validObject()
	o.Moniker = strings.Repeat("m", 2049)
	o.Description = strings.Repeat("d", 1025)
	assert.Len(t, o.Validate(), 2)
}

func TestThingValidate(t *testing.T) {
	th := Thing{ID: uuid.New(), Type: "gateway", TenantID: uuid.New(), Active: true}
	assert.Empty(t, th.Validate())

	th.Type = ""
	th.TenantID = uuid.Nil
	assert.Len(t, th.Validate(), 2)
}
