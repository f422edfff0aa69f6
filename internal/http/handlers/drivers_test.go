package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/models"
)

func baseDriver() models.Driver {
	return models.Driver{
		ID:       "drv-1",
		TenantID: "tenant-1",
		Carrier: models.CarrierInfo{
			CompanyName: "Acme Freight",
			MCNumber:    "MC123",
			Email:       "dispatch@acme.example",
		},
		Loader: models.LoaderInfo{
			AgentName:    "Ada",
			Percentage:   10,
			TotalPayment: 500,
		},
		Status:           models.StatusActive,
		CreatedBy:        "staff-1",
		RegistrationDate: time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestMergeDriverOverlaysNestedFields(t *testing.T) {
	after, err := mergeDriver(baseDriver(),
		[]byte(`{"loader":{"percentage":20,"total_payment":1000}}`))
	require.NoError(t, err)

	assert.Equal(t, 20.0, after.Loader.Percentage)
	assert.Equal(t, 1000.0, after.Loader.TotalPayment)
	// Untouched siblings survive the overlay.
	assert.Equal(t, "Ada", after.Loader.AgentName)
	assert.Equal(t, "Acme Freight", after.Carrier.CompanyName)
	assert.Equal(t, models.StatusActive, after.Status)
}

func TestMergeDriverKeepsIdentityFields(t *testing.T) {
	before := baseDriver()
	after, err := mergeDriver(before,
		[]byte(`{"id":"spoofed","tenant_id":"other","created_by":"nobody","registration_date":"2030-01-01T00:00:00Z"}`))
	require.NoError(t, err)

	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.TenantID, after.TenantID)
	assert.Equal(t, before.CreatedBy, after.CreatedBy)
	assert.Equal(t, before.RegistrationDate, after.RegistrationDate)
	assert.True(t, after.LastUpdated.After(before.RegistrationDate))
}

func TestMergeDriverReplacesScalars(t *testing.T) {
	after, err := mergeDriver(baseDriver(), []byte(`{"status":"Approved","has_loader":true}`))
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, after.Status)
	assert.True(t, after.HasLoader)
}

func TestMergeDriverRejectsMalformedPatch(t *testing.T) {
	_, err := mergeDriver(baseDriver(), []byte(`{"loader":`))
	require.Error(t, err)
}
