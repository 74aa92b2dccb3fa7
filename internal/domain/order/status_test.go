package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "completed", "cancelled"} {
		got, err := ParseStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, Status(s), got)
	}

	_, err := ParseStatus("shipped")
	assert.True(t, httperr.IsCode(err, "unknown_status"))
}

func TestParsePaymentStatus(t *testing.T) {
	for _, s := range []string{"unpaid", "paid", "failed"} {
		got, err := ParsePaymentStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, PaymentStatus(s), got)
	}

	_, err := ParsePaymentStatus("refunded")
	assert.True(t, httperr.IsCode(err, "unknown_payment_status"))
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, 49.99, ComputeTotal(49.99, 1))
	assert.Equal(t, 149.97, ComputeTotal(49.99, 3))
	assert.Equal(t, 0.0, ComputeTotal(0, 10))
}

func TestApplyAdminUpdate_BothAxes(t *testing.T) {
	o := &models.Order{
		Status:        string(StatusPending),
		PaymentStatus: string(PaymentUnpaid),
	}

	status := "processing"
	pay := "paid"
	require.NoError(t, ApplyAdminUpdate(o, &status, &pay))
	assert.Equal(t, "processing", o.Status)
	assert.Equal(t, "paid", o.PaymentStatus)
}

func TestApplyAdminUpdate_SingleAxis(t *testing.T) {
	o := &models.Order{
		Status:        string(StatusPending),
		PaymentStatus: string(PaymentUnpaid),
	}

	pay := "failed"
	require.NoError(t, ApplyAdminUpdate(o, nil, &pay))
	assert.Equal(t, "pending", o.Status, "fulfilment axis untouched")
	assert.Equal(t, "failed", o.PaymentStatus)
}

func TestApplyAdminUpdate_RejectsUnknownValues(t *testing.T) {
	o := &models.Order{
		Status:        string(StatusProcessing),
		PaymentStatus: string(PaymentUnpaid),
	}

	bad := "on-hold"
	err := ApplyAdminUpdate(o, &bad, nil)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	assert.Equal(t, "processing", o.Status)

	badPay := "voided"
	err = ApplyAdminUpdate(o, nil, &badPay)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	assert.Equal(t, "unpaid", o.PaymentStatus)
}
