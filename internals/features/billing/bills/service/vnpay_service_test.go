package service

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = VNPayConfig{
	TmnCode:    "TESTCODE",
	HashSecret: "supersecretkey",
	PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
	ReturnURL:  "https://example.com/payment/return",
}

func TestBuildPaymentURLIsSelfConsistent(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	raw, err := BuildPaymentURL(testCfg, "bill-123", decimal.NewFromInt(1_500_000), "Thanh toan hoa don", "203.0.113.7", now)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, testCfg.PayURL+"?"))

	q := u.Query()
	assert.Equal(t, "TESTCODE", q.Get("vnp_TmnCode"))
	assert.Equal(t, "bill-123", q.Get("vnp_TxnRef"))
	// gateway convention: amount x100
	assert.Equal(t, "150000000", q.Get("vnp_Amount"))
	// create date in GMT+7: 09:30 UTC is 16:30 ICT
	assert.Equal(t, "20240510163000", q.Get("vnp_CreateDate"))
	assert.NotEmpty(t, q.Get("vnp_SecureHash"))

	// the URL we sign must verify with the same secret
	params := map[string]string{}
	for k := range q {
		params[k] = q.Get(k)
	}
	assert.True(t, VerifySignature(testCfg, params))
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	raw, err := BuildPaymentURL(testCfg, "bill-123", decimal.NewFromInt(1_500_000), "Thanh toan", "203.0.113.7", now)
	require.NoError(t, err)

	u, _ := url.Parse(raw)
	params := map[string]string{}
	for k := range u.Query() {
		params[k] = u.Query().Get(k)
	}

	params["vnp_Amount"] = "1"
	assert.False(t, VerifySignature(testCfg, params))

	delete(params, "vnp_SecureHash")
	assert.False(t, VerifySignature(testCfg, params))
}

func TestVerifySignatureIgnoresNonVNPParams(t *testing.T) {
	params := map[string]string{
		"vnp_TxnRef": "bill-9",
		"vnp_Amount": "100000",
	}
	params["vnp_SecureHash"] = hashParams(map[string]string{
		"vnp_TxnRef": "bill-9",
		"vnp_Amount": "100000",
	}, testCfg.HashSecret)

	// extra non-vnp_ query noise must not break verification
	params["utm_source"] = "email"
	assert.True(t, VerifySignature(testCfg, params))
}

func TestBuildPaymentURLValidation(t *testing.T) {
	now := time.Now()
	_, err := BuildPaymentURL(VNPayConfig{}, "x", decimal.NewFromInt(1), "info", "ip", now)
	assert.Error(t, err)

	_, err = BuildPaymentURL(testCfg, "x", decimal.Zero, "info", "ip", now)
	assert.Error(t, err)
}

func TestPaymentSucceeded(t *testing.T) {
	assert.True(t, PaymentSucceeded(map[string]string{
		"vnp_ResponseCode":      "00",
		"vnp_TransactionStatus": "00",
	}))
	assert.False(t, PaymentSucceeded(map[string]string{
		"vnp_ResponseCode":      "24",
		"vnp_TransactionStatus": "02",
	}))
}

func TestParseIPNAmount(t *testing.T) {
	got, err := ParseIPNAmount("150000000")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(1_500_000)))

	_, err = ParseIPNAmount("not-a-number")
	assert.Error(t, err)
}
