package service

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nhatro_backend/internals/configs"
)

// VNPay sandbox/production gateway parameters. The gateway signs and
// verifies requests with HMAC-SHA512 over the sorted, URL-encoded
// query string.
const (
	vnpVersion = "2.1.0"
	vnpCommand = "pay"
	vnpLocale  = "vn"
	vnpCurr    = "VND"

	// response codes the IPN handler treats as a successful payment
	vnpCodeSuccess = "00"
)

var hcmTZ = time.FixedZone("ICT", 7*3600)

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

func VNPayConfigFromEnv() VNPayConfig {
	return VNPayConfig{
		TmnCode:    configs.VNPayTmnCode,
		HashSecret: configs.VNPayHashSecret,
		PayURL:     configs.VNPayPayURL,
		ReturnURL:  configs.VNPayReturnURL,
	}
}

// BuildPaymentURL produces the signed redirect URL for one bill.
// Amount is multiplied by 100 per the gateway convention (VND has no
// decimals, the x100 is the gateway's own quirk).
func BuildPaymentURL(cfg VNPayConfig, txnRef string, amount decimal.Decimal, orderInfo, clientIP string, now time.Time) (string, error) {
	if cfg.TmnCode == "" || cfg.HashSecret == "" {
		return "", fmt.Errorf("vnpay is not configured")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("amount must be positive")
	}

	local := now.In(hcmTZ)
	params := map[string]string{
		"vnp_Version":    vnpVersion,
		"vnp_Command":    vnpCommand,
		"vnp_TmnCode":    cfg.TmnCode,
		"vnp_Amount":     amount.Mul(decimal.NewFromInt(100)).StringFixed(0),
		"vnp_CreateDate": local.Format("20060102150405"),
		"vnp_ExpireDate": local.Add(15 * time.Minute).Format("20060102150405"),
		"vnp_CurrCode":   vnpCurr,
		"vnp_IpAddr":     clientIP,
		"vnp_Locale":     vnpLocale,
		"vnp_OrderInfo":  orderInfo,
		"vnp_OrderType":  "other",
		"vnp_ReturnUrl":  cfg.ReturnURL,
		"vnp_TxnRef":     txnRef,
	}

	query := signedQuery(params, cfg.HashSecret)
	return cfg.PayURL + "?" + query, nil
}

// VerifySignature recomputes the HMAC over every vnp_ parameter except
// the hash fields and compares it to the received vnp_SecureHash.
func VerifySignature(cfg VNPayConfig, params map[string]string) bool {
	received := params["vnp_SecureHash"]
	if received == "" {
		return false
	}

	filtered := make(map[string]string, len(params))
	for k, v := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		if strings.HasPrefix(k, "vnp_") {
			filtered[k] = v
		}
	}

	expected := hashParams(filtered, cfg.HashSecret)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(received)))
}

// PaymentSucceeded reports whether an IPN callback describes a
// completed payment.
func PaymentSucceeded(params map[string]string) bool {
	return params["vnp_ResponseCode"] == vnpCodeSuccess &&
		params["vnp_TransactionStatus"] == vnpCodeSuccess
}

// ParseIPNAmount converts the gateway's x100 integer amount back to VND.
func ParseIPNAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid vnp_Amount %q", raw)
	}
	return d.Div(decimal.NewFromInt(100)), nil
}

func signedQuery(params map[string]string, secret string) string {
	encoded := encodeSorted(params)
	hash := hmacSHA512(secret, encoded)
	return encoded + "&vnp_SecureHash=" + hash
}

func hashParams(params map[string]string, secret string) string {
	return hmacSHA512(secret, encodeSorted(params))
}

// encodeSorted builds the canonical query string: keys sorted
// ascending, values URL-encoded with + for spaces, exactly as the
// gateway canonicalizes before hashing.
func encodeSorted(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

func hmacSHA512(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
