package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/storefront-cart/pkg/errors"
	"github.com/shopspring/decimal"
)

type sampleRequest struct {
	Title    string `json:"title" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=99"`
	Kind     string `json:"kind" validate:"oneof=design product"`
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Tee","quantity":2,"kind":"product"}`))
	var dest sampleRequest
	if err := DecodeJSONBody(req, &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Title != "Tee" || dest.Quantity != 2 {
		t.Fatalf("unexpected decode %+v", dest)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Tee","quantity":1,"kind":"design","price":1}`))
	var dest sampleRequest
	err := DecodeJSONBody(req, &dest)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":0,"kind":"voucher"}`))
	var dest sampleRequest
	err := DecodeJSONBody(req, &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["title"] != "is required" {
		t.Fatalf("unexpected title message %q", details["title"])
	}
	if details["quantity"] != "must be at least 1" {
		t.Fatalf("unexpected quantity message %q", details["quantity"])
	}
	if !strings.HasPrefix(details["kind"], "must be one of") {
		t.Fatalf("unexpected kind message %q", details["kind"])
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":`))
	var dest sampleRequest
	if err := DecodeJSONBody(req, &dest); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type priceRequest struct {
	UnitPrice decimal.Decimal  `json:"unit_price" validate:"dgte=0"`
	Discount  *decimal.Decimal `json:"discount_percent,omitempty" validate:"omitempty,dgte=0,dlt=100"`
}

func TestDecodeJSONBodyValidatesDecimalFields(t *testing.T) {
	cases := map[string]string{
		`{"unit_price":"-0.01"}`:                                         "unit_price",
		`{"unit_price":"10","discount_percent":"100"}`:                   "discount_percent",
		`{"unit_price":"10","discount_percent":"-1.5"}`:                  "discount_percent",
		`{"unit_price":"10","discount_percent":"100.00000000000000001"}`: "discount_percent",
	}
	for body, field := range cases {
		var dest priceRequest
		err := DecodeJSONBody(httptest.NewRequest("POST", "/", strings.NewReader(body)), &dest)
		typed := pkgerrors.As(err)
		if typed == nil {
			t.Fatalf("%s: expected validation error", body)
		}
		details, _ := typed.Details().(map[string]string)
		if _, ok := details[field]; !ok {
			t.Fatalf("%s: expected %s in details, got %v", body, field, details)
		}
	}

	var dest priceRequest
	ok := `{"unit_price":"9.99","discount_percent":"99.5"}`
	if err := DecodeJSONBody(httptest.NewRequest("POST", "/", strings.NewReader(ok)), &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dest.UnitPrice.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("unexpected price %s", dest.UnitPrice)
	}
}

func TestDecodeJSONBodyComparesDecimalsExactly(t *testing.T) {
	var dest priceRequest
	body := `{"unit_price":"0","discount_percent":"99.99999999999999999"}`
	if err := DecodeJSONBody(httptest.NewRequest("POST", "/", strings.NewReader(body)), &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Discount == nil || !dest.Discount.Equal(decimal.RequireFromString("99.99999999999999999")) {
		t.Fatalf("unexpected discount %v", dest.Discount)
	}

	err := DecodeJSONBody(httptest.NewRequest("POST", "/", strings.NewReader(`{"unit_price":"-0.00000000000000001"}`)), &dest)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected validation error for tiny negative price")
	}
	details, _ := typed.Details().(map[string]string)
	if details["unit_price"] != "must be at least 0" {
		t.Fatalf("unexpected unit_price message %q", details["unit_price"])
	}
}
