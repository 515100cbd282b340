package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"test1@EXAMPLE.com", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"test4@example.COM", "test4@example.com"},
		{"odd@local@EXAMPLE.com", "odd@local@example.com"},
		{"no-at-sign", "no-at-sign"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"5.99", "5.99", nil},
		{"11.25", "11.25", nil},
		{"5.5", "5.50", nil},
		{"12", "12.00", nil},
		{"0.01", "0.01", nil},
		{".5", "0.50", nil},
		{"999.99", "999.99", nil},
		{"007.10", "7.10", nil},
		{"-1.25", "-1.25", nil},
		{" 3.00 ", "3.00", nil},
		{"1e2", "100.00", nil},
		{"525e-2", "5.25", nil},
		{"1.999", "", ErrPricePrecision},
		{"1.500", "", ErrPricePrecision},
		{"1000", "", ErrPriceRange},
		{"-1000", "", ErrPriceRange},
		{"1e3", "", ErrPriceRange},
		{"abc", "", ErrInvalidPrice},
		{"1.2.3", "", ErrInvalidPrice},
		{"", "", ErrInvalidPrice},
		{"-", "", ErrInvalidPrice},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParsePrice(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePrice(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParsePrice(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPrice_String(t *testing.T) {
	tests := []struct {
		p    Price
		want string
	}{
		{NewPrice(599), "5.99"},
		{NewPrice(500), "5.00"},
		{NewPrice(1), "0.01"},
		{NewPrice(0), "0.00"},
		{Price{}, "0.00"},
		{NewPrice(-125), "-1.25"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Price(%v).String() = %q, want %q", tt.p.Decimal, got, tt.want)
		}
	}
}

func TestPrice_Equal(t *testing.T) {
	p, err := ParsePrice("5.9")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Equal(NewPrice(590)) {
		t.Errorf("%s should equal 5.90", p)
	}
	if p.Equal(NewPrice(599)) {
		t.Errorf("%s should not equal 5.99", p)
	}
}

func TestPrice_JSON(t *testing.T) {
	var body struct {
		Price Price `json:"price"`
	}
	tests := []struct {
		in   string
		want string
	}{
		{`{"price": 5.99}`, "5.99"},
		{`{"price": "11.25"}`, "11.25"},
		{`{"price": 1e2}`, "100.00"},
		{`{"price": 7}`, "7.00"},
	}
	for _, tt := range tests {
		if err := json.Unmarshal([]byte(tt.in), &body); err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if body.Price.String() != tt.want {
			t.Fatalf("%s decoded to %s", tt.in, body.Price)
		}
	}

	for in, want := range map[string]error{
		`{"price": "1.234"}`: ErrPricePrecision,
		`{"price": 1234}`:    ErrPriceRange,
		`{"price": "abc"}`:   ErrInvalidPrice,
		`{"price": true}`:    ErrInvalidPrice,
	} {
		if err := json.Unmarshal([]byte(in), &body); !errors.Is(err, want) {
			t.Errorf("%s: error = %v, want %v", in, err, want)
		}
	}

	body.Price = NewPrice(1125)
	out, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"price":"11.25"}` {
		t.Fatalf("unexpected JSON %s", out)
	}
}

func TestPrice_Scan(t *testing.T) {
	tests := []struct {
		src  any
		want string
	}{
		{5.99, "5.99"},
		{11.25, "11.25"},
		{int64(5), "5.00"},
		{[]byte("5.50"), "5.50"},
		{"0.99", "0.99"},
		{nil, "0.00"},
	}
	for _, tt := range tests {
		var p Price
		if err := p.Scan(tt.src); err != nil {
			t.Errorf("Scan(%v) error: %v", tt.src, err)
			continue
		}
		if p.String() != tt.want {
			t.Errorf("Scan(%v) = %s, want %s", tt.src, p, tt.want)
		}
	}
	var p Price
	if err := p.Scan(true); err == nil {
		t.Error("expected error for bool source")
	}
}

func TestPrice_Value(t *testing.T) {
	v, err := NewPrice(550).Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != "5.50" {
		t.Fatalf("Value() = %v", v)
	}
}

func TestStringers(t *testing.T) {
	u := &User{Name: "Test Name"}
	if u.String() != "Test Name" {
		t.Errorf("User.String() = %q", u.String())
	}
	r := &Recipe{Title: "Test recipe"}
	if r.String() != "Test recipe" {
		t.Errorf("Recipe.String() = %q", r.String())
	}
	tag := &Tag{Name: "Tag 1"}
	if tag.String() != "Tag 1" {
		t.Errorf("Tag.String() = %q", tag.String())
	}
	ing := &Ingredient{Name: "Ingredient 1"}
	if ing.String() != "Ingredient 1" {
		t.Errorf("Ingredient.String() = %q", ing.String())
	}
}
