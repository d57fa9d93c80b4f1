package domain

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const formDateLayout = "2006-01-02"

// FormNumber is an optional numeric form field. It accepts JSON numbers and
// numeric strings; null or "" leave it unset.
type FormNumber struct {
	Set     bool
	Value   float64
	Invalid string // raw input that failed to parse
}

func NumberOf(p *float64) FormNumber {
	if p == nil {
		return FormNumber{}
	}
	return FormNumber{Set: true, Value: *p}
}

// ParseFormNumber is the string form of UnmarshalJSON, used by the CSV import.
// NaN and infinities are rejected as invalid.
func ParseFormNumber(s string) FormNumber {
	s = strings.TrimSpace(s)
	if s == "" {
		return FormNumber{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return FormNumber{Invalid: s}
	}
	return FormNumber{Set: true, Value: v}
}

func (n FormNumber) Ptr() *float64 {
	if !n.Set {
		return nil
	}
	v := n.Value
	return &v
}

func (n FormNumber) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *FormNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = FormNumber{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = ParseFormNumber(s)
		return nil
	}
	*n = ParseFormNumber(string(data))
	return nil
}

type FormProduct struct {
	ProductName string     `json:"productName"`
	Quantity    FormNumber `json:"quantity"`
}

// OrderForm is the create/edit payload for an order.
type OrderForm struct {
	OrderID   string `json:"orderId" validate:"required"`
	ShopifyID string `json:"shopifyId"`
	OrderDate string `json:"orderDate" validate:"required"`
	AWB       string `json:"awb"`

	CustomerName    string `json:"customerName" validate:"required"`
	CustomerPhone   string `json:"customerPhone" validate:"required"`
	CustomerEmail   string `json:"customerEmail" validate:"omitempty,email"`
	CustomerAddress string `json:"customerAddress"`
	City            string `json:"city"`
	State           string `json:"state"`
	Pincode         string `json:"pincode"`

	Products []FormProduct `json:"products"`

	DeadWeight       FormNumber `json:"deadWeight"`
	Length           FormNumber `json:"length"`
	Breadth          FormNumber `json:"breadth"`
	Height           FormNumber `json:"height"`
	VolumetricWeight FormNumber `json:"volumetricWeight"`

	Amount           FormNumber `json:"amount"`
	PaymentMode      string     `json:"paymentMode" validate:"omitempty,oneof=COD Prepaid"`
	CGST             FormNumber `json:"cgst"`
	SGST             FormNumber `json:"sgst"`
	IGST             FormNumber `json:"igst"`
	HSNCode          string     `json:"hsnCode"`
	GSTINNumber      string     `json:"gstinNumber"`
	InvoiceReference string     `json:"invoiceReference"`
	Category         string     `json:"category"`
	UnitPrice        FormNumber `json:"unitPrice"`

	VendorName    string `json:"vendorName"`
	PickupAddress string `json:"pickupAddress"`
	PickupCity    string `json:"pickupCity"`
	PickupState   string `json:"pickupState"`
	PickupPincode string `json:"pickupPincode"`

	ReturnLabel1 string `json:"returnLabel1"`
	ReturnLabel2 string `json:"returnLabel2"`
	ServiceTier  string `json:"serviceTier"`
	Tag          string `json:"tag"`

	Status         string          `json:"status" validate:"omitempty,order_status"`
	ReturnTracking *ReturnTracking `json:"returnTracking,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		_, err := ParseOrderStatus(fl.Field().String())
		return err == nil
	})
	return v
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + param
	case "order_status":
		return "is not a known order status"
	case "min":
		return "must be at least " + param
	default:
		return "is invalid"
	}
}

// validateStruct runs the struct's validate tags and reports failures as a
// ValidationError keyed by json field name.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = messageForTag(fe.Tag(), fe.Param())
	}
	return &ValidationError{Fields: fields}
}

// ParseFormDate accepts YYYY-MM-DD or RFC 3339 and truncates to a UTC date.
func ParseFormDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(formDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Normalize validates the form and converts it into an order. The returned
// order has no id; callers assign identity and timestamps.
func (f *OrderForm) Normalize() (*Order, error) {
	f.trim()
	fields := map[string]string{}

	if err := validateStruct(f); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		fields = ve.Fields
	}

	var orderDate *time.Time
	if f.OrderDate != "" {
		if d, err := ParseFormDate(f.OrderDate); err != nil {
			fields["orderDate"] = "must be a date (YYYY-MM-DD)"
		} else {
			orderDate = &d
		}
	}

	numbers := map[string]FormNumber{
		"deadWeight": f.DeadWeight, "length": f.Length, "breadth": f.Breadth,
		"height": f.Height, "volumetricWeight": f.VolumetricWeight, "amount": f.Amount,
		"cgst": f.CGST, "sgst": f.SGST, "igst": f.IGST, "unitPrice": f.UnitPrice,
	}
	for name, n := range numbers {
		if n.Invalid != "" {
			fields[name] = "must be a number"
		}
	}

	status := OrderStatusNew
	if f.Status != "" {
		if st, err := ParseOrderStatus(f.Status); err == nil {
			status = st
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	o := &Order{
		Source:           SourceLocal,
		ShopifyID:        f.ShopifyID,
		OrderID:          f.OrderID,
		OrderDate:        orderDate,
		AWB:              f.AWB,
		CustomerName:     f.CustomerName,
		CustomerPhone:    f.CustomerPhone,
		CustomerEmail:    f.CustomerEmail,
		CustomerAddress:  f.CustomerAddress,
		City:             f.City,
		State:            f.State,
		Pincode:          f.Pincode,
		Products:         f.normalizedProducts(),
		DeadWeight:       f.DeadWeight.Ptr(),
		Length:           f.Length.Ptr(),
		Breadth:          f.Breadth.Ptr(),
		Height:           f.Height.Ptr(),
		VolumetricWeight: f.VolumetricWeight.Ptr(),
		Amount:           f.Amount.Ptr(),
		PaymentMode:      PaymentMode(f.PaymentMode),
		CGST:             f.CGST.Ptr(),
		SGST:             f.SGST.Ptr(),
		IGST:             f.IGST.Ptr(),
		HSNCode:          f.HSNCode,
		GSTINNumber:      f.GSTINNumber,
		InvoiceReference: f.InvoiceReference,
		Category:         f.Category,
		UnitPrice:        f.UnitPrice.Ptr(),
		VendorName:       f.VendorName,
		PickupAddress:    f.PickupAddress,
		PickupCity:       f.PickupCity,
		PickupState:      f.PickupState,
		PickupPincode:    f.PickupPincode,
		ReturnLabel1:     f.ReturnLabel1,
		ReturnLabel2:     f.ReturnLabel2,
		ServiceTier:      f.ServiceTier,
		Tag:              f.Tag,
		Status:           status,
	}
	if f.ReturnTracking != nil {
		o.ReturnTracking = *f.ReturnTracking
		if o.ReturnTracking.History == nil {
			o.ReturnTracking.History = []TrackingEvent{}
		}
	}
	return o, nil
}

// normalizedProducts drops rows with a blank name or a non-positive quantity.
func (f *OrderForm) normalizedProducts() []Product {
	out := make([]Product, 0, len(f.Products))
	for _, p := range f.Products {
		name := strings.TrimSpace(p.ProductName)
		if name == "" || !p.Quantity.Set {
			continue
		}
		qty := int(p.Quantity.Value)
		if qty <= 0 {
			continue
		}
		out = append(out, Product{ProductName: name, Quantity: qty})
	}
	return out
}

func (f *OrderForm) trim() {
	for _, s := range []*string{
		&f.OrderID, &f.ShopifyID, &f.OrderDate, &f.AWB, &f.CustomerName, &f.CustomerPhone,
		&f.CustomerEmail, &f.CustomerAddress, &f.City, &f.State, &f.Pincode, &f.PaymentMode,
		&f.HSNCode, &f.GSTINNumber, &f.InvoiceReference, &f.Category, &f.VendorName,
		&f.PickupAddress, &f.PickupCity, &f.PickupState, &f.PickupPincode, &f.ReturnLabel1,
		&f.ReturnLabel2, &f.ServiceTier, &f.Tag, &f.Status,
	} {
		*s = strings.TrimSpace(*s)
	}
}

// FormFromOrder pre-fills the edit form. An order without products gets one
// blank product row.
func FormFromOrder(o *Order) *OrderForm {
	f := &OrderForm{
		OrderID:          o.OrderID,
		ShopifyID:        o.ShopifyID,
		AWB:              o.AWB,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		CustomerEmail:    o.CustomerEmail,
		CustomerAddress:  o.CustomerAddress,
		City:             o.City,
		State:            o.State,
		Pincode:          o.Pincode,
		DeadWeight:       NumberOf(o.DeadWeight),
		Length:           NumberOf(o.Length),
		Breadth:          NumberOf(o.Breadth),
		Height:           NumberOf(o.Height),
		VolumetricWeight: NumberOf(o.VolumetricWeight),
		Amount:           NumberOf(o.Amount),
		PaymentMode:      string(o.PaymentMode),
		CGST:             NumberOf(o.CGST),
		SGST:             NumberOf(o.SGST),
		IGST:             NumberOf(o.IGST),
		HSNCode:          o.HSNCode,
		GSTINNumber:      o.GSTINNumber,
		InvoiceReference: o.InvoiceReference,
		Category:         o.Category,
		UnitPrice:        NumberOf(o.UnitPrice),
		VendorName:       o.VendorName,
		PickupAddress:    o.PickupAddress,
		PickupCity:       o.PickupCity,
		PickupState:      o.PickupState,
		PickupPincode:    o.PickupPincode,
		ReturnLabel1:     o.ReturnLabel1,
		ReturnLabel2:     o.ReturnLabel2,
		ServiceTier:      o.ServiceTier,
		Tag:              o.Tag,
		Status:           string(o.Status),
	}
	if o.OrderDate != nil {
		f.OrderDate = o.OrderDate.UTC().Format(formDateLayout)
	}
	if o.Status == "" {
		f.Status = string(OrderStatusNew)
	}
	tracking := o.ReturnTracking
	f.ReturnTracking = &tracking

	f.Products = make([]FormProduct, 0, len(o.Products))
	for _, p := range o.Products {
		f.Products = append(f.Products, FormProduct{
			ProductName: p.ProductName,
			Quantity:    FormNumber{Set: true, Value: float64(p.Quantity)},
		})
	}
	if len(f.Products) == 0 {
		f.Products = append(f.Products, FormProduct{Quantity: FormNumber{Set: true, Value: 1}})
	}
	return f
}
