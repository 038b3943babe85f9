package validation

import (
	"testing"
	"time"

	"github.com/example/aseertime/pkg/schedule"
	"github.com/stretchr/testify/assert"
)

func zoneInput(fee string) Input {
	return Input{
		Values: map[Field]string{
			FieldName:         "Salmiya",
			FieldBranchID:     "2",
			FieldDeliveryFee:  fee,
			FieldMinimumOrder: "8",
			FieldDeliveryTime: "45",
		},
		Hours: schedule.Every("08:00", "23:00"),
	}
}

func TestZoneDeliveryFee(t *testing.T) {
	res := Validate(zoneInput("-1"), ZoneRules(false)...)
	assert.False(t, res.Valid)
	assert.Equal(t, "Please enter a valid delivery fee", res.Errors[FieldDeliveryFee])

	res = Validate(zoneInput("0"), ZoneRules(false)...)
	assert.True(t, res.Valid, res.Errors)

	res = Validate(zoneInput(""), ZoneRules(false)...)
	assert.Equal(t, "Delivery fee is required", res.Errors[FieldDeliveryFee])

	res = Validate(zoneInput("abc"), ZoneRules(false)...)
	assert.Equal(t, "Please enter a valid delivery fee", res.Errors[FieldDeliveryFee])
}

func TestZoneDeliveryTimeMustBePositive(t *testing.T) {
	in := zoneInput("0.5")
	in.Values[FieldDeliveryTime] = "0"

	res := Validate(in, ZoneRules(false)...)
	assert.Equal(t, "Please enter a valid delivery time in minutes", res.Errors[FieldDeliveryTime])
}

func TestNumbersMustFitTheirStorage(t *testing.T) {
	in := zoneInput("0.5")
	in.Values[FieldDeliveryTime] = "0.4"
	assert.Equal(t, "Please enter a valid delivery time in minutes", Validate(in, ZoneRules(false)...).Errors[FieldDeliveryTime])

	in.Values[FieldDeliveryTime] = "45"
	in.Values[FieldMinimumOrder] = "8.0001"
	assert.Equal(t, "Please enter a valid minimum order amount", Validate(in, ZoneRules(false)...).Errors[FieldMinimumOrder])

	for _, price := range []string{"0.0004", "9999999999999999"} {
		res := Validate(Input{Values: map[Field]string{FieldPrice: price}}, Amount(FieldPrice, "bad", Above(0)))
		assert.Equal(t, "bad", res.Errors[FieldPrice], price)
	}
	assert.True(t, Validate(Input{Values: map[Field]string{FieldPrice: "0.001"}}, Amount(FieldPrice, "bad", Above(0))).Valid)
}

func TestZoneHours(t *testing.T) {
	in := zoneInput("0.5")
	in.Hours = schedule.Every("08:00", "02:30")

	res := Validate(in, ZoneRules(false)...)
	assert.Equal(t, "Monday: Start time must be before end time", res.Errors[HoursField(time.Monday)])
	assert.Len(t, res.Errors, 7)

	res = Validate(in, ZoneRules(true)...)
	assert.True(t, res.Valid)

	in.Hours[time.Friday] = schedule.Window{IsOpen: true, Open: "10:00", Close: "10:00"}
	res = Validate(in, ZoneRules(true)...)
	assert.Equal(t, "Friday: Start time must be before end time", res.Errors["friday_hours"])
}

func TestClosedDayIsNotChecked(t *testing.T) {
	in := zoneInput("0.5")
	in.Hours[time.Sunday] = schedule.Window{IsOpen: false, Open: "23:00", Close: "01:00"}

	assert.True(t, Validate(in, ZoneRules(false)...).Valid)
}

func branchInput() Input {
	return Input{
		Values: map[Field]string{
			FieldName:    "AseerTime - Khairan",
			FieldAddress: "Khairan Area, Kuwait",
			FieldPhone:   "+965 1234 5678",
			FieldEmail:   "khairan@aseertime.com",
		},
		Hours: schedule.Every("08:00", "23:00"),
	}
}

func TestBranchPhone(t *testing.T) {
	assert.True(t, Validate(branchInput(), BranchRules()...).Valid)

	for _, bad := range []string{"0123", "+0965", "phone", "+965 1234 5678 9999 99"} {
		in := branchInput()
		in.Values[FieldPhone] = bad
		res := Validate(in, BranchRules()...)
		assert.Equal(t, "Please enter a valid phone number", res.Errors[FieldPhone], bad)
	}
}

func TestBranchEmail(t *testing.T) {
	in := branchInput()
	in.Values[FieldEmail] = "not-an-email"
	assert.Equal(t, "Please enter a valid email address", Validate(in, BranchRules()...).Errors[FieldEmail])

	in.Values[FieldEmail] = "   "
	assert.Equal(t, "Email is required", Validate(in, BranchRules()...).Errors[FieldEmail])
}

func TestBranchHours(t *testing.T) {
	in := branchInput()
	in.Hours[time.Wednesday] = schedule.Window{IsOpen: true, Open: "22:00", Close: "09:00"}

	res := Validate(in, BranchRules()...)
	assert.Equal(t, "Wednesday: Opening time must be before closing time", res.Errors["wednesday_hours"])
}

func TestProductPrices(t *testing.T) {
	in := Input{Values: map[Field]string{
		FieldName:        "Orange Juice",
		FieldDescription: "Freshly squeezed",
		FieldPrice:       "0",
		FieldCategoryID:  "5",
		FieldImage:       "https://images.unsplash.com/photo-1621506289937-a8e4df240d0b?w=400",
	}}
	res := Validate(in, ProductRules()...)
	assert.Equal(t, "Please enter a valid price", res.Errors[FieldPrice])
	assert.False(t, res.Errors.Has(FieldOriginalPrice))

	in.Values[FieldPrice] = "2.000"
	in.Values[FieldOriginalPrice] = "-3"
	res = Validate(in, ProductRules()...)
	assert.False(t, res.Errors.Has(FieldPrice))
	assert.Equal(t, "Please enter a valid original price", res.Errors[FieldOriginalPrice])
}

func TestImageRule(t *testing.T) {
	in := Input{Values: map[Field]string{FieldName: "Cocktails", FieldDescription: "Fruit"}}
	assert.Equal(t, "Category image is required", Validate(in, CategoryRules()...).Errors[FieldImage])

	in.Values[FieldImage] = "/images/cocktails.png"
	assert.True(t, Validate(in, CategoryRules()...).Valid)

	in.Values[FieldImage] = "ht tp://example.com/a.png"
	assert.Equal(t, "Please enter a valid image URL", Validate(in, CategoryRules()...).Errors[FieldImage])
}

func TestSettingsTaxRate(t *testing.T) {
	in := Input{Values: map[Field]string{
		FieldSiteName:       "AseerTime",
		FieldLogo:           "/logo.png",
		FieldBannerImage:    "https://images.unsplash.com/photo-1546173159-315724a31696?w=800",
		FieldWhatsAppNumber: "+965 1234 5678",
		FieldDeliveryFee:    "0.5",
		FieldTaxRate:        "100",
	}}
	assert.True(t, Validate(in, SettingsRules()...).Valid)

	in.Values[FieldTaxRate] = "100.5"
	assert.Equal(t, "Please enter a valid tax rate (0-100%)", Validate(in, SettingsRules()...).Errors[FieldTaxRate])
}

func TestFirstErrorPerFieldWins(t *testing.T) {
	rules := []Rule{
		Required(FieldName, "first"),
		Required(FieldName, "second"),
	}
	res := Validate(Input{}, rules...)
	assert.Equal(t, "first", res.Errors[FieldName])
}

func TestErrorsClearAndSubmit(t *testing.T) {
	res := Validate(Input{}, CategoryRules()...)
	assert.True(t, res.Errors.Has(FieldName))

	res.Errors.Clear(FieldName)
	assert.False(t, res.Errors.Has(FieldName))

	res.Errors.Submit(SubmitFailed("create", "category"))
	assert.Equal(t, "Failed to create category. Please try again.", res.Errors[FieldSubmit])
}
