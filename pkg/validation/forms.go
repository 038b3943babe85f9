package validation

import "regexp"

var (
	phonePattern = regexp.MustCompile(`^[\+]?[1-9][\d]{0,15}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func BranchRules() []Rule {
	rules := []Rule{
		Required(FieldName, "Branch name is required"),
		Required(FieldAddress, "Address is required"),
		Required(FieldPhone, "Phone number is required"),
		Regex(FieldPhone, phonePattern, StripSpaces, "Please enter a valid phone number"),
		Required(FieldEmail, "Email is required"),
		Regex(FieldEmail, emailPattern, nil, "Please enter a valid email address"),
	}
	return append(rules, TimeOrdering("Opening time must be before closing time", false)...)
}

// ZoneRules validates a delivery zone. overnight allows delivery hours that
// end after midnight.
func ZoneRules(overnight bool) []Rule {
	rules := []Rule{
		Required(FieldName, "Zone name is required"),
		Required(FieldBranchID, "Please select a branch"),
		Required(FieldDeliveryFee, "Delivery fee is required"),
		Amount(FieldDeliveryFee, "Please enter a valid delivery fee", Min(0)),
		Required(FieldMinimumOrder, "Minimum order amount is required"),
		Amount(FieldMinimumOrder, "Please enter a valid minimum order amount", Min(0)),
		Required(FieldDeliveryTime, "Delivery time is required"),
		Integer(FieldDeliveryTime, "Please enter a valid delivery time in minutes", Above(0)),
	}
	return append(rules, TimeOrdering("Start time must be before end time", overnight)...)
}

func CategoryRules() []Rule {
	return []Rule{
		Required(FieldName, "Category name is required"),
		Required(FieldDescription, "Category description is required"),
		URLOrNonEmpty(FieldImage, "Category image is required", "Please enter a valid image URL"),
	}
}

func ProductRules() []Rule {
	return []Rule{
		Required(FieldName, "Product name is required"),
		Required(FieldDescription, "Product description is required"),
		Required(FieldPrice, "Product price is required"),
		Amount(FieldPrice, "Please enter a valid price", Above(0)),
		Amount(FieldOriginalPrice, "Please enter a valid original price", Above(0)),
		Required(FieldCategoryID, "Please select a category"),
		URLOrNonEmpty(FieldImage, "Product image is required", "Please enter a valid image URL"),
	}
}

func SettingsRules() []Rule {
	return []Rule{
		Required(FieldSiteName, "Site name is required"),
		URLOrNonEmpty(FieldLogo, "Logo is required", "Please enter a valid logo URL"),
		URLOrNonEmpty(FieldBannerImage, "Banner image is required", "Please enter a valid banner image URL"),
		Required(FieldWhatsAppNumber, "WhatsApp number is required"),
		Required(FieldDeliveryFee, "Delivery fee is required"),
		Amount(FieldDeliveryFee, "Please enter a valid delivery fee", Min(0)),
		Required(FieldTaxRate, "Tax rate is required"),
		NumericRange(FieldTaxRate, "Please enter a valid tax rate (0-100%)", Min(0), Max(100)),
	}
}

// SubmitFailed is the message shown when a save fails for reasons other than input.
func SubmitFailed(action, entity string) string {
	return "Failed to " + action + " " + entity + ". Please try again."
}
