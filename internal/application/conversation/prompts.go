package conversation

import "fmt"

// Option tokens the engine attaches to replies. The presentation layer
// treats them as opaque and echoes them back as button presses.
const (
	TokenMyProducts = "my:products"
	TokenMyDebt     = "my:debt"
)

const (
	msgAskProductName  = "New product.\nEnter the product name:"
	msgAskProductPrice = "Name accepted.\nNow enter the unit price (positive whole number, e.g. 12500):"
	msgInvalidPrice    = "Invalid price. Enter a positive whole number."

	msgAskSellerName         = "New seller.\nEnter the seller's name:"
	msgAskSellerNeighborhood = "Name accepted.\nEnter the seller's neighborhood (region):"
	msgAskSellerPhone        = "Neighborhood accepted.\nEnter the phone number (digits only, e.g. 901234567):"
	msgInvalidPhone          = "Invalid phone number. Enter digits only."
	msgAskSellerPassword     = "Phone accepted.\nEnter the access password the seller will sign in with (at least 4 characters):"
	msgPasswordTooShort      = "Password too short. It must be at least 4 characters."
	msgSellerDuplicate       = "Could not add the seller. The phone number may already be registered."

	msgInvalidQuantity = "Invalid quantity. Enter a positive whole number."

	msgAskLoginPassword = "Welcome! Enter your access password to sign in."
	msgLoginRejected    = "Wrong password, or it is already in use by another account.\nTry again, or press /start."

	msgSellerNotFound = "Seller not found."
	msgNotFoundAbort  = "Not found. The operation was cancelled."
	msgGenericFailure = "Something went wrong. Please start over and try again."
)

func fmtAskGiveProductName(sellerName string) string {
	return fmt.Sprintf("Giving stock to %s.\nEnter the product name (existing or new):", sellerName)
}
