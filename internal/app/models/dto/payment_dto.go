package dto

// CreateIntentRequest asks the payment provider for a new charge handle.
// Amount is in minor units (cents).
type CreateIntentRequest struct {
	AmountCents int64 `json:"amountCents" binding:"required,gt=0" example:"4500"`
}

// CreateIntentResponse carries a client-confirmable charge handle
type CreateIntentResponse struct {
	PaymentIntentID string `json:"paymentIntentId" example:"pi_3MtwBwLkdIwHu7ix28a3tqPa"`
	ClientSecret    string `json:"clientSecret"`
}

// SettleRequest invokes the settlement engine with a confirmed charge and
// the class/cart identifier lists derived from the cart at charge time.
type SettleRequest struct {
	ChargeID     string  `json:"chargeId" binding:"required" example:"pi_3MtwBwLkdIwHu7ix28a3tqPa"`
	AmountCents  int64   `json:"amountCents" binding:"required,gt=0" example:"4500"`
	Currency     string  `json:"currency" binding:"required,oneof=usd" example:"usd"`
	ClassIDs     []int64 `json:"classIds" binding:"required,min=1,dive,gt=0"`
	CartEntryIDs []int64 `json:"cartEntryIds" binding:"required,dive,gt=0"`
}
