package request

type SendOfferRequest struct {
	To string `json:"to" binding:"required,email"`
}
