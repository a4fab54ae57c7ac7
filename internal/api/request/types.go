package request

// ConnectRequest is the body for POST /wallet/connect
type ConnectRequest struct {
	Address string `json:"address"`
}

// BuyTurnsRequest is the body for POST /turns/purchase. PaymentNano is
// the attached payment in nano-units and must exactly equal the turn
// price times Count.
type BuyTurnsRequest struct {
	Count       uint64 `json:"count"`
	PaymentNano uint64 `json:"payment_nano"`
}

// PlayWithScoreRequest is the body for POST /plays/confidential. All
// byte fields are base64 in JSON.
type PlayWithScoreRequest struct {
	PublicKey []byte `json:"public_key"`
	ScoreC1   []byte `json:"score_c1"`
	ScoreC2   []byte `json:"score_c2"`
	Proof     []byte `json:"proof"`
}

// TransferOwnershipRequest is the body for POST /admin/transfer-ownership
type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}
