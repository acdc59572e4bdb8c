package core

// Transaction types. A record is either money coming in or money going out;
// the amount itself is always a magnitude.
const (
	TypeIncome  TxType = "income"
	TypeExpense TxType = "expense"
)

type (
	TxType string

	// Transaction is the canonical ledger entry as stored by the backend.
	// ID and CreatedAt are assigned server-side and never change.
	Transaction struct {
		ID            string `json:"id"`
		Date          string `json:"date"`
		Amount        int64  `json:"amount"`
		Description   string `json:"description"`
		PaymentMethod string `json:"paymentMethod"`
		Category      string `json:"category"`
		Type          TxType `json:"type"`
		CreatedAt     string `json:"createdAt"`
	}

	// Draft holds the editable fields of a transaction, used as the
	// create/update payload.
	Draft struct {
		Date          string `json:"date" validate:"required,ledgerdate"`
		Amount        int64  `json:"amount" validate:"gt=0"`
		Description   string `json:"description" validate:"required,max=32"`
		PaymentMethod string `json:"paymentMethod" validate:"required"`
		Category      string `json:"category" validate:"required"`
		Type          TxType `json:"type" validate:"required,oneof=income expense"`
	}
)

func (t TxType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// DraftOf extracts the editable fields of a transaction.
func (t Transaction) DraftOf() Draft {
	return Draft{
		Date:          t.Date,
		Amount:        t.Amount,
		Description:   t.Description,
		PaymentMethod: t.PaymentMethod,
		Category:      t.Category,
		Type:          t.Type,
	}
}

// Normalize converts a record to the canonical model: Type authoritative,
// Amount a non-negative magnitude. Legacy records encoded income/expense in
// the sign of the amount and carried no type; the sign decides for those.
// Normalizing an already canonical record is the identity.
func Normalize(t Transaction) Transaction {
	if !t.Type.Valid() {
		if t.Amount >= 0 {
			t.Type = TypeIncome
		} else {
			t.Type = TypeExpense
		}
	}
	if t.Amount < 0 {
		t.Amount = -t.Amount
	}
	return t
}

// NormalizeAll normalizes a whole collection in place and returns it.
func NormalizeAll(ts []Transaction) []Transaction {
	for i := range ts {
		ts[i] = Normalize(ts[i])
	}
	return ts
}
