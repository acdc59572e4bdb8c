package store

import (
	"gagyebu/internal/core"
)

// Option sets are session-scoped label lists the form offers for payment
// method and category. They are user-extensible at runtime and never
// persisted; saved records keep whatever label they were stored with.
type optionSets struct {
	payments   []string
	categories map[core.TxType][]string
}

func defaultOptionSets() optionSets {
	return optionSets{
		payments: []string{"현대카드", "국민카드", "현금"},
		categories: map[core.TxType][]string{
			core.TypeIncome:  {"월급", "용돈", "기타수입"},
			core.TypeExpense: {"생활", "식비", "교통", "쇼핑/뷰티", "의료/건강", "문화/여가", "미분류"},
		},
	}
}

// PaymentMethods returns the current payment method labels.
func (s *Store) PaymentMethods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.options.payments...)
}

// Categories returns the category labels offered for the given type.
func (s *Store) Categories(t core.TxType) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.options.categories[t]...)
}

// AddPaymentMethod appends a label unless it is empty or already present.
func (s *Store) AddPaymentMethod(label string) {
	s.mu.Lock()
	added := false
	if label != "" && !contains(s.options.payments, label) {
		s.options.payments = append(s.options.payments, label)
		added = true
	}
	s.mu.Unlock()
	if added {
		s.notify(Event{Kind: EventOptions})
	}
}

// RemovePaymentMethod drops a label. If the pending form draft references
// it, that field is cleared; already-saved records are untouched.
func (s *Store) RemovePaymentMethod(label string) {
	s.mu.Lock()
	removed := remove(&s.options.payments, label)
	if removed && s.draft.PaymentMethod == label {
		s.draft.PaymentMethod = ""
	}
	s.mu.Unlock()
	if removed {
		s.notify(Event{Kind: EventOptions})
	}
}

// AddCategory appends a label to the category set of the given type.
func (s *Store) AddCategory(t core.TxType, label string) {
	s.mu.Lock()
	added := false
	if label != "" && t.Valid() && !contains(s.options.categories[t], label) {
		s.options.categories[t] = append(s.options.categories[t], label)
		added = true
	}
	s.mu.Unlock()
	if added {
		s.notify(Event{Kind: EventOptions})
	}
}

// RemoveCategory drops a label from the category set of the given type,
// clearing a matching pending-draft field.
func (s *Store) RemoveCategory(t core.TxType, label string) {
	s.mu.Lock()
	set := s.options.categories[t]
	removed := remove(&set, label)
	s.options.categories[t] = set
	if removed && s.draft.Type == t && s.draft.Category == label {
		s.draft.Category = ""
	}
	s.mu.Unlock()
	if removed {
		s.notify(Event{Kind: EventOptions})
	}
}

// Draft returns the pending form draft.
func (s *Store) Draft() core.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the pending form draft.
func (s *Store) SetDraft(d core.Draft) {
	s.mu.Lock()
	s.draft = d
	s.mu.Unlock()
}

func contains(set []string, label string) bool {
	for _, v := range set {
		if v == label {
			return true
		}
	}
	return false
}

func remove(set *[]string, label string) bool {
	for i, v := range *set {
		if v == label {
			*set = append((*set)[:i], (*set)[i+1:]...)
			return true
		}
	}
	return false
}
