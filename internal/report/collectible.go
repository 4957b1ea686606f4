package report

import "creditwatch/internal/ledger"

// CollectibleAmount derives the overdue portion of the balance from the
// credit-days figure and the contractual agreement-days threshold. The
// balance is prorated by the fraction of the credit-days window that lies
// beyond the agreed term.
func CollectibleAmount(balance ledger.Number, creditDays Days, agreementDays ledger.Number) Money {
	if !balance.Valid || !creditDays.Valid || !agreementDays.Valid {
		return NoMoney(ReasonMissingInput)
	}

	b := balance.Value
	cd := float64(creditDays.Value)
	ad := agreementDays.Value

	if b <= 0 || cd <= 0 || ad < 0 {
		return NoMoney(ReasonOutOfRange)
	}

	if cd <= ad {
		// Debt age is within contractual terms; nothing is overdue.
		return OkMoney(0)
	}

	excess := cd - ad
	return OkMoney(round2(b * excess / cd))
}
