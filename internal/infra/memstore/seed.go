package memstore

import (
	"math/big"
	"time"

	"cloud.google.com/go/civil"

	"github.com/kkrishnan90/mmt-live-api/internal/ledger"
)

func civilDateOf(t time.Time) civil.Date {
	return civil.DateOf(t)
}

// Seeded seeds a store with the demo dataset used for local runs.
func Seeded(userID string) *Store {
	s := New()

	s.AddAccount(ledger.Account{
		AccountID:       "acc_chk_" + userID,
		UserID:          userID,
		AccountType:     "checking",
		AccountNickname: "My Salary Account",
		Balance:         mustMoney("1250.75"),
		Currency:        "USD",
	})
	s.AddAccount(ledger.Account{
		AccountID:       "acc_sav_" + userID,
		UserID:          userID,
		AccountType:     "savings",
		AccountNickname: "Emergency Fund",
		Balance:         mustMoney("8300.00"),
		Currency:        "USD",
	})

	now := time.Now().UTC()
	s.AddBiller(ledger.Biller{
		BillerID:                "biller_elec_" + userID,
		UserID:                  userID,
		BillerName:              "City Power & Light",
		BillerType:              "electricity",
		AccountNumber:           "ELEC-44321",
		PayeeNickname:           "Home Electricity",
		DefaultPaymentAccountID: "acc_chk_" + userID,
		Status:                  ledger.BillerActive,
		DueAmount:               mustMoney("120.50"),
		DueDate:                 civil.DateOf(now.AddDate(0, 0, 14)),
		HasDueDate:              true,
		RegistrationTS:          now,
		LastUpdatedTS:           now,
	})
	s.AddBiller(ledger.Biller{
		BillerID:                "biller_net_" + userID,
		UserID:                  userID,
		BillerName:              "MetroNet Broadband",
		BillerType:              "internet",
		AccountNumber:           "NET-99887",
		PayeeNickname:           "MyHomeNet",
		DefaultPaymentAccountID: "acc_chk_" + userID,
		Status:                  ledger.BillerActive,
		DueAmount:               mustMoney("59.99"),
		DueDate:                 civil.DateOf(now.AddDate(0, 0, 7)),
		HasDueDate:              true,
		RegistrationTS:          now,
		LastUpdatedTS:           now,
	})

	return s
}

func mustMoney(s string) *big.Rat {
	r, err := ledger.MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return r
}
