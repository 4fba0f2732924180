package transfer

import (
	"fmt"
	"time"

	"transfer-storefront/internal/common/enum"
	"transfer-storefront/internal/common/models"

	"github.com/shopspring/decimal"
)

// DemoSender owns the seeded history.
const DemoSender = "demo@transfer.local"

type seedRow struct {
	first, last, city, country, phone string
	amount                            string
	method                            enum.PaymentMethodEnum
	status                            enum.TransferStatusEnum
	daysAgo                           int
}

var seedRows = []seedRow{
	{"Marie", "Joseph", "Port-au-Prince", "HT", "+509 3712 3456", "150.00", enum.PaymentMonCash, enum.TransferCompleted, 1},
	{"Jean", "Baptiste", "Cap-Haïtien", "HT", "+509 3478 9012", "75.50", enum.PaymentPayPal, enum.TransferCompleted, 2},
	{"Rose", "Pierre", "Jacmel", "HT", "+509 3345 6789", "220.00", enum.PaymentPayPal, enum.TransferPending, 3},
	{"Paul", "Étienne", "Les Cayes", "HT", "+509 3890 1234", "40.00", enum.PaymentMonCash, enum.TransferFailed, 4},
	{"Nadège", "Louis", "Gonaïves", "HT", "+509 3611 2233", "500.00", enum.PaymentPayPal, enum.TransferCompleted, 6},
	{"Carlos", "Méndez", "Santo Domingo", "DO", "+1 (809) 555-0142", "95.25", enum.PaymentPayPal, enum.TransferProcessing, 7},
	{"Widline", "Charles", "Pétion-Ville", "HT", "+509 3722 8811", "60.00", enum.PaymentMonCash, enum.TransferCompleted, 9},
	{"Samuel", "Desir", "Saint-Marc", "HT", "+509 3155 4477", "310.00", enum.PaymentPayPal, enum.TransferCancelled, 11},
	{"Fabienne", "Noël", "Hinche", "HT", "+509 3900 1020", "125.00", enum.PaymentMonCash, enum.TransferCompleted, 14},
	{"Lucie", "Martin", "Montréal", "CA", "+1 (514) 555-0199", "80.00", enum.PaymentPayPal, enum.TransferCompleted, 18},
	{"Ti", "Jak", "Jérémie", "HT", "+509 3433 2211", "25.00", enum.PaymentMonCash, enum.TransferFailed, 21},
	{"Esther", "Jean-Louis", "Port-de-Paix", "HT", "+509 3566 7788", "1000.00", enum.PaymentPayPal, enum.TransferCompleted, 27},
}

// Seed builds the demo history relative to now.
func Seed(now time.Time) []models.Transfer {
	out := make([]models.Transfer, 0, len(seedRows))
	for i, row := range seedRows {
		created := now.Add(-time.Duration(row.daysAgo) * 24 * time.Hour).UTC().Truncate(time.Minute)
		t := models.Transfer{
			ID:                fmt.Sprintf("00000000-0000-4000-8000-%012d", i+1),
			TrackingCode:      fmt.Sprintf("TRK%07d", 4100+i*37),
			SenderEmail:       DemoSender,
			Amount:            decimal.RequireFromString(row.amount),
			Currency:          "USD",
			ReceiverFirstName: row.first,
			ReceiverLastName:  row.last,
			ReceiverPhone:     row.phone,
			ReceiverAddress:   fmt.Sprintf("%d Rue Principale", 10+i),
			ReceiverCity:      row.city,
			ReceiverCountry:   row.country,
			PaymentMethod:     row.method,
			ProviderReference: fmt.Sprintf("SEED-%04d", i+1),
			CreatedAt:         created,
			UpdatedAt:         created,
		}
		t.AppendStatus(enum.TransferPending, created, "payment initiated")
		switch row.status {
		case enum.TransferPending:
		case enum.TransferProcessing:
			t.AppendStatus(enum.TransferProcessing, created.Add(2*time.Minute), "awaiting provider confirmation")
		default:
			at := created.Add(5 * time.Minute)
			t.AppendStatus(row.status, at, "")
			t.UpdatedAt = at
			if row.status == enum.TransferCompleted {
				t.PaidAt = &at
			} else if row.status == enum.TransferFailed {
				t.FailureReason = "payment declined by provider"
			}
		}
		out = append(out, t)
	}
	return out
}
