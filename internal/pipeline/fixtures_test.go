package pipeline

import (
	"math"
	"time"

	"ecommerce-dashboard/internal/model"
)

func ts(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	panic("bad fixture timestamp " + s)
}

// newOrder builds a delivered, on-time line item purchased at the given time
func newOrder(id, purchased string) model.Order {
	p := ts(purchased)
	return model.Order{
		OrderID:             id,
		ProductID:           "p1",
		OrderItemID:         "1",
		CustomerID:          "c-" + id,
		PaymentType:         "credit_card",
		PaymentInstallments: 1,
		PaymentValue:        10,
		FreightValue:        5,
		CustomerCity:        "sao paulo",
		CustomerState:       "SP",
		PurchasedAt:         p,
		ApprovedAt:          p.Add(time.Hour),
		DeliveredCarrierAt:  p.AddDate(0, 0, 1),
		DeliveredCustomerAt: p.AddDate(0, 0, 5),
		EstimatedDeliveryAt: p.AddDate(0, 0, 10),
	}
}

func undelivered(o model.Order) model.Order {
	o.DeliveredCarrierAt = time.Time{}
	o.DeliveredCustomerAt = time.Time{}
	return o
}

func withoutMoney(o model.Order) model.Order {
	o.PaymentValue = math.NaN()
	o.FreightValue = math.NaN()
	return o
}

func dataset(orders ...model.Order) *model.Dataset {
	return model.NewDataset("fixture", orders)
}

// sampleDataset is a small mixed dataset spanning January 2024
func sampleDataset() *model.Dataset {
	orders := []model.Order{
		newOrder("o1", "2024-01-01 09:00:00"),
		newOrder("o2", "2024-01-02 10:30:00"),
		newOrder("o2", "2024-01-02 10:30:00"),
		newOrder("o3", "2024-01-05 12:00:00"),
		newOrder("o4", "2024-01-09 23:59:59"),
		undelivered(newOrder("o5", "2024-01-20 08:00:00")),
	}
	orders[1].ProductID, orders[2].ProductID = "p2", "p3"
	orders[2].OrderItemID = "2"
	orders[3].PaymentType, orders[3].PaymentInstallments = "boleto", 3
	orders[3].CustomerCity, orders[3].CustomerState = "rio de janeiro", "RJ"
	orders[4].PaymentType = "voucher"
	orders[4].DeliveredCustomerAt = orders[4].EstimatedDeliveryAt.AddDate(0, 0, 2)
	orders[5].CustomerCity, orders[5].CustomerState = "curitiba", "PR"
	return dataset(orders...)
}
