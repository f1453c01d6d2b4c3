package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/boftt/EPoe-Ylesanne/internal/checkout"
	"github.com/boftt/EPoe-Ylesanne/internal/domain"
	"github.com/boftt/EPoe-Ylesanne/internal/shop"
	"github.com/boftt/EPoe-Ylesanne/internal/store"
	"github.com/boftt/EPoe-Ylesanne/pkg/config"
	"github.com/boftt/EPoe-Ylesanne/pkg/logger"
)

// Seed catalog for the demo run
var seedItems = []struct {
	name     string
	price    string
	quantity int
}{
	{"Milk", "10.99", 5},
	{"Chips", "5.99", 10},
	{"Bread", "7.49", 3},
}

var seedCustomers = []struct {
	id      string
	tier    domain.Tier
	balance string
}{
	{"Timothy", domain.TierRegular, "100.0"},
	{"Carl", domain.TierGolden, "200.0"},
	{"Marta", domain.TierRegular, "150.0"},
	{"Alexander", domain.TierGolden, "300.0"},
}

func main() {
	cfg := config.Load()
	lg := logger.New(logger.Options{
		Service: "eshop",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	sh := shop.New(store.NewMemoryStore(), lg)

	for _, it := range seedItems {
		item, err := domain.NewItem(it.name, decimal.RequireFromString(it.price), it.quantity)
		if err != nil {
			log.Fatalf("Failed to create item %q: %v", it.name, err)
		}
		sh.AddItem(item)
	}

	customers := make([]*domain.Customer, 0, len(seedCustomers))
	for _, sc := range seedCustomers {
		c, err := domain.NewCustomer(sc.id, sc.tier, decimal.RequireFromString(sc.balance))
		if err != nil {
			log.Fatalf("Failed to create customer %q: %v", sc.id, err)
		}
		sh.AddCustomer(c)
		customers = append(customers, c)
	}

	fill := func(c *domain.Customer, name string, qty int) {
		item, ok := sh.Catalog().Get(name)
		if !ok {
			log.Fatalf("Seed item %q missing from catalog", name)
		}
		if err := c.Cart().Add(item, qty); err != nil {
			log.Fatalf("Failed to fill cart for %s: %v", c.ID(), err)
		}
	}
	fill(customers[0], "Milk", 2)
	fill(customers[1], "Chips", 3)
	fill(customers[2], "Milk", 1)
	fill(customers[2], "Bread", 2)
	fill(customers[3], "Chips", 4)
	fill(customers[3], "Bread", 1)

	svc := checkout.NewService(lg)
	for _, c := range customers {
		if _, err := svc.Purchase(c, sh); err != nil {
			fmt.Printf("%s purchase failed: %v\n", c.ID(), err)
			continue
		}
		fmt.Printf("%s purchase successful\n", c.ID())
	}

	// A purchase that must fail on funds: balance below the cheapest cart.
	broke, err := domain.NewCustomer("Kid", domain.TierRegular, decimal.RequireFromString("5.0"))
	if err != nil {
		log.Fatalf("Failed to create customer: %v", err)
	}
	sh.AddCustomer(broke)
	fill(broke, "Milk", 1)
	if _, err := svc.Purchase(broke, sh); err != nil {
		fmt.Printf("%s purchase failed: %v\n", broke.ID(), err)
	}

	fmt.Println()
	for _, c := range append(customers, broke) {
		fmt.Printf("%s purchase history:\n", c.ID())
		if c.HistoryLen() == 0 {
			fmt.Println("  no recent purchases")
		}
		for p := range c.History() {
			fmt.Printf("  %s\n", p)
		}
		fmt.Printf("%s current balance: %s\n", c.ID(), c.Balance().StringFixed(2))
	}

	fmt.Println()
	fmt.Println(sh)
	fmt.Println("Shop purchase ledger:")
	for p := range sh.Ledger() {
		fmt.Printf("  %s: %s\n", p.CustomerID, p.Total.StringFixed(2))
	}
}
