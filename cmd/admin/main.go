package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"chiproom-server/internal/config"
	"chiproom-server/pkg/db"
	"chiproom-server/pkg/ledger"
)

var command = flag.String("c", "balance", "specifies the command (balance, grant, accounts)")
var account = flag.Int64("account", 0, "the account to operate on")
var amount = flag.Int("amount", 0, "the number of chips to grant")

func main() {
	flag.Parse()

	chips, err := ledger.New(logrus.StandardLogger(), ledgerStore())
	if err != nil {
		logrus.WithError(err).Fatal("could not load ledger")
	}

	switch *command {
	case "balance":
		balance, err := chips.Balance(*account)
		if err != nil {
			logrus.WithError(err).Fatal("could not read balance")
		}

		loan, err := chips.Loan(*account)
		if err != nil {
			logrus.WithError(err).Fatal("could not read loan")
		}

		fmt.Printf("account %d: %d chips, %d on loan\n", *account, balance, loan)
	case "grant":
		if *amount <= 0 {
			logrus.Fatal("grant requires a positive -amount")
		}

		if err := chips.Grant(*account, *amount); err != nil {
			logrus.WithError(err).Fatal("could not grant chips")
		}

		balance, _ := chips.Balance(*account)
		fmt.Printf("account %d now has %d chips\n", *account, balance)
	case "accounts":
		for _, a := range chips.Accounts() {
			fmt.Printf("%d\t%d\t%d\n", a.ID, a.Chips, a.Loan)
		}
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func ledgerStore() ledger.Store {
	cfg := config.Instance()
	if cfg.Ledger.Backend == "postgres" {
		db.Migrate()
		return ledger.NewPGStore()
	}

	return ledger.NewFileStore(cfg.Ledger.Path)
}
