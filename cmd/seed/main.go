package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/Yashika2244-hub/fraud-detection-api/configs"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg/database"
	"go.uber.org/zap"
)

var (
	genders      = []string{"Male", "Female"}
	ageGroups    = []string{"18-25", "26-35", "36-45", "46-60", "60+"}
	creditScores = []string{"Poor", "Fair", "Good", "Excellent"}
	states       = []string{"CA", "NY", "TX", "FL", "WA", "IL", "GA", "OH"}
	brands       = []string{"Visa", "Mastercard", "Amex", "Discover"}
	cardTypes    = []string{"Credit", "Debit", "Prepaid"}
	chipUsage    = []string{"Chip Transaction", "Swipe Transaction", "Online Transaction"}
)

// main seeds the four source tables with generated card-transaction data.
// It initializes logging, loads config, runs migrations, and performs the
// inserts inside a single transaction.
func main() {
	noOfUsers := flag.Int("noOfUsers", 200, "Number of users to seed")
	noOfMerchants := flag.Int("noOfMerchants", 50, "Number of merchants to seed")
	noOfCards := flag.Int("noOfCards", 300, "Number of cards to seed")
	noOfTransactions := flag.Int("noOfTransactions", 5000, "Number of transactions to seed")
	fraudRate := flag.Float64("fraudRate", 0.03, "Share of transactions labeled Fraud")
	dirtyRate := flag.Float64("dirtyRate", 0.01, "Share of rows with unparseable amount or date")

	flag.Parse()

	// Initialize logger
	pkg.InitLogger()
	logger := pkg.Logger
	defer logger.Sync()

	cfg, err := configs.Load(logger)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	dbCfg := database.Config{
		Host:           cfg.MySQLHost,
		Port:           cfg.MySQLPort,
		User:           cfg.MySQLUser,
		Password:       cfg.MySQLPassword,
		Database:       cfg.MySQLDatabase,
		ConnectTimeout: cfg.ConnectTimeout(),
	}

	// Initialize db migrations
	if err = database.RunMigrations(logger, dbCfg); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}

	ctx := context.Background()
	provider := database.NewProvider(logger, dbCfg)
	db, release, err := provider.Acquire(ctx)
	if err != nil {
		logger.Fatal("failed to connect", zap.Error(err))
	}
	defer release()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		logger.Fatal("failed to begin transaction", zap.Error(err))
	}
	if err = seed(ctx, tx, logger, *noOfUsers, *noOfMerchants, *noOfCards, *noOfTransactions, *fraudRate, *dirtyRate); err != nil {
		_ = tx.Rollback()
		logger.Fatal("seeding failed", zap.Error(err))
	}
	if err = tx.Commit(); err != nil {
		logger.Fatal("commit failed", zap.Error(err))
	}
	logger.Info("seeding complete",
		zap.Int("users", *noOfUsers),
		zap.Int("merchants", *noOfMerchants),
		zap.Int("cards", *noOfCards),
		zap.Int("transactions", *noOfTransactions),
	)
}

func seed(ctx context.Context, tx *sql.Tx, logger *zap.Logger, users, merchants, cards, transactions int, fraudRate, dirtyRate float64) error {
	for i := 1; i <= users; i++ {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO `user` (id, gender, AgeGroup, creditscorecategory) VALUES (?, ?, ?, ?) ON DUPLICATE KEY UPDATE id = id",
			i, pick(genders), pick(ageGroups), pick(creditScores))
		if err != nil {
			return err
		}
	}
	for i := 1; i <= merchants; i++ {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO merchants (merchant_id, merchant_state) VALUES (?, ?) ON DUPLICATE KEY UPDATE merchant_id = merchant_id",
			i, pick(states))
		if err != nil {
			return err
		}
	}
	for i := 1; i <= cards; i++ {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO cards (id, card_brand) VALUES (?, ?) ON DUPLICATE KEY UPDATE id = id",
			i, pick(brands))
		if err != nil {
			return err
		}
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= transactions; i++ {
		label := string(pkg.FraudLabelNonFraud)
		amount := 5 + rand.Float64()*495
		if rand.Float64() < fraudRate {
			label = string(pkg.FraudLabelFraud)
			amount = 500 + rand.Float64()*4500 // fraud skews high
		}

		// Amounts are stored the way the raw exports carry them, currency
		// symbol and thousands separators included.
		amountText := formatAmount(amount)
		var date any = start.Add(time.Duration(rand.Intn(365*24)) * time.Hour)
		if rand.Float64() < dirtyRate {
			amountText = "N/A"
		}
		if rand.Float64() < dirtyRate {
			date = nil
		}

		var errText any
		if rand.Float64() < 0.05 {
			errText = "Insufficient Balance"
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO `transaction` (id, client_id, merchant_id, card_id, amount, `date`, fraud_classification, errors, use_chip, card_type) "+
				"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) ON DUPLICATE KEY UPDATE id = id",
			i, 1+rand.Intn(users), 1+rand.Intn(merchants), 1+rand.Intn(cards),
			amountText, date, label, errText, pick(chipUsage), pick(cardTypes))
		if err != nil {
			return err
		}
		if i%1000 == 0 {
			logger.Info("seeding transactions", zap.Int("inserted", i))
		}
	}
	return nil
}

func formatAmount(v float64) string {
	whole := int(v)
	cents := int((v - float64(whole)) * 100)
	if whole >= 1000 {
		return fmt.Sprintf("$%d,%03d.%02d", whole/1000, whole%1000, cents)
	}
	return fmt.Sprintf("$%d.%02d", whole, cents)
}

func pick(options []string) string {
	return options[rand.Intn(len(options))]
}
