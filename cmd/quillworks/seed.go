package main

import (
	"context"
	"fmt"

	"quillworks/internal/db"
	"quillworks/internal/seed"
	"quillworks/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with the sample paper catalog",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		sampleRepo := store.NewSamplePaperRepository(pool)

		logrus.Info("Seeding sample papers...")
		if err := seed.SeedSamplePapers(ctx, sampleRepo); err != nil {
			return fmt.Errorf("failed to seed sample papers: %w", err)
		}

		samples, err := sampleRepo.AllSamples(ctx)
		if err != nil {
			return fmt.Errorf("failed to list samples after seed: %w", err)
		}
		pp.Println(len(samples), "sample papers in catalog")

		logrus.Info("Sample papers seeded successfully")

		return nil
	},
}
