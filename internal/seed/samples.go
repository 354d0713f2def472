package seed

import (
	"context"
	"fmt"

	"quillworks/internal/store"
	"quillworks/pkg/types"
)

// SeedSamplePapers loads the published sample-paper catalog the marketing
// site shows to prospects. Re-running replaces nothing: existing rows are
// left alone and only missing titles are inserted.
func SeedSamplePapers(ctx context.Context, repo *store.SamplePaperRepository) error {
	samples := []types.SamplePaper{
		{
			Title:         "The Ethics of Algorithmic Decision-Making",
			Subject:       "Philosophy",
			AcademicLevel: "undergraduate",
			Excerpt:       "As automated systems increasingly mediate access to credit, employment, and justice, the question of moral accountability shifts from the individual to the institution...",
			Published:     true,
		},
		{
			Title:         "Fiscal Policy Responses to Supply-Side Inflation",
			Subject:       "Economics",
			AcademicLevel: "masters",
			Excerpt:       "Conventional demand-management tools lose traction when price pressure originates in constrained supply chains rather than excess aggregate demand...",
			Published:     true,
		},
		{
			Title:         "Narrative Unreliability in Postwar American Fiction",
			Subject:       "Literature",
			AcademicLevel: "undergraduate",
			Excerpt:       "The unreliable narrator is less a trick of craft than a claim about the limits of testimony itself, and the postwar novel leaned on it heavily...",
			Published:     true,
		},
		{
			Title:         "CRISPR Off-Target Effects: A Systematic Review",
			Subject:       "Biology",
			AcademicLevel: "phd",
			Excerpt:       "Guide-RNA design remains the dominant determinant of editing specificity, yet reporting standards across the surveyed literature vary enough to frustrate meta-analysis...",
			Published:     true,
		},
	}

	existing, err := repo.AllSamples(ctx)
	if err != nil {
		return fmt.Errorf("failed to load existing samples: %w", err)
	}

	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[s.Title] = struct{}{}
	}

	for i := range samples {
		if _, ok := seen[samples[i].Title]; ok {
			continue
		}
		if err := repo.CreateSample(ctx, &samples[i]); err != nil {
			return fmt.Errorf("failed to seed sample %q: %w", samples[i].Title, err)
		}
	}

	return nil
}
