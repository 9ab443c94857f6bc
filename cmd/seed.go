package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/cachopreto/webdev-semester-team1/internal/models"
	"github.com/cachopreto/webdev-semester-team1/internal/repository"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo venue, show and show dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			defer closeDB(db, log)

			if err := seedCatalog(cmd.Context(), repository.NewCatalogRepository(db), time.Now().UTC()); err != nil {
				return err
			}
			log.Info("demo catalog seeded")
			return nil
		},
	}
}

// seedCatalog upserts fixed ids, so running it twice leaves one copy.
// Show dates are placed around now: one already played, two upcoming.
func seedCatalog(ctx context.Context, repo repository.CatalogRepository, now time.Time) error {
	day := now.Truncate(24 * time.Hour)

	venue := &models.Venue{ID: 1, Name: "Main Hall", Capacity: 120}
	show := &models.TheatreShow{
		ID:          1,
		Title:       "Hamlet",
		Description: "The Prince of Denmark, in five acts.",
		Price:       12.5,
		VenueID:     venue.ID,
	}
	dates := []*models.TheatreShowDate{
		{ID: 1, DateAndTime: day.AddDate(0, 0, -1).Add(20 * time.Hour), TheatreShowID: show.ID},
		{ID: 2, DateAndTime: day.AddDate(0, 0, 7).Add(20 * time.Hour), TheatreShowID: show.ID},
		{ID: 3, DateAndTime: day.AddDate(0, 0, 14).Add(15 * time.Hour), TheatreShowID: show.ID},
	}

	if err := repo.UpsertVenue(ctx, venue); err != nil {
		return fmt.Errorf("seed venue: %w", err)
	}
	if err := repo.UpsertShow(ctx, show); err != nil {
		return fmt.Errorf("seed show: %w", err)
	}
	for _, d := range dates {
		if err := repo.UpsertShowDate(ctx, d); err != nil {
			return fmt.Errorf("seed show date %d: %w", d.ID, err)
		}
	}
	return nil
}
