package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newListFoodsCmd(g *globals) *cobra.Command {
	var restaurantID int64
	var category string

	cmd := &cobra.Command{
		Use:   "list-foods",
		Short: "List foods, optionally for one restaurant and category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" && restaurantID == 0 {
				return fmt.Errorf("--category requires --restaurant-id")
			}
			c := g.client()
			ctx, cancel := commandContext(cmd)
			defer cancel()

			start := time.Now()
			var err error
			var out any
			switch {
			case category != "":
				out, err = c.GetFoodsByRestaurantAndCategory(ctx, restaurantID, category)
			case restaurantID != 0:
				out, err = c.GetFoodsByRestaurant(ctx, restaurantID)
			default:
				out, err = c.GetAllFoods(ctx)
			}
			if err != nil {
				log.Error().Err(err).Int64("restaurant_id", restaurantID).Str("category", category).Msg("list foods failed")
				return err
			}
			log.Debug().Dur("elapsed", time.Since(start)).Msg("list foods completed")
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().Int64Var(&restaurantID, "restaurant-id", 0, "Restaurant ID (optional)")
	cmd.Flags().StringVar(&category, "category", "", "Category (optional, needs --restaurant-id)")
	return cmd
}

func newGetFoodCmd(g *globals) *cobra.Command {
	var foodID int64

	cmd := &cobra.Command{
		Use:   "get-food",
		Short: "Show one food",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			food, err := g.client().GetFoodByID(ctx, foodID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), food)
		},
	}

	cmd.Flags().Int64Var(&foodID, "id", 0, "Food ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newListCategoriesCmd(g *globals) *cobra.Command {
	var restaurantID int64

	cmd := &cobra.Command{
		Use:   "list-categories",
		Short: "List food categories, optionally for one restaurant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			c := g.client()

			var cats []string
			var err error
			if restaurantID != 0 {
				cats, err = c.GetFoodsCategoriesByRestaurant(ctx, restaurantID)
			} else {
				cats, err = c.GetFoodsCategories(ctx)
			}
			if err != nil {
				return err
			}
			for _, cat := range cats {
				fmt.Fprintln(cmd.OutOrStdout(), cat)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&restaurantID, "restaurant-id", 0, "Restaurant ID (optional)")
	return cmd
}

func newListRestaurantsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list-restaurants",
		Short: "List restaurants",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			rs, err := g.client().GetRestaurants(ctx)
			if err != nil {
				return err
			}
			if len(rs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No restaurants found")
				return nil
			}
			for _, r := range rs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", r.ID, r.StoreName, r.Location)
			}
			return nil
		},
	}
}

func newGetRestaurantCmd(g *globals) *cobra.Command {
	var restaurantID int64

	cmd := &cobra.Command{
		Use:   "get-restaurant",
		Short: "Show one restaurant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			r, err := g.client().GetRestaurantByID(ctx, restaurantID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().Int64Var(&restaurantID, "id", 0, "Restaurant ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
