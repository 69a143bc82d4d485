package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/foodhub/foodhub-client/client"
)

func newCreateRestaurantCmd(g *globals) *cobra.Command {
	var req client.CreateRestaurantRequest

	cmd := &cobra.Command{
		Use:   "create-restaurant",
		Short: "Create a restaurant owned by the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			store, err := g.signedIn(ctx)
			if err != nil {
				return err
			}
			r, err := store.CreateRestaurant(ctx, req)
			if err != nil {
				log.Error().Err(err).Str("store_name", req.StoreName).Msg("create restaurant failed")
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restaurant created: %d - %s\n", r.ID, r.StoreName)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.StoreName, "store-name", "", "Store name (required)")
	cmd.Flags().StringVar(&req.CNPJ, "cnpj", "", "Company registration number")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Location, "location", "", "Address")
	_ = cmd.MarkFlagRequired("store-name")
	return cmd
}

// foodFlags binds the food fields shared by create-food and update-food.
func foodFlags(cmd *cobra.Command, f *client.Food) {
	cmd.Flags().StringVar(&f.Name, "name", "", "Food name")
	cmd.Flags().StringVar(&f.Description, "description", "", "Description")
	cmd.Flags().StringVar(&f.Category, "category", "", "Category")
	cmd.Flags().Float64Var(&f.Price, "price", 0, "Price")
}

func newCreateFoodCmd(g *globals) *cobra.Command {
	var food client.Food
	var restaurantID int64

	cmd := &cobra.Command{
		Use:   "create-food",
		Short: "Add a food to a restaurant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			store, err := g.signedIn(ctx)
			if err != nil {
				return err
			}
			created, err := store.CreateFood(ctx, food, restaurantID)
			if err != nil {
				log.Error().Err(err).Int64("restaurant_id", restaurantID).Str("name", food.Name).Msg("create food failed")
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Food created: %d - %s\n", created.ID, created.Name)
			return nil
		},
	}

	cmd.Flags().Int64Var(&restaurantID, "restaurant-id", 0, "Restaurant ID (required)")
	foodFlags(cmd, &food)
	_ = cmd.MarkFlagRequired("restaurant-id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newUpdateFoodCmd(g *globals) *cobra.Command {
	var food client.Food
	var restaurantID int64

	cmd := &cobra.Command{
		Use:   "update-food",
		Short: "Replace a food's fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			store, err := g.signedIn(ctx)
			if err != nil {
				return err
			}
			updated, err := store.UpdateFood(ctx, food, restaurantID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), updated)
		},
	}

	cmd.Flags().Int64Var(&restaurantID, "restaurant-id", 0, "Restaurant ID (required)")
	cmd.Flags().Int64Var(&food.ID, "id", 0, "Food ID (required)")
	foodFlags(cmd, &food)
	_ = cmd.MarkFlagRequired("restaurant-id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newDeleteFoodCmd(g *globals) *cobra.Command {
	var foodID, restaurantID int64

	cmd := &cobra.Command{
		Use:   "delete-food",
		Short: "Remove a food from a restaurant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			store, err := g.signedIn(ctx)
			if err != nil {
				return err
			}
			if _, err := store.DeleteFood(ctx, foodID, restaurantID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Food %d deleted\n", foodID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&restaurantID, "restaurant-id", 0, "Restaurant ID (required)")
	cmd.Flags().Int64Var(&foodID, "id", 0, "Food ID (required)")
	_ = cmd.MarkFlagRequired("restaurant-id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newOrderCmd(g *globals) *cobra.Command {
	var locationID, restaurantID int64

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place an order for the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			store, err := g.signedIn(ctx)
			if err != nil {
				return err
			}
			o, err := store.PlaceOrder(ctx, locationID, restaurantID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order placed: %d (%s)\n", o.ID, o.Status)
			return nil
		},
	}

	cmd.Flags().Int64Var(&restaurantID, "restaurant-id", 0, "Restaurant ID (required)")
	cmd.Flags().Int64Var(&locationID, "location-id", 0, "Delivery location ID (required)")
	_ = cmd.MarkFlagRequired("restaurant-id")
	_ = cmd.MarkFlagRequired("location-id")
	return cmd
}
