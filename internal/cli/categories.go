package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/store"
)

type categoryFlags struct {
	name, description, image, imageType string
	active                              bool
}

func (f *categoryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "category name")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().BoolVar(&f.active, "active", true, "show the category in the storefront")
	cmd.Flags().StringVar(&f.image, "image", "", "path to a jpeg, png, gif or webp image")
	cmd.Flags().StringVar(&f.imageType, "image-type", "", "declared image type, defaults to the extension's")
}

func (f *categoryFlags) payload() (store.CategoryPayload, error) {
	payload := store.CategoryPayload{CategoryInput: models.CategoryInput{
		Name:        f.name,
		Description: f.description,
		IsActive:    f.active,
	}}
	if f.image == "" {
		return payload, nil
	}
	image, err := readImageFile(f.image, f.imageType)
	if err != nil {
		return store.CategoryPayload{}, err
	}
	payload.Image = &image
	return payload, nil
}

func newCategoriesCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage product categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			if err := rt.app.Categories.FetchAll(cmd.Context()); err != nil {
				return storeError(err, rt.app.Categories.State().Error)
			}
			return rt.printCategories(rt.app.Categories.State())
		},
	}

	var createFlags categoryFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := createFlags.payload()
			if err != nil {
				return err
			}
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			created, err := rt.app.Categories.Create(cmd.Context(), payload)
			if err != nil {
				return storeError(err, rt.app.Categories.State().Error)
			}
			fmt.Fprintf(rt.out, "Created category %s (%s).\n", created.Name, created.ID)
			return nil
		},
	}
	createFlags.bind(create)
	_ = create.MarkFlagRequired("name")

	var updateFlags categoryFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := updateFlags.payload()
			if err != nil {
				return err
			}
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			updated, err := rt.app.Categories.Update(cmd.Context(), args[0], payload)
			if err != nil {
				return storeError(err, rt.app.Categories.State().Error)
			}
			fmt.Fprintf(rt.out, "Updated category %s.\n", updated.Name)
			return nil
		},
	}
	updateFlags.bind(update)
	_ = update.MarkFlagRequired("name")

	var yes bool
	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a category",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("deleting a category cannot be undone, pass --yes to confirm")
			}
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			if err := rt.app.Categories.Remove(cmd.Context(), args[0]); err != nil {
				return storeError(err, rt.app.Categories.State().Error)
			}
			fmt.Fprintf(rt.out, "Deleted category %s.\n", args[0])
			return nil
		},
	}
	remove.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the delete")

	cmd.AddCommand(list, create, update, remove)
	return cmd
}

func (rt *runtime) printCategories(state store.CollectionState[models.Category]) error {
	if rt.jsonOut {
		return rt.printJSON(state)
	}
	rows := make([][]string, 0, len(state.Items))
	for _, c := range state.Items {
		image := "-"
		if c.Image != nil && *c.Image != "" {
			image = *c.Image
		}
		rows = append(rows, []string{c.ID, c.Name, yesNo(c.IsActive), image})
	}
	return rt.table([]string{"ID", "NAME", "ACTIVE", "IMAGE"}, rows)
}
