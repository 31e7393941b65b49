package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/store"
)

func newProductsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage the product catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			if err := rt.app.Products.FetchAll(cmd.Context()); err != nil {
				return storeError(err, rt.app.Products.State().Error)
			}
			return rt.printProducts(rt.app.Products.State())
		},
	}

	var (
		input      models.ProductInput
		imagePaths []string
		imageType  string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Upload images, then create a product referencing them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			images := make([]models.ImageFile, 0, len(imagePaths))
			for _, p := range imagePaths {
				image, err := readImageFile(p, imageType)
				if err != nil {
					return err
				}
				images = append(images, image)
			}
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			for _, image := range images {
				if _, err := rt.app.Products.UploadImage(cmd.Context(), image); err != nil {
					return storeError(err, rt.app.Products.State().Error)
				}
			}
			created, err := rt.app.Products.Create(cmd.Context(), input)
			if err != nil {
				return storeError(err, rt.app.Products.State().Error)
			}
			fmt.Fprintf(rt.out, "Created product %s (%s) with %d images.\n", created.Name, created.ID, len(created.Images))
			return nil
		},
	}
	f := create.Flags()
	f.StringVar(&input.Name, "name", "", "product name")
	f.StringVar(&input.SKU, "sku", "", "stock keeping unit")
	f.StringVar(&input.Description, "description", "", "description")
	f.StringVar(&input.CategoryID, "category", "", "category id")
	f.Float64Var(&input.Weight, "weight", 0, "weight in grams")
	f.StringVar(&input.Purity, "purity", "", "purity, e.g. 22K")
	f.Float64Var(&input.MakingChargesPerGram, "making-charges", 0, "making charges per gram")
	f.BoolVar(&input.IsActive, "active", true, "show the product in the storefront")
	f.StringSliceVar(&input.Images, "image-url", nil, "already hosted image URL, repeatable")
	f.StringArrayVar(&imagePaths, "image", nil, "image file to upload first, repeatable")
	f.StringVar(&imageType, "image-type", "", "declared type for every --image, defaults to the extension's")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("sku")

	upload := &cobra.Command{
		Use:   "upload-image <file>",
		Short: "Upload one image and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := readImageFile(args[0], imageType)
			if err != nil {
				return err
			}
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			urls, err := rt.app.Products.UploadImage(cmd.Context(), image)
			if err != nil {
				return storeError(err, rt.app.Products.State().Error)
			}
			fmt.Fprintln(rt.out, strings.Join(urls, "\n"))
			return nil
		},
	}
	upload.Flags().StringVar(&imageType, "image-type", "", "declared image type, defaults to the extension's")

	var yes bool
	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a product",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deleting product %s cannot be undone, pass --yes to confirm", args[0])
			}
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			if err := rt.app.Products.Remove(cmd.Context(), args[0]); err != nil {
				return storeError(err, rt.app.Products.State().Error)
			}
			fmt.Fprintf(rt.out, "Deleted product %s.\n", args[0])
			return nil
		},
	}
	remove.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the delete")

	cmd.AddCommand(list, create, upload, remove)
	return cmd
}

func (rt *runtime) printProducts(state store.ProductState) error {
	if rt.jsonOut {
		return rt.printJSON(state)
	}
	rows := make([][]string, 0, len(state.Items))
	for _, p := range state.Items {
		rows = append(rows, []string{
			p.ID,
			p.Name,
			p.SKU,
			orDash(p.Purity),
			fmt.Sprintf("%.2f g", p.Weight),
			p.MakingCharges().StringFixed(2),
			yesNo(p.IsActive),
			fmt.Sprint(len(p.Images)),
		})
	}
	return rt.table([]string{"ID", "NAME", "SKU", "PURITY", "WEIGHT", "MAKING", "ACTIVE", "IMAGES"}, rows)
}
