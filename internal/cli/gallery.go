package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"eventadmin/internal/api"
	"eventadmin/internal/service"
	"eventadmin/internal/service/admin"

	"github.com/spf13/cobra"
)

func (a *app) galleryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Manage gallery images",
	}

	var category string
	list := &cobra.Command{
		Use:         "list",
		Short:       "List gallery images (public, no login needed)",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStart: "public"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := parseCategoryFlag(category)
			if err != nil {
				return err
			}
			images, err := service.NewPublicService(a.client).Gallery(cmd.Context(), c)
			if err != nil {
				return err
			}
			return a.printGallery(images)
		},
	}
	list.Flags().StringVar(&category, "category", "", "only show one category")

	var form api.UploadRequest
	var uploadCategory string
	upload := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image to the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.galleryView()
			if err != nil {
				return err
			}
			defer view.Close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}
			form.Image = data
			form.FileName = filepath.Base(args[0])
			form.Category = api.Category(uploadCategory)

			ack, err := view.Upload(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, ack)
			st := view.State()
			if st.Err != "" {
				fmt.Fprintln(a.out, st.Err)
				return nil
			}
			return a.printGallery(st.Items)
		},
	}
	upload.Flags().StringVar(&form.Title, "title", "", "image title")
	upload.Flags().StringVar(&form.Description, "description", "", "image description")
	upload.Flags().StringVar(&uploadCategory, "category", string(api.CategoryWedding), "image category")
	_ = upload.MarkFlagRequired("title")

	cmd.AddCommand(
		list,
		upload,
		a.deleteCommand("gallery image", func(cmd *cobra.Command, id string) (bool, string, error) {
			view, err := a.galleryView()
			if err != nil {
				return false, "", err
			}
			defer view.Close()
			ack, err := view.Delete(cmd.Context(), id)
			return ack != "", ack, err
		}),
	)
	return cmd
}

func (a *app) galleryView() (*service.GalleryView, error) {
	if err := a.enter(admin.TabGallery); err != nil {
		return nil, err
	}
	return service.NewGalleryView(a.client, a.confirmer()), nil
}

func parseCategoryFlag(raw string) (api.Category, error) {
	if raw == "" || raw == "all" {
		return "", nil
	}
	c, ok := api.ParseCategory(raw)
	if !ok {
		return "", fmt.Errorf("unknown category %q (want one of %v)", raw, api.Categories)
	}
	return c, nil
}

func (a *app) printGallery(images []api.GalleryImage) error {
	if len(images) == 0 {
		fmt.Fprintln(a.out, "No images found.")
		return nil
	}
	tw := newTable(a.out, "ID", "TITLE", "CATEGORY", "URL")
	for _, img := range images {
		row(tw, img.ID, truncate(img.Title, 32), img.Category, img.ImageURL)
	}
	return tw.Flush()
}
