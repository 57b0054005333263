package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	catalogUseCase "github.com/allisson/deliveryqueue/internal/catalog/usecase"
)

// RunCreateProduct adds a product to the catalog and prints its ID.
func RunCreateProduct(
	ctx context.Context,
	productUseCase catalogUseCase.ProductUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("creating product", slog.String("name", name))

	product, err := productUseCase.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]string{
			"id":        product.ID.String(),
			"name":      product.Name,
			"createdAt": product.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(writer, "Product created successfully!")
		_, _ = fmt.Fprintf(writer, "ID: %s\n", product.ID)
		_, _ = fmt.Fprintf(writer, "Name: %s\n", product.Name)
	}

	logger.Info("product created", slog.String("product_id", product.ID.String()))
	return nil
}
